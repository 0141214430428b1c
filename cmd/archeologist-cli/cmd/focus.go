package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"archeologist/internal/application/commands"
)

var focusJSON bool

var focusCmd = &cobra.Command{
	Use:   "focus [node|cluster|overview] [id]",
	Short: "Print the camera pose for a navigation target",
	Long: `Print where the camera would move to frame a node or a cluster, or
the overview pose.

Examples:
  archeologist-cli focus node "app.py::main"
  archeologist-cli focus cluster 2
  archeologist-cli focus overview --json`,
}

var focusNodeCmd = &cobra.Command{
	Use:   "node <node-id>",
	Short: "Pose framing one node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadGraph(cmd.Context())
		if err != nil {
			return err
		}
		pose, err := commands.NewFocusNodeCommand(res.Graph, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		return printPose(pose)
	},
}

var focusClusterCmd = &cobra.Command{
	Use:   "cluster <cluster-id>",
	Short: "Pose framing one cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadGraph(cmd.Context())
		if err != nil {
			return err
		}
		pose, err := commands.NewFocusClusterCommand(res.Graph, args[0]).Execute(cmd.Context())
		if err != nil {
			return fmt.Errorf("cluster %s: %w", args[0], err)
		}
		return printPose(pose)
	},
}

var focusOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "The resting pose",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPose(commands.OverviewPose(cfg.Navigation()))
	},
}

func printPose(p commands.Pose) error {
	if focusJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	fmt.Printf("position %s\nlook at  %s\n", formatVec(p.Position), formatVec(p.LookAt))
	return nil
}

func init() {
	focusCmd.PersistentFlags().BoolVar(&focusJSON, "json", false, "print the pose as JSON")
	rootCmd.AddCommand(focusCmd)
	focusCmd.AddCommand(focusNodeCmd)
	focusCmd.AddCommand(focusClusterCmd)
	focusCmd.AddCommand(focusOverviewCmd)
}
