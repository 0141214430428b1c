package cmd

import (
	"github.com/spf13/cobra"

	"archeologist/internal/adapters/filesystem"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <out.json>",
	Short: "Save the backend's graph to a snapshot file",
	Long: `Fetch the graph and cluster listing and write them to a snapshot file
that the TUI, the MCP server and "serve" can read offline. Node positions
from the settled layout are included.

Examples:
  archeologist-cli snapshot graph.json
  ARCHEOLOGIST_BACKEND=http://10.0.0.2:8000 archeologist-cli snapshot graph.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadGraph(cmd.Context())
		if err != nil {
			return err
		}
		if err := filesystem.Save(args[0], res.Graph, res.Clusters); err != nil {
			return err
		}
		good.Printf("saved %d nodes, %d links, %d clusters to %s\n",
			res.Graph.NodeCount(), res.Graph.LinkCount(), len(res.Clusters), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}
