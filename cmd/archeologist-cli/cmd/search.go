package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"archeologist/internal/application/commands"
)

var searchRanked bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search nodes by name",
	Long: `Search for nodes whose name contains the query, case-insensitively.

Results keep graph order unless --ranked is given, which sorts them by
fuzzy match score.

Examples:
  archeologist-cli search parse
  archeologist-cli search --ranked handler`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadGraph(cmd.Context())
		if err != nil {
			return err
		}

		searchCmd := commands.NewSearchCommand(res.Graph, args[0])
		searchCmd.Ranked = searchRanked
		results, err := searchCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No nodes found")
			return nil
		}

		for _, r := range results {
			n := r.Node
			fmt.Printf("%s %s %s %s\n", swatch(n.Cluster), n.Name, subtle.Sprint(n.ID), subtle.Sprint("Cluster "+n.Cluster.Display()))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchRanked, "ranked", false, "sort results by match score")
	rootCmd.AddCommand(searchCmd)
}
