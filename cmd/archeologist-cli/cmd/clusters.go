package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"archeologist/internal/application/commands"
	"archeologist/internal/domain"
)

var clustersCmd = &cobra.Command{
	Use:   "clusters [cluster-id]",
	Short: "List clusters or show one cluster's members",
	Long: `List every cluster in numeric order with its size and centroid, or
show the members of one cluster.

Examples:
  archeologist-cli clusters
  archeologist-cli clusters 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadGraph(cmd.Context())
		if err != nil {
			return err
		}

		if len(args) == 1 {
			info, err := commands.NewClusterInfoCommand(res.Graph, args[0]).Execute(cmd.Context())
			if err != nil {
				return fmt.Errorf("cluster %s: %w", args[0], err)
			}
			fmt.Printf("%s %s  %d nodes  centroid %s\n", swatch(info.ID), info.Name, info.Members, formatVec(info.Centroid))
			for _, n := range info.Nodes {
				fmt.Printf("  %s %s\n", n.Name, subtle.Sprint(n.ID))
			}
			return nil
		}

		infos, err := commands.NewListClustersCommand(res.Graph).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No clusters")
			return nil
		}

		risk := riskScores(res.Clusters)
		for _, info := range infos {
			line := fmt.Sprintf("%s %-12s %4d nodes  centroid %s", swatch(info.ID), info.Name, info.Members, formatVec(info.Centroid))
			if r, ok := risk[info.ID.String()]; ok {
				line += "  risk " + r
			}
			fmt.Println(line)
		}
		return nil
	},
}

// riskScores indexes the backend listing's risk scores by cluster id
func riskScores(summaries []domain.ClusterSummary) map[string]string {
	risk := make(map[string]string, len(summaries))
	for _, s := range summaries {
		if s.RiskScore != "" {
			risk[s.ID.String()] = s.RiskScore
		}
	}
	return risk
}

func init() {
	rootCmd.AddCommand(clustersCmd)
}
