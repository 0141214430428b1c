package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"archeologist/internal/application"
	"archeologist/internal/application/commands"
	"archeologist/internal/domain"
)

// RegisterTools adds the read-only graph tools to the MCP server. The graph
// is loaded and laid out once by the caller; nav supplies the overview pose.
func RegisterTools(s *server.MCPServer, g *domain.Graph, clusters []domain.ClusterSummary, nav application.NavigationConfig) {
	s.AddTool(searchNodesTool(), searchNodesHandler(g))
	s.AddTool(listClustersTool(), listClustersHandler(g, clusters))
	s.AddTool(clusterInfoTool(), clusterInfoHandler(g))
	s.AddTool(nodeInfoTool(), nodeInfoHandler(g))
	s.AddTool(focusPoseTool(), focusPoseHandler(g, nav))
}

// --- search_nodes ---

func searchNodesTool() mcp.Tool {
	return mcp.NewTool("search_nodes",
		mcp.WithDescription("Search functions by name (case-insensitive substring). Returns at most 5 matches with their node IDs and clusters."),
		mcp.WithString("query",
			mcp.Description("Part of a function name"),
			mcp.Required(),
		),
		mcp.WithBoolean("ranked",
			mcp.Description("Order results by match quality instead of graph order"),
		),
	)
}

func searchNodesHandler(g *domain.Graph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSearchCommand(g, req.GetString("query", ""))
		cmd.Ranked = req.GetBool("ranked", false)

		results, err := cmd.Execute(ctx)
		if err != nil {
			if errors.Is(err, application.ErrInvalidQuery) {
				return toolError(fmt.Errorf("query is required"))
			}
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s  Cluster %s\n", r.Node.ID, r.Node.Name, r.Node.Cluster.Display())
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_clusters ---

func listClustersTool() mcp.Tool {
	return mcp.NewTool("list_clusters",
		mcp.WithDescription("List the graph's clusters in numeric order with member counts and centroids."),
	)
}

func listClustersHandler(g *domain.Graph, summaries []domain.ClusterSummary) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		clusters, err := commands.NewListClustersCommand(g).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(clusters) == 0 {
			return mcp.NewToolResultText("No results."), nil
		}

		risk := make(map[string]string, len(summaries))
		for _, s := range summaries {
			risk[s.ID.String()] = s.RiskScore
		}

		var sb strings.Builder
		for _, c := range clusters {
			fmt.Fprintf(&sb, "%s  %d nodes  centroid %s", c.Name, c.Members, formatVec(c.Centroid))
			if r := risk[c.ID.String()]; r != "" {
				fmt.Fprintf(&sb, "  risk %s", r)
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- cluster_info ---

func clusterInfoTool() mcp.Tool {
	return mcp.NewTool("cluster_info",
		mcp.WithDescription("Show one cluster's members, centroid and palette color."),
		mcp.WithString("id",
			mcp.Description("Cluster ID as listed by list_clusters (e.g. 3)"),
			mcp.Required(),
		),
	)
}

func clusterInfoHandler(g *domain.Graph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		info, err := commands.NewClusterInfoCommand(g, id).Execute(ctx)
		if err != nil {
			return toolError(fmt.Errorf("cluster %s: %w", id, err))
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  %d nodes  color %s  centroid %s\n", info.Name, info.Members, info.Color, formatVec(info.Centroid))
		for _, n := range info.Nodes {
			fmt.Fprintf(&sb, "  %s  %s  %s\n", n.ID, n.Name, n.FileName())
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- node_info ---

func nodeInfoTool() mcp.Tool {
	return mcp.NewTool("node_info",
		mcp.WithDescription("Show a function's file, line range, cluster, position and source snippet."),
		mcp.WithString("id",
			mcp.Description("Node ID (e.g. src/app.py::main)"),
			mcp.Required(),
		),
	)
}

func nodeInfoHandler(g *domain.Graph) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		n := g.Node(id)
		if n == nil {
			return toolError(&application.NodeError{ID: id, Err: application.ErrNotFound})
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s\n", n.Name)
		fmt.Fprintf(&sb, "type: %s\n", orNA(n.Type))
		fmt.Fprintf(&sb, "file: %s", orNA(n.File))
		if n.StartLine > 0 {
			fmt.Fprintf(&sb, ":%d-%d", n.StartLine, n.EndLine)
		}
		sb.WriteByte('\n')
		fmt.Fprintf(&sb, "cluster: %s\n", n.Cluster.Display())
		if p, ok := n.Position(); ok {
			fmt.Fprintf(&sb, "position: %s\n", formatVec(p))
		}
		fmt.Fprintf(&sb, "\n%s\n", n.Snippet())
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- focus_pose ---

func focusPoseTool() mcp.Tool {
	return mcp.NewTool("focus_pose",
		mcp.WithDescription("Compute the camera pose that frames a node, a cluster, or the overview. Returns JSON {position, look_at}."),
		mcp.WithString("node_id",
			mcp.Description("Node to frame"),
		),
		mcp.WithString("cluster_id",
			mcp.Description("Cluster to frame; ignored when node_id is set"),
		),
	)
}

func focusPoseHandler(g *domain.Graph, nav application.NavigationConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var (
			pose commands.Pose
			err  error
		)
		switch {
		case req.GetString("node_id", "") != "":
			pose, err = commands.NewFocusNodeCommand(g, req.GetString("node_id", "")).Execute(ctx)
		case req.GetString("cluster_id", "") != "":
			pose, err = commands.NewFocusClusterCommand(g, req.GetString("cluster_id", "")).Execute(ctx)
		default:
			pose = commands.OverviewPose(nav)
		}
		if err != nil {
			return toolError(err)
		}

		data, err := json.Marshal(pose)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatVec(v domain.Vec3) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
