// File: mcpserver/brain_tools.go
package mcpserver

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"huddle/models"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// registerBrainTools registers the shared knowledge tools: capture,
// search, and the team overview.
func registerBrainTools(s *mcpserver.MCPServer, c *apiClient) {
	dumpTool := mcp.NewTool("dump_to_team",
		mcp.WithDescription("Share something with your team's shared brain. Classifies and stores it for everyone."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("What to share: a task, idea, note, meeting summary, etc."),
		),
		mcp.WithString("api_key",
			mcp.Description("Your API key (optional if configured)."),
		),
	)

	s.AddTool(dumpTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		key := c.key(stringArg(args, "api_key"))
		if key == "" {
			return mcp.NewToolResultText("Please configure your API key. Get it from the team dashboard and add it to your relay connection."), nil
		}

		team, err := c.firstTeam(ctx, key)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Could not share: %v", err)), nil
		}
		if team == nil {
			return mcp.NewToolResultText("You're not in a team yet. Create or join a team at the web dashboard first."), nil
		}

		var result models.DumpResult
		err = c.post(ctx, "/api/brain/dump", map[string]string{
			"teamId": team.ID,
			"input":  stringArg(args, "text"),
		}, key, &result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Could not share: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Shared with team as **%s**: %s", result.Entry.Category, result.Entry.Summary)), nil
	})

	askTool := mcp.NewTool("ask_team_brain",
		mcp.WithDescription("Search your team's shared knowledge base. Find tasks, ideas, notes, meeting info."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("What you want to find."),
		),
		mcp.WithString("api_key",
			mcp.Description("Your API key (optional if configured)."),
		),
	)

	s.AddTool(askTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		key := c.key(stringArg(args, "api_key"))
		if key == "" {
			return mcp.NewToolResultText("Please configure your API key. Get it from the team dashboard and add it to your relay connection."), nil
		}

		team, err := c.firstTeam(ctx, key)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
		}
		if team == nil {
			return mcp.NewToolResultText("You're not in a team yet. Create or join a team at the web dashboard first."), nil
		}

		var result models.QueryResult
		err = c.post(ctx, "/api/brain/query", map[string]any{
			"teamId": team.ID,
			"query":  stringArg(args, "question"),
			"limit":  5,
		}, key, &result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
		}
		if len(result.Results) == 0 {
			return mcp.NewToolResultText("Nothing found in the team brain. Try dumping some info first!"), nil
		}

		parts := []string{fmt.Sprintf("Found %d relevant entries:\n", len(result.Results))}
		for i, r := range result.Results {
			parts = append(parts, fmt.Sprintf("%d. [%s] %s", i+1, r.Category, r.Summary))
		}
		return mcp.NewToolResultText(strings.Join(parts, "\n")), nil
	})

	statusTool := mcp.NewTool("get_team_status",
		mcp.WithDescription("Get an overview of your team: members, relay connections, recent entries."),
		mcp.WithString("api_key",
			mcp.Description("Your API key (optional if configured)."),
		),
	)

	s.AddTool(statusTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		key := c.key(stringArg(args, "api_key"))
		if key == "" {
			return mcp.NewToolResultText("Configure your API key first."), nil
		}

		team, err := c.firstTeam(ctx, key)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		if team == nil {
			return mcp.NewToolResultText("You're not in a team. Create or join one at the dashboard."), nil
		}

		var roster struct {
			Members []models.TeamMemberView `json:"members"`
		}
		if err := c.get(ctx, "/api/teams/"+team.ID+"/members", nil, key, &roster); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}

		var recent struct {
			Entries []models.Entry `json:"entries"`
		}
		query := url.Values{"teamId": {team.ID}, "limit": {"10"}}
		if err := c.get(ctx, "/api/brain/entries", query, key, &recent); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}

		parts := []string{
			fmt.Sprintf("Team: %s\n", team.Name),
			fmt.Sprintf("Members (%d):", len(roster.Members)),
		}
		for _, m := range roster.Members {
			status := "No relay"
			if m.RelayConnected {
				status = "Relay connected"
			}
			parts = append(parts, fmt.Sprintf("  - %s (%s)", m.Name, status))
		}
		if len(recent.Entries) > 0 {
			parts = append(parts, "\nRecent entries:")
			for i, e := range recent.Entries {
				if i == 5 {
					break
				}
				parts = append(parts, fmt.Sprintf("  - [%s] %s", e.Category, truncateRunes(e.Summary, 50)))
			}
		}
		return mcp.NewToolResultText(strings.Join(parts, "\n")), nil
	})
}
