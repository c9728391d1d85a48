// File: mcpserver/calendar_tools.go
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"huddle/models"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// registerCalendarTools registers the coordination tools: slot
// finding, the agent-side sync report, and booking broadcast.
func registerCalendarTools(s *mcpserver.MCPServer, c *apiClient) {
	findTool := mcp.NewTool("find_team_availability",
		mcp.WithDescription("Find a time window when the whole team is free. Triggers a calendar sync across all team members via their relay agents, then computes common free slots."),
		mcp.WithNumber("duration_minutes",
			mcp.Description("Meeting duration in minutes (default 30)."),
		),
		mcp.WithString("start_date",
			mcp.Description("Start of range (YYYY-MM-DD). Default: next Monday."),
		),
		mcp.WithString("end_date",
			mcp.Description("End of range (YYYY-MM-DD). Default: next Friday."),
		),
		mcp.WithString("api_key",
			mcp.Description("Your API key from the team dashboard (optional if configured)."),
		),
	)

	s.AddTool(findTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		startDate := stringArg(args, "start_date")
		endDate := stringArg(args, "end_date")
		if startDate == "" || endDate == "" {
			startDate, endDate = nextWorkWeek(time.Now())
		}

		key := c.key(stringArg(args, "api_key"))
		if key == "" {
			return mcp.NewToolResultText("Please configure your API key. Get it from the team dashboard and add it to your relay connection."), nil
		}

		team, err := c.firstTeam(ctx, key)
		if err != nil {
			return findErrorResult(err), nil
		}
		if team == nil {
			return mcp.NewToolResultText("You're not in a team yet. Create or join a team at the web dashboard first."), nil
		}

		var result models.TeamSlotsResult
		err = c.post(ctx, "/api/teams/"+team.ID+"/availability/find", models.FindSlotsRequest{
			DurationMinutes: intArg(args, "duration_minutes", 30),
			StartDate:       startDate,
			EndDate:         endDate,
		}, key, &result)
		if err != nil {
			return findErrorResult(err), nil
		}
		return mcp.NewToolResultText(result.Message), nil
	})

	syncTool := mcp.NewTool("sync_my_calendar",
		mcp.WithDescription("Report your calendar busy times to the team. Called by your relay agent after checking your calendar. Do not call this directly; it's used when the team requests availability."),
		mcp.WithString("sync_token",
			mcp.Required(),
			mcp.Description("One-time token from the relay message."),
		),
		mcp.WithString("start_date",
			mcp.Description("Date range start (YYYY-MM-DD)."),
		),
		mcp.WithString("end_date",
			mcp.Description("Date range end (YYYY-MM-DD)."),
		),
		mcp.WithArray("busy_times",
			mcp.Description(`Intervals when you're busy, as [{"start": "ISO", "end": "ISO"}]. Empty means fully free.`),
		),
	)

	s.AddTool(syncTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		busy, err := busyTimesArg(args)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Sync failed: %v", err)), nil
		}

		var resp struct {
			Message string `json:"message"`
		}
		err = c.post(ctx, "/api/teams/availability/sync", models.SyncReportRequest{
			SyncToken: stringArg(args, "sync_token"),
			StartDate: stringArg(args, "start_date"),
			EndDate:   stringArg(args, "end_date"),
			BusyTimes: busy,
		}, "", &resp)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Sync failed: %v", err)), nil
		}
		if resp.Message == "" {
			resp.Message = "Synced!"
		}
		return mcp.NewToolResultText(resp.Message), nil
	})

	bookTool := mcp.NewTool("book_team_meeting",
		mcp.WithDescription("Book a meeting for the whole team. Sends a calendar add request to each member's relay agent."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Meeting title."),
		),
		mcp.WithString("start_time",
			mcp.Required(),
			mcp.Description(`Start time, e.g. "2026-02-18T14:00:00".`),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Description("Duration in minutes (default 30)."),
		),
		mcp.WithString("api_key",
			mcp.Description("Your API key (optional if configured)."),
		),
	)

	s.AddTool(bookTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		key := c.key(stringArg(args, "api_key"))
		if key == "" {
			return mcp.NewToolResultText("Please configure your API key in the team dashboard."), nil
		}

		team, err := c.firstTeam(ctx, key)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Booking failed: %v", err)), nil
		}
		if team == nil {
			return mcp.NewToolResultText("Join a team first."), nil
		}

		var result models.BookingBroadcastResult
		err = c.post(ctx, "/api/teams/"+team.ID+"/book", models.BookMeetingRequest{
			Title:           stringArg(args, "title"),
			StartTime:       stringArg(args, "start_time"),
			DurationMinutes: intArg(args, "duration_minutes", 30),
		}, key, &result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Booking failed: %v", err)), nil
		}
		return mcp.NewToolResultText(result.Message), nil
	})
}

// findErrorResult keeps the server's own explanation visible when the
// availability run is rejected (bad range, unknown team) and falls
// back to a generic error line otherwise.
func findErrorResult(err error) *mcp.CallToolResult {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return mcp.NewToolResultError(fmt.Sprintf("Could not find availability: %s", apiErr.Body))
	}
	return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
}
