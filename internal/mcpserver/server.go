// Package mcpserver exposes the entry operations as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/intelligence"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Services are the use cases the tools call.
type Services struct {
	Entries         service.EntryService
	Recommendations service.RecommendationService
	Styles          intelligence.StyleSuggestionService
}

// Server is a single-user MCP server. Every tool acts as userID.
type Server struct {
	mcp    *server.MCPServer
	svc    Services
	userID string
}

func New(svc Services, userID, version string) (*Server, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("mcp server needs a user id")
	}
	s := &Server{
		mcp: server.NewMCPServer(
			"daybook",
			version,
			server.WithLogging(),
			server.WithRecovery(),
		),
		svc:    svc,
		userID: userID,
	}
	s.registerTools()
	return s, nil
}

// Start runs the stdio event loop until stdin closes.
func (s *Server) Start() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("generate_entry",
		mcp.WithDescription("Writes a new diary or work-record entry from moment descriptions and stores it."),
		mcp.WithString("moments", mcp.Required(), mcp.Description("Moment descriptions, one per line.")),
		mcp.WithString("kind", mcp.Description("journal (default) or work-record.")),
		mcp.WithString("style_reference", mcp.Description("Optional writer or figure whose general style to reflect.")),
	), s.generateEntry)

	s.mcp.AddTool(mcp.NewTool("list_entries",
		mcp.WithDescription("Lists stored entries, newest first."),
	), s.listEntries)

	s.mcp.AddTool(mcp.NewTool("get_entry",
		mcp.WithDescription("Returns one entry with its moments."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry ID.")),
	), s.getEntry)

	s.mcp.AddTool(mcp.NewTool("delete_entry",
		mcp.WithDescription("Deletes an entry and its moments."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry ID.")),
	), s.deleteEntry)

	s.mcp.AddTool(mcp.NewTool("get_recommendations",
		mcp.WithDescription("Classifies an entry's mood and recommends songs for it."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry ID.")),
	), s.getRecommendations)

	s.mcp.AddTool(mcp.NewTool("suggest_styles",
		mcp.WithDescription("Suggests five writing styles that fit the given moments."),
		mcp.WithString("moments", mcp.Required(), mcp.Description("Moment descriptions, one per line.")),
	), s.suggestStyles)
}

func stringArg(req mcp.CallToolRequest, name string) string {
	v, _ := req.Params.Arguments[name].(string)
	return strings.TrimSpace(v)
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) generateEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lines := splitLines(stringArg(req, "moments"))
	if len(lines) == 0 {
		return mcp.NewToolResultError("'moments' must contain at least one non-empty line."), nil
	}
	moments := make([]domain.MomentInput, len(lines))
	for i, l := range lines {
		moments[i] = domain.MomentInput{Description: l}
	}

	entry, err := s.svc.Entries.GenerateEntry(ctx, s.userID, service.GenerateEntryInput{
		Moments:        moments,
		Kind:           stringArg(req, "kind"),
		StyleReference: stringArg(req, "style_reference"),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to generate entry: %v", err)), nil
	}
	return jsonResult(toEntryView(entry))
}

func (s *Server) listEntries(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.svc.Entries.ListEntries(ctx, s.userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
	}
	out := make([]entryView, len(entries))
	for i, e := range entries {
		out[i] = toEntryView(e)
	}
	return jsonResult(out)
}

func (s *Server) getEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(req, "id")
	if id == "" {
		return mcp.NewToolResultError("'id' parameter is required."), nil
	}
	entry, err := s.svc.Entries.GetEntry(ctx, id, s.userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error retrieving entry '%s': %v", id, err)), nil
	}
	return jsonResult(toEntryView(entry))
}

func (s *Server) deleteEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(req, "id")
	if id == "" {
		return mcp.NewToolResultError("'id' parameter is required."), nil
	}
	if err := s.svc.Entries.DeleteEntry(ctx, id, s.userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete entry '%s': %v", id, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Entry '%s' deleted.", id)), nil
}

func (s *Server) getRecommendations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(req, "id")
	if id == "" {
		return mcp.NewToolResultError("'id' parameter is required."), nil
	}
	recs, err := s.svc.Recommendations.GetRecommendations(ctx, id, s.userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get recommendations: %v", err)), nil
	}
	return jsonResult(toRecommendationsView(recs))
}

func (s *Server) suggestStyles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.svc.Styles.Suggest(ctx, splitLines(stringArg(req, "moments")))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to suggest styles: %v", err)), nil
	}
	return jsonResult(res)
}
