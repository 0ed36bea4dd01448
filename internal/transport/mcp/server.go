package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/internal/service/chat"
	"github.com/sandevgo/pastcast/internal/service/climate"
	"github.com/sandevgo/pastcast/pkg/log"
)

type ChatService interface {
	Handle(ctx context.Context, sessionID, text string) chat.Exchange
}

type Estimator interface {
	Estimate(req climate.Request) (*climate.Report, error)
}

type AskArgs struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

type AskResult struct {
	Reply     string `json:"reply" jsonschema_description:"Assistant reply"`
	Intent    string `json:"intent" jsonschema_description:"Route that produced the reply"`
	SessionID string `json:"session_id" jsonschema_description:"Session the turn was stored under"`
}

type ProbabilityArgs struct {
	Latitude          *climate.Coord `json:"latitude,omitempty"`
	Longitude         *climate.Coord `json:"longitude,omitempty"`
	CityName          string         `json:"city_name,omitempty"`
	Name              string         `json:"name,omitempty"`
	StartDate         string         `json:"start_date"`
	EndDate           string         `json:"end_date,omitempty"`
	IncludeAIInsights bool           `json:"include_ai_insights,omitempty"`
	DatasetMode       string         `json:"dataset_mode,omitempty"`
}

// Server exposes the chat pipeline and the weather estimator as MCP tools.
type Server struct {
	chat      ChatService
	climate   Estimator
	sessionID string
	mcpServer *server.MCPServer
}

func NewServer(chatSvc ChatService, est Estimator) *Server {
	s := &Server{
		chat:      chatSvc,
		climate:   est,
		sessionID: "mcp-" + uuid.NewString(),
		mcpServer: server.NewMCPServer("pastcast", core.AppVersion),
	}
	s.registerTools()
	return s
}

// ServeStdio serves on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("session", s.sessionID).Msg("serving mcp over stdio")
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	askTool := mcp.NewTool("ask",
		mcp.WithDescription("Ask the PastCast assistant. Handles translation, weather, people, facts and general chat."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The user message")),
		mcp.WithString("session_id", mcp.Description("Conversation id (optional, defaults to this server's session)")),
		mcp.WithOutputSchema[AskResult](),
	)
	s.mcpServer.AddTool(askTool, mcp.NewStructuredToolHandler(s.handleAsk))

	probTool := mcp.NewTool("weather_probability",
		mcp.WithDescription("Estimate seasonal weather probabilities for a location and date range."),
		mcp.WithNumber("latitude", mcp.Description("Latitude in degrees")),
		mcp.WithNumber("longitude", mcp.Description("Longitude in degrees")),
		mcp.WithString("city_name", mcp.Description("Display name for the coordinates")),
		mcp.WithString("name", mcp.Description("Supported Indian city name, used when coordinates are missing")),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Start date, YYYY-MM-DD")),
		mcp.WithString("end_date", mcp.Description("End date, YYYY-MM-DD")),
		mcp.WithBoolean("include_ai_insights", mcp.Description("Add a plain-language summary")),
		mcp.WithString("dataset_mode", mcp.Description("Dataset label, defaults to Global")),
		mcp.WithOutputSchema[climate.Report](),
	)
	s.mcpServer.AddTool(probTool, mcp.NewStructuredToolHandler(s.handleProbability))
}

func (s *Server) handleAsk(ctx context.Context, _ mcp.CallToolRequest, args AskArgs) (AskResult, error) {
	question := strings.TrimSpace(args.Question)
	if question == "" {
		return AskResult{}, errors.New("question is required")
	}

	sessionID := args.SessionID
	if sessionID == "" {
		sessionID = s.sessionID
	}

	ex := s.chat.Handle(ctx, sessionID, question)
	return AskResult{Reply: ex.Reply, Intent: string(ex.Intent), SessionID: sessionID}, nil
}

func (s *Server) handleProbability(_ context.Context, _ mcp.CallToolRequest, args ProbabilityArgs) (climate.Report, error) {
	req := climate.Request{
		Location: &climate.Location{
			Latitude:  args.Latitude,
			Longitude: args.Longitude,
			CityName:  args.CityName,
			Name:      args.Name,
		},
		DateRange:         &climate.DateRange{StartDate: args.StartDate, EndDate: args.EndDate},
		IncludeAIInsights: args.IncludeAIInsights,
		DatasetMode:       args.DatasetMode,
	}

	report, err := s.climate.Estimate(req)
	if err != nil {
		return climate.Report{}, fmt.Errorf("weather probability: %w", err)
	}
	return *report, nil
}
