package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/grunberg"
	"github.com/aretw0/grunberg/internal/logging"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/aretw0/grunberg/pkg/persistence"
	"github.com/aretw0/grunberg/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	stateURI  = "grunberg://state"
	schemaURI = "grunberg://schema/save"
)

// Session is the game surface the MCP tools drive.
type Session interface {
	ports.GameSession
	Quests(ctx context.Context) ([]domain.Quest, error)
	StartQuestByID(ctx context.Context, id string) (*domain.GameState, error)
}

// DispatchInput is the argument of dispatch_action.
type DispatchInput struct {
	Type    string `json:"type" jsonschema_description:"Action type, e.g. ADD_ITEM or SET_FLAG"`
	Payload any    `json:"payload,omitempty" jsonschema_description:"Action payload in the wire format of the action"`
}

// StartQuestInput is the argument of start_quest.
type StartQuestInput struct {
	QuestID string `json:"quest_id" jsonschema_description:"ID of a quest from list_quests"`
}

// StateResponse wraps the game state returned by state-changing tools.
type StateResponse struct {
	State *domain.GameState `json:"state" jsonschema_description:"The current game state"`
}

// SaveResponse is the result of save_game and load_game.
type SaveResponse struct {
	OK        bool              `json:"ok" jsonschema_description:"Whether the operation succeeded"`
	Timestamp int64             `json:"timestamp,omitempty" jsonschema_description:"Save time in epoch milliseconds"`
	State     *domain.GameState `json:"state,omitempty" jsonschema_description:"The state after loading"`
}

// QuestsResponse is the result of list_quests.
type QuestsResponse struct {
	Quests []domain.Quest `json:"quests" jsonschema_description:"Quest definitions available to start"`
}

// Server wraps a game session and exposes it as an MCP Server.
type Server struct {
	session   Session
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(session Session, opts ...Option) *Server {
	s := &Server{
		session: session,
		logger:  logging.NewNop(),
		mcpServer: server.NewMCPServer("grunberg-mcp", strings.TrimSpace(grunberg.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server for embedding.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://" + addr
	if strings.HasPrefix(addr, ":") {
		baseURL = "http://localhost" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Get the current game state: character, inventory, quests, flags and position."),
		mcp.WithOutputSchema[StateResponse](),
	), s.handleGetState)

	s.mcpServer.AddTool(mcp.NewTool("dispatch_action",
		mcp.WithDescription("Apply one game action (CREATE_CHARACTER, ADD_ITEM, UPDATE_CURRENCY, START_QUEST, SET_FLAG, ...) and return the new state."),
		mcp.WithInputSchema[DispatchInput](),
		mcp.WithOutputSchema[StateResponse](),
	), s.handleDispatch)

	s.mcpServer.AddTool(mcp.NewTool("save_game",
		mcp.WithDescription("Write the current state to the save slot."),
		mcp.WithOutputSchema[SaveResponse](),
	), s.handleSave)

	s.mcpServer.AddTool(mcp.NewTool("load_game",
		mcp.WithDescription("Replace the current state with the saved one."),
		mcp.WithOutputSchema[SaveResponse](),
	), s.handleLoad)

	s.mcpServer.AddTool(mcp.NewTool("list_quests",
		mcp.WithDescription("List the quests that can be started with start_quest."),
		mcp.WithOutputSchema[QuestsResponse](),
	), s.handleListQuests)

	s.mcpServer.AddTool(mcp.NewTool("start_quest",
		mcp.WithDescription("Start a quest from the catalog by ID."),
		mcp.WithInputSchema[StartQuestInput](),
		mcp.WithOutputSchema[StateResponse](),
	), s.handleStartQuest)
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultStructuredOnly(StateResponse{State: s.session.State()}), nil
}

func (s *Server) handleDispatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input DispatchInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid dispatch_action arguments", err), nil
	}

	action, err := domain.DecodeAction(input.Type, input.Payload)
	if err != nil {
		s.logger.Warn("MCP dispatch_action: action rejected", "type", input.Type, "err", err)
		return mcp.NewToolResultErrorFromErr("action rejected", err), nil
	}
	return mcp.NewToolResultStructuredOnly(StateResponse{State: s.session.Dispatch(action)}), nil
}

func (s *Server) handleSave(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.session.SaveGame(ctx) {
		return mcp.NewToolResultError("save failed"), nil
	}
	ts, _ := s.session.SaveTimestamp(ctx)
	return mcp.NewToolResultStructuredOnly(SaveResponse{OK: true, Timestamp: ts}), nil
}

func (s *Server) handleLoad(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.session.ContinueGame(ctx) {
		return mcp.NewToolResultError("no usable save"), nil
	}
	ts, _ := s.session.SaveTimestamp(ctx)
	return mcp.NewToolResultStructuredOnly(SaveResponse{OK: true, Timestamp: ts, State: s.session.State()}), nil
}

func (s *Server) handleListQuests(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	quests, err := s.session.Quests(ctx)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("list quests failed", err), nil
	}
	return mcp.NewToolResultStructuredOnly(QuestsResponse{Quests: quests}), nil
}

func (s *Server) handleStartQuest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input StartQuestInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid start_quest arguments", err), nil
	}
	if input.QuestID == "" {
		return mcp.NewToolResultError("quest_id is required"), nil
	}

	state, err := s.session.StartQuestByID(ctx, input.QuestID)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("start quest failed", err), nil
	}
	return mcp.NewToolResultStructuredOnly(StateResponse{State: state}), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(stateURI, "Current Game State",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.session.State())
		if err != nil {
			return nil, fmt.Errorf("failed to encode state: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: stateURI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(schemaURI, "Save Document Schema",
		mcp.WithMIMEType("application/schema+json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := persistence.EnvelopeSchema()
		if err != nil {
			return nil, fmt.Errorf("failed to build schema: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: schemaURI, MIMEType: "application/schema+json", Text: string(data)},
		}, nil
	})
}
