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

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/registry"
	"github.com/aretw0/stepwise/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// AlgorithmsURI is the resource listing the supported algorithms.
const AlgorithmsURI = "stepwise://algorithms"

// Engine runs scenarios. *stepwise.Engine satisfies it.
type Engine interface {
	Run(ctx context.Context, sc domain.Scenario) (*domain.Trace[any], error)
	Algorithms() []registry.Entry
}

// RunArgs are the arguments of run_algorithm and start_session.
type RunArgs struct {
	Algorithm string         `json:"algorithm"`
	Input     map[string]any `json:"input"`
}

// SessionArgs identify a playback session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// UnionFindArgs are the arguments of run_union_find.
type UnionFindArgs struct {
	N     int     `json:"n"`
	Edges [][]int `json:"edges"`
}

// TrieArgs are the arguments of search_trie.
type TrieArgs struct {
	Words   []string `json:"words"`
	Queries []string `json:"queries"`
}

// TopologicalArgs are the arguments of topological_order.
type TopologicalArgs struct {
	Words []string `json:"words"`
}

// RunResponse is the structured result of run_algorithm.
type RunResponse struct {
	Algorithm string                 `json:"algorithm" jsonschema_description:"The algorithm that ran"`
	Outcome   domain.Tag             `json:"outcome" jsonschema_description:"Tag of the final snapshot"`
	Snapshots []domain.Snapshot[any] `json:"snapshots" jsonschema_description:"Every recorded snapshot in order"`
}

// Server exposes the engine and playback sessions as an MCP server.
type Server struct {
	engine    Engine
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance. Session tools are only
// registered when sessions is not nil.
func NewServer(engine Engine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		sessions:  sessions,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("stepwise-mcp", strings.TrimSpace(stepwise.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and blocks until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

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
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	algorithms := make([]string, 0, len(domain.SupportedAlgorithms()))
	for _, a := range domain.SupportedAlgorithms() {
		algorithms = append(algorithms, string(a))
	}

	// TOOL: run_algorithm
	s.mcpServer.AddTool(mcp.NewTool("run_algorithm",
		mcp.WithDescription("Run an algorithm on the given input and return every recorded snapshot."),
		mcp.WithString("algorithm", mcp.Required(), mcp.Enum(algorithms...), mcp.Description("Algorithm to run")),
		mcp.WithObject("input", mcp.Required(), mcp.Description("Algorithm input, see the stepwise://algorithms resource")),
		mcp.WithOutputSchema[RunResponse](),
	), mcp.NewStructuredToolHandler(s.handleRun))

	// TOOL: run_union_find
	s.mcpServer.AddTool(mcp.NewTool("run_union_find",
		mcp.WithDescription("Union every edge into n singleton sets and trace each find and union."),
		mcp.WithNumber("n", mcp.Required(), mcp.Min(0), mcp.Description("Number of elements")),
		mcp.WithArray("edges", mcp.Required(),
			mcp.Description("Pairs of element indices to union, e.g. [[0,1],[1,2]]"),
			mcp.Items(map[string]any{"type": "array", "items": map[string]any{"type": "integer"}}),
		),
		mcp.WithOutputSchema[RunResponse](),
	), mcp.NewStructuredToolHandler(func(ctx context.Context, request mcp.CallToolRequest, args UnionFindArgs) (RunResponse, error) {
		edges := args.Edges
		if edges == nil {
			edges = [][]int{}
		}
		return s.handleRun(ctx, request, RunArgs{
			Algorithm: string(domain.AlgorithmUnionFind),
			Input:     map[string]any{"n": args.N, "edges": edges},
		})
	}))

	// TOOL: search_trie
	s.mcpServer.AddTool(mcp.NewTool("search_trie",
		mcp.WithDescription("Add words to a trie, then search patterns where '.' matches any letter."),
		mcp.WithArray("words", mcp.Required(), mcp.WithStringItems(), mcp.Description("Words to add (letters only)")),
		mcp.WithArray("queries", mcp.Required(), mcp.WithStringItems(), mcp.Description("Patterns to search")),
		mcp.WithOutputSchema[RunResponse](),
	), mcp.NewStructuredToolHandler(func(ctx context.Context, request mcp.CallToolRequest, args TrieArgs) (RunResponse, error) {
		return s.handleRun(ctx, request, RunArgs{
			Algorithm: string(domain.AlgorithmTrie),
			Input:     map[string]any{"words": nonNil(args.Words), "queries": nonNil(args.Queries)},
		})
	}))

	// TOOL: topological_order
	s.mcpServer.AddTool(mcp.NewTool("topological_order",
		mcp.WithDescription("Derive the alphabet order implied by a sorted word list (Kahn's algorithm)."),
		mcp.WithArray("words", mcp.Required(), mcp.WithStringItems(), mcp.Description("Words in sorted order")),
		mcp.WithOutputSchema[RunResponse](),
	), mcp.NewStructuredToolHandler(func(ctx context.Context, request mcp.CallToolRequest, args TopologicalArgs) (RunResponse, error) {
		return s.handleRun(ctx, request, RunArgs{
			Algorithm: string(domain.AlgorithmTopologicalSort),
			Input:     map[string]any{"words": nonNil(args.Words)},
		})
	}))

	// TOOL: list_algorithms
	s.mcpServer.AddTool(mcp.NewTool("list_algorithms",
		mcp.WithDescription("List the supported algorithms and their input fields."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := json.Marshal(registry.Describe(s.engine.Algorithms()))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})

	if s.sessions == nil {
		return
	}

	// TOOL: start_session
	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a step-by-step playback session positioned before the first snapshot."),
		mcp.WithString("algorithm", mcp.Required(), mcp.Enum(algorithms...), mcp.Description("Algorithm to run")),
		mcp.WithObject("input", mcp.Required(), mcp.Description("Algorithm input")),
		mcp.WithOutputSchema[session.View](),
	), mcp.NewStructuredToolHandler(s.handleStartSession))

	// TOOL: advance_session
	s.mcpServer.AddTool(mcp.NewTool("advance_session",
		mcp.WithDescription("Move a session to its next snapshot. At the end of the trace nothing changes."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[session.View](),
	), mcp.NewStructuredToolHandler(s.handleAdvance))

	// TOOL: reset_session
	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Move a session back before its first snapshot."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[session.View](),
	), mcp.NewStructuredToolHandler(s.handleReset))

	// TOOL: get_session
	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Return a session and the snapshot under its cursor."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[session.View](),
	), mcp.NewStructuredToolHandler(s.handleGetSession))
}

func (a RunArgs) scenario() domain.Scenario {
	return domain.Scenario{Algorithm: domain.Algorithm(a.Algorithm), Input: a.Input}
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args RunArgs) (RunResponse, error) {
	tr, err := s.engine.Run(ctx, args.scenario())
	if err != nil {
		s.logger.Debug("MCP run rejected", "algorithm", args.Algorithm, "err", err)
		return RunResponse{}, fmt.Errorf("run failed: %w", err)
	}

	resp := RunResponse{Algorithm: tr.Algorithm(), Snapshots: tr.Snapshots()}
	if last, ok := tr.Last(); ok {
		resp.Outcome = last.Tag
	}
	return resp, nil
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest, args RunArgs) (session.View, error) {
	view, err := s.sessions.Start(ctx, args.scenario())
	if err != nil {
		return session.View{}, fmt.Errorf("start failed: %w", err)
	}
	return *view, nil
}

func (s *Server) handleAdvance(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (session.View, error) {
	return s.sessionView(s.sessions.Advance(ctx, args.SessionID))
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (session.View, error) {
	return s.sessionView(s.sessions.Reset(ctx, args.SessionID))
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (session.View, error) {
	return s.sessionView(s.sessions.Current(ctx, args.SessionID))
}

func (s *Server) sessionView(view *session.View, err error) (session.View, error) {
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			s.logger.Error("MCP session operation failed", "err", err)
		}
		return session.View{}, err
	}
	return *view, nil
}

func (s *Server) registerResources() {
	// EXPOSE: stepwise://algorithms
	s.mcpServer.AddResource(mcp.NewResource(AlgorithmsURI, "Supported Algorithms",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(registry.Describe(s.engine.Algorithms()))
		if err != nil {
			return nil, fmt.Errorf("failed to encode algorithms: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      AlgorithmsURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
