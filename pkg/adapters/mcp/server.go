package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/bankocr"
	"github.com/aretw0/bankocr/internal/logging"
	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// BatchesURI is the resource listing stored batch IDs.
const BatchesURI = "bankocr://batches"

// Engine defines the interface required by the MCP server to decode entries.
type Engine interface {
	DecodeLine(line domain.DisplayLine) domain.Entry
	DecodeReader(ctx context.Context, source string, r io.Reader) (domain.Batch, error)
	Batch(ctx context.Context, id string) (domain.Batch, error)
	Batches(ctx context.Context) ([]string, error)
}

// Server wraps the bankocr Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the MCP Server.
type Option func(*Server)

// WithLogger sets the logger for transport and tool failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("bankocr-mcp", strings.TrimSpace(bankocr.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
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
	// TOOL: decode_entry
	s.mcpServer.AddTool(mcp.NewTool("decode_entry",
		mcp.WithDescription("Decode one scanned entry (three rows of 27 characters) into an account number."),
		mcp.WithString("rows", mcp.Required(), mcp.Description("The three rows of the entry, separated by newlines")),
	), s.handleDecodeEntry)

	// TOOL: decode_file
	s.mcpServer.AddTool(mcp.NewTool("decode_file",
		mcp.WithDescription("Decode a whole scanner file and store the resulting batch."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Full scanner output: entries of three rows, separated by blank lines")),
		mcp.WithString("source", mcp.Description("Name recorded as the batch source (optional)")),
	), s.handleDecodeFile)

	// TOOL: get_batch
	s.mcpServer.AddTool(mcp.NewTool("get_batch",
		mcp.WithDescription("Fetch a previously decoded batch by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Batch ID")),
	), s.handleGetBatch)
}

func (s *Server) handleDecodeEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := request.RequireString("rows")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	line := domain.ParseDisplayLine(rows)
	return jsonResult(s.engine.DecodeLine(line))
}

func (s *Server) handleDecodeFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	source := request.GetString("source", "mcp")

	batch, err := s.engine.DecodeReader(ctx, source, strings.NewReader(text))
	if err != nil {
		s.logger.Error("MCP DecodeFile failed", "error", err, "source", source)
		return mcp.NewToolResultError(fmt.Sprintf("decode failed: %v", err)), nil
	}
	return jsonResult(batch)
}

func (s *Server) handleGetBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	batch, err := s.engine.Batch(ctx, id)
	if errors.Is(err, domain.ErrBatchNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("batch %q not found", id)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	return jsonResult(batch)
}

func (s *Server) registerResources() {
	// EXPOSE: bankocr://batches
	s.mcpServer.AddResource(mcp.NewResource(BatchesURI, "Stored batch IDs",
		mcp.WithMIMEType("application/json"),
	), s.handleListBatches)
}

func (s *Server) handleListBatches(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.engine.Batches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	jsonBytes, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode batch ids: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      BatchesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
