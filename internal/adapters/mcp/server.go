// Package mcp exposes the divination table as a Model Context Protocol
// server, so agents can cast and change hexagrams as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/cliching"
	"github.com/aretw0/cliching/pkg/divination"
	"github.com/aretw0/cliching/pkg/oracle"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// HexagramResult is the structured tool output for a hexagram.
type HexagramResult struct {
	Lines            []divination.Yao `json:"lines" jsonschema_description:"The six lines, bottom first"`
	Identity         int              `json:"identity" jsonschema_description:"Structural identity in [0,63], line one is the least significant bit"`
	Binary           string           `json:"binary" jsonschema_description:"Identity as a six-bit string, top line first"`
	MutablePositions []int            `json:"mutable_positions" jsonschema_description:"Positions of the old (changing) lines"`
	Interpretation   oracle.Entry     `json:"interpretation" jsonschema_description:"The King Wen corpus entry"`
}

// CastResult is the output of the cast_hexagram tool.
type CastResult struct {
	Question string         `json:"question,omitempty" jsonschema_description:"The question the hexagram was cast for"`
	Original HexagramResult `json:"original" jsonschema_description:"The cast hexagram"`
}

// ChangeResult is the output of the change_hexagram tool.
type ChangeResult struct {
	Changed  HexagramResult `json:"changed" jsonschema_description:"The derived hexagram"`
	Changing []int          `json:"changing_positions" jsonschema_description:"Selected positions that actually changed"`
	Skipped  []int          `json:"skipped_positions,omitempty" jsonschema_description:"Selected positions skipped because the line is young"`
}

// Server exposes the divination tools over MCP.
type Server struct {
	corpus    *oracle.Corpus
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools and resources.
func NewServer(corpus *oracle.Corpus, logger *slog.Logger) *Server {
	s := &Server{
		corpus:    corpus,
		logger:    logger,
		mcpServer: server.NewMCPServer("cliching-mcp", strings.TrimSpace(cliching.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
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
		s.logger.Info("MCP server listening (SSE)", "address", addr)
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	castTool := mcp.NewTool("cast_hexagram",
		mcp.WithDescription("Cast a new hexagram with the three-coin method. Returns the six lines, the structural identity and the King Wen interpretation."),
		mcp.WithString("question", mcp.Description("The question the consultation is about (optional)")),
		mcp.WithOutputSchema[CastResult](),
	)
	s.mcpServer.AddTool(castTool, mcp.NewStructuredToolHandler(s.handleCast))

	changeTool := mcp.NewTool("change_hexagram",
		mcp.WithDescription("Derive the changing hexagram from a previously cast one. Only old (mutable) lines among the selected positions flip; young lines are skipped."),
		mcp.WithString("lines", mcp.Required(), mcp.Description("JSON array of the six lines as returned by cast_hexagram, bottom first")),
		mcp.WithString("positions", mcp.Required(), mcp.Description("JSON array of line positions (1..6) to change")),
		mcp.WithOutputSchema[ChangeResult](),
	)
	s.mcpServer.AddTool(changeTool, mcp.NewStructuredToolHandler(s.handleChange))

	interpretTool := mcp.NewTool("get_interpretation",
		mcp.WithDescription("Look up the interpretation of a hexagram by its King Wen number (1..64)."),
		mcp.WithNumber("number", mcp.Required(), mcp.Description("King Wen number of the hexagram")),
		mcp.WithOutputSchema[oracle.Entry](),
	)
	s.mcpServer.AddTool(interpretTool, mcp.NewStructuredToolHandler(s.handleInterpretation))
}

func (s *Server) result(h *divination.Hexagram) (HexagramResult, error) {
	entry, err := s.corpus.Lookup(h.Identity())
	if err != nil {
		return HexagramResult{}, fmt.Errorf("lookup failed: %w", err)
	}

	yaos := h.Yaos()
	return HexagramResult{
		Lines:            yaos[:],
		Identity:         h.Identity(),
		Binary:           h.Binary(),
		MutablePositions: h.MutablePositions(),
		Interpretation:   entry,
	}, nil
}

func (s *Server) handleCast(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CastResult, error) {
	question, _ := args["question"].(string)

	seed, err := divination.NewSeed()
	if err != nil {
		return CastResult{}, fmt.Errorf("entropy source unavailable: %w", err)
	}

	hexagram := divination.NewCaster(seed).Cast()
	original, err := s.result(hexagram)
	if err != nil {
		return CastResult{}, err
	}

	s.logger.Info("MCP cast", "identity", hexagram.Identity())
	return CastResult{Question: question, Original: original}, nil
}

func (s *Server) handleChange(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ChangeResult, error) {
	linesStr, _ := args["lines"].(string)
	positionsStr, _ := args["positions"].(string)

	var yaos []divination.Yao
	if err := json.Unmarshal([]byte(linesStr), &yaos); err != nil {
		return ChangeResult{}, fmt.Errorf("invalid lines: %w", err)
	}

	hexagram, err := divination.New(yaos)
	if err != nil {
		return ChangeResult{}, fmt.Errorf("invalid lines: %w", err)
	}

	var positions []int
	if err := json.Unmarshal([]byte(positionsStr), &positions); err != nil {
		return ChangeResult{}, fmt.Errorf("invalid positions: %w", err)
	}

	changing, skipped, err := hexagram.ChangingPositions(positions)
	if err != nil {
		return ChangeResult{}, fmt.Errorf("invalid positions: %w", err)
	}

	changed, err := hexagram.Change(changing)
	if err != nil {
		return ChangeResult{}, fmt.Errorf("derivation failed: %w", err)
	}

	result, err := s.result(changed)
	if err != nil {
		return ChangeResult{}, err
	}

	return ChangeResult{
		Changed:  result,
		Changing: changing,
		Skipped:  skipped,
	}, nil
}

func (s *Server) handleInterpretation(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (oracle.Entry, error) {
	raw, ok := args["number"].(float64)
	if !ok {
		return oracle.Entry{}, fmt.Errorf("number is required")
	}

	number := int(raw)
	if number < 1 || number > 64 {
		return oracle.Entry{}, fmt.Errorf("number must be between 1 and 64, given %d", number)
	}

	entry, _ := s.corpus.ByNumber(number)
	return entry, nil
}

func (s *Server) registerResources() {
	// EXPOSE: cliching://corpus
	s.mcpServer.AddResource(mcp.NewResource("cliching://corpus", "King Wen Interpretation Corpus",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries := make([]oracle.Entry, 0, 64)
		for number := 1; number <= 64; number++ {
			entry, _ := s.corpus.ByNumber(number)
			entries = append(entries, entry)
		}
		jsonBytes, _ := json.Marshal(entries)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "cliching://corpus",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
