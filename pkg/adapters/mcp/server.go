package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/pathfinder"
	"github.com/aretw0/pathfinder/pkg/clock"
	"github.com/aretw0/pathfinder/pkg/digest"
	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/aretw0/pathfinder/pkg/paths"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PathsURI identifies the search configuration resource.
const PathsURI = "pathfinder://paths"

// Finder defines the resolver operations exposed as MCP tools.
type Finder interface {
	Find(ctx context.Context, file string, searchLocalPath bool) (string, error)
	FindPath(ctx context.Context, file string) (string, error)
	Fingerprint(ctx context.Context, file string) (domain.Fingerprint, error)
	FilePaths() []string
	SearchPathSuffixes() []string
}

// FindArgs are the arguments of find_file and find_file_path.
type FindArgs struct {
	File  string `json:"file"`
	Local *bool  `json:"local,omitempty"`
}

// FindResponse aligns with the HTTP Resolution schema.
type FindResponse struct {
	File string `json:"file" jsonschema_description:"The requested file"`
	Path string `json:"path" jsonschema_description:"The resolved absolute path"`
}

// SHA1Args are the arguments of the sha1 tool.
type SHA1Args struct {
	Text string `json:"text"`
	File string `json:"file"`
}

// SHA1Response carries a digest and the number of bytes hashed.
type SHA1Response struct {
	Digest string `json:"digest" jsonschema_description:"Lowercase hexadecimal SHA1 digest"`
	Size   int64  `json:"size" jsonschema_description:"Number of bytes hashed"`
}

// PathsResponse is the body of the pathfinder://paths resource.
type PathsResponse struct {
	FilePaths []string `json:"file_paths"`
	Suffixes  []string `json:"suffixes"`
	Delimiter string   `json:"delimiter"`
}

// Server wraps a Finder and exposes it as an MCP Server.
type Server struct {
	finder    Finder
	clock     clock.Clock
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithClock replaces the wall clock read by system_time_iso.
func WithClock(c clock.Clock) Option {
	return func(s *Server) {
		s.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(finder Finder, opts ...Option) *Server {
	s := &Server{
		finder:    finder,
		clock:     clock.System{},
		mcpServer: server.NewMCPServer("pathfinder-mcp", strings.TrimSpace(pathfinder.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and blocks until
// ctx is done or the listener fails.
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
	// TOOL: find_file
	findTool := mcp.NewTool("find_file",
		mcp.WithDescription("Resolve a file name against the configured search paths and return its absolute path."),
		mcp.WithString("file", mcp.Required(), mcp.Description("File name, relative path, absolute path or file:// URI")),
		mcp.WithBoolean("local", mcp.Description("Search the working directory first (default true)")),
		mcp.WithOutputSchema[FindResponse](),
	)
	s.mcpServer.AddTool(findTool, mcp.NewStructuredToolHandler(s.handleFindFile))

	// TOOL: find_file_path
	pathTool := mcp.NewTool("find_file_path",
		mcp.WithDescription("Return the directory that contains the resolved file."),
		mcp.WithString("file", mcp.Required(), mcp.Description("File name to resolve")),
		mcp.WithOutputSchema[FindResponse](),
	)
	s.mcpServer.AddTool(pathTool, mcp.NewStructuredToolHandler(s.handleFindFilePath))

	// TOOL: sha1
	sha1Tool := mcp.NewTool("sha1",
		mcp.WithDescription("Compute the SHA1 digest of a string, or of a file when file is given."),
		mcp.WithString("text", mcp.Description("Text to hash")),
		mcp.WithString("file", mcp.Description("File to resolve and hash instead of text")),
		mcp.WithOutputSchema[SHA1Response](),
	)
	s.mcpServer.AddTool(sha1Tool, mcp.NewStructuredToolHandler(s.handleSHA1))

	// TOOL: fingerprint
	fpTool := mcp.NewTool("fingerprint",
		mcp.WithDescription("Resolve a file and return its content fingerprint."),
		mcp.WithString("file", mcp.Required(), mcp.Description("File name to resolve")),
		mcp.WithOutputSchema[domain.Fingerprint](),
	)
	s.mcpServer.AddTool(fpTool, mcp.NewStructuredToolHandler(s.handleFingerprint))

	// TOOL: system_time_iso
	s.mcpServer.AddTool(mcp.NewTool("system_time_iso",
		mcp.WithDescription("Current local wall time as YYYY-MM-DDTHH:MM:SS.NNNNNNNNN."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(clock.FormatISO(s.clock.Now())), nil
	})
}

func (s *Server) handleFindFile(ctx context.Context, request mcp.CallToolRequest, args FindArgs) (FindResponse, error) {
	local := true
	if args.Local != nil {
		local = *args.Local
	}
	p, err := s.finder.Find(ctx, args.File, local)
	if err != nil {
		return FindResponse{}, fmt.Errorf("find failed: %w", err)
	}
	return FindResponse{File: args.File, Path: p}, nil
}

func (s *Server) handleFindFilePath(ctx context.Context, request mcp.CallToolRequest, args FindArgs) (FindResponse, error) {
	p, err := s.finder.FindPath(ctx, args.File)
	if err != nil {
		return FindResponse{}, fmt.Errorf("find path failed: %w", err)
	}
	return FindResponse{File: args.File, Path: p}, nil
}

func (s *Server) handleSHA1(ctx context.Context, request mcp.CallToolRequest, args SHA1Args) (SHA1Response, error) {
	if args.File == "" {
		return SHA1Response{Digest: digest.SHA1(args.Text), Size: int64(len(args.Text))}, nil
	}
	fp, err := s.finder.Fingerprint(ctx, args.File)
	if err != nil {
		return SHA1Response{}, fmt.Errorf("hash failed: %w", err)
	}
	return SHA1Response{Digest: fp.Digest, Size: fp.Size}, nil
}

func (s *Server) handleFingerprint(ctx context.Context, request mcp.CallToolRequest, args FindArgs) (domain.Fingerprint, error) {
	fp, err := s.finder.Fingerprint(ctx, args.File)
	if err != nil {
		return domain.Fingerprint{}, fmt.Errorf("fingerprint failed: %w", err)
	}
	return fp, nil
}

func (s *Server) searchPaths() PathsResponse {
	resp := PathsResponse{
		FilePaths: s.finder.FilePaths(),
		Suffixes:  s.finder.SearchPathSuffixes(),
		Delimiter: paths.PathDelimiter(),
	}
	if resp.FilePaths == nil {
		resp.FilePaths = []string{}
	}
	if resp.Suffixes == nil {
		resp.Suffixes = []string{}
	}
	return resp
}

func (s *Server) registerResources() {
	// EXPOSE: pathfinder://paths
	s.mcpServer.AddResource(mcp.NewResource(PathsURI, "Search Paths",
		mcp.WithResourceDescription("Search paths and suffixes consulted by find_file"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.searchPaths())
		if err != nil {
			return nil, fmt.Errorf("failed to encode search paths: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      PathsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
