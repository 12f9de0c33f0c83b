// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Jera tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/jera/internal/document"
	"github.com/starford/jera/internal/scaffold"
	"github.com/starford/jera/internal/search"
	"github.com/starford/jera/internal/site"
	"github.com/starford/jera/internal/workspace"
)

// Server wraps the MCP server with Jera tools.
type Server struct {
	mcp       *server.MCPServer
	ws        *workspace.Workspace
	db        *search.DB
	builder   *site.Builder
	outputDir string
}

// New creates a new MCP server with all Jera tools registered.
func New(ws *workspace.Workspace, db *search.DB, builder *site.Builder, outputDir string) *Server {
	s := &Server{ws: ws, db: db, builder: builder, outputDir: outputDir}

	s.mcp = server.NewMCPServer(
		"Jera",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_documents",
		mcp.WithDescription("Full-text search through document titles, bodies, and tags."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchDocuments)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read the full source of a document, front matter included."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Workspace-relative path (e.g. notes/my-note.jera)")),
	), s.readDocument)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List documents, newest first, optionally filtered by kind or tag."),
		mcp.WithString("kind", mcp.Description("Optional kind filter: note or experiment")),
		mcp.WithString("tag", mcp.Description("Optional tag filter")),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("create_document",
		mcp.WithDescription("Create a new document from the kind's template and return its path. "+
			"The scaffolded file follows the canonical Jera format; read the contract first via "+
			"the get_format_contract tool or the jera://document-format resource before editing it."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Human-readable title; the slug is derived from it")),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Document kind: note or experiment")),
	), s.createDocument)

	s.mcp.AddTool(mcp.NewTool("build_site",
		mcp.WithDescription("Render the whole workspace to the static site output directory."),
	), s.buildSite)

	s.mcp.AddTool(mcp.NewTool("get_format_contract",
		mcp.WithDescription("Returns the canonical Jera document format contract. "+
			"Call this before writing document content to ensure correct structure."),
	), s.getFormatContract)

	// Resource: document format contract.
	s.mcp.AddResource(
		mcp.NewResource("jera://document-format", "Document Format Contract",
			mcp.WithResourceDescription("Canonical .jera document format that all documents must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.ws.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := ""
	if k, err := req.RequireString("kind"); err == nil {
		kind = k
	}
	if kind != "" && kind != document.KindNote && kind != document.KindExperiment {
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q: want note or experiment", kind)), nil
	}
	tag := ""
	if tg, err := req.RequireString("tag"); err == nil {
		tag = tg
	}

	rows, total, err := s.db.ListDocuments(kind, tag, 0, 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(map[string]any{
		"documents": rows,
		"total":     total,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rel, err := scaffold.CreateDocument(s.ws, title, kind)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Bring the index up to date so the new document is searchable right away.
	if err := search.Sync(s.db, s.ws, slog.Default()); err != nil {
		slog.Warn("mcp: index sync after create failed", slog.String("error", err.Error()))
	}

	return mcp.NewToolResultText(fmt.Sprintf("created: %s", rel)), nil
}

func (s *Server) buildSite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.builder.Build(s.outputDir); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("site built to: %s", s.outputDir)), nil
}

func (s *Server) getFormatContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DocumentFormatContract), nil
}

func (s *Server) readFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "jera://document-format",
			MIMEType: "text/markdown",
			Text:     DocumentFormatContract,
		},
	}, nil
}
