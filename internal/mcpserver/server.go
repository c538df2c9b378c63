// Package mcpserver provides the MCP (Model Context Protocol) server
// that exposes the GTD vault over stdio transport: setup and capture
// tools, gtd:// resources, and the clarify prompt library.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/merrow/gtdvault/internal/prompt"
	"github.com/merrow/gtdvault/internal/resource"
	"github.com/merrow/gtdvault/internal/schema"
	"github.com/merrow/gtdvault/internal/vault"
)

// Server wraps the MCP server with the GTD tools, resources and
// prompts. Vault paths arrive with each request, so one server handles
// any number of vaults.
type Server struct {
	mcp       *server.MCPServer
	resources *resource.Handler
	registry  *prompt.Registry
	folder    string
}

// New creates the MCP server with everything registered. folder is the
// GTD folder name inside each vault, "" for the default.
func New(folder string) (*Server, error) {
	s := &Server{
		resources: resource.NewHandler(folder),
		registry:  prompt.NewRegistry(),
		folder:    folder,
	}
	if err := prompt.RegisterCore(s.registry); err != nil {
		return nil, fmt.Errorf("mcpserver: %w", err)
	}

	s.mcp = server.NewMCPServer(
		"GTD Vault",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithInstructions(Instructions),
	)

	s.mcp.AddTool(mcp.NewTool("setup_gtd_vault",
		mcp.WithDescription("Create the GTD folder structure and template files if missing. "+
			"Only creates what does not exist and NEVER overwrites existing files, so it is "+
			"safe on vaults that already carry notes."),
		mcp.WithString("vault_path", mcp.Required(), mcp.Description("Path to the vault directory (absolute path recommended)")),
	), s.setupVault)

	s.mcp.AddTool(mcp.NewTool("capture_inbox",
		mcp.WithDescription("Append a captured thought to the vault inbox under the Quick Capture "+
			"heading, newest first. Creates the inbox from its template when missing."),
		mcp.WithString("vault_path", mcp.Required(), mcp.Description("Path to the vault directory")),
		mcp.WithString("text", mcp.Required(), mcp.Description("The thought to capture; newlines collapse to spaces, 500 characters max")),
	), s.captureInbox)

	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate("gtd://{+vault_path}/files", "GTD File Listings",
			mcp.WithTemplateDescription("List GTD files in a vault with metadata for navigation and discovery."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.readFiles,
	)
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate("gtd://{+vault_path}/files/{file_type}", "GTD Filtered File Listings",
			mcp.WithTemplateDescription("List GTD files of one type (inbox, projects, next-actions, ...) for targeted workflows."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.readFiles,
	)
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate("gtd://{+vault_path}/file/{+file_path}", "GTD Single File Reader",
			mcp.WithTemplateDescription("Read one GTD file with full content, frontmatter, tasks and links."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.readFile,
	)
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate("gtd://{+vault_path}/content", "GTD Complete Content Reader",
			mcp.WithTemplateDescription("Read every GTD file with full content for vault-wide analysis and reviews."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.readContent,
	)
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate("gtd://{+vault_path}/content/{file_type}", "GTD Filtered Content Reader",
			mcp.WithTemplateDescription("Read GTD files of one type with full content for focused analysis."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.readContent,
	)

	for _, info := range s.registry.All() {
		s.mcp.AddPrompt(promptDefinition(info), s.getPrompt)
	}

	return s, nil
}

// ServeStdio starts the MCP server on stdin/stdout with mcp-go's own
// signal handling.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// Listen serves MCP over the given streams until ctx is cancelled or
// the input closes.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Registry returns the prompt registry the server serves from.
func (s *Server) Registry() *prompt.Registry {
	return s.registry
}

func (s *Server) setupVault(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vaultPath, err := req.RequireString("vault_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := vault.Setup(vaultPath, s.folder)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonToolResult(report), nil
}

func (s *Server) captureInbox(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vaultPath, err := req.RequireString("vault_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := vault.Capture(vaultPath, s.folder, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonToolResult(report), nil
}

func (s *Server) readFiles(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	ref, err := resource.ParseFilesURI(uri)
	if err != nil {
		return jsonResource(uri, resource.NewError("", err)), nil
	}
	resp, err := s.resources.Files(ctx, ref.VaultPath, ref.FileType)
	if err != nil {
		return jsonResource(uri, resource.NewError(ref.VaultPath, err)), nil
	}
	return jsonResource(uri, resp), nil
}

func (s *Server) readFile(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	ref, err := resource.ParseFileURI(uri)
	if err != nil {
		return jsonResource(uri, resource.NewError("", err)), nil
	}
	resp, err := s.resources.File(ctx, ref.VaultPath, ref.FilePath)
	if err != nil {
		return jsonResource(uri, resource.NewError(ref.VaultPath, err)), nil
	}
	return jsonResource(uri, resp), nil
}

func (s *Server) readContent(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	ref, err := resource.ParseContentURI(uri)
	if err != nil {
		return jsonResource(uri, resource.NewError("", err)), nil
	}
	resp, err := s.resources.Content(ctx, ref.VaultPath, ref.FileType)
	if err != nil {
		return jsonResource(uri, resource.NewError(ref.VaultPath, err)), nil
	}
	return jsonResource(uri, resp), nil
}

func (s *Server) getPrompt(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments
	switch req.Params.Name {
	case "inbox_clarification":
		item, err := clarifyItem(args["inbox_item"])
		if err != nil {
			return nil, err
		}
		text := prompt.InboxClarification(item, splitList(args["existing_projects"]), splitList(args["common_contexts"]))
		return promptResult("GTD clarification for one inbox item", text), nil

	case "quick_categorize":
		item, err := clarifyItem(args["inbox_item"])
		if err != nil {
			return nil, err
		}
		return promptResult("Fast GTD categorization", prompt.QuickCategorize(item)), nil

	case "batch_process_inbox":
		items := splitList(args["inbox_items"])
		if len(items) == 0 {
			return nil, fmt.Errorf("mcpserver: inbox_items is required")
		}
		for _, item := range items {
			if err := (schema.InboxItem{Text: item}).Validate(); err != nil {
				return nil, fmt.Errorf("mcpserver: inbox_items: %w", err)
			}
		}
		maxItems := 0
		if raw := strings.TrimSpace(args["max_items"]); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("mcpserver: max_items: %w", err)
			}
			maxItems = n
		}
		text := prompt.BatchProcessInbox(items, splitList(args["existing_projects"]), maxItems)
		return promptResult("GTD batch inbox processing", text), nil
	}
	return nil, fmt.Errorf("mcpserver: unknown prompt %q", req.Params.Name)
}

// clarifyItem checks one inbox item argument against the same shape the
// clarify schemas enforce on responses.
func clarifyItem(raw string) (string, error) {
	item := strings.TrimSpace(raw)
	if err := (schema.InboxItem{Text: item}).Validate(); err != nil {
		return "", fmt.Errorf("mcpserver: inbox_item: %w", err)
	}
	return item, nil
}

func promptDefinition(info prompt.Info) mcp.Prompt {
	opts := []mcp.PromptOption{mcp.WithPromptDescription(info.Description)}
	for _, arg := range info.Arguments {
		argOpts := []mcp.ArgumentOption{mcp.ArgumentDescription(arg.Description)}
		if arg.Required {
			argOpts = append(argOpts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(arg.Name, argOpts...))
	}
	return mcp.NewPrompt(info.Name, opts...)
}

func promptResult(description, text string) *mcp.GetPromptResult {
	return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
	})
}

// splitList turns a newline- or comma-separated argument into a clean
// slice. Prompt arguments arrive as plain strings over MCP.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func jsonToolResult(v any) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

func jsonResource(uri string, v any) []mcp.ResourceContents {
	out, _ := json.MarshalIndent(v, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(out),
		},
	}
}
