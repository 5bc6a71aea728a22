// Package gateway exposes the ZeroBounce API as MCP tools. Each tool is a
// stateless pass-through: parameters are validated, forwarded to the client,
// and the client's response is relayed back as a JSON payload. All state
// (credits, bulk file lifecycle) lives on the ZeroBounce side.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/weiwei-tsao/zerobounce-mcp/internal/platform/zerobounce"
)

// Client is the surface of the ZeroBounce API the gateway forwards to.
type Client interface {
	Validate(ctx context.Context, email, ipAddress string) (*zerobounce.Validation, error)
	Credits(ctx context.Context) (*zerobounce.Credits, error)
	GuessFormat(ctx context.Context, domain, firstName, middleName, lastName string) (*zerobounce.EmailFormat, error)
	SendFile(ctx context.Context, opts zerobounce.SendFileOptions) (*zerobounce.FileUpload, error)
	FileStatus(ctx context.Context, fileID string) (*zerobounce.FileStatus, error)
	GetFile(ctx context.Context, fileID string) (*zerobounce.FileContents, error)
	DeleteFile(ctx context.Context, fileID string) (*zerobounce.FileDeletion, error)
}

// Gateway registers the email-validation tools and dispatches invocations
// to a single client handle built at process start.
type Gateway struct {
	client Client
	logger *slog.Logger
}

// New creates a Gateway.
func New(client Client, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{client: client, logger: logger}
}

// Register adds every tool to the MCP server.
func (g *Gateway) Register(s *server.MCPServer) {
	s.AddTool(validateEmailTool(), g.handleValidateEmail)
	s.AddTool(getCreditsTool(), g.handleGetCredits)
	s.AddTool(uploadFileTool(), g.handleUploadFile)
	s.AddTool(checkFileStatusTool(), g.handleCheckFileStatus)
	s.AddTool(getFileTool(), g.handleGetFile)
	s.AddTool(deleteFileTool(), g.handleDeleteFile)
	s.AddTool(domainSearchTool(), g.handleDomainSearch)
	s.AddTool(guessFormatTool(), g.handleGuessFormat)
}

// result marshals a client response into the tool's JSON payload.
func (g *Gateway) result(v any) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("encode result", err), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// clientError relays an external-service failure as the tool's error result
// without adding context beyond what the client produced.
func (g *Gateway) clientError(tool string, err error) (*mcp.CallToolResult, error) {
	g.logger.Error("tool call failed", "tool", tool, "error", err)
	return mcp.NewToolResultError(err.Error()), nil
}

// inputError reports a missing or malformed parameter before any external
// call is made.
func (g *Gateway) inputError(tool, msg string) (*mcp.CallToolResult, error) {
	g.logger.Warn("tool input rejected", "tool", tool, "reason", msg)
	return mcp.NewToolResultError(msg), nil
}
