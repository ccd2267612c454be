package main

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	polycalc "github.com/mike006322/PolynomialCalculator-sub000"
)

// newMCPServer registers every polycalc tool with an MCP server.
func newMCPServer(engine *polycalc.Engine) *server.MCPServer {
	s := server.NewMCPServer(
		"polycalc",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, spec := range polycalc.Tools() {
		s.AddTool(toolDefinition(spec), toolHandler(engine, spec.Name))
	}
	return s
}

func toolDefinition(spec polycalc.ToolSpec) mcp.Tool {
	required := make(map[string]bool, len(spec.Required))
	for _, r := range spec.Required {
		required[r] = true
	}
	opts := []mcp.ToolOption{mcp.WithDescription(spec.Description)}
	for name, typ := range spec.Params {
		var popts []mcp.PropertyOption
		if required[name] {
			popts = append(popts, mcp.Required())
		}
		switch typ {
		case "array":
			popts = append(popts, mcp.Items(map[string]any{"type": "string"}))
			opts = append(opts, mcp.WithArray(name, popts...))
		case "integer", "number":
			opts = append(opts, mcp.WithNumber(name, popts...))
		default:
			opts = append(opts, mcp.WithString(name, popts...))
		}
	}
	return mcp.NewTool(spec.Name, opts...)
}

func toolHandler(engine *polycalc.Engine, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rep := engine.HandleToolCall(polycalc.ToolRequest{Tool: name, Params: req.GetArguments()})
		b, err := json.Marshal(rep)
		if err != nil {
			return nil, err
		}
		if rep.Status == polycalc.StatusError {
			return mcp.NewToolResultError(string(b)), nil
		}
		return mcp.NewToolResultText(string(b)), nil
	}
}

func serveStdio(engine *polycalc.Engine) error {
	return server.ServeStdio(newMCPServer(engine))
}
