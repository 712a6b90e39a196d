// Package mcp is the stdio transport: newline-delimited JSON-RPC 2.0
// requests on stdin, responses on stdout. All logging goes to stderr so the
// protocol stream stays clean.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/mayactl/internal/tools"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "mayactl"
	serverVersion   = "0.1.0"
)

type Server struct {
	disp   *tools.Dispatcher
	reader *bufio.Reader
	writer io.Writer
}

func NewServer(disp *tools.Dispatcher, in io.Reader, out io.Writer) *Server {
	return &Server{
		disp:   disp,
		reader: bufio.NewReader(in),
		writer: out,
	}
}

// Run serves requests until EOF or a read error. Responses are written one
// per line; requests are handled sequentially, which matches the one-at-a-
// time command port underneath.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Str("transport", "stdio").Msg("mcp_server_started")

	for {
		line, err := s.reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) != "" {
				s.handleLine(ctx, line)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("mcp: read: %w", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.handleLine(ctx, line)
	}
}

func (s *Server) handleLine(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	var req JSONRPCRequest
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		s.sendError(nil, codeParseError, "Parse error", err.Error())
		return
	}
	s.handleRequest(ctx, &req)
}

func (s *Server) handleRequest(ctx context.Context, req *JSONRPCRequest) {
	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "notifications/initialized":
		// Client is ready; notifications get no response.
	case "ping":
		s.sendResult(req.ID, map[string]any{})
	case "tools/list":
		s.handleToolsList(req)
	case "tools/call":
		s.handleToolsCall(ctx, req)
	default:
		s.sendError(req.ID, codeMethodNotFound, "Method not found", req.Method)
	}
}

func (s *Server) handleInitialize(req *JSONRPCRequest) {
	s.sendResult(req.ID, map[string]any{
		"protocolVersion": protocolVersion,
		"serverInfo": map[string]string{
			"name":    serverName,
			"version": serverVersion,
		},
		"capabilities": ServerCapabilities{
			Tools: &ToolsCapability{ListChanged: false},
		},
	})
}

func (s *Server) handleToolsList(req *JSONRPCRequest) {
	specs := s.disp.Registry().List()
	list := make([]Tool, 0, len(specs))
	for _, spec := range specs {
		list = append(list, Tool{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: toolSchema(spec),
		})
	}
	s.sendResult(req.ID, map[string]any{"tools": list})
}

func (s *Server) handleToolsCall(ctx context.Context, req *JSONRPCRequest) {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.sendError(req.ID, codeInvalidParams, "Invalid params", err.Error())
		return
	}
	if params.Name == "" {
		s.sendError(req.ID, codeInvalidParams, "Invalid params", "tool name is required")
		return
	}

	res := s.disp.Invoke(ctx, params.Name, params.Arguments)
	if !res.OK {
		if res.Err.Kind == tools.ErrorUnknownTool {
			s.sendError(req.ID, codeInvalidParams, "Unknown tool", params.Name)
			return
		}
		s.sendResult(req.ID, map[string]any{
			"content": []ContentItem{{Type: "text", Text: res.Err.Error()}},
			"isError": true,
		})
		return
	}

	s.sendResult(req.ID, map[string]any{
		"content": []ContentItem{contentFor(res.Value)},
	})
}

// contentFor picks the content shape for a decoded value. Images keep their
// base64 payload; everything else flattens into the text slot.
func contentFor(value any) ContentItem {
	if img, ok := value.(tools.Image); ok {
		return ContentItem{Type: "image", MimeType: img.MimeType, Data: img.Data}
	}
	return ContentItem{Type: "text", Text: renderValue(value)}
}

// renderValue flattens a decoded tool result into the text content slot.
// Strings pass through; everything else is re-serialized as JSON.
func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	}
}

func (s *Server) sendResult(id any, result any) {
	s.send(JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) sendError(id any, code int, message string, data any) {
	s.send(JSONRPCResponse{JSONRPC: "2.0", ID: id, Error: &RPCError{Code: code, Message: message, Data: data}})
}

func (s *Server) send(resp JSONRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("mcp_marshal_response")
		return
	}
	fmt.Fprintf(s.writer, "%s\n", data)
}
