package rpc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"cdb/internal/compdb"
	"cdb/internal/logging"
)

// ResolverFactory builds a fresh resolver for one request. Each request gets
// its own resolver so nothing is shared across queries; both database
// representations are rebuilt from disk every time.
type ResolverFactory func() (*compdb.Resolver, error)

// ToolHandler executes one tool call.
type ToolHandler func(args json.RawMessage) (interface{}, error)

// ToolDefinition describes a tool for tools/list.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Server serves compile-option queries over line-delimited JSON-RPC on
// stdin/stdout. Requests are handled synchronously, one at a time.
type Server struct {
	stdin   io.Reader
	stdout  io.Writer
	scanner *bufio.Scanner
	logger  *logging.Logger
	version string
	session string // correlation id carried in log fields

	newResolver ResolverFactory
	tools       map[string]ToolHandler
	defs        []ToolDefinition
}

// NewServer creates a server reading stdin and writing stdout.
func NewServer(version string, newResolver ResolverFactory, logger *logging.Logger) *Server {
	s := &Server{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		logger:      logger,
		version:     version,
		session:     uuid.NewString(),
		newResolver: newResolver,
		tools:       make(map[string]ToolHandler),
	}
	s.registerTools()
	return s
}

// NewServerWithStreams creates a server over explicit streams, for tests.
func NewServerWithStreams(version string, newResolver ResolverFactory, logger *logging.Logger, stdin io.Reader, stdout io.Writer) *Server {
	s := NewServer(version, newResolver, logger)
	s.stdin = stdin
	s.stdout = stdout
	return s
}

// Run processes messages until stdin closes.
func (s *Server) Run() error {
	s.logger.Info("Server started", map[string]interface{}{
		"session": s.session,
		"version": s.version,
	})

	for {
		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Info("Client disconnected", map[string]interface{}{
					"session": s.session,
				})
				return nil
			}
			var rpcErr *Error
			if errors.As(err, &rpcErr) {
				if writeErr := s.writeMessage(NewErrorMessage(nil, rpcErr.Code, rpcErr.Message, nil)); writeErr != nil {
					return writeErr
				}
				continue
			}
			return err
		}

		response := s.handleMessage(msg)
		if response == nil {
			continue
		}
		if err := s.writeMessage(response); err != nil {
			return err
		}
	}
}

// handleMessage processes one incoming message and returns a response, or
// nil for notifications.
func (s *Server) handleMessage(msg *Message) *Message {
	if msg.IsNotification() {
		s.logger.Debug("Notification ignored", map[string]interface{}{
			"session": s.session,
			"method":  msg.Method,
		})
		return nil
	}
	if !msg.IsRequest() {
		return NewErrorMessage(msg.Id, InvalidRequest, "Invalid message: not a request or notification", nil)
	}

	s.logger.Debug("Handling request", map[string]interface{}{
		"session": s.session,
		"method":  msg.Method,
		"id":      msg.Id,
	})

	switch msg.Method {
	case "initialize":
		return NewResultMessage(msg.Id, map[string]interface{}{
			"serverInfo": map[string]string{
				"name":    "cdb",
				"version": s.version,
			},
		})
	case "tools/list":
		return NewResultMessage(msg.Id, map[string]interface{}{
			"tools": s.defs,
		})
	case "tools/call":
		return s.handleToolCall(msg)
	default:
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("Method not found: %s", msg.Method), nil)
	}
}

// toolCallParams is the expected shape of tools/call params.
type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (s *Server) handleToolCall(msg *Message) *Message {
	raw, err := json.Marshal(msg.Params)
	if err != nil {
		return NewErrorMessage(msg.Id, InvalidParams, "Invalid params", nil)
	}
	var params toolCallParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return NewErrorMessage(msg.Id, InvalidParams, "Invalid params", nil)
	}

	handler, ok := s.tools[params.Name]
	if !ok {
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("Tool not found: %s", params.Name), nil)
	}

	result, err := handler(params.Arguments)
	if err != nil {
		s.logger.Error("Tool call failed", map[string]interface{}{
			"session": s.session,
			"tool":    params.Name,
			"error":   err.Error(),
		})
		return NewErrorMessage(msg.Id, InternalError, err.Error(), nil)
	}

	return NewResultMessage(msg.Id, result)
}

// registerTool adds a tool to the registry.
func (s *Server) registerTool(def ToolDefinition, handler ToolHandler) {
	s.tools[def.Name] = handler
	s.defs = append(s.defs, def)
}
