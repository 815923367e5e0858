// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/teradata-labs/medsupply/pkg/mcp/protocol"
	"github.com/teradata-labs/medsupply/pkg/mcp/transport"
	"go.uber.org/zap"
)

// MethodHandler processes one JSON-RPC method call. id is the raw request
// id (nil for notifications); params is the raw params payload.
type MethodHandler func(ctx context.Context, id json.RawMessage, params json.RawMessage) (interface{}, error)

// MCPServer dispatches JSON-RPC method calls to registered handlers and
// pushes server-initiated notifications through the same transport.
type MCPServer struct {
	info               protocol.Implementation
	capabilities       protocol.ServerCapabilities
	handlers           map[string]MethodHandler
	logger             *zap.Logger
	mu                 sync.RWMutex
	clientInfo         *protocol.Implementation     // set by initialize
	clientCapabilities *protocol.ClientCapabilities // set by initialize
	notifyCh           chan []byte                  // outgoing notifications, drained by Serve
}

// Option configures an MCPServer.
type Option func(*MCPServer)

// WithToolProvider registers the tools/list and tools/call handlers and
// advertises the tools capability.
func WithToolProvider(p ToolProvider) Option {
	return func(s *MCPServer) {
		s.capabilities.Tools = &protocol.ToolsCapability{}
		s.RegisterHandler("tools/list", newToolsListHandler(p))
		s.RegisterHandler("tools/call", newToolsCallHandler(p))
	}
}

// WithResourceProvider registers the resources/list and resources/read
// handlers and advertises the resources capability with ListChanged set,
// since the server pushes resource change notifications.
func WithResourceProvider(p ResourceProvider) Option {
	return func(s *MCPServer) {
		s.capabilities.Resources = &protocol.ResourcesCapability{
			ListChanged: true,
		}
		s.RegisterHandler("resources/list", newResourcesListHandler(p))
		s.RegisterHandler("resources/read", newResourcesReadHandler(p))
	}
}

// NewMCPServer creates a server with the given identity and options. The
// initialize, initialized, and ping handlers are always present.
func NewMCPServer(name, version string, logger *zap.Logger, opts ...Option) *MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &MCPServer{
		info: protocol.Implementation{
			Name:    name,
			Version: version,
		},
		handlers: make(map[string]MethodHandler),
		logger:   logger,
		notifyCh: make(chan []byte, 16),
	}

	s.RegisterHandler("initialize", s.handleInitialize)
	s.RegisterHandler("notifications/initialized", s.handleNotificationsInitialized)
	s.RegisterHandler("ping", s.handlePing)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RegisterHandler registers a handler for a JSON-RPC method.
func (s *MCPServer) RegisterHandler(method string, handler MethodHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = handler
}

// HandleMessage processes one JSON-RPC message and returns the response
// bytes. Notifications (no id) produce nil: per JSON-RPC 2.0 they get no
// response, not even for errors or unknown methods.
func (s *MCPServer) HandleMessage(ctx context.Context, msg []byte) ([]byte, error) {
	var req protocol.Request
	if err := json.Unmarshal(msg, &req); err != nil {
		return marshalResponse(nil, nil, protocol.NewError(protocol.ParseError, "invalid JSON", nil))
	}

	if err := req.Validate(); err != nil {
		return marshalResponse(nil, nil, protocol.NewError(protocol.InvalidRequest, err.Error(), nil))
	}

	s.logger.Debug("handling request", zap.String("method", req.Method), zap.Any("id", req.ID))
	start := time.Now()

	s.mu.RLock()
	handler, ok := s.handlers[req.Method]
	s.mu.RUnlock()

	if !ok {
		if req.ID == nil {
			return nil, nil
		}
		return marshalResponse(req.ID, nil, protocol.NewError(protocol.MethodNotFound, fmt.Sprintf("method not found: %s", req.Method), nil))
	}

	var rawID json.RawMessage
	if req.ID != nil {
		idBytes, err := json.Marshal(req.ID)
		if err != nil {
			return marshalResponse(nil, nil, protocol.NewError(protocol.InternalError, "failed to marshal request ID", nil))
		}
		rawID = idBytes
	}

	result, err := handler(ctx, rawID, req.Params)
	duration := time.Since(start)

	if err != nil {
		s.logger.Warn("handler error",
			zap.String("method", req.Method),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		if req.ID == nil {
			return nil, nil
		}
		// A *protocol.Error from the handler keeps its code on the wire.
		var rpcErr *protocol.Error
		if errors.As(err, &rpcErr) {
			return marshalResponse(req.ID, nil, rpcErr)
		}
		return marshalResponse(req.ID, nil, protocol.NewError(protocol.InternalError, err.Error(), nil))
	}

	s.logger.Debug("request handled",
		zap.String("method", req.Method),
		zap.Duration("duration", duration),
	)

	if req.ID == nil {
		return nil, nil
	}

	return marshalResponse(req.ID, result, nil)
}

// Serve runs the read loop on the given transport until the context is
// cancelled or the transport fails. Receiving happens in its own
// goroutine so the loop can also drain the notification channel.
func (s *MCPServer) Serve(ctx context.Context, t transport.Transport) error {
	s.logger.Info("MCP server starting", zap.String("name", s.info.Name), zap.String("version", s.info.Version))

	msgCh := make(chan []byte)
	errCh := make(chan error, 1)
	go func() {
		for {
			msg, err := t.Receive(ctx)
			if err != nil {
				errCh <- err
				return
			}
			msgCh <- msg
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("MCP server stopping (context cancelled)")
			return ctx.Err()

		case err := <-errCh:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Error("receive error", zap.Error(err))
			return fmt.Errorf("receive error: %w", err)

		case msg := <-msgCh:
			resp, err := s.HandleMessage(ctx, msg)
			if err != nil {
				s.logger.Error("handle error", zap.Error(err))
				continue
			}
			if resp == nil {
				continue
			}
			if err := t.Send(ctx, resp); err != nil {
				s.logger.Error("send error", zap.Error(err))
				return fmt.Errorf("send error: %w", err)
			}

		case notif := <-s.notifyCh:
			if err := t.Send(ctx, notif); err != nil {
				s.logger.Error("notification send error", zap.Error(err))
				return fmt.Errorf("notification send error: %w", err)
			}
		}
	}
}

// handleInitialize answers the handshake with the server's identity and
// capabilities. A protocol version mismatch is logged, not rejected, and
// the client's identity is stored for observability.
func (s *MCPServer) handleInitialize(_ context.Context, _ json.RawMessage, params json.RawMessage) (interface{}, error) {
	initParams, err := decodeParams[protocol.InitializeParams](params)
	if err != nil {
		return nil, err
	}

	if initParams.ProtocolVersion != "" && initParams.ProtocolVersion != protocol.ProtocolVersion {
		s.logger.Warn("client protocol version mismatch",
			zap.String("client_version", initParams.ProtocolVersion),
			zap.String("server_version", protocol.ProtocolVersion),
		)
	}

	s.mu.Lock()
	caps := initParams.Capabilities
	s.clientCapabilities = &caps
	if initParams.ClientInfo.Name != "" {
		s.clientInfo = &initParams.ClientInfo
	}
	s.mu.Unlock()

	if initParams.ClientInfo.Name != "" {
		s.logger.Info("client connected",
			zap.String("client_name", initParams.ClientInfo.Name),
			zap.String("client_version", initParams.ClientInfo.Version),
		)
	}

	return protocol.InitializeResult{
		ProtocolVersion: protocol.ProtocolVersion,
		Capabilities:    s.capabilities,
		ServerInfo:      s.info,
	}, nil
}

// handleNotificationsInitialized acknowledges the client's initialized
// notification. Nothing to do.
func (s *MCPServer) handleNotificationsInitialized(_ context.Context, _ json.RawMessage, _ json.RawMessage) (interface{}, error) {
	s.logger.Debug("client initialized")
	return nil, nil
}

// handlePing answers ping with an empty result.
func (s *MCPServer) handlePing(_ context.Context, _ json.RawMessage, _ json.RawMessage) (interface{}, error) {
	return struct{}{}, nil
}

// ClientInfo returns the connected client's identity, or nil before
// initialize.
func (s *MCPServer) ClientInfo() *protocol.Implementation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientInfo
}

// ClientCapabilities returns the connected client's capabilities, or nil
// before initialize.
func (s *MCPServer) ClientCapabilities() *protocol.ClientCapabilities {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientCapabilities
}

// NotifyResourceListChanged enqueues a resources/list_changed
// notification.
func (s *MCPServer) NotifyResourceListChanged() {
	s.notify("notifications/resources/list_changed", nil)
}

// NotifyResourceUpdated enqueues a resources/updated notification for the
// given URI. The order ledger's watcher calls this on every ledger event.
func (s *MCPServer) NotifyResourceUpdated(uri string) {
	s.notify("notifications/resources/updated", protocol.ResourceUpdatedNotification{URI: uri})
}

// notify enqueues a notification for the Serve loop to send. Delivery is
// best effort: when the channel is full the notification is dropped,
// since clients can always re-read the resource.
func (s *MCPServer) notify(method string, params interface{}) {
	notif, err := marshalNotification(method, params)
	if err != nil {
		s.logger.Error("marshal notification", zap.String("method", method), zap.Error(err))
		return
	}
	select {
	case s.notifyCh <- notif:
		s.logger.Debug("notification enqueued", zap.String("method", method))
	default:
		s.logger.Warn("notification channel full, dropping", zap.String("method", method))
	}
}

// marshalNotification encodes a JSON-RPC notification (no id field).
func marshalNotification(method string, params interface{}) ([]byte, error) {
	msg := struct {
		JSONRPC string      `json:"jsonrpc"`
		Method  string      `json:"method"`
		Params  interface{} `json:"params,omitempty"`
	}{
		JSONRPC: protocol.JSONRPCVersion,
		Method:  method,
		Params:  params,
	}
	return json.Marshal(msg)
}

// marshalResponse encodes a JSON-RPC response carrying either a result or
// an error.
func marshalResponse(id *protocol.RequestID, result interface{}, rpcErr *protocol.Error) ([]byte, error) {
	resp := protocol.Response{
		JSONRPC: protocol.JSONRPCVersion,
		ID:      id,
		Error:   rpcErr,
	}

	if result != nil {
		resultBytes, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		resp.Result = resultBytes
	}

	return json.Marshal(resp)
}
