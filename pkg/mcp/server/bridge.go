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

	"github.com/teradata-labs/medsupply/internal/pubsub"
	"github.com/teradata-labs/medsupply/pkg/mcp/protocol"
	"github.com/teradata-labs/medsupply/pkg/supply"
	"github.com/teradata-labs/medsupply/pkg/tools"
	"go.uber.org/zap"
)

// Resource URIs exposed by the supply bridge.
const (
	InventoryResourceURI = "medsupply://inventory"
	OrdersResourceURI    = "medsupply://purchase-orders"
)

// SupplyBridge adapts the supply tool registry and service to the MCP
// provider interfaces. Tool failures never become JSON-RPC errors: they
// surface as text content with the isError flag so clients can show the
// message to the model.
type SupplyBridge struct {
	svc      *supply.Service
	executor *tools.Executor
	logger   *zap.Logger

	mu  sync.RWMutex
	mcp *MCPServer
}

// NewSupplyBridge creates a bridge over the given service and registry.
func NewSupplyBridge(svc *supply.Service, registry *tools.Registry, logger *zap.Logger) *SupplyBridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplyBridge{
		svc:      svc,
		executor: tools.NewExecutor(registry, logger),
		logger:   logger,
	}
}

// SetMCPServer wires the MCP server used for resource change notifications.
func (b *SupplyBridge) SetMCPServer(s *MCPServer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mcp = s
}

// ListTools implements ToolProvider.
func (b *SupplyBridge) ListTools(_ context.Context) ([]protocol.Tool, error) {
	available := b.executor.ListAvailableTools()
	list := make([]protocol.Tool, 0, len(available))
	for _, tool := range available {
		schema, err := tool.InputSchema().ToMap()
		if err != nil {
			return nil, fmt.Errorf("schema for tool %s: %w", tool.Name(), err)
		}
		list = append(list, protocol.Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: schema,
		})
	}
	return list, nil
}

// CallTool implements ToolProvider. All failures, including unknown tool
// names, come back as an error-flagged text result rather than an error.
func (b *SupplyBridge) CallTool(ctx context.Context, name string, args map[string]interface{}) (*protocol.CallToolResult, error) {
	result, err := b.executor.Execute(ctx, name, args)
	if err != nil {
		if errors.Is(err, tools.ErrUnknownTool) {
			return errorResult(fmt.Sprintf("unknown operation: %s", name)), nil
		}
		return errorResult(err.Error()), nil
	}

	if !result.Success {
		msg := "tool execution failed"
		if result.Error != nil {
			msg = result.Error.Message
		}
		return errorResult(msg), nil
	}

	text, ok := result.Data.(string)
	if !ok {
		data, err := json.Marshal(result.Data)
		if err != nil {
			return errorResult(fmt.Sprintf("unencodable tool result: %v", err)), nil
		}
		text = string(data)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{{Type: "text", Text: text}},
	}, nil
}

// errorResult wraps a failure message in the error-flagged text shape.
func errorResult(msg string) *protocol.CallToolResult {
	return &protocol.CallToolResult{
		Content: []protocol.Content{{Type: "text", Text: "Error: " + msg}},
		IsError: true,
	}
}

// ListResources implements ResourceProvider.
func (b *SupplyBridge) ListResources(_ context.Context) ([]protocol.Resource, error) {
	return []protocol.Resource{
		{
			URI:         InventoryResourceURI,
			Name:        "Inventory",
			Description: "Current stock levels with status and days-of-supply estimates",
			MimeType:    "application/json",
		},
		{
			URI:         OrdersResourceURI,
			Name:        "Purchase Orders",
			Description: "All purchase orders recorded this session, in creation order",
			MimeType:    "application/json",
		},
	}, nil
}

// ReadResource implements ResourceProvider.
func (b *SupplyBridge) ReadResource(_ context.Context, uri string) (*protocol.ReadResourceResult, error) {
	var payload interface{}
	switch uri {
	case InventoryResourceURI:
		payload = b.svc.InventorySnapshots()
	case OrdersResourceURI:
		payload = b.svc.Ledger().ListAll()
	default:
		return nil, fmt.Errorf("unknown resource: %s", uri)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource %s: %w", uri, err)
	}

	return &protocol.ReadResourceResult{
		Contents: []protocol.ResourceContents{
			{URI: uri, MimeType: "application/json", Text: string(data)},
		},
	}, nil
}

// WatchOrders consumes ledger events and pushes resources/updated
// notifications for the purchase orders resource. Runs until the context is
// cancelled or the event channel is closed. Intended to run as a goroutine.
func (b *SupplyBridge) WatchOrders(ctx context.Context, events <-chan pubsub.Event[supply.PurchaseOrder]) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			b.mu.RLock()
			mcp := b.mcp
			b.mu.RUnlock()
			if mcp == nil {
				continue
			}
			b.logger.Debug("order event",
				zap.Stringer("type", ev.Type),
				zap.String("po_id", ev.Payload.ID),
			)
			mcp.NotifyResourceUpdated(OrdersResourceURI)
		}
	}
}
