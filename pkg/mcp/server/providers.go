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

// Package server implements the MCP server surface of medsupply: a
// JSON-RPC method dispatcher, the tools and resources handlers, and the
// bridge that backs both with the supply service.
package server

import (
	"context"

	"github.com/teradata-labs/medsupply/pkg/mcp/protocol"
)

// ToolProvider is the dispatcher's source of callable tools. SupplyBridge
// implements it over the tool registry.
type ToolProvider interface {
	// ListTools returns the tool definitions advertised by tools/list.
	ListTools(ctx context.Context) ([]protocol.Tool, error)

	// CallTool invokes one tool by name. Implementations report tool
	// failures inside the result with IsError set, reserving the error
	// return for faults in the provider itself.
	CallTool(ctx context.Context, name string, args map[string]interface{}) (*protocol.CallToolResult, error)
}

// ResourceProvider is the dispatcher's source of readable resources.
// SupplyBridge implements it over the catalog and the order ledger.
type ResourceProvider interface {
	// ListResources returns the resources advertised by resources/list.
	ListResources(ctx context.Context) ([]protocol.Resource, error)

	// ReadResource returns the current contents of the resource at uri.
	ReadResource(ctx context.Context, uri string) (*protocol.ReadResourceResult, error)
}
