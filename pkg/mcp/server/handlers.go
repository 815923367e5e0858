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
	"fmt"

	"github.com/teradata-labs/medsupply/pkg/mcp/protocol"
)

// decodeParams unmarshals a params payload into the method's parameter
// shape. An absent params field decodes to the zero value; malformed JSON
// comes back as an InvalidParams error that the dispatcher returns with
// its code intact.
func decodeParams[T any](raw json.RawMessage) (T, error) {
	var params T
	if len(raw) == 0 {
		return params, nil
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return params, protocol.NewError(protocol.InvalidParams, fmt.Sprintf("malformed params: %v", err), nil)
	}
	return params, nil
}

// newToolsListHandler builds the tools/list handler over a ToolProvider.
func newToolsListHandler(p ToolProvider) MethodHandler {
	return func(ctx context.Context, _ json.RawMessage, _ json.RawMessage) (interface{}, error) {
		list, err := p.ListTools(ctx)
		if err != nil {
			return nil, fmt.Errorf("list tools: %w", err)
		}
		return protocol.ToolListResult{Tools: list}, nil
	}
}

// newToolsCallHandler builds the tools/call handler. A provider error is
// data for the model, not a protocol failure, so it becomes an
// error-flagged tool result rather than a JSON-RPC error.
func newToolsCallHandler(p ToolProvider) MethodHandler {
	return func(ctx context.Context, _ json.RawMessage, raw json.RawMessage) (interface{}, error) {
		params, err := decodeParams[protocol.CallToolParams](raw)
		if err != nil {
			return nil, err
		}
		if params.Name == "" {
			return nil, protocol.NewError(protocol.InvalidParams, "tool name is required", nil)
		}

		result, err := p.CallTool(ctx, params.Name, params.Arguments)
		if err != nil {
			return &protocol.CallToolResult{
				Content: []protocol.Content{{Type: "text", Text: err.Error()}},
				IsError: true,
			}, nil
		}
		return result, nil
	}
}

// newResourcesListHandler builds the resources/list handler.
func newResourcesListHandler(p ResourceProvider) MethodHandler {
	return func(ctx context.Context, _ json.RawMessage, _ json.RawMessage) (interface{}, error) {
		resources, err := p.ListResources(ctx)
		if err != nil {
			return nil, fmt.Errorf("list resources: %w", err)
		}
		return protocol.ResourceListResult{Resources: resources}, nil
	}
}

// newResourcesReadHandler builds the resources/read handler.
func newResourcesReadHandler(p ResourceProvider) MethodHandler {
	return func(ctx context.Context, _ json.RawMessage, raw json.RawMessage) (interface{}, error) {
		params, err := decodeParams[protocol.ReadResourceParams](raw)
		if err != nil {
			return nil, err
		}
		if params.URI == "" {
			return nil, protocol.NewError(protocol.InvalidParams, "resource URI is required", nil)
		}

		result, err := p.ReadResource(ctx, params.URI)
		if err != nil {
			return nil, fmt.Errorf("read resource %q: %w", params.URI, err)
		}
		return result, nil
	}
}
