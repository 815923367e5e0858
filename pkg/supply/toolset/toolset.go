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

// Package toolset implements the hospital supply tools exposed over MCP:
// inventory lookups, supplier availability, and the purchase order
// lifecycle. Each tool validates its own arguments in Execute, independent
// of the advisory JSON Schema.
package toolset

import (
	"fmt"
	"math"
	"strings"

	"github.com/teradata-labs/medsupply/pkg/supply"
	"github.com/teradata-labs/medsupply/pkg/tools"
)

// Register registers every supply tool with the given registry.
func Register(reg *tools.Registry, svc *supply.Service) {
	reg.Register(NewInventoryTool(svc))
	reg.Register(NewSupplierAvailabilityTool(svc))
	reg.Register(NewDraftOrderTool(svc))
	reg.Register(NewPendingOrdersTool(svc))
	reg.Register(NewApproveOrderTool(svc))
}

// itemEnum returns the closed item set as schema enum values.
func itemEnum() []interface{} {
	kinds := supply.AllItemKinds()
	values := make([]interface{}, len(kinds))
	for i, kind := range kinds {
		values[i] = string(kind)
	}
	return values
}

// itemList renders the closed item set for error suggestions.
func itemList() string {
	kinds := supply.AllItemKinds()
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return strings.Join(names, ", ")
}

// stringParam extracts a required string argument.
func stringParam(params map[string]interface{}, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", supply.NewError(supply.KindInvalidArgument, "%s is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", supply.NewError(supply.KindInvalidArgument, "%s must be a string, got %T", key, v)
	}
	return s, nil
}

// intParam extracts a required integer argument. JSON numbers decode as
// float64, so integral floats are accepted.
func intParam(params map[string]interface{}, key string) (int, error) {
	v, ok := params[key]
	if !ok {
		return 0, supply.NewError(supply.KindInvalidArgument, "%s is required", key)
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, supply.NewError(supply.KindInvalidArgument, "%s must be an integer, got %v", key, n)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, supply.NewError(supply.KindInvalidArgument, "%s must be an integer, got %T", key, v)
	}
}

// failure maps a supply error to a failed tool result. The error kind
// becomes the machine-readable code.
func failure(err error) *tools.Result {
	result := &tools.Result{
		Success: false,
		Error: &tools.Error{
			Code:    supply.KindOf(err).String(),
			Message: err.Error(),
		},
	}
	if supply.IsKind(err, supply.KindUnknownItem) {
		result.Error.Suggestion = fmt.Sprintf("valid items: %s", itemList())
	}
	return result
}

// success wraps formatted response text in a successful tool result.
func success(text string) *tools.Result {
	return &tools.Result{
		Success: true,
		Data:    text,
	}
}
