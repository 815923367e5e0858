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

package toolset

import (
	"context"

	"github.com/teradata-labs/medsupply/pkg/supply"
	"github.com/teradata-labs/medsupply/pkg/tools"
)

// InventoryTool reports current stock, the LOW/ADEQUATE classification, and
// the days-of-supply estimate for an item.
type InventoryTool struct {
	svc *supply.Service
}

// NewInventoryTool creates the get_inventory tool.
func NewInventoryTool(svc *supply.Service) *InventoryTool {
	return &InventoryTool{svc: svc}
}

func (t *InventoryTool) Name() string {
	return "get_inventory"
}

func (t *InventoryTool) Description() string {
	return "Get the current stock level, status, and days-of-supply estimate for a hospital supply item."
}

func (t *InventoryTool) InputSchema() *tools.JSONSchema {
	return tools.NewObjectSchema("get_inventory parameters", map[string]*tools.JSONSchema{
		"item": tools.NewStringSchema("Supply item to look up").WithEnum(itemEnum()...),
	}, []string{"item"})
}

func (t *InventoryTool) Execute(_ context.Context, params map[string]interface{}) (*tools.Result, error) {
	item, err := stringParam(params, "item")
	if err != nil {
		return failure(err), nil
	}

	snap, err := t.svc.InventoryStatus(item)
	if err != nil {
		return failure(err), nil
	}

	return success(supply.FormatInventory(snap)), nil
}
