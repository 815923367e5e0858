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

// DraftOrderTool records a new purchase order in PENDING_APPROVAL.
// Validation happens before an order ID is allocated, so failed calls never
// burn an ID.
type DraftOrderTool struct {
	svc *supply.Service
}

// NewDraftOrderTool creates the create_draft_purchase_order tool.
func NewDraftOrderTool(svc *supply.Service) *DraftOrderTool {
	return &DraftOrderTool{svc: svc}
}

func (t *DraftOrderTool) Name() string {
	return "create_draft_purchase_order"
}

func (t *DraftOrderTool) Description() string {
	return "Create a draft purchase order for a hospital supply item. The order awaits approval before it is placed."
}

func (t *DraftOrderTool) InputSchema() *tools.JSONSchema {
	return tools.NewObjectSchema("create_draft_purchase_order parameters", map[string]*tools.JSONSchema{
		"item":     tools.NewStringSchema("Supply item to order").WithEnum(itemEnum()...),
		"quantity": tools.NewIntegerSchema("Number of units to order").WithMinimum(1),
	}, []string{"item", "quantity"})
}

func (t *DraftOrderTool) Execute(_ context.Context, params map[string]interface{}) (*tools.Result, error) {
	item, err := stringParam(params, "item")
	if err != nil {
		return failure(err), nil
	}
	quantity, err := intParam(params, "quantity")
	if err != nil {
		return failure(err), nil
	}

	po, supplier, err := t.svc.DraftOrder(item, quantity)
	if err != nil {
		return failure(err), nil
	}

	return success(supply.FormatDraftOrder(po, supplier)), nil
}
