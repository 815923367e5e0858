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

// ApproveOrderTool transitions a pending purchase order to APPROVED.
// Approval is terminal; approving an already approved order fails.
type ApproveOrderTool struct {
	svc *supply.Service
}

// NewApproveOrderTool creates the approve_purchase_order tool.
func NewApproveOrderTool(svc *supply.Service) *ApproveOrderTool {
	return &ApproveOrderTool{svc: svc}
}

func (t *ApproveOrderTool) Name() string {
	return "approve_purchase_order"
}

func (t *ApproveOrderTool) Description() string {
	return "Approve a pending purchase order by its PO ID."
}

func (t *ApproveOrderTool) InputSchema() *tools.JSONSchema {
	return tools.NewObjectSchema("approve_purchase_order parameters", map[string]*tools.JSONSchema{
		"po_id": tools.NewStringSchema("Purchase order ID, e.g. PO-1001"),
	}, []string{"po_id"})
}

func (t *ApproveOrderTool) Execute(_ context.Context, params map[string]interface{}) (*tools.Result, error) {
	id, err := stringParam(params, "po_id")
	if err != nil {
		return failure(err), nil
	}

	po, err := t.svc.ApproveOrder(id)
	if err != nil {
		return failure(err), nil
	}

	return success(supply.FormatApproval(po)), nil
}
