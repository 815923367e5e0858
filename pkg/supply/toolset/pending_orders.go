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

// PendingOrdersTool lists purchase orders awaiting approval, in creation
// order.
type PendingOrdersTool struct {
	svc *supply.Service
}

// NewPendingOrdersTool creates the get_pending_orders tool.
func NewPendingOrdersTool(svc *supply.Service) *PendingOrdersTool {
	return &PendingOrdersTool{svc: svc}
}

func (t *PendingOrdersTool) Name() string {
	return "get_pending_orders"
}

func (t *PendingOrdersTool) Description() string {
	return "List all purchase orders that are pending approval."
}

func (t *PendingOrdersTool) InputSchema() *tools.JSONSchema {
	return tools.NewObjectSchema("get_pending_orders parameters", nil, nil)
}

func (t *PendingOrdersTool) Execute(_ context.Context, _ map[string]interface{}) (*tools.Result, error) {
	return success(supply.FormatPendingOrders(t.svc.PendingOrders())), nil
}
