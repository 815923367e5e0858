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

// SupplierAvailabilityTool reports the supplier, available stock, and lead
// time for an item.
type SupplierAvailabilityTool struct {
	svc *supply.Service
}

// NewSupplierAvailabilityTool creates the check_supplier_availability tool.
func NewSupplierAvailabilityTool(svc *supply.Service) *SupplierAvailabilityTool {
	return &SupplierAvailabilityTool{svc: svc}
}

func (t *SupplierAvailabilityTool) Name() string {
	return "check_supplier_availability"
}

func (t *SupplierAvailabilityTool) Description() string {
	return "Check the supplier, available stock, and lead time for a hospital supply item."
}

func (t *SupplierAvailabilityTool) InputSchema() *tools.JSONSchema {
	return tools.NewObjectSchema("check_supplier_availability parameters", map[string]*tools.JSONSchema{
		"item": tools.NewStringSchema("Supply item to check").WithEnum(itemEnum()...),
	}, []string{"item"})
}

func (t *SupplierAvailabilityTool) Execute(_ context.Context, params map[string]interface{}) (*tools.Result, error) {
	item, err := stringParam(params, "item")
	if err != nil {
		return failure(err), nil
	}

	snap, err := t.svc.SupplierAvailability(item)
	if err != nil {
		return failure(err), nil
	}

	return success(supply.FormatSupplier(snap)), nil
}
