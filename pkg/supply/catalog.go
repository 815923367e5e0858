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
package supply

import (
	"fmt"
)

// SupplierRecord is the read-only supplier reference data for one item kind.
type SupplierRecord struct {
	Name         string
	LeadTimeDays int
	AvailableQty int
}

// Catalog is the reference data store: current stock levels and supplier
// records per item kind. It is immutable after construction, so lookups
// need no locking. Orders never decrement these figures; the catalog is
// fixed demo data.
type Catalog struct {
	inventory map[ItemKind]int
	suppliers map[ItemKind]SupplierRecord
}

// NewCatalog builds a catalog from per-item stock levels and supplier
// records. Every item kind in the fixed set must be covered, keys outside
// the set are rejected, and all quantities and lead times must be
// non-negative.
func NewCatalog(inventory map[ItemKind]int, suppliers map[ItemKind]SupplierRecord) (*Catalog, error) {
	c := &Catalog{
		inventory: make(map[ItemKind]int, len(inventory)),
		suppliers: make(map[ItemKind]SupplierRecord, len(suppliers)),
	}

	for kind, qty := range inventory {
		if _, err := ParseItemKind(string(kind)); err != nil {
			return nil, fmt.Errorf("inventory: %w", err)
		}
		if qty < 0 {
			return nil, fmt.Errorf("inventory: negative stock %d for %s", qty, kind)
		}
		c.inventory[kind] = qty
	}

	for kind, rec := range suppliers {
		if _, err := ParseItemKind(string(kind)); err != nil {
			return nil, fmt.Errorf("suppliers: %w", err)
		}
		if rec.Name == "" {
			return nil, fmt.Errorf("suppliers: empty supplier name for %s", kind)
		}
		if rec.LeadTimeDays < 0 || rec.AvailableQty < 0 {
			return nil, fmt.Errorf("suppliers: negative lead time or availability for %s", kind)
		}
		c.suppliers[kind] = rec
	}

	for _, kind := range AllItemKinds() {
		if _, ok := c.inventory[kind]; !ok {
			return nil, fmt.Errorf("inventory: missing stock level for %s", kind)
		}
		if _, ok := c.suppliers[kind]; !ok {
			return nil, fmt.Errorf("suppliers: missing supplier record for %s", kind)
		}
	}

	return c, nil
}

// DefaultCatalog returns the built-in demo reference data.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		map[ItemKind]int{
			ItemOxygenCylinders: 1200,
			ItemICUBeds:         85,
			ItemVentilators:     40,
		},
		map[ItemKind]SupplierRecord{
			ItemOxygenCylinders: {Name: "MedOx Supplies Pvt Ltd", LeadTimeDays: 2, AvailableQty: 500},
			ItemICUBeds:         {Name: "Hospitech Equipments", LeadTimeDays: 5, AvailableQty: 20},
			ItemVentilators:     {Name: "AirLife Medical Systems", LeadTimeDays: 7, AvailableQty: 15},
		},
	)
	if err != nil {
		// The built-in data always covers the full item set.
		panic(err)
	}
	return c
}

// Inventory returns the current stock level for the item.
func (c *Catalog) Inventory(item ItemKind) (int, error) {
	qty, ok := c.inventory[item]
	if !ok {
		return 0, NewError(KindUnknownItem, "unknown item: %q", item)
	}
	return qty, nil
}

// Supplier returns the supplier record for the item.
func (c *Catalog) Supplier(item ItemKind) (SupplierRecord, error) {
	rec, ok := c.suppliers[item]
	if !ok {
		return SupplierRecord{}, NewError(KindUnknownItem, "unknown item: %q", item)
	}
	return rec, nil
}
