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
	"go.uber.org/zap"
)

// Service owns the process-scoped supply state (catalog and ledger) and
// enforces the order lifecycle rules: caller-supplied arguments are
// validated here before the ledger is touched. Constructed once at
// startup and passed explicitly to the tool implementations, so tests can
// use fresh instances.
type Service struct {
	catalog *Catalog
	ledger  *Ledger
	logger  *zap.Logger
}

// NewService creates a supply service over the given catalog and ledger.
func NewService(catalog *Catalog, ledger *Ledger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog: catalog,
		ledger:  ledger,
		logger:  logger,
	}
}

// Ledger exposes the purchase order ledger for read-model consumers.
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// InventorySnapshot is the read model behind get_inventory.
type InventorySnapshot struct {
	Item         ItemKind `json:"item"`
	Quantity     int      `json:"quantity"`
	Status       string   `json:"status"`
	DaysOfSupply string   `json:"days_of_supply"`
}

// SupplierSnapshot is the read model behind check_supplier_availability.
type SupplierSnapshot struct {
	Item        ItemKind       `json:"item"`
	Supplier    SupplierRecord `json:"supplier"`
	StockStatus string         `json:"stock_status"`
}

// InventoryStatus returns the stock level, status label, and days-of-supply
// estimate for an item.
func (s *Service) InventoryStatus(item string) (InventorySnapshot, error) {
	kind, err := ParseItemKind(item)
	if err != nil {
		return InventorySnapshot{}, err
	}
	qty, err := s.catalog.Inventory(kind)
	if err != nil {
		return InventorySnapshot{}, err
	}
	return InventorySnapshot{
		Item:         kind,
		Quantity:     qty,
		Status:       StockStatus(qty),
		DaysOfSupply: DaysOfSupply(kind, qty),
	}, nil
}

// InventorySnapshots returns the read model for every tracked item, in the
// fixed item order. Used by the MCP inventory resource.
func (s *Service) InventorySnapshots() []InventorySnapshot {
	snaps := make([]InventorySnapshot, 0, len(AllItemKinds()))
	for _, kind := range AllItemKinds() {
		snap, err := s.InventoryStatus(string(kind))
		if err != nil {
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps
}

// SupplierAvailability returns the supplier record and stock status for an
// item.
func (s *Service) SupplierAvailability(item string) (SupplierSnapshot, error) {
	kind, err := ParseItemKind(item)
	if err != nil {
		return SupplierSnapshot{}, err
	}
	rec, err := s.catalog.Supplier(kind)
	if err != nil {
		return SupplierSnapshot{}, err
	}
	return SupplierSnapshot{
		Item:        kind,
		Supplier:    rec,
		StockStatus: AvailabilityStatus(rec.AvailableQty),
	}, nil
}

// DraftOrder validates the item and quantity, then records a new purchase
// order in PENDING_APPROVAL. The supplier record used for the order is
// returned alongside it so callers can report the lead time.
func (s *Service) DraftOrder(item string, quantity int) (PurchaseOrder, SupplierRecord, error) {
	kind, err := ParseItemKind(item)
	if err != nil {
		return PurchaseOrder{}, SupplierRecord{}, NewError(KindInvalidArgument, "invalid item: %v", err)
	}
	if quantity < 1 {
		return PurchaseOrder{}, SupplierRecord{}, NewError(KindInvalidArgument,
			"quantity must be a positive integer, got %d", quantity)
	}

	supplier, err := s.catalog.Supplier(kind)
	if err != nil {
		return PurchaseOrder{}, SupplierRecord{}, err
	}

	po := s.ledger.Create(kind, quantity, supplier)
	s.logger.Info("purchase order drafted",
		zap.String("po_id", po.ID),
		zap.String("item", string(po.Item)),
		zap.Int("quantity", po.Quantity),
		zap.String("supplier", po.Supplier),
	)
	return po, supplier, nil
}

// ApproveOrder transitions a pending order to APPROVED. NotFound and
// InvalidTransition failures from the ledger propagate verbatim.
func (s *Service) ApproveOrder(id string) (PurchaseOrder, error) {
	if id == "" {
		return PurchaseOrder{}, NewError(KindInvalidArgument, "po_id is required")
	}

	po, err := s.ledger.Approve(id)
	if err != nil {
		return PurchaseOrder{}, err
	}
	s.logger.Info("purchase order approved", zap.String("po_id", po.ID))
	return po, nil
}

// PendingOrders returns the orders still awaiting approval, in creation
// order.
func (s *Service) PendingOrders() []PurchaseOrder {
	return s.ledger.ListPending()
}
