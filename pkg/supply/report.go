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
	"strings"
	"time"
)

const (
	// LowStockThreshold classifies stock as LOW below this quantity,
	// independent of item kind.
	LowStockThreshold = 150

	// oxygenDailyConsumption is the assumed daily draw of oxygen cylinders
	// used for the days-of-supply estimate. Only oxygen has a consumption
	// model; every other item reports N/A.
	oxygenDailyConsumption = 150.0

	// DateFormat is the date layout used in all tool output.
	DateFormat = "2006-01-02"

	// NotApplicable is reported for metrics without a model for the item.
	NotApplicable = "N/A"
)

// Stock status labels.
const (
	StockStatusLow      = "LOW"
	StockStatusAdequate = "ADEQUATE"
)

// Supplier availability labels.
const (
	AvailabilityInStock    = "IN STOCK"
	AvailabilityOutOfStock = "OUT OF STOCK"
)

// StockStatus classifies a stock level as LOW or ADEQUATE.
func StockStatus(quantity int) string {
	if quantity < LowStockThreshold {
		return StockStatusLow
	}
	return StockStatusAdequate
}

// DaysOfSupply estimates how many days the current stock lasts, to one
// decimal place. Only oxygen cylinders have a consumption assumption.
func DaysOfSupply(item ItemKind, quantity int) string {
	if item != ItemOxygenCylinders {
		return NotApplicable
	}
	return fmt.Sprintf("%.1f", float64(quantity)/oxygenDailyConsumption)
}

// AvailabilityStatus classifies supplier availability.
func AvailabilityStatus(availableQty int) string {
	if availableQty > 0 {
		return AvailabilityInStock
	}
	return AvailabilityOutOfStock
}

// FormatDate renders a timestamp as a date for tool output.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// FormatInventory renders the get_inventory success text.
func FormatInventory(snap InventorySnapshot) string {
	return fmt.Sprintf("Current stock of %s: %d units\nDays of supply remaining: %s\nStatus: %s",
		snap.Item.DisplayName(), snap.Quantity, snap.DaysOfSupply, snap.Status)
}

// FormatSupplier renders the check_supplier_availability success text.
func FormatSupplier(snap SupplierSnapshot) string {
	return fmt.Sprintf("Supplier for %s: %s\nAvailable stock: %d units\nLead time: %d days\nStatus: %s",
		snap.Item.DisplayName(), snap.Supplier.Name, snap.Supplier.AvailableQty,
		snap.Supplier.LeadTimeDays, snap.StockStatus)
}

// FormatDraftOrder renders the create_draft_purchase_order success text.
func FormatDraftOrder(po PurchaseOrder, supplier SupplierRecord) string {
	return fmt.Sprintf(
		"Draft purchase order created.\nPO ID: %s\nItem: %s\nQuantity: %d\nSupplier: %s\nLead time: %d days\nEstimated delivery: %s\nStatus: %s",
		po.ID, po.Item.DisplayName(), po.Quantity, po.Supplier,
		supplier.LeadTimeDays, FormatDate(po.EstimatedDelivery), po.Status)
}

// FormatPendingOrders renders the get_pending_orders success text.
func FormatPendingOrders(orders []PurchaseOrder) string {
	if len(orders) == 0 {
		return "No purchase orders are pending approval."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d purchase order(s) pending approval:\n", len(orders))
	for _, po := range orders {
		fmt.Fprintf(&b, "\n%s: %d x %s from %s (estimated delivery %s)",
			po.ID, po.Quantity, po.Item.DisplayName(), po.Supplier, FormatDate(po.EstimatedDelivery))
	}
	return b.String()
}

// FormatApproval renders the approve_purchase_order success text.
func FormatApproval(po PurchaseOrder) string {
	return fmt.Sprintf(
		"Purchase order %s approved.\nItem: %s\nQuantity: %d\nStatus: %s\nEstimated delivery: %s",
		po.ID, po.Item.DisplayName(), po.Quantity, po.Status, FormatDate(po.EstimatedDelivery))
}
