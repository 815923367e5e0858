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
	"sync"
	"time"

	"github.com/teradata-labs/medsupply/internal/pubsub"
)

// Status is the lifecycle state of a purchase order.
type Status string

const (
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
)

// PurchaseOrder is a single entry in the ledger. Orders are created in
// PENDING_APPROVAL, move to APPROVED exactly once, and are never deleted.
type PurchaseOrder struct {
	ID                string    `json:"id"`
	Item              ItemKind  `json:"item"`
	Quantity          int       `json:"quantity"`
	Supplier          string    `json:"supplier"`
	Status            Status    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
}

// DefaultSeedID is the first purchase order number issued.
const DefaultSeedID = 1001

// Ledger is the ordered collection of all purchase orders ever created,
// append-only except for status mutation. A single mutex serializes Create
// and Approve so identifiers stay unique and strictly increasing and
// status transitions stay monotone under concurrent callers.
type Ledger struct {
	mu     sync.Mutex
	orders []*PurchaseOrder
	byID   map[string]*PurchaseOrder
	nextID int64
	now    func() time.Time
	broker *pubsub.Broker[PurchaseOrder]
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithSeedID sets the first purchase order number issued.
func WithSeedID(seed int64) LedgerOption {
	return func(l *Ledger) {
		l.nextID = seed
	}
}

// WithClock overrides the ledger's clock. Used by tests for deterministic
// creation and delivery dates.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithBroker attaches a broker that receives an event for every order
// created or approved.
func WithBroker(b *pubsub.Broker[PurchaseOrder]) LedgerOption {
	return func(l *Ledger) {
		l.broker = b
	}
}

// NewLedger creates an empty ledger.
func NewLedger(opts ...LedgerOption) *Ledger {
	l := &Ledger{
		byID:   make(map[string]*PurchaseOrder),
		nextID: DefaultSeedID,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Create allocates the next identifier and appends a new order in
// PENDING_APPROVAL. Validation is the caller's responsibility; given valid
// inputs Create never fails. The identifier is consumed only here, so
// failed validation attempts never burn ids.
func (l *Ledger) Create(item ItemKind, quantity int, supplier SupplierRecord) PurchaseOrder {
	l.mu.Lock()

	createdAt := l.now()
	po := &PurchaseOrder{
		ID:                fmt.Sprintf("PO-%d", l.nextID),
		Item:              item,
		Quantity:          quantity,
		Supplier:          supplier.Name,
		Status:            StatusPendingApproval,
		CreatedAt:         createdAt,
		EstimatedDelivery: createdAt.AddDate(0, 0, supplier.LeadTimeDays),
	}
	l.nextID++
	l.orders = append(l.orders, po)
	l.byID[po.ID] = po

	snapshot := *po
	l.mu.Unlock()

	if l.broker != nil {
		l.broker.Publish(pubsub.NewCreatedEvent(snapshot))
	}
	return snapshot
}

// ListPending returns all orders still awaiting approval, in insertion
// order. The result is a snapshot, not a live view.
func (l *Ledger) ListPending() []PurchaseOrder {
	l.mu.Lock()
	defer l.mu.Unlock()

	var pending []PurchaseOrder
	for _, po := range l.orders {
		if po.Status == StatusPendingApproval {
			pending = append(pending, *po)
		}
	}
	return pending
}

// ListAll returns every order ever created, in insertion order.
func (l *Ledger) ListAll() []PurchaseOrder {
	l.mu.Lock()
	defer l.mu.Unlock()

	all := make([]PurchaseOrder, len(l.orders))
	for i, po := range l.orders {
		all[i] = *po
	}
	return all
}

// FindByID looks up an order by identifier.
func (l *Ledger) FindByID(id string) (PurchaseOrder, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	po, ok := l.byID[id]
	if !ok {
		return PurchaseOrder{}, false
	}
	return *po, true
}

// Approve transitions an order from PENDING_APPROVAL to APPROVED. This is
// the only mutation besides Create; the reverse transition does not exist.
func (l *Ledger) Approve(id string) (PurchaseOrder, error) {
	l.mu.Lock()

	po, ok := l.byID[id]
	if !ok {
		l.mu.Unlock()
		return PurchaseOrder{}, NewError(KindNotFound, "purchase order not found: %s", id)
	}
	if po.Status != StatusPendingApproval {
		l.mu.Unlock()
		return PurchaseOrder{}, NewError(KindInvalidTransition,
			"purchase order %s is %s, only %s orders can be approved", id, po.Status, StatusPendingApproval)
	}
	po.Status = StatusApproved

	snapshot := *po
	l.mu.Unlock()

	if l.broker != nil {
		l.broker.Publish(pubsub.NewUpdatedEvent(snapshot))
	}
	return snapshot, nil
}

// Len returns the number of orders ever created.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}
