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
	"testing"
	"time"

	"github.com/teradata-labs/medsupply/internal/pubsub"
)

var testClock = func() time.Time {
	return time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
}

func testSupplier() SupplierRecord {
	return SupplierRecord{Name: "Hospitech Equipments", LeadTimeDays: 5, AvailableQty: 20}
}

func TestLedger_Create(t *testing.T) {
	l := NewLedger(WithClock(testClock))

	po := l.Create(ItemICUBeds, 5, testSupplier())

	if po.ID != "PO-1001" {
		t.Errorf("Expected first id PO-1001, got %s", po.ID)
	}
	if po.Status != StatusPendingApproval {
		t.Errorf("Expected status %s, got %s", StatusPendingApproval, po.Status)
	}
	if po.Supplier != "Hospitech Equipments" {
		t.Errorf("Expected supplier copied from record, got %s", po.Supplier)
	}

	wantDelivery := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	if !po.EstimatedDelivery.Equal(wantDelivery) {
		t.Errorf("Expected delivery %v (created + 5d lead), got %v", wantDelivery, po.EstimatedDelivery)
	}
}

func TestLedger_IDsStrictlyIncreasing(t *testing.T) {
	l := NewLedger(WithClock(testClock))

	first := l.Create(ItemICUBeds, 1, testSupplier())
	second := l.Create(ItemVentilators, 2, testSupplier())

	if first.ID != "PO-1001" || second.ID != "PO-1002" {
		t.Errorf("Expected PO-1001 then PO-1002, got %s then %s", first.ID, second.ID)
	}
}

func TestLedger_CustomSeed(t *testing.T) {
	l := NewLedger(WithSeedID(5001), WithClock(testClock))

	po := l.Create(ItemICUBeds, 1, testSupplier())
	if po.ID != "PO-5001" {
		t.Errorf("Expected PO-5001, got %s", po.ID)
	}
}

func TestLedger_FindByID(t *testing.T) {
	l := NewLedger(WithClock(testClock))
	created := l.Create(ItemICUBeds, 3, testSupplier())

	got, ok := l.FindByID(created.ID)
	if !ok {
		t.Fatal("Expected order to be found")
	}
	if got.Quantity != 3 {
		t.Errorf("Expected quantity 3, got %d", got.Quantity)
	}

	if _, ok := l.FindByID("PO-9999"); ok {
		t.Error("Expected lookup of absent id to fail")
	}
}

func TestLedger_Approve(t *testing.T) {
	l := NewLedger(WithClock(testClock))
	created := l.Create(ItemICUBeds, 5, testSupplier())

	approved, err := l.Approve(created.ID)
	if err != nil {
		t.Fatalf("Expected approval to succeed, got %v", err)
	}
	if approved.Status != StatusApproved {
		t.Errorf("Expected status %s, got %s", StatusApproved, approved.Status)
	}
}

func TestLedger_Approve_NotFound(t *testing.T) {
	l := NewLedger()

	_, err := l.Approve("PO-1234")
	if !IsKind(err, KindNotFound) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}

func TestLedger_Approve_Twice(t *testing.T) {
	l := NewLedger(WithClock(testClock))
	created := l.Create(ItemICUBeds, 5, testSupplier())

	if _, err := l.Approve(created.ID); err != nil {
		t.Fatalf("First approval should succeed, got %v", err)
	}

	_, err := l.Approve(created.ID)
	if !IsKind(err, KindInvalidTransition) {
		t.Errorf("Expected InvalidTransition on second approval, got %v", err)
	}
}

func TestLedger_ListPending(t *testing.T) {
	l := NewLedger(WithClock(testClock))

	first := l.Create(ItemICUBeds, 1, testSupplier())
	second := l.Create(ItemVentilators, 2, testSupplier())

	if _, err := l.Approve(first.ID); err != nil {
		t.Fatal(err)
	}

	pending := l.ListPending()
	if len(pending) != 1 {
		t.Fatalf("Expected 1 pending order, got %d", len(pending))
	}
	if pending[0].ID != second.ID {
		t.Errorf("Expected %s pending, got %s", second.ID, pending[0].ID)
	}

	if _, err := l.Approve(second.ID); err != nil {
		t.Fatal(err)
	}
	if got := l.ListPending(); len(got) != 0 {
		t.Errorf("Expected no pending orders, got %d", len(got))
	}
}

func TestLedger_ListPending_InsertionOrder(t *testing.T) {
	l := NewLedger(WithClock(testClock))

	for i := 0; i < 5; i++ {
		l.Create(ItemICUBeds, i+1, testSupplier())
	}

	pending := l.ListPending()
	for i, po := range pending {
		want := fmt.Sprintf("PO-%d", DefaultSeedID+i)
		if po.ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, po.ID)
		}
	}
}

func TestLedger_SnapshotIsolation(t *testing.T) {
	l := NewLedger(WithClock(testClock))
	created := l.Create(ItemICUBeds, 5, testSupplier())

	// Mutating the returned copy must not affect the ledger.
	created.Status = StatusApproved

	stored, _ := l.FindByID(created.ID)
	if stored.Status != StatusPendingApproval {
		t.Error("Expected ledger record to be unaffected by caller mutation")
	}
}

func TestLedger_PublishesEvents(t *testing.T) {
	broker := pubsub.NewBroker[PurchaseOrder]()
	ch := broker.Subscribe()

	l := NewLedger(WithClock(testClock), WithBroker(broker))
	created := l.Create(ItemICUBeds, 5, testSupplier())

	ev := <-ch
	if ev.Type != pubsub.CreatedEvent || ev.Payload.ID != created.ID {
		t.Errorf("Expected created event for %s, got %+v", created.ID, ev)
	}

	if _, err := l.Approve(created.ID); err != nil {
		t.Fatal(err)
	}
	ev = <-ch
	if ev.Type != pubsub.UpdatedEvent || ev.Payload.Status != StatusApproved {
		t.Errorf("Expected updated event with APPROVED status, got %+v", ev)
	}
}

func TestLedger_ConcurrentCreate(t *testing.T) {
	l := NewLedger(WithClock(testClock))

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			l.Create(ItemICUBeds, 1, testSupplier())
		}()
	}
	wg.Wait()

	if l.Len() != n {
		t.Fatalf("Expected %d orders, got %d", n, l.Len())
	}

	// All ids must be unique.
	seen := make(map[string]bool)
	for _, po := range l.ListAll() {
		if seen[po.ID] {
			t.Errorf("Duplicate id issued: %s", po.ID)
		}
		seen[po.ID] = true
	}
}
