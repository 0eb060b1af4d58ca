package models

import (
	"errors"
	"math"
	"testing"

	"github.com/mmynk/tabsplit/internal/money"
)

// newTestBill builds a bill with Alice and Bob, three beers and a cover charge.
func newTestBill(t *testing.T) (Bill, Participant, Participant, LineItem, LineItem) {
	t.Helper()
	var b Bill
	b, alice := b.AddParticipant("Alice")
	b, bob := b.AddParticipant("Bob")
	b, beer := b.AddItem("Beer", 3, money.MustParse("5.00"))
	b, cover := b.AddFlatCharge("Cover", money.MustParse("9.00"))
	return b, alice, bob, beer, cover
}

func TestAddItemComputesTotal(t *testing.T) {
	b, _, _, beer, cover := newTestBill(t)

	if !beer.TotalPrice.Equal(money.MustParse("15")) {
		t.Errorf("beer total = %s, want 15.00", beer.TotalPrice)
	}
	if cover.Units != 0 || !cover.TotalPrice.Equal(money.MustParse("9")) {
		t.Errorf("cover = %+v, want flat 9.00", cover)
	}
	if len(b.Items) != 2 || len(b.Participants) != 2 {
		t.Fatalf("got %d items / %d participants, want 2 / 2", len(b.Items), len(b.Participants))
	}
	if b.Participants[0].ID == "" || b.Participants[0].ID == b.Participants[1].ID {
		t.Errorf("participants need distinct ids, got %q and %q", b.Participants[0].ID, b.Participants[1].ID)
	}
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	b, alice, _, beer, _ := newTestBill(t)

	next, err := b.ToggleAssignment(beer.ID, alice.ID)
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	if len(b.Items[0].Assignments) != 0 {
		t.Errorf("original bill was mutated: %+v", b.Items[0].Assignments)
	}
	if len(next.Items[0].Assignments) != 1 {
		t.Errorf("new bill should have one assignment, got %+v", next.Items[0].Assignments)
	}

	renamed, err := next.RenameParticipant(alice.ID, "Alicia")
	if err != nil {
		t.Fatalf("RenameParticipant failed: %v", err)
	}
	if next.Participants[0].Name != "Alice" || renamed.Participants[0].Name != "Alicia" {
		t.Errorf("rename leaked into previous snapshot: %q / %q", next.Participants[0].Name, renamed.Participants[0].Name)
	}
}

func TestToggleAssignment(t *testing.T) {
	b, alice, bob, beer, cover := newTestBill(t)
	b.SplitEvenly = true

	b, err := b.ToggleAssignment(beer.ID, alice.ID)
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	if b.SplitEvenly {
		t.Error("toggling an assignment should switch to itemized mode")
	}
	if got := b.Items[0].Assignments; len(got) != 1 || got[0].Quantity != 1 {
		t.Errorf("unit item should start at quantity 1, got %+v", got)
	}

	b, err = b.ToggleAssignment(cover.ID, bob.ID)
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	if got := b.Items[1].Assignments; len(got) != 1 || got[0].Quantity != 0 {
		t.Errorf("flat charge should start at quantity 0, got %+v", got)
	}

	b, err = b.ToggleAssignment(beer.ID, alice.ID)
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	if len(b.Items[0].Assignments) != 0 {
		t.Errorf("second toggle should unassign, got %+v", b.Items[0].Assignments)
	}

	if _, err := b.ToggleAssignment("missing", alice.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := b.ToggleAssignment(beer.ID, "missing"); !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("expected ErrParticipantNotFound, got %v", err)
	}
}

func TestToggleAssignmentRejectsFullyAssignedItem(t *testing.T) {
	var b Bill
	b, alice := b.AddParticipant("Alice")
	b, bob := b.AddParticipant("Bob")
	b, soda := b.AddItem("Soda", 1, money.MustParse("4.00"))

	b, err := b.ToggleAssignment(soda.ID, alice.ID)
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	unchanged, err := b.ToggleAssignment(soda.ID, bob.ID)
	if !errors.Is(err, ErrItemFullyAssigned) {
		t.Fatalf("expected ErrItemFullyAssigned, got %v", err)
	}
	if len(unchanged.Items[0].Assignments) != 1 {
		t.Errorf("rejected toggle must return the bill unchanged, got %+v", unchanged.Items[0].Assignments)
	}
}

func TestSetAssignmentQuantity(t *testing.T) {
	b, alice, bob, beer, _ := newTestBill(t)
	b, _ = b.ToggleAssignment(beer.ID, alice.ID)
	b, _ = b.ToggleAssignment(beer.ID, bob.ID)

	b, err := b.SetAssignmentQuantity(beer.ID, alice.ID, 2)
	if err != nil {
		t.Fatalf("SetAssignmentQuantity failed: %v", err)
	}
	if got := b.Items[0].AssignedUnits(); got != 3 {
		t.Errorf("assigned units = %d, want 3", got)
	}

	tests := []struct {
		name     string
		quantity int
		wantErr  error
	}{
		{name: "negative", quantity: -1, wantErr: ErrNegativeQuantity},
		{name: "exceeds units", quantity: 3, wantErr: ErrQuantityExceedsUnits},
		{name: "wraps around int", quantity: math.MaxInt, wantErr: ErrQuantityExceedsUnits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.SetAssignmentQuantity(beer.ID, alice.ID, tt.quantity)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	b, err = b.SetAssignmentQuantity(beer.ID, bob.ID, 0)
	if err != nil {
		t.Fatalf("SetAssignmentQuantity failed: %v", err)
	}
	if got := b.Items[0].Assignments; len(got) != 1 || got[0].ParticipantID != alice.ID {
		t.Errorf("zero quantity should drop Bob's assignment, got %+v", got)
	}
}

func TestSetAssignmentQuantityWithHugeExistingAssignment(t *testing.T) {
	b, alice, bob, beer, _ := newTestBill(t)
	b.Items[0].Assignments = []Assignment{{ParticipantID: bob.ID, Quantity: math.MaxInt}}

	_, err := b.SetAssignmentQuantity(beer.ID, alice.ID, 1)
	if !errors.Is(err, ErrQuantityExceedsUnits) {
		t.Errorf("expected ErrQuantityExceedsUnits, got %v", err)
	}
	if got := b.Items[0].AssignedUnits(); got != math.MaxInt {
		t.Errorf("AssignedUnits = %d, want saturation at math.MaxInt", got)
	}
}

func TestSetAssignmentQuantityIgnoresFlatCharges(t *testing.T) {
	b, alice, bob, _, cover := newTestBill(t)
	b, _ = b.ToggleAssignment(cover.ID, alice.ID)
	b, _ = b.ToggleAssignment(cover.ID, bob.ID)

	got, err := b.SetAssignmentQuantity(cover.ID, alice.ID, 0)
	if err != nil {
		t.Fatalf("SetAssignmentQuantity failed: %v", err)
	}
	if n := len(got.Items[1].Assignments); n != 2 {
		t.Errorf("flat charge should keep both assignments, got %d", n)
	}
}

func TestToggleSplitEvenlyClearsAssignments(t *testing.T) {
	b, alice, _, beer, _ := newTestBill(t)
	b, _ = b.ToggleAssignment(beer.ID, alice.ID)

	even := b.ToggleSplitEvenly()
	if !even.SplitEvenly {
		t.Fatal("expected split evenly to be on")
	}
	for _, it := range even.Items {
		if len(it.Assignments) != 0 {
			t.Errorf("item %s still has assignments: %+v", it.Name, it.Assignments)
		}
	}

	back := even.ToggleSplitEvenly()
	if back.SplitEvenly {
		t.Error("expected split evenly to be off")
	}
}

func TestRemoveParticipantDropsAssignments(t *testing.T) {
	b, alice, bob, beer, cover := newTestBill(t)
	b, _ = b.ToggleAssignment(beer.ID, alice.ID)
	b, _ = b.ToggleAssignment(beer.ID, bob.ID)
	b, _ = b.ToggleAssignment(cover.ID, bob.ID)

	b, err := b.RemoveParticipant(bob.ID)
	if err != nil {
		t.Fatalf("RemoveParticipant failed: %v", err)
	}
	if len(b.Participants) != 1 || b.Participants[0].ID != alice.ID {
		t.Errorf("participants = %+v, want only Alice", b.Participants)
	}
	for _, it := range b.Items {
		for _, a := range it.Assignments {
			if a.ParticipantID == bob.ID {
				t.Errorf("item %s still references Bob", it.Name)
			}
		}
	}

	if _, err := b.RemoveParticipant(bob.ID); !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("expected ErrParticipantNotFound, got %v", err)
	}
}

func TestItemPriceRecalculation(t *testing.T) {
	b, _, _, beer, _ := newTestBill(t)

	b, err := b.SetItemUnits(beer.ID, 4)
	if err != nil {
		t.Fatalf("SetItemUnits failed: %v", err)
	}
	if !b.Items[0].TotalPrice.Equal(money.MustParse("20")) {
		t.Errorf("total after units change = %s, want 20.00", b.Items[0].TotalPrice)
	}

	b, err = b.SetItemUnitPrice(beer.ID, money.MustParse("4.25"))
	if err != nil {
		t.Fatalf("SetItemUnitPrice failed: %v", err)
	}
	if !b.Items[0].TotalPrice.Equal(money.MustParse("17")) {
		t.Errorf("total after price change = %s, want 17.00", b.Items[0].TotalPrice)
	}

	b, err = b.RemoveItem(beer.ID)
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if b.ItemIndex(beer.ID) != -1 {
		t.Error("beer should be gone")
	}
	if _, err := b.SetItemUnits(beer.ID, 1); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}
