package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/tabsplit/internal/models"
)

func kinds(issues []Issue) []IssueKind {
	out := make([]IssueKind, len(issues))
	for i, is := range issues {
		out[i] = is.Kind
	}
	return out
}

func TestCheckItems(t *testing.T) {
	tests := []struct {
		name string
		bill models.Bill
		want []IssueKind
	}{
		{
			name: "valid items",
			bill: models.Bill{Items: []models.LineItem{
				{Name: "Pizza", Units: 1, UnitPrice: m("30"), TotalPrice: m("30")},
				{Name: "Cover", TotalPrice: m("5")},
			}},
			want: []IssueKind{},
		},
		{
			name: "no items",
			bill: models.Bill{},
			want: []IssueKind{IssueNoItems, IssueZeroTotal},
		},
		{
			name: "tax alone keeps total non-zero",
			bill: models.Bill{Tax: m("1")},
			want: []IssueKind{IssueNoItems},
		},
		{
			name: "unnamed item without units",
			bill: models.Bill{Items: []models.LineItem{{Name: "  ", Units: 0}}, Tip: m("2")},
			want: []IssueKind{IssueUnnamedItem, IssueNoUnits},
		},
		{
			name: "negative unit price",
			bill: models.Bill{Items: []models.LineItem{
				{Name: "Typo", Units: 1, UnitPrice: m("-1"), TotalPrice: m("-1")},
				{Name: "Soup", Units: 1, UnitPrice: m("6"), TotalPrice: m("6")},
			}},
			want: []IssueKind{IssueNegativePrice},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, kinds(CheckItems(tt.bill)))
		})
	}
}

func TestCheckSplit(t *testing.T) {
	beer := models.LineItem{ID: "beer", Name: "Beer", Units: 3, TotalPrice: m("15")}
	cover := models.LineItem{ID: "cover", Name: "Cover", TotalPrice: m("9")}
	free := models.LineItem{ID: "water", Name: "Water", Units: 1}

	withAssignments := func(it models.LineItem, as ...models.Assignment) models.LineItem {
		it.Assignments = as
		return it
	}

	tests := []struct {
		name string
		bill models.Bill
		want []IssueKind
	}{
		{
			name: "fully assigned",
			bill: models.Bill{
				Participants: []models.Participant{alice, bob},
				Items: []models.LineItem{
					withAssignments(beer, models.Assignment{ParticipantID: "a", Quantity: 2}, models.Assignment{ParticipantID: "b", Quantity: 1}),
					withAssignments(cover, models.Assignment{ParticipantID: "b"}),
					withAssignments(free, models.Assignment{ParticipantID: "a", Quantity: 1}),
				},
			},
			want: []IssueKind{},
		},
		{
			name: "free unit item still needs its units assigned",
			bill: models.Bill{
				Participants: []models.Participant{alice, bob},
				Items: []models.LineItem{
					withAssignments(beer, models.Assignment{ParticipantID: "a", Quantity: 3}),
					{ID: "water2", Name: "Water", Units: 2},
				},
			},
			want: []IssueKind{IssueQuantityMismatch},
		},
		{
			name: "no participants",
			bill: models.Bill{SplitEvenly: true},
			want: []IssueKind{IssueNoParticipants},
		},
		{
			name: "unnamed participant",
			bill: models.Bill{
				Participants: []models.Participant{alice, {ID: "x", Name: " "}},
				SplitEvenly:  true,
				Items:        []models.LineItem{beer},
			},
			want: []IssueKind{IssueUnnamedParticipant},
		},
		{
			name: "even split skips assignment checks",
			bill: models.Bill{
				Participants: []models.Participant{alice, bob},
				SplitEvenly:  true,
				Items:        []models.LineItem{beer, cover},
			},
			want: []IssueKind{},
		},
		{
			name: "unassigned items",
			bill: models.Bill{
				Participants: []models.Participant{alice, bob},
				Items:        []models.LineItem{beer, cover},
			},
			want: []IssueKind{IssueUnassignedItem, IssueUnassignedItem},
		},
		{
			name: "partially assigned units",
			bill: models.Bill{
				Participants: []models.Participant{alice, bob},
				Items:        []models.LineItem{withAssignments(beer, models.Assignment{ParticipantID: "a", Quantity: 2})},
			},
			want: []IssueKind{IssueQuantityMismatch},
		},
		{
			name: "zero quantity and unknown participant",
			bill: models.Bill{
				Participants: []models.Participant{alice, bob},
				Items: []models.LineItem{withAssignments(beer,
					models.Assignment{ParticipantID: "a", Quantity: 3},
					models.Assignment{ParticipantID: "ghost", Quantity: 0},
				)},
			},
			want: []IssueKind{IssueUnknownParticipant, IssueNonPositiveQuantity},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, kinds(CheckSplit(tt.bill)))
		})
	}
}

func TestReady(t *testing.T) {
	bill := models.Bill{
		Participants: []models.Participant{alice, bob},
		Items: []models.LineItem{{
			ID: "pie", Name: "Pie", Units: 2, UnitPrice: m("4"), TotalPrice: m("8"),
			Assignments: []models.Assignment{{ParticipantID: "a", Quantity: 1}, {ParticipantID: "b", Quantity: 1}},
		}},
	}
	assert.True(t, Ready(bill))

	bill.Participants[1].Name = ""
	assert.False(t, Ready(bill))
}
