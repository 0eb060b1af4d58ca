// Package models defines the bill snapshot that the split calculator consumes.
//
// # Models
//
//   - Bill: items, participants, tax, tip and the split-evenly flag
//   - LineItem: one line of the receipt, with optional per-participant assignments
//   - Assignment: how many units of an item a participant consumed
//   - Participant: a person splitting the bill
//
// # Snapshots
//
// A Bill is a plain value. Edits never mutate the receiver: every transition
// (AddParticipant, ToggleAssignment, SetAssignmentQuantity, ...) returns a new
// Bill that shares nothing mutable with the old one. Callers can keep the
// previous snapshot around, hand one to the calculator while building the
// next, or compare the two.
//
// # Identifiers
//
// Participants and items are identified by UUID strings. Assignments refer to
// participants by ID; an ID that is not present in Participants is tolerated
// everywhere and simply ignored by the calculator.
package models
