// Package api defines the messages exchanged with the SplitService.
//
// Amounts are decimals encoded as JSON strings ("12.50"); plain JSON numbers
// are accepted on input.
package api

import "github.com/shopspring/decimal"

type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Assignment struct {
	ParticipantID string `json:"participant_id"`
	Quantity      int    `json:"quantity"`
}

type LineItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Units       int             `json:"units"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Assignments []Assignment    `json:"assignments,omitempty"`
}

// Bill is the editable bill. Date is formatted as YYYY-MM-DD.
type Bill struct {
	BusinessName string          `json:"business_name,omitempty"`
	Date         string          `json:"date,omitempty"`
	Items        []LineItem      `json:"items"`
	Participants []Participant   `json:"participants"`
	Tax          decimal.Decimal `json:"tax"`
	Tip          decimal.Decimal `json:"tip"`
	SplitEvenly  bool            `json:"split_evenly"`
}

type CalculateSplitRequest struct {
	Bill *Bill `json:"bill"`
}

type Share struct {
	ParticipantID string          `json:"participant_id"`
	Name          string          `json:"name"`
	Items         decimal.Decimal `json:"items"`
	Extras        decimal.Decimal `json:"extras"`
	Amount        decimal.Decimal `json:"amount"`
}

type CalculateSplitResponse struct {
	Mode        string          `json:"mode"`
	ItemsTotal  decimal.Decimal `json:"items_total"`
	ExtrasTotal decimal.Decimal `json:"extras_total"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	Shares      []Share         `json:"shares"`
}

type CheckBillRequest struct {
	Bill *Bill `json:"bill"`
}

type Issue struct {
	Kind          string `json:"kind"`
	ItemID        string `json:"item_id,omitempty"`
	ParticipantID string `json:"participant_id,omitempty"`
	Message       string `json:"message"`
}

type CheckBillResponse struct {
	ItemsReady bool    `json:"items_ready"`
	SplitReady bool    `json:"split_ready"`
	Issues     []Issue `json:"issues"`
}

// ExportSummaryRequest asks for the shareable text. Heading and TotalLabel
// override the default English wording.
type ExportSummaryRequest struct {
	Bill       *Bill  `json:"bill"`
	Heading    string `json:"heading,omitempty"`
	TotalLabel string `json:"total_label,omitempty"`
}

type ExportSummaryResponse struct {
	Text       string          `json:"text"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

type ImportReceiptRequest struct {
	ImageURL string `json:"image_url"`
}

type ImportReceiptResponse struct {
	Bill *Bill `json:"bill"`
}
