package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/receipt"
	"github.com/mmynk/tabsplit/internal/summary"
	"github.com/mmynk/tabsplit/pkg/api"
	"github.com/mmynk/tabsplit/pkg/api/apiconnect"
)

// Options configure a SplitService.
type Options struct {
	// Strict rejects itemized bills with priced items nobody is assigned to.
	Strict bool

	// Currency is the symbol used by ExportSummary.
	Currency string

	// Extractor reads receipts for ImportReceipt; nil disables it.
	Extractor receipt.Extractor

	// Metrics is optional.
	Metrics *metrics.Metrics
}

// SplitService implements the Connect SplitService
type SplitService struct {
	opts Options
}

var _ apiconnect.SplitServiceHandler = (*SplitService)(nil)

// NewSplitService creates a new SplitService.
func NewSplitService(opts Options) *SplitService {
	return &SplitService{opts: opts}
}

// allocate runs the calculator and maps its errors to Connect codes.
func (s *SplitService) allocate(bill models.Bill) (*calculator.Allocation, error) {
	allocate := calculator.Allocate
	if s.opts.Strict {
		allocate = calculator.AllocateStrict
	}

	alloc, err := allocate(bill)
	if err != nil {
		if errors.Is(err, calculator.ErrNoParticipants) || errors.Is(err, calculator.ErrUnassignedItem) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveAllocation(string(alloc.Mode), len(bill.Items), len(bill.Participants))
	}
	return alloc, nil
}

// CalculateSplit handles bill split calculation
func (s *SplitService) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	bill, err := billFromAPI(req.Msg.Bill)
	if err != nil {
		slog.Error("CalculateSplit failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	slog.Debug("Calculating split",
		"items", len(bill.Items),
		"participants", len(bill.Participants),
		"split_evenly", bill.SplitEvenly,
		"tax", bill.Tax,
		"tip", bill.Tip,
	)

	alloc, err := s.allocate(bill)
	if err != nil {
		slog.Error("CalculateSplit failed", "error", err)
		return nil, err
	}

	for _, share := range alloc.Shares {
		slog.Debug("Participant share",
			"participant", share.Name,
			"items", share.Items,
			"extras", share.Extras,
			"amount", share.Amount,
		)
	}

	return connect.NewResponse(&api.CalculateSplitResponse{
		Mode:        string(alloc.Mode),
		ItemsTotal:  calculator.ItemsTotal(bill).Decimal(),
		ExtrasTotal: calculator.ExtrasTotal(bill).Decimal(),
		GrandTotal:  alloc.GrandTotal.Decimal(),
		Shares:      sharesToAPI(alloc),
	}), nil
}

// CheckBill reports whether the bill's items are complete and whether it
// can be split.
func (s *SplitService) CheckBill(ctx context.Context, req *connect.Request[api.CheckBillRequest]) (*connect.Response[api.CheckBillResponse], error) {
	bill, err := billFromAPI(req.Msg.Bill)
	if err != nil {
		slog.Error("CheckBill failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	itemIssues := calculator.CheckItems(bill)
	splitIssues := calculator.CheckSplit(bill)

	return connect.NewResponse(&api.CheckBillResponse{
		ItemsReady: len(itemIssues) == 0,
		SplitReady: len(itemIssues) == 0 && len(splitIssues) == 0,
		Issues:     issuesToAPI(append(itemIssues, splitIssues...)),
	}), nil
}

// ExportSummary splits the bill and renders the shareable text.
func (s *SplitService) ExportSummary(ctx context.Context, req *connect.Request[api.ExportSummaryRequest]) (*connect.Response[api.ExportSummaryResponse], error) {
	bill, err := billFromAPI(req.Msg.Bill)
	if err != nil {
		slog.Error("ExportSummary failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	alloc, err := s.allocate(bill)
	if err != nil {
		slog.Error("ExportSummary failed", "error", err)
		return nil, err
	}

	opts := summary.DefaultOptions(s.opts.Currency)
	if req.Msg.Heading != "" {
		opts.Heading = req.Msg.Heading
	}
	if req.Msg.TotalLabel != "" {
		opts.TotalLabel = req.Msg.TotalLabel
	}

	return connect.NewResponse(&api.ExportSummaryResponse{
		Text:       summary.Render(alloc, opts),
		GrandTotal: alloc.GrandTotal.Decimal(),
	}), nil
}

// ImportReceipt reads a receipt image and returns it as a draft bill with no
// participants.
func (s *SplitService) ImportReceipt(ctx context.Context, req *connect.Request[api.ImportReceiptRequest]) (*connect.Response[api.ImportReceiptResponse], error) {
	if s.opts.Extractor == nil {
		return nil, connect.NewError(connect.CodeUnimplemented, fmt.Errorf("receipt import is not configured"))
	}
	if req.Msg.ImageURL == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("image_url required"))
	}

	ext, err := s.opts.Extractor.Extract(ctx, req.Msg.ImageURL)
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveExtraction(err)
	}
	if err != nil {
		slog.Error("ImportReceipt failed", "image_url", req.Msg.ImageURL, "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	bill := ext.Bill()
	slog.Info("Receipt imported",
		"business", bill.BusinessName,
		"items", len(bill.Items),
		"grand_total", calculator.GrandTotal(bill),
	)

	return connect.NewResponse(&api.ImportReceiptResponse{
		Bill: billToAPI(bill),
	}), nil
}
