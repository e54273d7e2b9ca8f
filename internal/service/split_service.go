package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/fairsplit/internal/calculator"
	"github.com/mmynk/fairsplit/internal/editor"
	"github.com/mmynk/fairsplit/internal/metrics"
	"github.com/mmynk/fairsplit/internal/middleware"
	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/receipt"
	"github.com/mmynk/fairsplit/pkg/api"
	"github.com/mmynk/fairsplit/pkg/api/apiconnect"
)

var _ apiconnect.SplitServiceHandler = (*SplitService)(nil)

// SplitService implements the Connect SplitService. It holds no state; every
// call settles the bill it is given.
type SplitService struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewSplitService creates a new SplitService. m may be nil.
func NewSplitService(logger *slog.Logger, m *metrics.Metrics) *SplitService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SplitService{logger: logger, metrics: m}
}

// ComputeFinalSplits settles a bill: raw totals per person, then coverage.
func (s *SplitService) ComputeFinalSplits(ctx context.Context, req *connect.Request[api.ComputeFinalSplitsRequest]) (*connect.Response[api.ComputeFinalSplitsResponse], error) {
	if err := validate.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	bill := BillFromAPI(req.Msg.Bill)
	settlement := calculator.ComputeFinalSplits(bill)
	s.metrics.ObserveSettlement(coverageKinds(bill))

	s.logger.Debug("ComputeFinalSplits",
		"user_id", middleware.GetUserID(ctx),
		"items", len(bill.Items),
		"people", len(bill.People),
		"coverage", len(bill.CoverAssignments),
	)

	return connect.NewResponse(&api.ComputeFinalSplitsResponse{
		Splits: splitsToAPI(bill, settlement),
		Totals: totalsToAPI(calculator.ComputeBillTotals(bill)),
	}), nil
}

// ComputePersonTotals returns one person's share before coverage.
func (s *SplitService) ComputePersonTotals(ctx context.Context, req *connect.Request[api.ComputePersonTotalsRequest]) (*connect.Response[api.ComputePersonTotalsResponse], error) {
	if err := validate.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	bill := BillFromAPI(req.Msg.Bill)
	personID := req.Msg.PersonID
	totals := calculator.ComputePersonTotals(personID, bill)

	resp := &api.ComputePersonTotalsResponse{
		PersonID: personID,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Tip:      totals.Tip,
		Total:    totals.Total,
	}
	for _, pi := range calculator.PersonItems(bill, personID) {
		resp.Items = append(resp.Items, api.PersonItem{
			ItemID:      pi.ItemID,
			Name:        pi.Name,
			Cost:        pi.Cost,
			Shares:      pi.Shares,
			TotalShares: pi.TotalShares,
			Uneven:      pi.Uneven,
		})
	}
	return connect.NewResponse(resp), nil
}

// SeedFromReceipt turns a parsed receipt into a draft bill.
func (s *SplitService) SeedFromReceipt(ctx context.Context, req *connect.Request[api.SeedFromReceiptRequest]) (*connect.Response[api.SeedFromReceiptResponse], error) {
	if err := validate.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	result := receipt.ParseResult{
		Tax:      req.Msg.Receipt.Tax,
		Tip:      req.Msg.Receipt.Tip,
		Currency: req.Msg.Receipt.Currency,
	}
	for _, it := range req.Msg.Receipt.Items {
		result.Items = append(result.Items, receipt.ParsedItem{Name: it.Name, Price: it.Price})
	}
	if err := receipt.Validate(&result); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	var table models.BillState
	for _, name := range req.Msg.People {
		if _, err := editor.AddPerson(&table, name); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}

	bill := receipt.Seed(result, table.People)
	s.logger.Info("Seeded bill from receipt",
		"user_id", middleware.GetUserID(ctx),
		"items", len(bill.Items),
		"tip_from_receipt", bill.TipFromReceipt,
	)
	return connect.NewResponse(&api.SeedFromReceiptResponse{Bill: BillToAPI(bill)}), nil
}
