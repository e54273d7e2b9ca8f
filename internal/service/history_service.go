package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/fairsplit/internal/auth"
	"github.com/mmynk/fairsplit/internal/calculator"
	"github.com/mmynk/fairsplit/internal/history"
	"github.com/mmynk/fairsplit/internal/metrics"
	"github.com/mmynk/fairsplit/internal/middleware"
	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/pkg/api"
	"github.com/mmynk/fairsplit/pkg/api/apiconnect"
)

var _ apiconnect.HistoryServiceHandler = (*HistoryService)(nil)

// HistoryService implements the Connect HistoryService. Every call acts on
// the history of the user on the request context.
type HistoryService struct {
	history *history.Manager
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewHistoryService creates a HistoryService over the given manager. m may be nil.
func NewHistoryService(manager *history.Manager, logger *slog.Logger, m *metrics.Metrics) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryService{history: manager, logger: logger, metrics: m}
}

func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// historyError maps history and storage errors to Connect codes.
func historyError(err error) error {
	switch {
	case errors.Is(err, history.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, history.ErrFinalized):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, history.ErrEmptyBill), errors.Is(err, history.ErrInvalidStatus):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// SaveBill snapshots a bill into the caller's history.
func (s *HistoryService) SaveBill(ctx context.Context, req *connect.Request[api.SaveBillRequest]) (*connect.Response[api.SaveBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	status := models.BillStatus(req.Msg.Status)
	record, err := s.history.Save(ctx, userID, req.Msg.BillID, status, BillFromAPI(req.Msg.Bill))
	if err != nil {
		s.logger.Warn("SaveBill failed", "user_id", userID, "bill_id", req.Msg.BillID, "error", err)
		return nil, historyError(err)
	}
	s.metrics.ObserveBillSaved(string(record.Status))

	s.logger.Info("Bill saved", "user_id", userID, "bill_id", record.ID, "status", record.Status, "total", record.Total)
	return connect.NewResponse(&api.SaveBillResponse{Record: recordToAPI(*record)}), nil
}

// ListBills returns the caller's history, newest first.
func (s *HistoryService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.history.List(ctx, userID)
	if err != nil {
		return nil, historyError(err)
	}

	bills := make([]*api.BillSummary, 0, len(records))
	for _, r := range records {
		bills = append(bills, summaryToAPI(r))
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: bills}), nil
}

// GetBill returns one stored bill with its settlement.
func (s *HistoryService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	record, err := s.history.Get(ctx, userID, req.Msg.BillID)
	if err != nil {
		return nil, historyError(err)
	}

	return connect.NewResponse(&api.GetBillResponse{
		Record: recordToAPI(*record),
		Splits: splitsToAPI(record.State, calculator.ComputeFinalSplits(record.State)),
	}), nil
}

// DeleteBill removes a bill from the caller's history.
func (s *HistoryService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.history.Delete(ctx, userID, req.Msg.BillID); err != nil {
		return nil, historyError(err)
	}

	s.logger.Info("Bill deleted", "user_id", userID, "bill_id", req.Msg.BillID)
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}
