package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/credsphere/loancalc-service/internal/application/dto"
	"github.com/credsphere/loancalc-service/internal/application/usecase"
	"github.com/credsphere/loancalc-service/pkg/kafka"
)

// loanMutation is the envelope the lending services publish whenever a
// loan's principal, plan assignment, or fee configuration changes.
type loanMutation struct {
	LoanID   string `json:"loan_id"`
	TenantID string `json:"tenant_id"`
	Kind     string `json:"kind"`
}

// InvalidationHandler turns loan-mutation events into cache invalidations,
// so stale calculations are dropped at the source of the change rather
// than by ad hoc deletions scattered across call sites.
type InvalidationHandler struct {
	invalidate *usecase.InvalidateCalculationUseCase
	logger     *slog.Logger
}

// NewInvalidationHandler wires dependencies.
func NewInvalidationHandler(invalidate *usecase.InvalidateCalculationUseCase, logger *slog.Logger) *InvalidationHandler {
	return &InvalidationHandler{invalidate: invalidate, logger: logger}
}

// Handle is a kafka.Handler for the loan-mutation topic.
func (h *InvalidationHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var mutation loanMutation
	if err := json.Unmarshal(msg.Value, &mutation); err != nil {
		// A malformed mutation cannot be retried into shape; log and move on.
		h.logger.Error("malformed loan mutation", "error", err)
		return nil
	}
	if mutation.LoanID == "" {
		h.logger.Error("loan mutation without loan_id", "kind", mutation.Kind)
		return nil
	}

	_, err := h.invalidate.Execute(ctx, dto.InvalidateCalculationRequest{
		TenantID: mutation.TenantID,
		LoanID:   mutation.LoanID,
		Reason:   mutation.Kind,
	})
	if err != nil {
		return fmt.Errorf("invalidate loan %s: %w", mutation.LoanID, err)
	}

	h.logger.Info("calculation invalidated by loan mutation",
		"loan_id", mutation.LoanID,
		"kind", mutation.Kind,
	)
	return nil
}
