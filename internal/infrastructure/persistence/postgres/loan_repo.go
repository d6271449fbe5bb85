package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
	pkgpostgres "github.com/credsphere/loancalc-service/pkg/postgres"
)

// ErrLoanNotFound is returned when no loan row matches.
var ErrLoanNotFound = errors.New("loan not found")

// LoanRepo implements port.LoanRepository. Loans are written by the
// origination and servicing systems; this subsystem only reads them.
type LoanRepo struct {
	db pkgpostgres.Querier
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository. db may be a
// pool or a transaction.
func NewLoanRepo(db pkgpostgres.Querier) *LoanRepo {
	return &LoanRepo{db: db}
}

// feeComponentRow mirrors the fees_breakdown JSONB layout.
type feeComponentRow struct {
	Name string          `json:"name"`
	Base decimal.Decimal `json:"base_amount"`
	GST  decimal.Decimal `json:"gst_amount"`
}

// snapshotRow mirrors the processed_snapshot JSONB layout.
type snapshotRow struct {
	Principal      decimal.Decimal `json:"principal"`
	Interest       decimal.Decimal `json:"interest"`
	Penalty        decimal.Decimal `json:"penalty"`
	GST            decimal.Decimal `json:"gst"`
	ProcessingFee  decimal.Decimal `json:"processing_fee"`
	PostServiceFee decimal.Decimal `json:"post_service_fee"`
	DueDate        time.Time       `json:"due_date"`
}

// emiRow mirrors the emi_schedule JSONB layout.
type emiRow struct {
	Number  int             `json:"emi_number"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"emi_amount"`
	Status  string          `json:"status"`
}

// FindByID retrieves a loan record with its fee breakdown, raw EMI schedule
// and processed snapshot.
func (r *LoanRepo) FindByID(ctx context.Context, tenantID, id string) (model.Loan, error) {
	query := `
		SELECT id, tenant_id, principal, status,
		       disbursed_date, due_date, rate_per_day,
		       fees_breakdown, stored_disbursal_amount,
		       processed_snapshot, emi_schedule,
		       version, created_at, updated_at
		FROM loans
		WHERE tenant_id = $1 AND id = $2
	`

	var (
		loanID, loanTenantID, statusRaw string
		principal, ratePerDay           decimal.Decimal
		disbursedDate, dueDate          *time.Time
		feesJSON, snapshotJSON, emiJSON []byte
		storedDisbursal                 decimal.NullDecimal
		version                         int
		createdAt, updatedAt            time.Time
	)

	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&loanID, &loanTenantID, &principal, &statusRaw,
		&disbursedDate, &dueDate, &ratePerDay,
		&feesJSON, &storedDisbursal,
		&snapshotJSON, &emiJSON,
		&version, &createdAt, &updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, fmt.Errorf("loan %s: %w", id, ErrLoanNotFound)
	}
	if err != nil {
		return model.Loan{}, fmt.Errorf("query loan %s: %w", id, err)
	}

	status, err := valueobject.NewLoanStatus(statusRaw)
	if err != nil {
		return model.Loan{}, fmt.Errorf("loan %s: %w", id, err)
	}

	fees, err := decodeFees(feesJSON)
	if err != nil {
		return model.Loan{}, fmt.Errorf("loan %s fees: %w", id, err)
	}
	snapshot, err := decodeSnapshot(snapshotJSON)
	if err != nil {
		return model.Loan{}, fmt.Errorf("loan %s snapshot: %w", id, err)
	}
	schedule, err := decodeSchedule(emiJSON)
	if err != nil {
		return model.Loan{}, fmt.Errorf("loan %s schedule: %w", id, err)
	}

	return model.ReconstructLoan(
		loanID, loanTenantID, principal, status,
		deref(disbursedDate), deref(dueDate), ratePerDay,
		fees, storedDisbursal, snapshot, schedule,
		version, createdAt, updatedAt,
	)
}

func decodeFees(raw []byte) ([]model.FeeComponent, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []feeComponentRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	out := make([]model.FeeComponent, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.FeeComponent{Name: row.Name, Base: row.Base, GST: row.GST})
	}
	return out, nil
}

func decodeSnapshot(raw []byte) (*model.ProcessedSnapshot, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var row snapshotRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return &model.ProcessedSnapshot{
		Principal:      row.Principal,
		Interest:       row.Interest,
		Penalty:        row.Penalty,
		GST:            row.GST,
		ProcessingFee:  row.ProcessingFee,
		PostServiceFee: row.PostServiceFee,
		DueDate:        row.DueDate,
	}, nil
}

func decodeSchedule(raw []byte) ([]model.RawEmiEntry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []emiRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	out := make([]model.RawEmiEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.RawEmiEntry{
			Number:  row.Number,
			DueDate: row.DueDate,
			Amount:  row.Amount,
			Status:  row.Status,
		})
	}
	return out, nil
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
