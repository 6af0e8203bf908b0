package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq" // For pq.Error

	"retail_voice_backend/internal/models"
	"retail_voice_backend/pkg/utils"
)

// SubmissionRepository journals every attempt to record a sale upstream.
// Reserve is keyed on the draft ID, so replaying a draft fails with ErrDuplicateKey.
type SubmissionRepository interface {
	Reserve(ctx context.Context, sub *models.Submission) (int64, error)
	Complete(ctx context.Context, id int64, outcome, message string, shortfall *models.Shortfall) error
	ListRecent(ctx context.Context, retailerID string, limit int) ([]models.Submission, error)
}

type submissionRepository struct {
	db SQLExecutor
}

// NewSubmissionRepository creates a PostgreSQL-backed journal.
func NewSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Reserve(ctx context.Context, sub *models.Submission) (int64, error) {
	query := `INSERT INTO sale_submissions
	          (draft_id, retailer_id, user_id, product_name, units_sold, outcome, token_fingerprint, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	currentTime := time.Now()
	sub.Outcome = models.SubmissionPending
	sub.CreatedAt, sub.UpdatedAt = currentTime, currentTime

	err := r.db.QueryRowContext(ctx, query,
		sub.DraftID, sub.RetailerID, sub.UserID, sub.ProductName, sub.UnitsSold,
		sub.Outcome, sub.TokenFingerprint, currentTime, currentTime,
	).Scan(&sub.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: reserving sale submission: %v", ErrDatabaseError, err)
	}
	return sub.ID, nil
}

func (r *submissionRepository) Complete(ctx context.Context, id int64, outcome, message string, shortfall *models.Shortfall) error {
	var available, requested sql.NullInt64
	if shortfall != nil {
		available = sql.NullInt64{Int64: int64(shortfall.Available), Valid: true}
		requested = sql.NullInt64{Int64: int64(shortfall.Requested), Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE sale_submissions
		 SET outcome = $1, message = $2, available_quantity = $3, requested_quantity = $4, updated_at = $5
		 WHERE id = $6`,
		outcome, utils.NewNullString(message), available, requested, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("%w: completing sale submission %d: %v", ErrDatabaseError, id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *submissionRepository) ListRecent(ctx context.Context, retailerID string, limit int) ([]models.Submission, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, draft_id, retailer_id, user_id, product_name, units_sold, outcome,
	    message, available_quantity, requested_quantity, created_at, updated_at
	  FROM sale_submissions
	  WHERE retailer_id = $1
	  ORDER BY created_at DESC, id DESC`)
	args := []interface{}{retailerID}
	if limit > 0 {
		queryBuilder.WriteString(" LIMIT $2")
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing sale submissions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	submissions := []models.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sale submissions: %v", ErrDatabaseError, err)
	}
	return submissions, nil
}

func scanSubmission(row scanner) (models.Submission, error) {
	var sub models.Submission
	var message sql.NullString
	var available, requested sql.NullInt64

	if err := row.Scan(
		&sub.ID, &sub.DraftID, &sub.RetailerID, &sub.UserID, &sub.ProductName, &sub.UnitsSold, &sub.Outcome,
		&message, &available, &requested, &sub.CreatedAt, &sub.UpdatedAt,
	); err != nil {
		return sub, fmt.Errorf("%w: scanning sale submission: %v", ErrDatabaseError, err)
	}
	if message.Valid {
		sub.Message = &message.String
	}
	if available.Valid {
		v := int(available.Int64)
		sub.Available = &v
	}
	if requested.Valid {
		v := int(requested.Int64)
		sub.Requested = &v
	}
	return sub, nil
}

// memorySubmissionRepository is used when no database is configured.
type memorySubmissionRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.Submission
	drafts map[string]struct{}
}

// NewMemorySubmissionRepository keeps the journal in process memory.
func NewMemorySubmissionRepository() SubmissionRepository {
	return &memorySubmissionRepository{drafts: make(map[string]struct{})}
}

func (r *memorySubmissionRepository) Reserve(ctx context.Context, sub *models.Submission) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.drafts[sub.DraftID]; dup {
		return 0, fmt.Errorf("%w: draft %s", ErrDuplicateKey, sub.DraftID)
	}
	r.nextID++
	now := time.Now()
	sub.ID = r.nextID
	sub.Outcome = models.SubmissionPending
	sub.CreatedAt, sub.UpdatedAt = now, now
	r.drafts[sub.DraftID] = struct{}{}
	r.rows = append(r.rows, *sub)
	return sub.ID, nil
}

func (r *memorySubmissionRepository) Complete(ctx context.Context, id int64, outcome, message string, shortfall *models.Shortfall) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID != id {
			continue
		}
		row := &r.rows[i]
		row.Outcome = outcome
		row.UpdatedAt = time.Now()
		if message != "" {
			m := message
			row.Message = &m
		}
		if shortfall != nil {
			a, q := shortfall.Available, shortfall.Requested
			row.Available, row.Requested = &a, &q
		}
		return nil
	}
	return ErrNotFound
}

func (r *memorySubmissionRepository) ListRecent(ctx context.Context, retailerID string, limit int) ([]models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Submission{}
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].RetailerID != retailerID {
			continue
		}
		out = append(out, r.rows[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
