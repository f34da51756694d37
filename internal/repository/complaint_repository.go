package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	Update(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error)
	ListAll(ctx context.Context) ([]domain.Complaint, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.ComplaintStats, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository returns a Postgres-backed implementation.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (title, description, user_id, status, category, admin_comment, handler_name, attachment)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.Title,
		complaint.Description,
		complaint.UserID,
		complaint.Status,
		complaint.Category,
		complaint.AdminComment,
		complaint.HandlerName,
		complaint.Attachment,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        UPDATE complaints SET status=$1, category=$2, admin_comment=$3, handler_name=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	if err := r.pool.QueryRow(ctx, query,
		complaint.Status,
		complaint.Category,
		complaint.AdminComment,
		complaint.HandlerName,
		complaint.ID,
	).Scan(&complaint.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	const query = `
        SELECT id, title, description, user_id, status, category, admin_comment, handler_name, attachment, created_at, updated_at
        FROM complaints WHERE id=$1`
	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&complaint.ID,
		&complaint.Title,
		&complaint.Description,
		&complaint.UserID,
		&complaint.Status,
		&complaint.Category,
		&complaint.AdminComment,
		&complaint.HandlerName,
		&complaint.Attachment,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	const query = `
        SELECT id, title, description, user_id, status, category, admin_comment, handler_name, attachment, created_at, updated_at
        FROM complaints WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	const query = `
        SELECT id, title, description, user_id, status, category, admin_comment, handler_name, attachment, created_at, updated_at
        FROM complaints ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) Stats(ctx context.Context) (*domain.ComplaintStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='pending'),
               COUNT(*) FILTER (WHERE status='in-progress'),
               COUNT(*) FILTER (WHERE status='resolved')
        FROM complaints`
	var stats domain.ComplaintStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.InProgress,
		&stats.Resolved,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.Title,
			&complaint.Description,
			&complaint.UserID,
			&complaint.Status,
			&complaint.Category,
			&complaint.AdminComment,
			&complaint.HandlerName,
			&complaint.Attachment,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
