package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mtsierradev/servicio-social/internal/apperrors"
	"github.com/mtsierradev/servicio-social/internal/domain"
)

var activityColumns = []string{
	"id", "user_id", "description", "activity_date", "hours",
	"status", "reviewer_comment", "reviewer_id", "created_at",
}

type ActivityRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewActivityRepository(db *sqlx.DB, log *slog.Logger) *ActivityRepository {
	return &ActivityRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ActivityRepository) ListByUser(ctx context.Context, ext sqlx.ExtContext, userID string) ([]domain.Activity, error) {
	const op = "internal.repository.postgres.ListByUser"

	if ext == nil {
		ext = r.db
	}

	query, args, err := r.sq.Select(activityColumns...).
		From("activities").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("activity_date DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var activities []domain.Activity
	if err := sqlx.SelectContext(ctx, ext, &activities, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return activities, nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, id int64) (*domain.Activity, error) {
	const op = "internal.repository.postgres.GetByID"

	if ext == nil {
		ext = r.db
	}

	query, args, err := r.sq.Select(activityColumns...).
		From("activities").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var activity domain.Activity
	if err := sqlx.GetContext(ctx, ext, &activity, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: activity with id '%d'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &activity, nil
}

func (r *ActivityRepository) listWithSubmitters(ctx context.Context, op string, pred interface{}, orderBy string) ([]domain.ActivityWithSubmitter, error) {
	cols := make([]string, 0, len(activityColumns)+2)
	for _, c := range activityColumns {
		cols = append(cols, "a."+c)
	}

	cols = append(cols, "u.name AS submitter_name", "u.email AS submitter_email")

	query, args, err := r.sq.Select(cols...).
		From("activities a").
		Join("users u ON u.id = a.user_id").
		Where(pred).
		OrderBy(orderBy).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var activities []domain.ActivityWithSubmitter
	if err := r.db.SelectContext(ctx, &activities, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return activities, nil
}

func (r *ActivityRepository) ListPending(ctx context.Context) ([]domain.ActivityWithSubmitter, error) {
	const op = "internal.repository.postgres.ListPending"

	// The review queue serves oldest submissions first.
	return r.listWithSubmitters(ctx, op, sq.Eq{"a.status": domain.StatusPending}, "a.activity_date ASC, a.id ASC")
}

func (r *ActivityRepository) ListReviewed(ctx context.Context) ([]domain.ActivityWithSubmitter, error) {
	const op = "internal.repository.postgres.ListReviewed"

	return r.listWithSubmitters(ctx, op, sq.NotEq{"a.status": domain.StatusPending}, "a.activity_date DESC, a.id DESC")
}

func (r *ActivityRepository) GetStats(ctx context.Context) (*domain.Stats, error) {
	const op = "internal.repository.postgres.GetStats"

	query, args, err := r.sq.Select(
		"COUNT(*) AS total_activities",
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s') AS pending_count", domain.StatusPending),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s') AS approved_count", domain.StatusApproved),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s') AS rejected_count", domain.StatusRejected),
		fmt.Sprintf("COALESCE(SUM(hours) FILTER (WHERE status = '%s'), 0) AS total_approved_hours", domain.StatusApproved),
	).
		From("activities").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &stats, nil
}

func (r *ActivityRepository) Insert(ctx context.Context, tx *sqlx.Tx, activity *domain.Activity) error {
	const op = "internal.repository.postgres.Insert"

	query, args, err := r.sq.Insert("activities").
		Columns("user_id", "description", "activity_date", "hours", "status").
		Values(activity.UserID, activity.Description, activity.Date, activity.Hours, activity.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&activity.ID, &activity.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: user with id '%s' not found", op, apperrors.ErrNotFound, activity.UserID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *ActivityRepository) Update(ctx context.Context, tx *sqlx.Tx, id int64, description string, date time.Time, hours float64) (*domain.Activity, error) {
	const op = "internal.repository.postgres.Update"

	query, args, err := r.sq.Update("activities").
		Set("description", description).
		Set("activity_date", date).
		Set("hours", hours).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(activityColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var activity domain.Activity
	if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&activity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: activity with id '%d'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &activity, nil
}

func (r *ActivityRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	const op = "internal.repository.postgres.Delete"

	query, args, err := r.sq.Delete("activities").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: activity with id '%d'", op, apperrors.ErrNotFound, id)
	}

	return nil
}

func (r *ActivityRepository) GetByIDWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Activity, error) {
	const op = "internal.repository.postgres.GetByIDWithLock"

	query, args, err := r.sq.Select(activityColumns...).
		From("activities").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var activity domain.Activity
	if err := tx.GetContext(ctx, &activity, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: activity with id '%d'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get activity with lock: %w", op, err)
	}

	return &activity, nil
}

func (r *ActivityRepository) SetReview(ctx context.Context, tx *sqlx.Tx, id int64, status domain.ActivityStatus, reviewerID string, comment string) (*domain.Activity, error) {
	const op = "internal.repository.postgres.SetReview"

	update := r.sq.Update("activities").
		Set("status", status).
		Set("reviewer_id", reviewerID).
		Where(sq.Eq{"id": id})

	// An approval may arrive without a comment; keep NULL rather than an
	// empty string in that case.
	if comment != "" {
		update = update.Set("reviewer_comment", comment)
	} else {
		update = update.Set("reviewer_comment", nil)
	}

	query, args, err := update.
		Suffix("RETURNING " + joinColumns(activityColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var activity domain.Activity
	if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&activity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: activity with id '%d'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &activity, nil
}

func joinColumns(cols []string) string {
	out := cols[0]
	for _, c := range cols[1:] {
		out += ", " + c
	}

	return out
}
