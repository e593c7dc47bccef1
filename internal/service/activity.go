package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mtsierradev/servicio-social/internal/apperrors"
	"github.com/mtsierradev/servicio-social/internal/domain"
	"github.com/mtsierradev/servicio-social/internal/ledger"
	"github.com/mtsierradev/servicio-social/internal/repository"
	"github.com/mtsierradev/servicio-social/internal/repository/rediscache"
	"github.com/mtsierradev/servicio-social/pkg/logger/sl"
)

// statsCacheKey is shared by every service that mutates activities; any
// mutation invalidates the cached dashboard aggregate.
const statsCacheKey = "stats:aggregate"

// ActivityInput is a validated create/edit payload.
type ActivityInput struct {
	Description string
	Date        time.Time
	Hours       float64
}

type ActivityService interface {
	// List returns a student's own activities, most recent date first,
	// together with the committed-hours breakdown against the cap.
	List(ctx context.Context, userID string) ([]domain.Activity, ledger.Breakdown, error)

	// Get returns a single activity. Only the owner and reviewers may see it.
	Get(ctx context.Context, actor domain.Identity, id int64) (*domain.Activity, error)

	// Create submits a new Pending activity after revalidating the 80-hour
	// cap inside the owning user's serialization boundary.
	Create(ctx context.Context, actor domain.Identity, in ActivityInput) (*domain.Activity, error)

	// Update rewrites a Pending activity owned by the actor, excluding its
	// prior hours from the cap recomputation.
	Update(ctx context.Context, actor domain.Identity, id int64, in ActivityInput) (*domain.Activity, error)

	// Delete removes a Pending activity owned by the actor.
	Delete(ctx context.Context, actor domain.Identity, id int64) error
}

type ActivityServiceImpl struct {
	BaseService
	query repository.ActivityQueryRepository
	cmd   repository.ActivityCommandRepository
	users repository.UserRepository
	cache *rediscache.Cache
}

func NewActivityService(
	db Transactor,
	log *slog.Logger,
	query repository.ActivityQueryRepository,
	cmd repository.ActivityCommandRepository,
	users repository.UserRepository,
	cache *rediscache.Cache,
) *ActivityServiceImpl {
	return &ActivityServiceImpl{
		BaseService: NewBaseService(db, log),
		query:       query,
		cmd:         cmd,
		users:       users,
		cache:       cache,
	}
}

func (s *ActivityServiceImpl) List(ctx context.Context, userID string) ([]domain.Activity, ledger.Breakdown, error) {
	const op = "internal.service.activity.List"

	activities, err := s.query.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, ledger.Breakdown{}, fmt.Errorf("%s: failed to list activities: %w", op, err)
	}

	return activities, ledger.Summarize(activities, 0), nil
}

func (s *ActivityServiceImpl) Get(ctx context.Context, actor domain.Identity, id int64) (*domain.Activity, error) {
	const op = "internal.service.activity.Get"

	activity, err := s.query.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get activity: %w", op, err)
	}

	if activity.UserID != actor.UserID && !actor.IsReviewer() {
		return nil, fmt.Errorf("%s: %w: not the owner of activity '%d'", op, apperrors.ErrForbidden, id)
	}

	return activity, nil
}

func (s *ActivityServiceImpl) Create(ctx context.Context, actor domain.Identity, in ActivityInput) (*domain.Activity, error) {
	const op = "internal.service.activity.Create"
	log := s.log.With(slog.String("op", op), slog.String("user_id", actor.UserID))

	activity := &domain.Activity{
		UserID:      actor.UserID,
		Description: in.Description,
		Date:        in.Date,
		Hours:       in.Hours,
		Status:      domain.StatusPending,
	}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		// The user-row lock serializes concurrent submissions from the same
		// student, so the cap is rechecked against a committed total.
		if err := s.users.LockByID(ctx, tx, actor.UserID); err != nil {
			return fmt.Errorf("%s: failed to lock user: %w", op, err)
		}

		existing, err := s.query.ListByUser(ctx, tx, actor.UserID)
		if err != nil {
			return fmt.Errorf("%s: failed to list activities: %w", op, err)
		}

		if _, err := ledger.CheckCap(existing, 0, in.Hours); err != nil {
			return err
		}

		return s.cmd.Insert(ctx, tx, activity)
	})

	if err != nil {
		return nil, err
	}

	log.Info("activity created", slog.Int64("activity_id", activity.ID), slog.Float64("hours", activity.Hours))

	s.invalidateStats(ctx)

	return activity, nil
}

func (s *ActivityServiceImpl) Update(ctx context.Context, actor domain.Identity, id int64, in ActivityInput) (*domain.Activity, error) {
	const op = "internal.service.activity.Update"
	log := s.log.With(slog.String("op", op), slog.String("user_id", actor.UserID), slog.Int64("activity_id", id))

	var updated *domain.Activity

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if err := s.users.LockByID(ctx, tx, actor.UserID); err != nil {
			return fmt.Errorf("%s: failed to lock user: %w", op, err)
		}

		current, err := s.cmd.GetByIDWithLock(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("%s: failed to get activity with lock: %w", op, err)
		}

		if current.UserID != actor.UserID {
			return fmt.Errorf("%s: %w: not the owner of activity '%d'", op, apperrors.ErrForbidden, id)
		}

		// Reviewed activities are immutable for audit purposes.
		if current.Status != domain.StatusPending {
			return fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyReviewed)
		}

		existing, err := s.query.ListByUser(ctx, tx, actor.UserID)
		if err != nil {
			return fmt.Errorf("%s: failed to list activities: %w", op, err)
		}

		if _, err := ledger.CheckCap(existing, id, in.Hours); err != nil {
			return err
		}

		updated, err = s.cmd.Update(ctx, tx, id, in.Description, in.Date, in.Hours)

		return err
	})

	if err != nil {
		return nil, err
	}

	log.Info("activity updated", slog.Float64("hours", updated.Hours))

	s.invalidateStats(ctx)

	return updated, nil
}

func (s *ActivityServiceImpl) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	const op = "internal.service.activity.Delete"
	log := s.log.With(slog.String("op", op), slog.String("user_id", actor.UserID), slog.Int64("activity_id", id))

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		current, err := s.cmd.GetByIDWithLock(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("%s: failed to get activity with lock: %w", op, err)
		}

		if current.UserID != actor.UserID {
			return fmt.Errorf("%s: %w: not the owner of activity '%d'", op, apperrors.ErrForbidden, id)
		}

		if current.Status != domain.StatusPending {
			return fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyReviewed)
		}

		return s.cmd.Delete(ctx, tx, id)
	})

	if err != nil {
		return err
	}

	log.Info("activity deleted")

	s.invalidateStats(ctx)

	return nil
}

// invalidateStats drops the cached dashboard aggregate. Cache failures are
// logged and swallowed: the cache entry expires on its own TTL anyway.
func (s *ActivityServiceImpl) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, statsCacheKey); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}
}
