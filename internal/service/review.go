package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/mtsierradev/servicio-social/internal/domain"
	"github.com/mtsierradev/servicio-social/internal/ledger"
	"github.com/mtsierradev/servicio-social/internal/repository"
	"github.com/mtsierradev/servicio-social/internal/repository/rediscache"
	"github.com/mtsierradev/servicio-social/pkg/logger/sl"
)

type ReviewService interface {
	// Pending returns the reviewer work queue: all pending activities with
	// their submitters, oldest date first.
	Pending(ctx context.Context) ([]domain.ActivityWithSubmitter, error)

	// History returns all reviewed activities, most recent date first.
	History(ctx context.Context) ([]domain.ActivityWithSubmitter, error)

	// Approve transitions a Pending activity to Approved. The comment is
	// optional. A non-Pending target yields apperrors.ErrAlreadyReviewed.
	Approve(ctx context.Context, reviewerID string, activityID int64, comment string) (*domain.Activity, error)

	// Reject transitions a Pending activity to Rejected. The comment is
	// required; an empty one yields apperrors.ErrCommentRequired before any
	// state is touched.
	Reject(ctx context.Context, reviewerID string, activityID int64, comment string) (*domain.Activity, error)
}

type ReviewServiceImpl struct {
	BaseService
	query repository.ActivityQueryRepository
	cmd   repository.ActivityCommandRepository
	cache *rediscache.Cache
}

func NewReviewService(
	db Transactor,
	log *slog.Logger,
	query repository.ActivityQueryRepository,
	cmd repository.ActivityCommandRepository,
	cache *rediscache.Cache,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		BaseService: NewBaseService(db, log),
		query:       query,
		cmd:         cmd,
		cache:       cache,
	}
}

func (s *ReviewServiceImpl) Pending(ctx context.Context) ([]domain.ActivityWithSubmitter, error) {
	const op = "internal.service.review.Pending"

	activities, err := s.query.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list pending activities: %w", op, err)
	}

	return activities, nil
}

func (s *ReviewServiceImpl) History(ctx context.Context) ([]domain.ActivityWithSubmitter, error) {
	const op = "internal.service.review.History"

	activities, err := s.query.ListReviewed(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list reviewed activities: %w", op, err)
	}

	return activities, nil
}

func (s *ReviewServiceImpl) Approve(ctx context.Context, reviewerID string, activityID int64, comment string) (*domain.Activity, error) {
	const op = "internal.service.review.Approve"

	return s.review(ctx, op, reviewerID, activityID, domain.StatusApproved, comment)
}

func (s *ReviewServiceImpl) Reject(ctx context.Context, reviewerID string, activityID int64, comment string) (*domain.Activity, error) {
	const op = "internal.service.review.Reject"

	return s.review(ctx, op, reviewerID, activityID, domain.StatusRejected, comment)
}

func (s *ReviewServiceImpl) review(ctx context.Context, op string, reviewerID string, activityID int64, target domain.ActivityStatus, comment string) (*domain.Activity, error) {
	log := s.log.With(
		slog.String("op", op),
		slog.String("reviewer_id", reviewerID),
		slog.Int64("activity_id", activityID),
	)

	var reviewed *domain.Activity

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		current, err := s.cmd.GetByIDWithLock(ctx, tx, activityID)
		if err != nil {
			return fmt.Errorf("%s: failed to get activity with lock: %w", op, err)
		}

		if err := ledger.Review(current.Status, target, comment); err != nil {
			return err
		}

		reviewed, err = s.cmd.SetReview(ctx, tx, activityID, target, reviewerID, comment)

		return err
	})

	if err != nil {
		return nil, err
	}

	log.Info("activity reviewed", slog.String("status", string(reviewed.Status)))

	if err := s.cache.Invalidate(ctx, statsCacheKey); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}

	return reviewed, nil
}
