// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the service layer.
package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mtsierradev/servicio-social/internal/domain"
)

// ActivityQueryRepository defines the contract for read-only activity operations,
// following the CQRS pattern.
type ActivityQueryRepository interface {
	// ListByUser retrieves all activities of a single student, most recent
	// date first. The ext argument allows this method to be executed within
	// a transaction (*sqlx.Tx) or, with a nil ext, directly on the
	// repository's own connection; the cap recomputation relies on the
	// transactional form.
	ListByUser(ctx context.Context, ext sqlx.ExtContext, userID string) ([]domain.Activity, error)

	// GetByID retrieves a single activity.
	// It returns apperrors.ErrNotFound if the activity does not exist.
	GetByID(ctx context.Context, ext sqlx.ExtContext, id int64) (*domain.Activity, error)

	// ListPending retrieves all pending activities with their submitters,
	// oldest date first, for the reviewer work queue.
	ListPending(ctx context.Context) ([]domain.ActivityWithSubmitter, error)

	// ListReviewed retrieves all non-pending activities with their
	// submitters, most recent date first.
	ListReviewed(ctx context.Context) ([]domain.ActivityWithSubmitter, error)

	// GetStats computes the global aggregate counts and approved hours.
	// An empty store yields all zeroes.
	GetStats(ctx context.Context) (*domain.Stats, error)
}

// ActivityCommandRepository defines the contract for write and locking operations
// on activities. All methods are expected to be executed within a transaction.
type ActivityCommandRepository interface {
	// Insert persists a new activity and fills in its generated ID and
	// creation timestamp.
	// It returns apperrors.ErrNotFound if the owner does not exist.
	Insert(ctx context.Context, tx *sqlx.Tx, activity *domain.Activity) error

	// Update rewrites the student-editable fields of an activity and returns
	// the updated record.
	// It returns apperrors.ErrNotFound if the activity does not exist.
	Update(ctx context.Context, tx *sqlx.Tx, id int64, description string, date time.Time, hours float64) (*domain.Activity, error)

	// Delete removes an activity.
	// It returns apperrors.ErrNotFound if the activity does not exist.
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error

	// GetByIDWithLock retrieves an activity and acquires a row-level lock
	// ("FOR UPDATE"), preventing concurrent review or edit of the same record
	// within the transaction.
	// It returns apperrors.ErrNotFound if the activity does not exist.
	GetByIDWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Activity, error)

	// SetReview writes the outcome of a review: status, reviewer identity and
	// comment are set atomically, never independently.
	SetReview(ctx context.Context, tx *sqlx.Tx, id int64, status domain.ActivityStatus, reviewerID string, comment string) (*domain.Activity, error)
}

// UserRepository defines the contract for account and role data.
type UserRepository interface {
	// Insert persists a new account.
	// It returns apperrors.ErrAlreadyExists if the email is already taken.
	Insert(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves an account by email.
	// It returns apperrors.ErrNotFound if no account matches.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID retrieves an account by id.
	// It returns apperrors.ErrNotFound if no account matches.
	GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*domain.User, error)

	// LockByID takes a row-level lock on the user record. It is the per-user
	// serialization boundary for the hours-cap check: two concurrent
	// submissions from the same student queue up here, so each one
	// revalidates against a committed total.
	// It returns apperrors.ErrNotFound if the user does not exist.
	LockByID(ctx context.Context, tx *sqlx.Tx, id string) error

	// SetRole updates an account's role and returns the updated record.
	// It returns apperrors.ErrNotFound if the user does not exist.
	SetRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)

	// List retrieves all accounts, oldest first.
	List(ctx context.Context) ([]domain.User, error)
}
