package domain

import (
	"math"
	"time"
)

// ActivityStatus is the review state of a submitted activity.
type ActivityStatus string

const (
	StatusPending  ActivityStatus = "Pending"
	StatusApproved ActivityStatus = "Approved"
	StatusRejected ActivityStatus = "Rejected"
)

// Role is an account's access level. Docente and Admin both review.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleDocente Role = "Docente"
	RoleUser    Role = "User"
)

// MaxTotalHours is the cumulative pending+approved hours cap per student.
const MaxTotalHours = 80.0

// MaxTotalCentihours is the cap in integer hundredths of an hour.
const MaxTotalCentihours = int64(MaxTotalHours * 100)

// Centihours converts an hours value to integer hundredths of an hour.
// Hours are stored as numeric(4,2), so every legal value converts exactly;
// summing centihours avoids the float drift that plain float64 addition
// accumulates near the cap boundary.
func Centihours(hours float64) int64 {
	return int64(math.Round(hours * 100))
}

type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

type Activity struct {
	ID              int64          `db:"id"`
	UserID          string         `db:"user_id"`
	Description     string         `db:"description"`
	Date            time.Time      `db:"activity_date"`
	Hours           float64        `db:"hours"`
	Status          ActivityStatus `db:"status"`
	ReviewerComment *string        `db:"reviewer_comment"`
	ReviewerID      *string        `db:"reviewer_id"`
	CreatedAt       time.Time      `db:"created_at"`
}

// ActivityWithSubmitter joins an activity with its submitter for the
// reviewer queues.
type ActivityWithSubmitter struct {
	Activity
	SubmitterName  string `db:"submitter_name"`
	SubmitterEmail string `db:"submitter_email"`
}

// Stats is the global aggregate shown on the Docente/Admin dashboard.
type Stats struct {
	TotalActivities    int     `db:"total_activities" json:"total_activities"`
	PendingCount       int     `db:"pending_count" json:"pending_count"`
	ApprovedCount      int     `db:"approved_count" json:"approved_count"`
	RejectedCount      int     `db:"rejected_count" json:"rejected_count"`
	TotalApprovedHours float64 `db:"total_approved_hours" json:"total_approved_hours"`
}

// Identity is the authenticated actor. It is extracted from the access token
// once at the transport layer and passed explicitly into every operation.
type Identity struct {
	UserID string
	Role   Role
}

// IsReviewer reports whether the identity may review activities and view
// any student's submissions.
func (i Identity) IsReviewer() bool {
	return i.Role == RoleDocente || i.Role == RoleAdmin
}
