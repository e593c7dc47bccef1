package http

import (
	"time"

	"github.com/mtsierradev/servicio-social/internal/domain"
	"github.com/mtsierradev/servicio-social/internal/ledger"
)

const dateFormat = "2006-01-02"

type activityResponse struct {
	ID              int64   `json:"id"`
	UserID          string  `json:"user_id"`
	Description     string  `json:"description"`
	Date            string  `json:"date"`
	Hours           float64 `json:"hours"`
	Status          string  `json:"status"`
	ReviewerComment *string `json:"reviewer_comment,omitempty"`
	ReviewerID      *string `json:"reviewer_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func toActivityResponse(a *domain.Activity) activityResponse {
	return activityResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		Description:     a.Description,
		Date:            a.Date.Format(dateFormat),
		Hours:           a.Hours,
		Status:          string(a.Status),
		ReviewerComment: a.ReviewerComment,
		ReviewerID:      a.ReviewerID,
		CreatedAt:       a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// activityListResponse is a student's own list plus their standing against
// the cap, so the client can render the totals without recomputing them.
type activityListResponse struct {
	Activities     []activityResponse `json:"activities"`
	ApprovedHours  float64            `json:"approved_hours"`
	PendingHours   float64            `json:"pending_hours"`
	RemainingHours float64            `json:"remaining_hours"`
	MaxHours       float64            `json:"max_hours"`
}

func toActivityListResponse(activities []domain.Activity, b ledger.Breakdown) activityListResponse {
	out := make([]activityResponse, len(activities))
	for i := range activities {
		out[i] = toActivityResponse(&activities[i])
	}

	return activityListResponse{
		Activities:     out,
		ApprovedHours:  b.ApprovedHours,
		PendingHours:   b.PendingHours,
		RemainingHours: b.Remaining(),
		MaxHours:       domain.MaxTotalHours,
	}
}

type reviewQueueItem struct {
	activityResponse
	SubmitterName  string `json:"submitter_name"`
	SubmitterEmail string `json:"submitter_email"`
}

func toReviewQueue(activities []domain.ActivityWithSubmitter) []reviewQueueItem {
	out := make([]reviewQueueItem, len(activities))
	for i := range activities {
		out[i] = reviewQueueItem{
			activityResponse: toActivityResponse(&activities[i].Activity),
			SubmitterName:    activities[i].SubmitterName,
			SubmitterEmail:   activities[i].SubmitterEmail,
		}
	}

	return out
}

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}
