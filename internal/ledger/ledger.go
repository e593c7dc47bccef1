// package ledger holds the hours-accounting rules and the approval state
// machine. Everything here is pure: callers fetch the relevant activities,
// the ledger only computes over them.
package ledger

import (
	"github.com/mtsierradev/servicio-social/internal/apperrors"
	"github.com/mtsierradev/servicio-social/internal/domain"
)

// Breakdown is a student's committed hours split by status. Rejected
// activities never count against the cap.
type Breakdown struct {
	ApprovedHours float64 `json:"approved_hours"`
	PendingHours  float64 `json:"pending_hours"`
}

func (b Breakdown) committed() int64 {
	return domain.Centihours(b.ApprovedHours) + domain.Centihours(b.PendingHours)
}

func (b Breakdown) Committed() float64 { return float64(b.committed()) / 100 }

func (b Breakdown) Remaining() float64 {
	return float64(domain.MaxTotalCentihours-b.committed()) / 100
}

// Summarize computes the committed-hours breakdown over a student's
// activities. When recomputing for an edit, excludeID removes the edited
// activity's own prior contribution so it is not double counted; pass 0 for
// a create. Hours are accumulated in centihours so the totals stay exact.
func Summarize(activities []domain.Activity, excludeID int64) Breakdown {
	var approved, pending int64

	for _, a := range activities {
		if excludeID != 0 && a.ID == excludeID {
			continue
		}

		switch a.Status {
		case domain.StatusApproved:
			approved += domain.Centihours(a.Hours)
		case domain.StatusPending:
			pending += domain.Centihours(a.Hours)
		}
	}

	return Breakdown{
		ApprovedHours: float64(approved) / 100,
		PendingHours:  float64(pending) / 100,
	}
}

// CheckCap decides whether committing candidateHours on top of the student's
// existing activities is admissible. Landing exactly on the cap is allowed;
// the comparison runs in centihours, so a decimal total of exactly 80.00 is
// never pushed over by float rounding.
// On rejection it returns an *apperrors.HoursCapError carrying the breakdown.
func CheckCap(activities []domain.Activity, excludeID int64, candidateHours float64) (Breakdown, error) {
	b := Summarize(activities, excludeID)

	if b.committed()+domain.Centihours(candidateHours) > domain.MaxTotalCentihours {
		return b, &apperrors.HoursCapError{
			ApprovedHours:  b.ApprovedHours,
			PendingHours:   b.PendingHours,
			CandidateHours: candidateHours,
		}
	}

	return b, nil
}

// Review validates a state transition on a single activity. Only
// Pending -> Approved and Pending -> Rejected are legal, and a rejection
// must carry a non-empty comment. The comment check runs before the state
// check has any chance to mutate anything; callers must not write on error.
func Review(current, target domain.ActivityStatus, comment string) error {
	if target == domain.StatusRejected && comment == "" {
		return apperrors.ErrCommentRequired
	}

	if current != domain.StatusPending {
		return apperrors.ErrAlreadyReviewed
	}

	return nil
}
