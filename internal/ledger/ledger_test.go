package ledger

import (
	"testing"

	"github.com/mtsierradev/servicio-social/internal/apperrors"
	"github.com/mtsierradev/servicio-social/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activity(id int64, hours float64, status domain.ActivityStatus) domain.Activity {
	return domain.Activity{ID: id, UserID: "student-1", Hours: hours, Status: status}
}

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name             string
		activities       []domain.Activity
		excludeID        int64
		expectedApproved float64
		expectedPending  float64
	}{
		{
			name:             "Empty set",
			activities:       nil,
			expectedApproved: 0,
			expectedPending:  0,
		},
		{
			name: "Rejected hours do not count",
			activities: []domain.Activity{
				activity(1, 10, domain.StatusApproved),
				activity(2, 5, domain.StatusPending),
				activity(3, 24, domain.StatusRejected),
			},
			expectedApproved: 10,
			expectedPending:  5,
		},
		{
			name: "Exclude own prior contribution on edit",
			activities: []domain.Activity{
				activity(1, 10, domain.StatusPending),
				activity(2, 20, domain.StatusApproved),
			},
			excludeID:        1,
			expectedApproved: 20,
			expectedPending:  0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := Summarize(tc.activities, tc.excludeID)

			assert.Equal(t, tc.expectedApproved, b.ApprovedHours)
			assert.Equal(t, tc.expectedPending, b.PendingHours)
			assert.Equal(t, domain.MaxTotalHours-tc.expectedApproved-tc.expectedPending, b.Remaining())
		})
	}
}

func TestCheckCap(t *testing.T) {
	testCases := []struct {
		name           string
		activities     []domain.Activity
		excludeID      int64
		candidateHours float64
		expectErr      bool
	}{
		{
			name:           "Zero-activity user",
			activities:     nil,
			candidateHours: 24,
			expectErr:      false,
		},
		{
			name: "Landing exactly on the cap is admissible",
			activities: []domain.Activity{
				activity(1, 30, domain.StatusApproved),
				activity(2, 30, domain.StatusPending),
			},
			candidateHours: 20,
			expectErr:      false,
		},
		{
			// Two-decimal amounts whose float64 sum drifts past 80 even
			// though the decimal total is exactly 80.00.
			name: "Fractional hours landing exactly on the cap",
			activities: []domain.Activity{
				activity(1, 10.10, domain.StatusApproved),
				activity(2, 20.30, domain.StatusApproved),
				activity(3, 30.30, domain.StatusApproved),
				activity(4, 0.90, domain.StatusApproved),
				activity(5, 5.27, domain.StatusPending),
				activity(6, 10.70, domain.StatusPending),
			},
			candidateHours: 2.43,
			expectErr:      false,
		},
		{
			name: "Repeated fractional hours at the boundary",
			activities: []domain.Activity{
				activity(1, 26.66, domain.StatusApproved),
				activity(2, 26.66, domain.StatusApproved),
				activity(3, 26.66, domain.StatusPending),
			},
			candidateHours: 0.02,
			expectErr:      false,
		},
		{
			name: "Fractional hours one hundredth over the cap",
			activities: []domain.Activity{
				activity(1, 10.10, domain.StatusApproved),
				activity(2, 20.30, domain.StatusApproved),
				activity(3, 30.30, domain.StatusApproved),
				activity(4, 0.90, domain.StatusApproved),
				activity(5, 5.27, domain.StatusPending),
				activity(6, 10.70, domain.StatusPending),
			},
			candidateHours: 2.44,
			expectErr:      true,
		},
		{
			name: "Just over the cap is rejected",
			activities: []domain.Activity{
				activity(1, 60, domain.StatusApproved),
				activity(2, 19.5, domain.StatusPending),
			},
			candidateHours: 0.51,
			expectErr:      true,
		},
		{
			name: "Edit raising own hours past the cap",
			activities: []domain.Activity{
				activity(1, 10, domain.StatusPending),
				activity(2, 70, domain.StatusApproved),
			},
			excludeID:      1,
			candidateHours: 15,
			expectErr:      true,
		},
		{
			name: "Edit keeping own hours at the cap boundary",
			activities: []domain.Activity{
				activity(1, 10, domain.StatusPending),
				activity(2, 70, domain.StatusApproved),
			},
			excludeID:      1,
			candidateHours: 10,
			expectErr:      false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CheckCap(tc.activities, tc.excludeID, tc.candidateHours)

			if tc.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckCap_BreakdownOnRejection(t *testing.T) {
	// 30h + 30h committed, a third submission of 25h must be rejected
	// with 20 hours remaining.
	activities := []domain.Activity{
		activity(1, 30, domain.StatusApproved),
		activity(2, 30, domain.StatusPending),
	}

	_, err := CheckCap(activities, 0, 25)
	require.Error(t, err)

	var capErr *apperrors.HoursCapError
	require.ErrorAs(t, err, &capErr)

	assert.Equal(t, 30.0, capErr.ApprovedHours)
	assert.Equal(t, 30.0, capErr.PendingHours)
	assert.Equal(t, 25.0, capErr.CandidateHours)
	assert.Equal(t, 20.0, capErr.Remaining())
}

func TestSummarize_FractionalHoursStayExact(t *testing.T) {
	activities := []domain.Activity{
		activity(1, 10.10, domain.StatusApproved),
		activity(2, 20.30, domain.StatusApproved),
		activity(3, 30.30, domain.StatusApproved),
		activity(4, 0.90, domain.StatusApproved),
		activity(5, 5.27, domain.StatusPending),
		activity(6, 10.70, domain.StatusPending),
	}

	b := Summarize(activities, 0)

	assert.Equal(t, 61.6, b.ApprovedHours)
	assert.Equal(t, 15.97, b.PendingHours)
	assert.Equal(t, 77.57, b.Committed())
	assert.Equal(t, 2.43, b.Remaining())
}

func TestReview(t *testing.T) {
	testCases := []struct {
		name        string
		current     domain.ActivityStatus
		target      domain.ActivityStatus
		comment     string
		expectedErr error
	}{
		{
			name:    "Approve pending without comment",
			current: domain.StatusPending,
			target:  domain.StatusApproved,
		},
		{
			name:    "Approve pending with comment",
			current: domain.StatusPending,
			target:  domain.StatusApproved,
			comment: "well documented",
		},
		{
			name:    "Reject pending with comment",
			current: domain.StatusPending,
			target:  domain.StatusRejected,
			comment: "hours do not match the attached report",
		},
		{
			name:        "Reject without comment",
			current:     domain.StatusPending,
			target:      domain.StatusRejected,
			expectedErr: apperrors.ErrCommentRequired,
		},
		{
			name:        "Approve an approved activity",
			current:     domain.StatusApproved,
			target:      domain.StatusApproved,
			expectedErr: apperrors.ErrAlreadyReviewed,
		},
		{
			name:        "Reject a rejected activity",
			current:     domain.StatusRejected,
			target:      domain.StatusRejected,
			comment:     "still wrong",
			expectedErr: apperrors.ErrAlreadyReviewed,
		},
		{
			name:        "Comment check runs before state check",
			current:     domain.StatusApproved,
			target:      domain.StatusRejected,
			expectedErr: apperrors.ErrCommentRequired,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Review(tc.current, tc.target, tc.comment)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
