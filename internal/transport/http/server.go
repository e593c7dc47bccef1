// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mtsierradev/servicio-social/internal/apperrors"
	"github.com/mtsierradev/servicio-social/internal/domain"
	"github.com/mtsierradev/servicio-social/internal/service"
	"github.com/mtsierradev/servicio-social/internal/validation"
	"github.com/mtsierradev/servicio-social/pkg/logger/sl"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the dependencies for the HTTP server, including the logger and service interfaces.
type Server struct {
	log        *slog.Logger
	auth       service.AuthService
	activities service.ActivityService
	reviews    service.ReviewService
	stats      service.StatsService
	users      service.UserService
}

// NewServer creates a new instance of the HTTP server.
func NewServer(
	log *slog.Logger,
	auth service.AuthService,
	activities service.ActivityService,
	reviews service.ReviewService,
	stats service.StatsService,
	users service.UserService,
) *Server {
	return &Server{
		log:        log,
		auth:       auth,
		activities: activities,
		reviews:    reviews,
		stats:      stats,
		users:      users,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/auth/register", s.handleRegister)
	mux.Post("/auth/login", s.handleLogin)

	mux.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/activities", func(r chi.Router) {
			r.With(s.requireRoles(domain.RoleUser)).Get("/", s.handleListActivities)
			r.With(s.requireRoles(domain.RoleUser)).Post("/", s.handleCreateActivity)

			// Details visibility (owner or reviewer) is decided by the
			// service, so no role guard here.
			r.Get("/{id}", s.handleGetActivity)

			r.With(s.requireRoles(domain.RoleUser)).Put("/{id}", s.handleUpdateActivity)
			r.With(s.requireRoles(domain.RoleUser)).Delete("/{id}", s.handleDeleteActivity)
		})

		r.Route("/review", func(r chi.Router) {
			r.Use(s.requireRoles(domain.RoleDocente, domain.RoleAdmin))

			r.Get("/pending", s.handlePendingReviews)
			r.Get("/history", s.handleReviewHistory)
			r.Post("/{id}/approve", s.handleApprove)
			r.Post("/{id}/reject", s.handleReject)
		})

		r.With(s.requireRoles(domain.RoleDocente, domain.RoleAdmin)).Get("/stats", s.handleStats)

		r.Route("/users", func(r chi.Router) {
			r.Use(s.requireRoles(domain.RoleAdmin))

			r.Get("/", s.handleListUsers)
			r.Patch("/{id}/role", s.handleSetRole)
		})
	})

	return mux
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleRegister"

	var req registerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	user, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]userResponse{"user": toUserResponse(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleLogin"

	var req loginRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	token, user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, loginResponse{Token: token, User: toUserResponse(user)})
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleListActivities"

	actor := identityFrom(r.Context())

	activities, breakdown, err := s.activities.List(r.Context(), actor.UserID)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, toActivityListResponse(activities, breakdown))
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleCreateActivity"

	input, err := s.decodeActivityInput(r)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	activity, err := s.activities.Create(r.Context(), identityFrom(r.Context()), input)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]activityResponse{"activity": toActivityResponse(activity)})
}

func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleGetActivity"

	id, err := activityID(r)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	activity, err := s.activities.Get(r.Context(), identityFrom(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]activityResponse{"activity": toActivityResponse(activity)})
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleUpdateActivity"

	id, err := activityID(r)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	input, err := s.decodeActivityInput(r)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	activity, err := s.activities.Update(r.Context(), identityFrom(r.Context()), id, input)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]activityResponse{"activity": toActivityResponse(activity)})
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleDeleteActivity"

	id, err := activityID(r)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	if err := s.activities.Delete(r.Context(), identityFrom(r.Context()), id); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handlePendingReviews(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handlePendingReviews"

	activities, err := s.reviews.Pending(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]reviewQueueItem{"activities": toReviewQueue(activities)})
}

func (s *Server) handleReviewHistory(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleReviewHistory"

	activities, err := s.reviews.History(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]reviewQueueItem{"activities": toReviewQueue(activities)})
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleApprove"

	s.handleReview(w, r, op, s.reviews.Approve)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleReject"

	s.handleReview(w, r, op, s.reviews.Reject)
}

func (s *Server) handleReview(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	review func(ctx context.Context, reviewerID string, activityID int64, comment string) (*domain.Activity, error),
) {
	id, err := activityID(r)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	// The comment is optional on approval, so a bodyless request is valid
	// and decodes as an empty comment.
	var req reviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.handleServiceError(w, op, err)
		return
	}

	activity, err := review(r.Context(), identityFrom(r.Context()).UserID, id, req.Comment)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]activityResponse{"activity": toActivityResponse(activity)})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleStats"

	stats, err := s.stats.Aggregate(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Stats{"stats": stats})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleListUsers"

	users, err := s.users.List(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}

	s.respond(w, http.StatusOK, map[string][]userResponse{"users": out})
}

func (s *Server) handleSetRole(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.handleSetRole"

	var req setRoleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	user, err := s.users.SetRole(r.Context(), chi.URLParam(r, "id"), domain.Role(req.Role))
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]userResponse{"user": toUserResponse(user)})
}

// decodeActivityInput decodes and validates an activity payload and parses
// its date.
func (s *Server) decodeActivityInput(r *http.Request) (service.ActivityInput, error) {
	var req activityRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		return service.ActivityInput{}, err
	}

	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		return service.ActivityInput{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return service.ActivityInput{
		Description: req.Description,
		Date:        date,
		Hours:       req.Hours,
	}, nil
}

func activityID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid activity id", apperrors.ErrInvalidRequest)
	}

	return id, nil
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondError is a convenience wrapper around respond for sending simple error messages.
func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, op string, err error) {
	log := s.log.With(slog.String("op", op))
	log.Error("service error occurred", sl.Err(err))

	var (
		validationErr *validation.ValidationError
		capErr        *apperrors.HoursCapError
		emailErr      *apperrors.EmailTakenError
	)

	switch {
	case errors.As(err, &capErr):
		// The cap breakdown travels with the error so the caller can render
		// a precise message.
		s.respond(w, http.StatusBadRequest, map[string]interface{}{
			"error":           capErr.Error(),
			"approved_hours":  capErr.ApprovedHours,
			"pending_hours":   capErr.PendingHours,
			"remaining_hours": capErr.Remaining(),
		})
	case errors.As(err, &validationErr):
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("%w: %s", apperrors.ErrValidation, validationErr.Error()).Error())
	case errors.Is(err, apperrors.ErrCommentRequired):
		s.respondError(w, http.StatusBadRequest, apperrors.ErrCommentRequired.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "invalid request body")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		s.respondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		s.respondError(w, http.StatusUnauthorized, apperrors.ErrUnauthorized.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		s.respondError(w, http.StatusForbidden, "you do not have access to this resource")
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, apperrors.ErrAlreadyReviewed):
		s.respondError(w, http.StatusConflict, apperrors.ErrAlreadyReviewed.Error())
	case errors.As(err, &emailErr):
		s.respondError(w, http.StatusConflict, "an account with this email already exists")
	default:
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
