// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	apperrors "apt-recommender/internal/common/errors"
	"apt-recommender/internal/common/logger"
	"apt-recommender/internal/models"
	"apt-recommender/internal/recommend"
	"apt-recommender/internal/storage"
)

// maxRequestBody caps the recommendation request body size.
const maxRequestBody = 64 << 10

// Recommender runs a scoring request against the candidate pool.
type Recommender interface {
	Recommend(ctx context.Context, userID int64, req models.ScoringRequest, asOf time.Time) (*recommend.Result, error)
}

// Store covers the read/write operations the API serves directly, outside of
// a recommendation run.
type Store interface {
	ApartmentDetail(ctx context.Context, apartmentID int64) (*models.ApartmentDetail, error)
	UserRecommendations(ctx context.Context, userID int64, limit int) ([]models.RecommendationRecord, error)
	SaveUserPreference(ctx context.Context, userID int64, req models.ScoringRequest) error
}

// Server is the HTTP surface over the recommendation engine.
type Server struct {
	engine Recommender
	store  Store
	logger logger.Logger
	now    func() time.Time
}

func NewServer(engine Recommender, store Store, log logger.Logger) *Server {
	return &Server{
		engine: engine,
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "http-api"}),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Routes registers all handlers on the given mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/recommendations", s.handleRecommend)
	mux.HandleFunc("GET /api/apartments/{id}", s.handleApartmentDetail)
	mux.HandleFunc("GET /api/users/{id}/recommendations", s.handleUserRecommendations)
	mux.HandleFunc("GET /healthz", s.handleHealth)
}

type recommendationRequest struct {
	UserID int64 `json:"userId"`
	models.ScoringRequest
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to read request body")
		return
	}

	if err := validateRequestBody(body); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	var req recommendationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed JSON body")
		return
	}

	result, err := s.engine.Recommend(r.Context(), req.UserID, req.ScoringRequest, s.now())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	// Preferences are remembered best-effort so the next session can
	// pre-fill the search form.
	if err := s.store.SaveUserPreference(r.Context(), req.UserID, req.ScoringRequest); err != nil {
		s.logger.Warn("failed to save user preference", map[string]interface{}{
			"userId": req.UserID,
			"error":  err.Error(),
		})
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleApartmentDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "apartment id must be a positive integer")
		return
	}

	detail, err := s.store.ApartmentDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrApartmentNotFound) {
			s.writeError(w, http.StatusNotFound, "APARTMENT_NOT_FOUND", "no apartment with that id")
			return
		}
		s.logger.Error("apartment detail lookup failed", map[string]interface{}{
			"apartmentId": id,
			"error":       err.Error(),
		})
		s.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "apartment lookup failed")
		return
	}

	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleUserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || userID <= 0 {
		s.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "user id must be a positive integer")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a non-negative integer")
			return
		}
	}

	records, err := s.store.UserRecommendations(r.Context(), userID, limit)
	if err != nil {
		s.logger.Error("recommendation history lookup failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		s.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "history lookup failed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":          userID,
		"recommendations": records,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeEngineError maps engine outcomes onto HTTP statuses. Retryable
// backend failures surface as 503 so callers and load balancers retry.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest):
		s.writeError(w, http.StatusBadRequest, string(apperrors.ErrCodeInvalidRequest), errorDetails(err))
	case errors.Is(err, recommend.ErrNoEligibleCandidates):
		stdErr := apperrors.NewNoEligibleCandidatesError()
		s.writeError(w, http.StatusNotFound, string(stdErr.Code), stdErr.Details)
	case errors.Is(err, recommend.ErrAllCandidatesFailed):
		s.writeError(w, http.StatusServiceUnavailable, string(apperrors.ErrCodeScoringFailed), "scoring failed for every candidate; try again")
	case apperrors.HasCode(err, apperrors.ErrCodeCandidateQueryFailed):
		s.writeError(w, http.StatusServiceUnavailable, string(apperrors.ErrCodeCandidateQueryFailed), "candidate lookup unavailable; try again")
	default:
		s.logger.Error("recommendation run failed", map[string]interface{}{"error": err.Error()})
		s.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "recommendation run failed")
	}
}

func errorDetails(err error) string {
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) && stdErr.Details != "" {
		return stdErr.Details
	}
	return err.Error()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, details string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"details": details,
		},
	})
}
