// internal/recommend/providers.go
package recommend

import (
	"context"

	"apt-recommender/internal/models"
)

// CandidateFilter narrows the candidate pool before scoring. MaxPrice and
// MinAreaM2 apply to each apartment's latest observed transaction.
type CandidateFilter struct {
	MaxPrice  int64
	MinAreaM2 float64
	District  string
}

// CandidateProvider supplies budget/area-filtered apartments, each annotated
// with its latest observed price and area.
type CandidateProvider interface {
	FilteredCandidates(ctx context.Context, filter CandidateFilter) ([]models.Candidate, error)
}

// TransactionProvider supplies an apartment's transaction history in any
// order; the engine filters by date itself.
type TransactionProvider interface {
	ApartmentTransactions(ctx context.Context, apartmentID int64) ([]models.Transaction, error)
}

// StationProvider supplies stations near a coordinate from a coarse
// geographic lookup; the engine re-filters to the 1km radius using precise
// distances.
type StationProvider interface {
	NearbyStations(ctx context.Context, location models.Coordinate) ([]models.Station, error)
}

// ResultSink optionally persists a finished run for history and analytics.
// The engine does not depend on this persistence succeeding.
type ResultSink interface {
	SaveRun(ctx context.Context, runID string, userID int64, req models.ScoringRequest, results []models.ScoredApartment) error
}
