// internal/recommend/engine.go
package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "apt-recommender/internal/common/errors"
	"apt-recommender/internal/common/logger"
	"apt-recommender/internal/common/metrics"
	"apt-recommender/internal/models"
	"apt-recommender/internal/scoring"
)

var (
	ErrNoEligibleCandidates = errors.New("NO_ELIGIBLE_CANDIDATES")
	ErrAllCandidatesFailed  = errors.New("SCORING_FAILED")
)

// Config holds the engine tunables.
type Config struct {
	TopN           int
	MaxConcurrency int
}

func DefaultConfig() *Config {
	return &Config{
		TopN:           5,
		MaxConcurrency: 8,
	}
}

// Engine ranks apartment candidates for a scoring request. All scoring is
// pure; the only I/O is fetching per-candidate history and stations through
// the providers.
type Engine struct {
	config       *Config
	candidates   CandidateProvider
	transactions TransactionProvider
	stations     StationProvider
	sink         ResultSink // optional
	logger       logger.Logger
}

func NewEngine(cfg *Config, candidates CandidateProvider, transactions TransactionProvider, stations StationProvider, sink ResultSink, log logger.Logger) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{
		config:       cfg,
		candidates:   candidates,
		transactions: transactions,
		stations:     stations,
		sink:         sink,
		logger:       log.WithFields(map[string]interface{}{"component": "recommend-engine"}),
	}
}

// Result is one finished recommendation run.
type Result struct {
	RunID           string                   `json:"runId"`
	Recommendations []models.ScoredApartment `json:"recommendations"`
	CandidateCount  int                      `json:"candidateCount"`
}

// Recommend scores the filtered candidate pool and returns the top-ranked
// apartments. Candidates whose scoring fails are dropped, never fatal; a
// pool with nothing eligible yields ErrNoEligibleCandidates and a pool where
// every candidate failed yields ErrAllCandidatesFailed.
func (e *Engine) Recommend(ctx context.Context, userID int64, req models.ScoringRequest, asOf time.Time) (*Result, error) {
	if err := validateRequest(req); err != nil {
		metrics.RecommendationRuns.WithLabelValues("invalid_request").Inc()
		return nil, err
	}

	start := time.Now()
	runID := uuid.NewString()
	log := e.logger.WithFields(map[string]interface{}{"runId": runID})

	pool, err := e.candidates.FilteredCandidates(ctx, CandidateFilter{
		MaxPrice:  req.Budget,
		MinAreaM2: req.MinAreaM2,
		District:  req.PreferredDistrict,
	})
	if err != nil {
		metrics.RecommendationRuns.WithLabelValues("query_failed").Inc()
		return nil, apperrors.NewCandidateQueryFailedError(err)
	}
	if len(pool) == 0 {
		metrics.RecommendationRuns.WithLabelValues("no_candidates").Inc()
		return nil, ErrNoEligibleCandidates
	}

	scored := e.scorePool(ctx, pool, req, asOf, log)
	if len(scored) == 0 {
		metrics.RecommendationRuns.WithLabelValues("all_failed").Inc()
		return nil, ErrAllCandidatesFailed
	}

	// Final score descending; ties break on apartment ID ascending so
	// repeated runs are reproducible.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].FinalScore != scored[j].FinalScore {
			return scored[i].FinalScore > scored[j].FinalScore
		}
		return scored[i].ApartmentID < scored[j].ApartmentID
	})

	topN := e.config.TopN
	if len(scored) > topN {
		scored = scored[:topN]
	}

	if e.sink != nil {
		if err := e.sink.SaveRun(ctx, runID, userID, req, scored); err != nil {
			log.Warn("failed to persist recommendation run", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	metrics.RecommendationRuns.WithLabelValues("ok").Inc()
	metrics.RunDuration.Observe(time.Since(start).Seconds())
	log.Info("recommendation run completed", map[string]interface{}{
		"poolSize":   len(pool),
		"returned":   len(scored),
		"durationMs": time.Since(start).Milliseconds(),
		"topScore":   scored[0].FinalScore,
	})

	return &Result{
		RunID:           runID,
		Recommendations: scored,
		CandidateCount:  len(pool),
	}, nil
}

// scorePool fans candidate scoring out across a bounded worker pool and fans
// results back in. Per-candidate work is independent; there is no shared
// mutable state beyond the guarded result slice.
func (e *Engine) scorePool(ctx context.Context, pool []models.Candidate, req models.ScoringRequest, asOf time.Time, log logger.Logger) []models.ScoredApartment {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		scored = make([]models.ScoredApartment, 0, len(pool))
	)
	sem := make(chan struct{}, e.config.MaxConcurrency)

	for _, candidate := range pool {
		wg.Add(1)
		sem <- struct{}{}
		go func(c models.Candidate) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := e.scoreCandidate(ctx, c, req, asOf)
			if err != nil {
				metrics.CandidatesDropped.Inc()
				log.Warn("candidate dropped from scoring", map[string]interface{}{
					"apartmentId": c.ID,
					"error":       err.Error(),
				})
				return
			}

			metrics.CandidatesScored.Inc()
			mu.Lock()
			scored = append(scored, result)
			mu.Unlock()
		}(candidate)
	}
	wg.Wait()

	return scored
}

// scoreCandidate computes the component and final scores for one candidate.
// A panic while scoring untrusted external data is converted to an error so
// the batch survives.
func (e *Engine) scoreCandidate(ctx context.Context, c models.Candidate, req models.ScoringRequest, asOf time.Time) (out models.ScoredApartment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring panicked: %v", r)
		}
	}()

	transactions, err := e.transactions.ApartmentTransactions(ctx, c.ID)
	if err != nil {
		return out, fmt.Errorf("fetch transactions: %w", err)
	}

	stations, err := e.stations.NearbyStations(ctx, c.Location)
	if err != nil {
		return out, fmt.Errorf("fetch stations: %w", err)
	}

	proximities := make([]models.StationProximity, 0, len(stations))
	for _, s := range stations {
		proximities = append(proximities, models.StationProximity{
			Name:       s.Name,
			Line:       s.Line,
			DistanceKm: scoring.Distance(c.Location, s.Location),
			IsTransfer: s.IsTransfer,
		})
	}
	sort.Slice(proximities, func(i, j int) bool {
		return proximities[i].DistanceKm < proximities[j].DistanceKm
	})

	transit := scoring.TransitScore(proximities)
	investment := scoring.InvestmentScore(c.Apartment, req.Style, asOf)
	momentum := scoring.MomentumScore(transactions, asOf)
	final := scoring.FinalScore(transit, investment, momentum, req.TransitImportance)

	nearest := proximities
	if len(nearest) > 3 {
		nearest = nearest[:3]
	}

	finalRounded := roundScore(final)

	return models.ScoredApartment{
		ApartmentID:      c.ID,
		Name:             c.Name,
		District:         c.District,
		Neighborhood:     c.Neighborhood,
		Location:         c.Location,
		BuiltYear:        c.BuiltYear,
		Households:       c.Households,
		ReprAreaM2:       c.ReprAreaM2,
		LatestPrice:      c.LatestPrice,
		LatestAreaM2:     c.LatestAreaM2,
		TransitScore:     roundScore(transit),
		InvestmentScore:  roundScore(investment),
		MomentumScore:    roundScore(momentum),
		FinalScore:       finalRounded,
		NearbyStations:   nearest,
		TransactionCount: len(transactions),
		Explanation:      fmt.Sprintf("%s rates %s overall (%d/100).", c.Name, scoring.Interpret(final), finalRounded),
		TransitSummary:   scoring.InterpretTransit(transit, req.TransitImportance),
		MomentumSummary:  scoring.InterpretMomentum(momentum),
	}, nil
}

func validateRequest(req models.ScoringRequest) error {
	var problems []string
	if req.Budget <= 0 {
		problems = append(problems, "budget must be positive")
	}
	if req.MinAreaM2 <= 0 {
		problems = append(problems, "minAreaM2 must be positive")
	}
	if req.Style != models.StyleStable && req.Style != models.StyleProfit {
		problems = append(problems, "investmentStyle must be \"stable\" or \"profit\"")
	}
	if len(problems) > 0 {
		return apperrors.NewInvalidRequestError(strings.Join(problems, "; "))
	}
	return nil
}

func roundScore(v float64) int {
	return int(math.Round(v))
}
