// internal/storage/postgres.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"apt-recommender/internal/common/logger"
	"apt-recommender/internal/models"
	"apt-recommender/internal/recommend"
)

var ErrApartmentNotFound = errors.New("APARTMENT_NOT_FOUND")

// stationSearchBoxDeg is the half-width of the coarse bounding box used to
// pre-filter stations. Generous on purpose: the precise 1 km circle is
// applied later from exact great-circle distances.
const stationSearchBoxDeg = 0.015

// Store exposes the recommendation engine's data access over PostgreSQL. It
// implements the engine's provider interfaces plus the preference and
// history operations used by the API layer.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "postgres-store"}),
	}
}

// FilteredCandidates returns apartments whose latest observed transaction
// fits the price ceiling and area floor, optionally restricted to one
// district. Ordered by ID so the pool is stable across runs.
func (s *Store) FilteredCandidates(ctx context.Context, filter recommend.CandidateFilter) ([]models.Candidate, error) {
	query := `
		SELECT a.id, a.name, a.district, a.neighborhood, a.lat, a.lng,
		       COALESCE(a.built_year, 0), COALESCE(a.households, 0), COALESCE(a.repr_area_m2, 0),
		       t.price, t.area_m2
		FROM apartments a
		JOIN LATERAL (
			SELECT price, area_m2
			FROM transactions
			WHERE apartment_id = a.id
			ORDER BY contract_date DESC, id DESC
			LIMIT 1
		) t ON true
		WHERE t.price <= $1
		  AND t.area_m2 >= $2
		  AND ($3 = '' OR a.district = $3)
		ORDER BY a.id`

	rows, err := s.db.QueryContext(ctx, query, filter.MaxPrice, filter.MinAreaM2, filter.District)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []models.Candidate
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(
			&c.ID, &c.Name, &c.District, &c.Neighborhood,
			&c.Location.Lat, &c.Location.Lng,
			&c.BuiltYear, &c.Households, &c.ReprAreaM2,
			&c.LatestPrice, &c.LatestAreaM2,
		); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}

	return candidates, nil
}

// ApartmentTransactions returns the full sale history for one apartment,
// newest first.
func (s *Store) ApartmentTransactions(ctx context.Context, apartmentID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, apartment_id, contract_date, price, area_m2
		FROM transactions
		WHERE apartment_id = $1
		ORDER BY contract_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, apartmentID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.ApartmentID, &tx.ContractDate, &tx.Price, &tx.AreaM2); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}

// NearbyStations returns stations inside a coarse lat/lng box around the
// given point.
func (s *Store) NearbyStations(ctx context.Context, location models.Coordinate) ([]models.Station, error) {
	query := `
		SELECT id, name, line, lat, lng, is_transfer
		FROM stations
		WHERE ABS(lat - $1) < $3 AND ABS(lng - $2) < $3`

	rows, err := s.db.QueryContext(ctx, query, location.Lat, location.Lng, stationSearchBoxDeg)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var st models.Station
		if err := rows.Scan(&st.ID, &st.Name, &st.Line, &st.Location.Lat, &st.Location.Lng, &st.IsTransfer); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stations: %w", err)
	}

	return stations, nil
}

// SaveRun persists a finished recommendation run atomically: either every
// ranked row lands or none do.
func (s *Store) SaveRun(ctx context.Context, runID string, userID int64, req models.ScoringRequest, results []models.ScoredApartment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save run: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO recommendations
			(run_id, user_id, apartment_id, final_score, transit_score,
			 investment_score, momentum_score, explanation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`

	for _, r := range results {
		if _, err := tx.ExecContext(ctx, query,
			runID, userID, r.ApartmentID,
			r.FinalScore, r.TransitScore, r.InvestmentScore, r.MomentumScore,
			r.Explanation,
		); err != nil {
			return fmt.Errorf("insert recommendation for apartment %d: %w", r.ApartmentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save run: %w", err)
	}
	return nil
}

// SaveUserPreference upserts the user's latest search preferences so
// subsequent sessions can pre-fill them.
func (s *Store) SaveUserPreference(ctx context.Context, userID int64, req models.ScoringRequest) error {
	query := `
		INSERT INTO user_preferences
			(user_id, budget, min_area_m2, investment_style, transit_importance, preferred_district, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			budget = EXCLUDED.budget,
			min_area_m2 = EXCLUDED.min_area_m2,
			investment_style = EXCLUDED.investment_style,
			transit_importance = EXCLUDED.transit_importance,
			preferred_district = EXCLUDED.preferred_district,
			updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query,
		userID, req.Budget, req.MinAreaM2, string(req.Style), req.TransitImportance, req.PreferredDistrict,
	); err != nil {
		return fmt.Errorf("upsert user preference: %w", err)
	}
	return nil
}

// ApartmentDetail returns one apartment together with its transaction
// history and surrounding stations.
func (s *Store) ApartmentDetail(ctx context.Context, apartmentID int64) (*models.ApartmentDetail, error) {
	query := `
		SELECT id, name, district, neighborhood, lat, lng,
		       COALESCE(built_year, 0), COALESCE(households, 0), COALESCE(repr_area_m2, 0)
		FROM apartments
		WHERE id = $1`

	var apt models.Apartment
	err := s.db.QueryRowContext(ctx, query, apartmentID).Scan(
		&apt.ID, &apt.Name, &apt.District, &apt.Neighborhood,
		&apt.Location.Lat, &apt.Location.Lng,
		&apt.BuiltYear, &apt.Households, &apt.ReprAreaM2,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrApartmentNotFound
		}
		return nil, fmt.Errorf("query apartment: %w", err)
	}

	transactions, err := s.ApartmentTransactions(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	stations, err := s.NearbyStations(ctx, apt.Location)
	if err != nil {
		return nil, err
	}

	return &models.ApartmentDetail{
		Apartment:    apt,
		Transactions: transactions,
		Stations:     stations,
	}, nil
}

// UserRecommendations returns a user's persisted recommendation rows, newest
// runs first.
func (s *Store) UserRecommendations(ctx context.Context, userID int64, limit int) ([]models.RecommendationRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, run_id, user_id, apartment_id, final_score, transit_score,
		       investment_score, momentum_score, explanation, created_at
		FROM recommendations
		WHERE user_id = $1
		ORDER BY created_at DESC, final_score DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recommendation history: %w", err)
	}
	defer rows.Close()

	var records []models.RecommendationRecord
	for rows.Next() {
		var r models.RecommendationRecord
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.UserID, &r.ApartmentID,
			&r.FinalScore, &r.TransitScore, &r.InvestmentScore, &r.MomentumScore,
			&r.Explanation, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}

	return records, nil
}
