// internal/storage/postgres_test.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apt-recommender/internal/common/logger"
	"apt-recommender/internal/models"
	"apt-recommender/internal/recommend"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db, logger.NewTestLogger(t)), mock
}

func candidateColumns() []string {
	return []string{
		"id", "name", "district", "neighborhood", "lat", "lng",
		"built_year", "households", "repr_area_m2", "price", "area_m2",
	}
}

// ==========================
// Candidate Pool Tests
// ==========================

func TestFilteredCandidates(t *testing.T) {
	store, mock := createTestStore(t)

	rows := sqlmock.NewRows(candidateColumns()).
		AddRow(1, "Gangnam Hills", "Gangnam-gu", "Yeoksam-dong", 37.5, 127.03, 2015, 2000, 84.9, 1_200_000_000, 84.9).
		AddRow(2, "Riverside Towers", "Gangnam-gu", "Apgujeong-dong", 37.52, 127.02, 0, 0, 0.0, 990_000_000, 76.5)
	mock.ExpectQuery(`JOIN LATERAL`).
		WithArgs(int64(1_500_000_000), 60.0, "Gangnam-gu").
		WillReturnRows(rows)

	candidates, err := store.FilteredCandidates(context.Background(), recommend.CandidateFilter{
		MaxPrice:  1_500_000_000,
		MinAreaM2: 60,
		District:  "Gangnam-gu",
	})

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, int64(1), candidates[0].ID)
	assert.Equal(t, "Gangnam Hills", candidates[0].Name)
	assert.Equal(t, 2015, candidates[0].BuiltYear)
	assert.Equal(t, 2000, candidates[0].Households)
	assert.Equal(t, int64(1_200_000_000), candidates[0].LatestPrice)
	assert.Equal(t, 37.5, candidates[0].Location.Lat)

	// COALESCEd attributes come back as zero, the "unknown" sentinel.
	assert.Equal(t, 0, candidates[1].BuiltYear)
	assert.Equal(t, 0, candidates[1].Households)
	assert.Equal(t, 0.0, candidates[1].ReprAreaM2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilteredCandidatesEmpty(t *testing.T) {
	store, mock := createTestStore(t)

	mock.ExpectQuery(`JOIN LATERAL`).
		WithArgs(int64(100), 200.0, "").
		WillReturnRows(sqlmock.NewRows(candidateColumns()))

	candidates, err := store.FilteredCandidates(context.Background(), recommend.CandidateFilter{
		MaxPrice:  100,
		MinAreaM2: 200,
	})

	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilteredCandidatesQueryError(t *testing.T) {
	store, mock := createTestStore(t)

	mock.ExpectQuery(`JOIN LATERAL`).
		WillReturnError(errors.New("connection reset"))

	candidates, err := store.FilteredCandidates(context.Background(), recommend.CandidateFilter{MaxPrice: 1, MinAreaM2: 1})

	assert.Error(t, err)
	assert.Nil(t, candidates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Transaction History Tests
// ==========================

func TestApartmentTransactions(t *testing.T) {
	store, mock := createTestStore(t)

	newer := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "apartment_id", "contract_date", "price", "area_m2"}).
		AddRow(11, 1, newer, 1_200_000_000, 84.9).
		AddRow(10, 1, older, 1_150_000_000, 84.9)
	mock.ExpectQuery(`FROM transactions`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	transactions, err := store.ApartmentTransactions(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, int64(11), transactions[0].ID)
	assert.Equal(t, newer, transactions[0].ContractDate)
	assert.Equal(t, int64(1_150_000_000), transactions[1].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Station Lookup Tests
// ==========================

func TestNearbyStations(t *testing.T) {
	store, mock := createTestStore(t)

	rows := sqlmock.NewRows([]string{"id", "name", "line", "lat", "lng", "is_transfer"}).
		AddRow(1, "Gangnam", "Line 2", 37.4979, 127.0276, true).
		AddRow(2, "Yeoksam", "Line 2", 37.5006, 127.0364, false)
	mock.ExpectQuery(`FROM stations`).
		WithArgs(37.5, 127.03, stationSearchBoxDeg).
		WillReturnRows(rows)

	stations, err := store.NearbyStations(context.Background(), models.Coordinate{Lat: 37.5, Lng: 127.03})

	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, "Gangnam", stations[0].Name)
	assert.True(t, stations[0].IsTransfer)
	assert.False(t, stations[1].IsTransfer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Result Sink Tests
// ==========================

func TestSaveRun(t *testing.T) {
	store, mock := createTestStore(t)

	results := []models.ScoredApartment{
		{ApartmentID: 1, FinalScore: 82, TransitScore: 57, InvestmentScore: 80, MomentumScore: 100, Explanation: "top pick"},
		{ApartmentID: 3, FinalScore: 64, TransitScore: 54, InvestmentScore: 70, MomentumScore: 67, Explanation: "runner up"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO recommendations`).
		WithArgs("run-1", int64(42), int64(1), 82, 57, 80, 100, "top pick").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO recommendations`).
		WithArgs("run-1", int64(42), int64(3), 64, 54, 70, 67, "runner up").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := store.SaveRun(context.Background(), "run-1", 42, models.ScoringRequest{}, results)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRunRollsBackOnInsertFailure(t *testing.T) {
	store, mock := createTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO recommendations`).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := store.SaveRun(context.Background(), "run-1", 42, models.ScoringRequest{}, []models.ScoredApartment{{ApartmentID: 1}})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Preference and History Tests
// ==========================

func TestSaveUserPreference(t *testing.T) {
	store, mock := createTestStore(t)

	mock.ExpectExec(`INSERT INTO user_preferences`).
		WithArgs(int64(42), int64(1_500_000_000), 60.0, "stable", 3, "Gangnam-gu").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.SaveUserPreference(context.Background(), 42, models.ScoringRequest{
		Budget:            1_500_000_000,
		MinAreaM2:         60,
		Style:             models.StyleStable,
		TransitImportance: 3,
		PreferredDistrict: "Gangnam-gu",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRecommendations(t *testing.T) {
	store, mock := createTestStore(t)

	createdAt := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "run_id", "user_id", "apartment_id", "final_score",
		"transit_score", "investment_score", "momentum_score", "explanation", "created_at",
	}).AddRow(5, "run-1", 42, 1, 82, 57, 80, 100, "top pick", createdAt)
	mock.ExpectQuery(`FROM recommendations`).
		WithArgs(int64(42), 10).
		WillReturnRows(rows)

	records, err := store.UserRecommendations(context.Background(), 42, 10)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "run-1", records[0].RunID)
	assert.Equal(t, 82, records[0].FinalScore)
	assert.Equal(t, createdAt, records[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRecommendationsDefaultLimit(t *testing.T) {
	store, mock := createTestStore(t)

	mock.ExpectQuery(`FROM recommendations`).
		WithArgs(int64(42), 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "run_id", "user_id", "apartment_id", "final_score",
			"transit_score", "investment_score", "momentum_score", "explanation", "created_at",
		}))

	records, err := store.UserRecommendations(context.Background(), 42, 0)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Apartment Detail Tests
// ==========================

func TestApartmentDetail(t *testing.T) {
	store, mock := createTestStore(t)

	aptRows := sqlmock.NewRows([]string{
		"id", "name", "district", "neighborhood", "lat", "lng",
		"built_year", "households", "repr_area_m2",
	}).AddRow(1, "Gangnam Hills", "Gangnam-gu", "Yeoksam-dong", 37.5, 127.03, 2015, 2000, 84.9)
	mock.ExpectQuery(`FROM apartments`).
		WithArgs(int64(1)).
		WillReturnRows(aptRows)

	txDate := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM transactions`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "apartment_id", "contract_date", "price", "area_m2"}).
			AddRow(11, 1, txDate, 1_200_000_000, 84.9))

	mock.ExpectQuery(`FROM stations`).
		WithArgs(37.5, 127.03, stationSearchBoxDeg).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "line", "lat", "lng", "is_transfer"}).
			AddRow(1, "Gangnam", "Line 2", 37.4979, 127.0276, true))

	detail, err := store.ApartmentDetail(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Gangnam Hills", detail.Apartment.Name)
	require.Len(t, detail.Transactions, 1)
	require.Len(t, detail.Stations, 1)
	assert.Equal(t, "Gangnam", detail.Stations[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApartmentDetailNotFound(t *testing.T) {
	store, mock := createTestStore(t)

	mock.ExpectQuery(`FROM apartments`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	detail, err := store.ApartmentDetail(context.Background(), 99)

	assert.Nil(t, detail)
	assert.ErrorIs(t, err, ErrApartmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
