package repositories

import (
	"context"
	"errors"
	"flight-itinerary-service/internal/domain"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTimetable() domain.Timetable {
	return domain.Timetable{
		Cities: []domain.City{
			{ID: 0, Code: "LIS", Name: "Lisboa", IsBase: true},
			{ID: 1, Code: "MAD", Name: "Madrid", Layover: &domain.Window{Min: 1, Max: 2}},
		},
		Flights: []domain.Flight{
			{Origin: 0, Destination: 1, Day: 0, Cost: 60, Date: "01/06", DepartureTime: "08:00", ArrivalTime: "10:05"},
			{Origin: 1, Destination: 0, Day: 2, Cost: 55, Date: "03/06", DepartureTime: "18:00", ArrivalTime: "18:20"},
		},
	}
}

func newMock(t *testing.T) (*PostgresTimetableRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresTimetableRepository(db), mock
}

func TestInitSchema(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS cities").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS flights").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS itinerary_cache").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_flights_origin_day").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, InitSchema(context.Background(), repo.DB))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSchemaRollsBackOnFailure(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS cities").WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err := InitSchema(context.Background(), repo.DB)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement #1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedTimetable(t *testing.T) {
	repo, mock := newMock(t)
	tt := sampleTimetable()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM flights").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM cities").WillReturnResult(sqlmock.NewResult(0, 0))
	cities := mock.ExpectPrepare("INSERT INTO cities")
	cities.ExpectExec().WithArgs(0, "LIS", "Lisboa", true, nil, nil).WillReturnResult(sqlmock.NewResult(0, 1))
	cities.ExpectExec().WithArgs(1, "MAD", "Madrid", false, 1, 2).WillReturnResult(sqlmock.NewResult(0, 1))
	flights := mock.ExpectPrepare("INSERT INTO flights")
	flights.ExpectExec().WithArgs(0, 0, 1, 0, 60, "01/06", "08:00", "10:05").WillReturnResult(sqlmock.NewResult(0, 1))
	flights.ExpectExec().WithArgs(1, 1, 0, 2, 55, "03/06", "18:00", "18:20").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, SeedTimetable(context.Background(), repo.DB, tt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedTimetableRejectsInvalidTrip(t *testing.T) {
	repo, mock := newMock(t)
	tt := sampleTimetable()
	tt.Cities[1].Layover = nil

	err := SeedTimetable(context.Background(), repo.DB, tt)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedFromJSONBadFile(t *testing.T) {
	repo, _ := newMock(t)
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	err := SeedFromJSON(context.Background(), repo.DB, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse json")
}

func TestLoadTimetable(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM cities").WillReturnRows(
		sqlmock.NewRows([]string{"city_id", "code", "name", "is_base", "layover_min", "layover_max"}).
			AddRow(0, "LIS", "Lisboa", true, nil, nil).
			AddRow(1, "MAD", "Madrid", false, 1, 2),
	)
	mock.ExpectQuery("FROM flights").WillReturnRows(
		sqlmock.NewRows([]string{"flight_id", "origin_id", "destination_id", "day", "cost", "flight_date", "departure_time", "arrival_time"}).
			AddRow(0, 0, 1, 0, 60, "01/06", "08:00", "10:05").
			AddRow(1, 1, 0, 2, 55, "03/06", "18:00", "18:20"),
	)

	tt, err := repo.LoadTimetable(context.Background())
	require.NoError(t, err)
	want := sampleTimetable()
	want.Flights[1].ID = 1
	assert.Equal(t, want, tt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadTimetableQueryError(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("FROM cities").WillReturnError(errors.New("connection reset"))

	_, err := repo.LoadTimetable(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query cities table")
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryTimetableRepository(sampleTimetable())

	tt, err := repo.LoadTimetable(context.Background())
	require.NoError(t, err)
	tt.Cities[1].Layover.Max = 99
	tt.Flights[0].Cost = 1

	again, err := repo.LoadTimetable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleTimetable(), again)
}

func TestMemoryRepositoryHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryTimetableRepository(sampleTimetable()).LoadTimetable(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
