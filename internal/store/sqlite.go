// Package store implements the booking.Store port over SQLite. The engine
// only reads through it; the write helpers exist for the booking-creation
// flow and the maintenance sweeper.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/courtflow-mx/courtflow/internal/booking"
	"github.com/courtflow-mx/courtflow/internal/db"
)

type SQLiteStore struct {
	db *db.DB
}

func NewSQLite(database *db.DB) *SQLiteStore {
	return &SQLiteStore{db: database}
}

func (s *SQLiteStore) Club(ctx context.Context, clubID int64) (booking.Club, error) {
	var club booking.Club
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, city, state, country, timezone FROM clubs WHERE id = ?`,
		clubID,
	).Scan(&club.ID, &club.Name, &club.City, &club.State, &club.Country, &club.Timezone)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Club{}, &booking.NotFoundError{Resource: "club", ID: clubID}
	}
	if err != nil {
		return booking.Club{}, fmt.Errorf("querying club %d: %w", clubID, err)
	}
	return club, nil
}

func (s *SQLiteStore) Court(ctx context.Context, clubID, courtID int64) (booking.Court, error) {
	var court booking.Court
	err := s.db.QueryRowContext(ctx,
		`SELECT id, club_id, name FROM courts WHERE id = ? AND club_id = ?`,
		courtID, clubID,
	).Scan(&court.ID, &court.ClubID, &court.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Court{}, &booking.NotFoundError{Resource: "court", ID: courtID}
	}
	if err != nil {
		return booking.Court{}, fmt.Errorf("querying court %d: %w", courtID, err)
	}
	return court, nil
}

func (s *SQLiteStore) OperatingHours(ctx context.Context, clubID int64) (booking.OperatingHours, error) {
	var hours booking.OperatingHours
	err := s.db.QueryRowContext(ctx,
		`SELECT open_time, close_time, slot_duration_minutes, step_minutes FROM club_hours WHERE club_id = ?`,
		clubID,
	).Scan(&hours.OpenTime, &hours.CloseTime, &hours.SlotDurationMinutes, &hours.StepMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.OperatingHours{}, &booking.NotFoundError{Resource: "club", ID: clubID}
	}
	if err != nil {
		return booking.OperatingHours{}, fmt.Errorf("querying hours for club %d: %w", clubID, err)
	}
	return hours, nil
}

func (s *SQLiteStore) ReservationsForCourt(ctx context.Context, clubID, courtID int64, localDate string) ([]booking.Reservation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, court_id, date, start_time, end_time, status, COALESCE(group_id, 0)
		 FROM reservations
		 WHERE club_id = ? AND court_id = ? AND date = ?
		 ORDER BY start_time`,
		clubID, courtID, localDate,
	)
	if err != nil {
		return nil, fmt.Errorf("querying reservations for court %d on %s: %w", courtID, localDate, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

func (s *SQLiteStore) ReservationsForCourts(ctx context.Context, clubID int64, courtIDs []int64, localDate string) (map[int64][]booking.Reservation, error) {
	byCourt := make(map[int64][]booking.Reservation, len(courtIDs))
	if len(courtIDs) == 0 {
		return byCourt, nil
	}

	placeholders := strings.Repeat("?,", len(courtIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(courtIDs)+2)
	args = append(args, clubID)
	for _, id := range courtIDs {
		args = append(args, id)
	}
	args = append(args, localDate)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, court_id, date, start_time, end_time, status, COALESCE(group_id, 0)
		 FROM reservations
		 WHERE club_id = ? AND court_id IN (`+placeholders+`) AND date = ?
		 ORDER BY court_id, start_time`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("querying reservations for %d courts on %s: %w", len(courtIDs), localDate, err)
	}
	defer rows.Close()

	reservations, err := scanReservations(rows)
	if err != nil {
		return nil, err
	}
	for _, courtID := range courtIDs {
		byCourt[courtID] = nil
	}
	for _, r := range reservations {
		byCourt[r.CourtID] = append(byCourt[r.CourtID], r)
	}
	return byCourt, nil
}

func scanReservations(rows *sql.Rows) ([]booking.Reservation, error) {
	var out []booking.Reservation
	for rows.Next() {
		var r booking.Reservation
		if err := rows.Scan(&r.ID, &r.CourtID, &r.Date, &r.StartTime, &r.EndTime, &r.Status, &r.GroupID); err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading reservations: %w", err)
	}
	return out, nil
}

// CreateClub inserts a club and returns its id. Used by seeding and tests.
func (s *SQLiteStore) CreateClub(ctx context.Context, club booking.Club) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO clubs (name, city, state, country, timezone) VALUES (?, ?, ?, ?, ?)`,
		club.Name, club.City, club.State, club.Country, club.Timezone,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting club: %w", err)
	}
	return res.LastInsertId()
}

// CreateCourt inserts a court for a club and returns its id.
func (s *SQLiteStore) CreateCourt(ctx context.Context, clubID int64, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO courts (club_id, name) VALUES (?, ?)`,
		clubID, name,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting court: %w", err)
	}
	return res.LastInsertId()
}

// SetOperatingHours upserts a club's slot configuration.
func (s *SQLiteStore) SetOperatingHours(ctx context.Context, clubID int64, hours booking.OperatingHours) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO club_hours (club_id, open_time, close_time, slot_duration_minutes, step_minutes)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(club_id) DO UPDATE SET
		   open_time = excluded.open_time,
		   close_time = excluded.close_time,
		   slot_duration_minutes = excluded.slot_duration_minutes,
		   step_minutes = excluded.step_minutes`,
		clubID, hours.OpenTime, hours.CloseTime, hours.SlotDurationMinutes, hours.StepMinutes,
	)
	if err != nil {
		return fmt.Errorf("upserting hours for club %d: %w", clubID, err)
	}
	return nil
}

// CreateReservation inserts a reservation. The unique slot index makes this
// the authoritative conflict check at commit time: a duplicate slot insert
// fails here even if the optimistic pre-check raced.
func (s *SQLiteStore) CreateReservation(ctx context.Context, clubID int64, r booking.Reservation) (int64, error) {
	var groupID any
	if r.GroupID != 0 {
		groupID = r.GroupID
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO reservations (club_id, court_id, date, start_time, end_time, status, group_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		clubID, r.CourtID, r.Date, r.StartTime, r.EndTime, string(r.Status), groupID,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting reservation: %w", err)
	}
	return res.LastInsertId()
}

// ListClubIDs returns every club id, for the maintenance sweeper.
func (s *SQLiteStore) ListClubIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM clubs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing clubs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning club id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading club ids: %w", err)
	}
	return ids, nil
}

// DeleteExpiredHolds removes HOLD reservations for a club dated strictly
// before the given local date and reports how many were removed.
func (s *SQLiteStore) DeleteExpiredHolds(ctx context.Context, clubID int64, beforeDate string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM reservations WHERE club_id = ? AND status = 'HOLD' AND date < ?`,
		clubID, beforeDate,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting expired holds for club %d: %w", clubID, err)
	}
	return res.RowsAffected()
}
