// cmd/tools/seed/main.go
// Seeds a development database with a demo club, courts, operating hours, and
// a handful of reservations so the availability endpoints have data to serve.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/courtflow-mx/courtflow/internal/booking"
	"github.com/courtflow-mx/courtflow/internal/db"
	"github.com/courtflow-mx/courtflow/internal/store"
)

func main() {
	var (
		dbPath = flag.String("db", "data/courtflow.db", "Path to SQLite database")
		date   = flag.String("date", "2025-09-23", "Local date to seed reservations on")
	)
	flag.Parse()

	absDB, err := filepath.Abs(*dbPath)
	if err != nil {
		log.Fatalf("Invalid database path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(absDB), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	database, err := db.New(absDB)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	s := store.NewSQLite(database)
	ctx := context.Background()

	clubID, err := s.CreateClub(ctx, booking.Club{
		Name:    "Club Deportivo Norte",
		City:    "Cancún",
		State:   "Quintana Roo",
		Country: "México",
	})
	if err != nil {
		log.Fatalf("Failed to create club: %v", err)
	}

	courtIDs := make([]int64, 0, 3)
	for _, name := range []string{"Cancha 1", "Cancha 2", "Cancha 3"} {
		id, err := s.CreateCourt(ctx, clubID, name)
		if err != nil {
			log.Fatalf("Failed to create court %s: %v", name, err)
		}
		courtIDs = append(courtIDs, id)
	}

	if err := s.SetOperatingHours(ctx, clubID, booking.OperatingHours{
		OpenTime:            "07:00",
		CloseTime:           "22:00",
		SlotDurationMinutes: 90,
		StepMinutes:         30,
	}); err != nil {
		log.Fatalf("Failed to set operating hours: %v", err)
	}

	reservations := []booking.Reservation{
		{CourtID: courtIDs[0], Date: *date, StartTime: "14:00", EndTime: "15:30", Status: booking.StatusConfirmed},
		{CourtID: courtIDs[0], Date: *date, StartTime: "18:00", EndTime: "19:30", Status: booking.StatusHold},
		{CourtID: courtIDs[1], Date: *date, StartTime: "16:00", EndTime: "17:30", Status: booking.StatusConfirmed, GroupID: 1},
		{CourtID: courtIDs[2], Date: *date, StartTime: "16:00", EndTime: "17:30", Status: booking.StatusConfirmed, GroupID: 1},
		{CourtID: courtIDs[1], Date: *date, StartTime: "09:00", EndTime: "10:30", Status: booking.StatusCancelled},
	}
	for _, r := range reservations {
		if _, err := s.CreateReservation(ctx, clubID, r); err != nil {
			log.Fatalf("Failed to create reservation %s %s: %v", r.Date, r.StartTime, err)
		}
	}

	log.Printf("Seeded club %d with %d courts and %d reservations on %s", clubID, len(courtIDs), len(reservations), *date)
}
