package maintenance

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/courtflow-mx/courtflow/internal/booking"
	"github.com/courtflow-mx/courtflow/internal/booking/tzresolve"
)

// HoldStore is the slice of the store the sweeper needs.
type HoldStore interface {
	ListClubIDs(ctx context.Context) ([]int64, error)
	Club(ctx context.Context, clubID int64) (booking.Club, error)
	DeleteExpiredHolds(ctx context.Context, clubID int64, beforeDate string) (int64, error)
}

// HoldSweeper deletes HOLD reservations whose local day has fully passed.
// "Passed" is judged per club timezone: a hold in Cancún expires on Cancún
// midnight, not server midnight.
type HoldSweeper struct {
	store  HoldStore
	clock  *booking.ClockService
	logger zerolog.Logger
}

func NewHoldSweeper(store HoldStore, clock *booking.ClockService, logger zerolog.Logger) *HoldSweeper {
	if clock == nil {
		clock = booking.NewClockService(nil)
	}
	return &HoldSweeper{store: store, clock: clock, logger: logger}
}

// Sweep removes expired holds across every club and returns the total count.
// A failure on one club is logged and the sweep continues; the next run
// catches anything missed.
func (s *HoldSweeper) Sweep(ctx context.Context) (int64, error) {
	clubIDs, err := s.store.ListClubIDs(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, clubID := range clubIDs {
		club, err := s.store.Club(ctx, clubID)
		if err != nil {
			s.logger.Error().Err(err).Int64("club_id", clubID).Msg("Hold sweep: failed to load club")
			continue
		}

		tz := club.Timezone
		if tz == "" || !tzresolve.IsSupported(tz) {
			tz = tzresolve.SmartDefault(tzresolve.Location{City: club.City, State: club.State, Country: club.Country})
		}
		today := s.clock.TodayIn(tz)

		deleted, err := s.store.DeleteExpiredHolds(ctx, clubID, today)
		if err != nil {
			s.logger.Error().Err(err).Int64("club_id", clubID).Msg("Hold sweep: delete failed")
			continue
		}
		if deleted > 0 {
			s.logger.Info().
				Int64("club_id", clubID).
				Str("timezone", tz).
				Str("before", today).
				Int64("deleted", deleted).
				Msg("Expired holds removed")
		}
		total += deleted
	}
	return total, nil
}
