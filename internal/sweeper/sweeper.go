package sweeper

import (
	"context"
	"log"
	"time"

	"sportarea/internal/domain"
	"sportarea/internal/repository"
)

type BookingStore interface {
	List(ctx context.Context, f repository.ListFilter) ([]domain.Booking, error)
	DeleteCascade(ctx context.Context, id int64) (string, error)
}

type ArtifactStore interface {
	Remove(relPath string) error
}

// Sweeper retires bookings whose scheduled time has passed. Expiry is
// keyed off the slot's start time: a 10:00 - 11:00 booking is swept at
// 10:01, while nominally still in progress. That matches the system
// this feeds, where a pass stops being claimable once the slot has
// started.
type Sweeper struct {
	bookings  BookingStore
	artifacts ArtifactStore
	interval  time.Duration
	now       func() time.Time
}

func New(bookings BookingStore, artifacts ArtifactStore, interval time.Duration) *Sweeper {
	return &Sweeper{
		bookings:  bookings,
		artifacts: artifacts,
		interval:  interval,
		now:       time.Now,
	}
}

// Run sweeps on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	log.Printf("sweeper: started with interval %v", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				log.Printf("sweeper: sweep failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("sweeper: stopped")
			return
		}
	}
}

// SweepOnce scans every booking regardless of status and deletes the
// expired ones, report first. A malformed row or a failed delete is
// logged and skipped; it never aborts the rest of the sweep. Sweeping
// twice at the same instant is a no-op the second time: deleted rows
// are simply absent from the next scan.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	now := s.now()

	bookings, err := s.bookings.List(ctx, repository.ListFilter{})
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, b := range bookings {
		expiry, ok := s.expiryInstant(b)
		if !ok {
			continue
		}
		if !expiry.Before(now) {
			continue
		}

		artifactPath, err := s.bookings.DeleteCascade(ctx, b.ID)
		if err != nil {
			log.Printf("sweeper: failed to delete booking %d: %v", b.ID, err)
			continue
		}
		if artifactPath != "" && s.artifacts != nil {
			if err := s.artifacts.Remove(artifactPath); err != nil {
				log.Printf("sweeper: failed to remove artifact %s for booking %d: %v", artifactPath, b.ID, err)
			}
		}

		deleted++
		log.Printf("sweeper: deleted booking %d (%s) past its slot start", b.ID, b.Status)
	}

	return deleted, nil
}

func (s *Sweeper) expiryInstant(b domain.Booking) (time.Time, bool) {
	if b.Date.IsZero() || b.TimeSlot == "" {
		log.Printf("sweeper: booking %d has missing date or time slot, skipping", b.ID)
		return time.Time{}, false
	}

	hour, minute, err := domain.SlotStart(b.TimeSlot)
	if err != nil {
		log.Printf("sweeper: booking %d skipped: %v", b.ID, err)
		return time.Time{}, false
	}

	d := b.Date
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location()), true
}
