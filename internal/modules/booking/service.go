package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"sportarea/internal/domain"
	"sportarea/internal/repository"
)

type Service struct {
	bookings  BookingRepository
	artifacts ArtifactStore
	events    EventSink
	now       func() time.Time
}

func NewService(bookings BookingRepository, artifacts ArtifactStore, events EventSink) *Service {
	return &Service{
		bookings:  bookings,
		artifacts: artifacts,
		events:    events,
		now:       time.Now,
	}
}

// parseDate accepts a calendar day ("2006-01-02") or a full RFC 3339
// timestamp; either way the time of day is discarded.
func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return midnightUTC(d), nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return midnightUTC(d), nil
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if !domain.ValidFieldType(req.FieldType) {
		return nil, ErrValidation
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	if date.Before(midnightUTC(s.now())) {
		return nil, ErrPastDate
	}
	if isWeekend(date) {
		return nil, ErrWeekend
	}
	if !domain.ValidTimeSlot(req.TimeSlot) {
		return nil, ErrInvalidSlot
	}

	cnt, err := s.bookings.CountActive(ctx, req.FieldType, date, req.TimeSlot, 0)
	if err != nil {
		return nil, err
	}
	if cnt > 0 {
		return nil, ErrSlotTaken
	}

	b := &domain.Booking{
		UserID:    userID,
		FieldType: domain.FieldType(req.FieldType),
		Date:      date,
		TimeSlot:  req.TimeSlot,
		Status:    domain.BookingPending,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_active_slot" {
				return nil, ErrSlotTaken
			}
		}
		return nil, err
	}

	if s.events != nil {
		_ = s.events.NotifyBookingCreated(ctx, b)
	}

	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, id, actorID int64, actorRole string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.UserID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListBookings returns everything for admins, honoring the optional
// filters; any other caller only ever sees their own rows.
func (s *Service) ListBookings(ctx context.Context, actorID int64, actorRole string, q ListQuery) ([]domain.Booking, error) {
	f := repository.ListFilter{
		Status:    q.Status,
		FieldType: q.FieldType,
	}

	if q.Date != "" {
		d, err := parseDate(q.Date)
		if err != nil {
			return nil, ErrValidation
		}
		f.Date = &d
	}

	if actorRole != string(domain.RoleAdmin) {
		f.UserID = actorID
	}

	return s.bookings.List(ctx, f)
}

func (s *Service) MyBookings(ctx context.Context, userID int64, status string) ([]domain.Booking, error) {
	return s.bookings.List(ctx, repository.ListFilter{
		UserID: userID,
		Status: status,
	})
}

// UpdateBooking applies a sparse patch to a pending booking owned by
// the caller. Changed dates are re-checked against the past-date rule
// only: the weekend rule is enforced at creation time, not here.
// Changed slots must come from the full catalog. The prospective
// (field, date, slot) tuple is re-run through the conflict check with
// the booking itself excluded.
func (s *Service) UpdateBooking(ctx context.Context, id, actorID int64, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.UserID != actorID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingPending {
		return nil, ErrAlreadyDecided
	}

	updates := map[string]any{}

	fieldType := string(b.FieldType)
	if req.FieldType != nil {
		if !domain.ValidFieldType(*req.FieldType) {
			return nil, ErrValidation
		}
		fieldType = *req.FieldType
		updates["field_type"] = fieldType
	}

	date := b.Date
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			return nil, ErrValidation
		}
		if d.Before(midnightUTC(s.now())) {
			return nil, ErrPastDate
		}
		date = d
		updates["date"] = date
	}

	timeSlot := b.TimeSlot
	if req.TimeSlot != nil {
		if !domain.ValidTimeSlot(*req.TimeSlot) {
			return nil, ErrInvalidSlot
		}
		timeSlot = *req.TimeSlot
		updates["time_slot"] = timeSlot
	}

	if len(updates) == 0 {
		return b, nil
	}

	cnt, err := s.bookings.CountActive(ctx, fieldType, date, timeSlot, id)
	if err != nil {
		return nil, err
	}
	if cnt > 0 {
		return nil, ErrSlotTaken
	}

	if err := s.bookings.UpdateFields(ctx, id, updates); err != nil {
		return nil, err
	}

	return s.bookings.GetByID(ctx, id)
}

// DecideBooking moves a pending booking to approved or rejected. The
// decision is terminal: a second call fails with ErrAlreadyDecided, so
// a rejected booking can never be quietly re-approved.
func (s *Service) DecideBooking(ctx context.Context, id, actorID int64, actorRole, status string) (*domain.Booking, error) {
	if actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	if status != string(domain.BookingApproved) && status != string(domain.BookingRejected) {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.Status != domain.BookingPending {
		return nil, ErrAlreadyDecided
	}

	var approvedBy *int64
	if status == string(domain.BookingApproved) {
		approvedBy = &actorID
	}

	if err := s.bookings.UpdateStatus(ctx, id, status, approvedBy); err != nil {
		return nil, err
	}

	updated, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.NotifyBookingDecided(ctx, updated)
	}

	return updated, nil
}

// DeleteBooking removes a booking in any state, report first so no
// orphan report row survives. Allowed for the requester and admins.
func (s *Service) DeleteBooking(ctx context.Context, id, actorID int64, actorRole string) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if b.UserID != actorID && actorRole != string(domain.RoleAdmin) {
		return ErrForbidden
	}

	artifactPath, err := s.bookings.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}

	if artifactPath != "" && s.artifacts != nil {
		if err := s.artifacts.Remove(artifactPath); err != nil {
			log.Printf("booking %d: failed to remove report artifact %s: %v", id, artifactPath, err)
		}
	}

	if s.events != nil {
		_ = s.events.NotifyBookingDeleted(ctx, id)
	}

	return nil
}
