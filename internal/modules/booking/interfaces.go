package booking

import (
	"context"
	"time"

	"sportarea/internal/domain"
	"sportarea/internal/repository"
)

// BookingRepository defines the interface for booking storage
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, f repository.ListFilter) ([]domain.Booking, error)
	CountActive(ctx context.Context, fieldType string, date time.Time, timeSlot string, excludeID int64) (int64, error)
	UpdateFields(ctx context.Context, id int64, updates map[string]any) error
	UpdateStatus(ctx context.Context, id int64, status string, approvedBy *int64) error
	DeleteCascade(ctx context.Context, id int64) (string, error)
}

// EventSink receives booking lifecycle events. Delivery is
// fire-and-forget: a sink failure never fails the request.
type EventSink interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
	NotifyBookingDecided(ctx context.Context, b *domain.Booking) error
	NotifyBookingDeleted(ctx context.Context, bookingID int64) error
}

// ArtifactStore removes generated report files orphaned by a booking
// deletion.
type ArtifactStore interface {
	Remove(relPath string) error
}
