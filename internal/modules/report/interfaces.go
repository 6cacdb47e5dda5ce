package report

import (
	"context"

	"sportarea/internal/domain"
)

// ReportRepository defines the interface for report storage
type ReportRepository interface {
	Upsert(ctx context.Context, rep *domain.Report) error
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
	List(ctx context.Context, bookingID int64) ([]domain.Report, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Report, error)
	Delete(ctx context.Context, id int64) error
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Renderer turns approved booking data into a finished PDF artifact.
// Implementations must honor ctx cancellation: rendering is the only
// long-latency operation in the system and is bounded by a timeout.
type Renderer interface {
	Render(ctx context.Context, data ReportData) ([]byte, error)
}

// FileStore persists and serves generated artifacts by path relative
// to the uploads root.
type FileStore interface {
	Save(relPath string, data []byte) error
	Remove(relPath string) error
	Abs(relPath string) string
	Exists(relPath string) bool
}
