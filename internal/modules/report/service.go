package report

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportarea/internal/domain"
)

type Service struct {
	reports       ReportRepository
	bookings      BookingReader
	users         UserReader
	renderer      Renderer
	store         FileStore
	renderTimeout time.Duration
	now           func() time.Time
}

func NewService(
	reports ReportRepository,
	bookings BookingReader,
	users UserReader,
	renderer Renderer,
	store FileStore,
	renderTimeout time.Duration,
) *Service {
	return &Service{
		reports:       reports,
		bookings:      bookings,
		users:         users,
		renderer:      renderer,
		store:         store,
		renderTimeout: renderTimeout,
		now:           time.Now,
	}
}

// Generate renders the PDF pass for an approved booking and binds it
// as the booking's single report. Regenerating overwrites the prior
// artifact reference; the old file is left orphaned on disk. Nothing
// is persisted when the booking is missing, not approved, or the
// render fails.
func (s *Service) Generate(ctx context.Context, bookingID, actorID int64, actorRole string) (*domain.Report, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if b.UserID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingApproved {
		return nil, ErrNotApproved
	}

	data := ReportData{
		BookingID: b.ID,
		FieldType: b.FieldType,
		Date:      b.Date,
		TimeSlot:  b.TimeSlot,
		PrintedAt: s.now(),
	}

	if user, err := s.users.GetByID(ctx, b.UserID); err == nil {
		data.UserName = user.Name
		data.UserPhone = user.Phone
	}
	if b.ApprovedBy != nil {
		if approver, err := s.users.GetByID(ctx, *b.ApprovedBy); err == nil {
			data.ApproverName = approver.Name
		}
	}

	renderCtx, cancel := context.WithTimeout(ctx, s.renderTimeout)
	defer cancel()

	pdf, err := s.renderer.Render(renderCtx, data)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("LAP-%s-%d-%s.pdf", strings.ToUpper(string(b.FieldType)), b.ID, uuid.NewString())
	relPath := filepath.Join("reports", fileName)

	if err := s.store.Save(relPath, pdf); err != nil {
		return nil, err
	}

	rep := &domain.Report{
		BookingID:   b.ID,
		FileName:    fileName,
		FilePath:    relPath,
		GeneratedAt: s.now(),
	}
	if err := s.reports.Upsert(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// Download resolves the artifact for streaming. Only the booking owner
// or an admin may fetch it, and only while the booking is approved.
func (s *Service) Download(ctx context.Context, reportID, actorID int64, actorRole string) (absPath, fileName string, err error) {
	rep, b, err := s.getWithBooking(ctx, reportID)
	if err != nil {
		return "", "", err
	}

	if b.UserID != actorID && actorRole != string(domain.RoleAdmin) {
		return "", "", ErrForbidden
	}
	if b.Status != domain.BookingApproved {
		return "", "", ErrNotApproved
	}
	if !s.store.Exists(rep.FilePath) {
		return "", "", ErrFileMissing
	}

	return s.store.Abs(rep.FilePath), rep.FileName, nil
}

func (s *Service) GetReport(ctx context.Context, reportID, actorID int64, actorRole string) (*domain.Report, error) {
	rep, b, err := s.getWithBooking(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if b.UserID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	return rep, nil
}

func (s *Service) ListReports(ctx context.Context, bookingID int64) ([]domain.Report, error) {
	return s.reports.List(ctx, bookingID)
}

func (s *Service) MyReports(ctx context.Context, userID int64) ([]domain.Report, error) {
	return s.reports.ListByUser(ctx, userID)
}

func (s *Service) DeleteReport(ctx context.Context, reportID, actorID int64, actorRole string) error {
	rep, b, err := s.getWithBooking(ctx, reportID)
	if err != nil {
		return err
	}

	if b.UserID != actorID && actorRole != string(domain.RoleAdmin) {
		return ErrForbidden
	}

	if err := s.store.Remove(rep.FilePath); err != nil {
		return err
	}
	return s.reports.Delete(ctx, reportID)
}

func (s *Service) getWithBooking(ctx context.Context, reportID int64) (*domain.Report, *domain.Booking, error) {
	rep, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	b, err := s.bookings.GetByID(ctx, rep.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// booking deletion cascades to reports, so this should not
			// happen outside of a torn-down test database
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, err
	}

	return rep, b, nil
}
