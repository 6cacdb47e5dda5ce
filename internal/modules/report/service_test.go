package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"sportarea/internal/domain"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Upsert(ctx context.Context, rep *domain.Report) error {
	args := m.Called(ctx, rep)
	if rep != nil && args.Error(0) == nil {
		rep.ID = 555
	}
	return args.Error(0)
}

func (m *MockReportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context, bookingID int64) ([]domain.Report, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Report, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type fakeRenderer struct {
	err  error
	data []ReportData
}

func (r *fakeRenderer) Render(ctx context.Context, data ReportData) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.data = append(r.data, data)
	return []byte("%PDF-1.3 fake"), nil
}

type fakeFileStore struct {
	saved   map[string][]byte
	removed []string
	saveErr error
	missing bool
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{saved: make(map[string][]byte)}
}

func (s *fakeFileStore) Save(relPath string, data []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[relPath] = data
	return nil
}

func (s *fakeFileStore) Remove(relPath string) error {
	s.removed = append(s.removed, relPath)
	return nil
}

func (s *fakeFileStore) Abs(relPath string) string { return "/uploads/" + relPath }

func (s *fakeFileStore) Exists(relPath string) bool { return !s.missing }

func approvedBooking() *domain.Booking {
	adminID := int64(3)
	return &domain.Booking{
		ID:         10,
		UserID:     7,
		FieldType:  domain.FieldFutsal,
		Date:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:   "10:00 - 11:00",
		Status:     domain.BookingApproved,
		ApprovedBy: &adminID,
	}
}

func newReportService(reports *MockReportRepository, bookings *MockBookingReader, users *MockUserReader, renderer Renderer, store FileStore) *Service {
	return NewService(reports, bookings, users, renderer, store, 5*time.Second)
}

func TestGenerate_Success(t *testing.T) {
	mockReports := new(MockReportRepository)
	mockBookings := new(MockBookingReader)
	mockUsers := new(MockUserReader)
	renderer := &fakeRenderer{}
	store := newFakeFileStore()

	b := approvedBooking()
	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(b, nil)
	mockUsers.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.User{ID: 7, Name: "Арман Сериков", Phone: "87001234567"}, nil)
	mockUsers.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.User{ID: 3, Name: "Admin"}, nil)
	mockReports.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	svc := newReportService(mockReports, mockBookings, mockUsers, renderer, store)

	rep, err := svc.Generate(context.Background(), 10, 7, "user")

	assert.NoError(t, err)
	assert.Equal(t, int64(10), rep.BookingID)
	assert.True(t, strings.HasPrefix(rep.FileName, "LAP-FUTSAL-10-"), rep.FileName)
	assert.True(t, strings.HasSuffix(rep.FileName, ".pdf"), rep.FileName)
	assert.Len(t, store.saved, 1)
	assert.Contains(t, store.saved, rep.FilePath)

	if assert.Len(t, renderer.data, 1) {
		assert.Equal(t, "Арман Сериков", renderer.data[0].UserName)
		assert.Equal(t, "Admin", renderer.data[0].ApproverName)
	}
	mockReports.AssertExpectations(t)
}

func TestGenerate_NotApproved(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.BookingPending, domain.BookingRejected} {
		mockReports := new(MockReportRepository)
		mockBookings := new(MockBookingReader)
		store := newFakeFileStore()

		b := approvedBooking()
		b.Status = status
		b.ApprovedBy = nil
		mockBookings.On("GetByID", mock.Anything, int64(10)).Return(b, nil)

		svc := newReportService(mockReports, mockBookings, new(MockUserReader), &fakeRenderer{}, store)

		_, err := svc.Generate(context.Background(), 10, 7, "user")

		assert.ErrorIs(t, err, ErrNotApproved, string(status))
		assert.Empty(t, store.saved)
		mockReports.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	}
}

func TestGenerate_BookingNotFound(t *testing.T) {
	mockBookings := new(MockBookingReader)
	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := newReportService(new(MockReportRepository), mockBookings, new(MockUserReader), &fakeRenderer{}, newFakeFileStore())

	_, err := svc.Generate(context.Background(), 42, 7, "user")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGenerate_StrangerForbidden(t *testing.T) {
	mockBookings := new(MockBookingReader)
	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(approvedBooking(), nil)

	svc := newReportService(new(MockReportRepository), mockBookings, new(MockUserReader), &fakeRenderer{}, newFakeFileStore())

	_, err := svc.Generate(context.Background(), 10, 8, "user")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGenerate_AdminAllowedForAnyBooking(t *testing.T) {
	mockReports := new(MockReportRepository)
	mockBookings := new(MockBookingReader)
	mockUsers := new(MockUserReader)

	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(approvedBooking(), nil)
	mockUsers.On("GetByID", mock.Anything, mock.Anything).Return(&domain.User{Name: "x"}, nil)
	mockReports.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	svc := newReportService(mockReports, mockBookings, mockUsers, &fakeRenderer{}, newFakeFileStore())

	_, err := svc.Generate(context.Background(), 10, 3, "admin")
	assert.NoError(t, err)
}

func TestGenerate_RenderFailurePersistsNothing(t *testing.T) {
	mockReports := new(MockReportRepository)
	mockBookings := new(MockBookingReader)
	mockUsers := new(MockUserReader)
	store := newFakeFileStore()

	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(approvedBooking(), nil)
	mockUsers.On("GetByID", mock.Anything, mock.Anything).Return(&domain.User{Name: "x"}, nil)

	svc := newReportService(mockReports, mockBookings, mockUsers, &fakeRenderer{err: errors.New("render blew up")}, store)

	_, err := svc.Generate(context.Background(), 10, 7, "user")

	assert.Error(t, err)
	assert.Empty(t, store.saved)
	mockReports.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestDownload_Success(t *testing.T) {
	mockReports := new(MockReportRepository)
	mockBookings := new(MockBookingReader)

	rep := &domain.Report{ID: 1, BookingID: 10, FileName: "LAP-FUTSAL-10-x.pdf", FilePath: "reports/LAP-FUTSAL-10-x.pdf"}
	mockReports.On("GetByID", mock.Anything, int64(1)).Return(rep, nil)
	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(approvedBooking(), nil)

	svc := newReportService(mockReports, mockBookings, new(MockUserReader), &fakeRenderer{}, newFakeFileStore())

	absPath, fileName, err := svc.Download(context.Background(), 1, 7, "user")

	assert.NoError(t, err)
	assert.Equal(t, "/uploads/reports/LAP-FUTSAL-10-x.pdf", absPath)
	assert.Equal(t, "LAP-FUTSAL-10-x.pdf", fileName)
}

func TestDownload_FileMissing(t *testing.T) {
	mockReports := new(MockReportRepository)
	mockBookings := new(MockBookingReader)
	store := newFakeFileStore()
	store.missing = true

	rep := &domain.Report{ID: 1, BookingID: 10, FilePath: "reports/gone.pdf"}
	mockReports.On("GetByID", mock.Anything, int64(1)).Return(rep, nil)
	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(approvedBooking(), nil)

	svc := newReportService(mockReports, mockBookings, new(MockUserReader), &fakeRenderer{}, store)

	_, _, err := svc.Download(context.Background(), 1, 7, "user")
	assert.ErrorIs(t, err, ErrFileMissing)
}

func TestDownload_GatedOnApprovedBooking(t *testing.T) {
	mockReports := new(MockReportRepository)
	mockBookings := new(MockBookingReader)

	b := approvedBooking()
	b.Status = domain.BookingRejected

	rep := &domain.Report{ID: 1, BookingID: 10, FilePath: "reports/x.pdf"}
	mockReports.On("GetByID", mock.Anything, int64(1)).Return(rep, nil)
	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(b, nil)

	svc := newReportService(mockReports, mockBookings, new(MockUserReader), &fakeRenderer{}, newFakeFileStore())

	_, _, err := svc.Download(context.Background(), 1, 7, "user")
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestDownload_StrangerForbidden(t *testing.T) {
	mockReports := new(MockReportRepository)
	mockBookings := new(MockBookingReader)

	rep := &domain.Report{ID: 1, BookingID: 10, FilePath: "reports/x.pdf"}
	mockReports.On("GetByID", mock.Anything, int64(1)).Return(rep, nil)
	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(approvedBooking(), nil)

	svc := newReportService(mockReports, mockBookings, new(MockUserReader), &fakeRenderer{}, newFakeFileStore())

	_, _, err := svc.Download(context.Background(), 1, 8, "user")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetReport_NotFound(t *testing.T) {
	mockReports := new(MockReportRepository)
	mockReports.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := newReportService(mockReports, new(MockBookingReader), new(MockUserReader), &fakeRenderer{}, newFakeFileStore())

	_, err := svc.GetReport(context.Background(), 404, 7, "admin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReport_RemovesFileThenRow(t *testing.T) {
	mockReports := new(MockReportRepository)
	mockBookings := new(MockBookingReader)
	store := newFakeFileStore()

	rep := &domain.Report{ID: 1, BookingID: 10, FilePath: "reports/x.pdf"}
	mockReports.On("GetByID", mock.Anything, int64(1)).Return(rep, nil)
	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(approvedBooking(), nil)
	mockReports.On("Delete", mock.Anything, int64(1)).Return(nil)

	svc := newReportService(mockReports, mockBookings, new(MockUserReader), &fakeRenderer{}, store)

	err := svc.DeleteReport(context.Background(), 1, 7, "user")

	assert.NoError(t, err)
	assert.Equal(t, []string{"reports/x.pdf"}, store.removed)
	mockReports.AssertExpectations(t)
}
