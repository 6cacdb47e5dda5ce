package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sportarea/internal/domain"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type reportModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	BookingID   int64     `gorm:"column:booking_id"`
	FileName    string    `gorm:"column:file_name"`
	FilePath    string    `gorm:"column:file_path"`
	GeneratedAt time.Time `gorm:"column:generated_at"`
}

func (reportModel) TableName() string { return "reports" }

func toDomainReport(m reportModel) *domain.Report {
	return &domain.Report{
		ID:          m.ID,
		BookingID:   m.BookingID,
		FileName:    m.FileName,
		FilePath:    m.FilePath,
		GeneratedAt: m.GeneratedAt,
	}
}

// Upsert keeps one report row per booking: a second generation for the
// same booking overwrites the artifact reference and timestamp.
func (r *ReportRepository) Upsert(ctx context.Context, rep *domain.Report) error {
	m := reportModel{
		BookingID:   rep.BookingID,
		FileName:    rep.FileName,
		FilePath:    rep.FilePath,
		GeneratedAt: rep.GeneratedAt,
	}

	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "booking_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"file_name", "file_path", "generated_at"}),
	}).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}

	// the conflict path keeps the original row id
	var saved reportModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", rep.BookingID).First(&saved).Error; err != nil {
		return err
	}
	*rep = *toDomainReport(saved)
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	var m reportModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReport(m), nil
}

func (r *ReportRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Report, error) {
	var m reportModel
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReport(m), nil
}

// List returns reports newest first; bookingID narrows to one booking
// when nonzero.
func (r *ReportRepository) List(ctx context.Context, bookingID int64) ([]domain.Report, error) {
	q := r.db.WithContext(ctx).Model(&reportModel{})
	if bookingID != 0 {
		q = q.Where("booking_id = ?", bookingID)
	}

	var rows []reportModel
	tx := q.Order("generated_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Report, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReport(m))
	}
	return out, nil
}

func (r *ReportRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Report, error) {
	var rows []reportModel
	tx := r.db.WithContext(ctx).
		Joins("JOIN bookings ON bookings.id = reports.booking_id").
		Where("bookings.user_id = ?", userID).
		Order("reports.generated_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Report, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReport(m))
	}
	return out, nil
}

func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&reportModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
