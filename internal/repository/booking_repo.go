package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"sportarea/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	UserID     int64     `gorm:"column:user_id"`
	FieldType  string    `gorm:"column:field_type"`
	Date       time.Time `gorm:"column:date"`
	TimeSlot   string    `gorm:"column:time_slot"`
	Status     string    `gorm:"column:status"`
	ApprovedBy *int64    `gorm:"column:approved_by"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:         m.ID,
		UserID:     m.UserID,
		FieldType:  domain.FieldType(m.FieldType),
		Date:       m.Date,
		TimeSlot:   m.TimeSlot,
		Status:     domain.BookingStatus(m.Status),
		ApprovedBy: m.ApprovedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:         b.ID,
		UserID:     b.UserID,
		FieldType:  string(b.FieldType),
		Date:       b.Date,
		TimeSlot:   b.TimeSlot,
		Status:     string(b.Status),
		ApprovedBy: b.ApprovedBy,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ListFilter narrows List. Zero values mean "no filter"; Date matches
// the whole calendar day.
type ListFilter struct {
	UserID    int64
	Status    string
	FieldType string
	Date      *time.Time
}

func (r *BookingRepository) List(ctx context.Context, f ListFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})

	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.FieldType != "" {
		q = q.Where("field_type = ?", f.FieldType)
	}
	if f.Date != nil {
		dayStart := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("date >= ? AND date < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	var rows []bookingModel
	tx := q.Order("date ASC, time_slot ASC, id ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// CountActive counts pending/approved bookings for the exact
// (field, date, slot) tuple. excludeID is skipped when nonzero (update
// path re-checking against everyone but itself).
func (r *BookingRepository) CountActive(ctx context.Context, fieldType string, date time.Time, timeSlot string, excludeID int64) (int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("field_type = ? AND date = ? AND time_slot = ?", fieldType, date, timeSlot).
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingApproved)})
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var cnt int64
	tx := q.Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// UpdateFields applies a sparse patch; keys are column names.
func (r *BookingRepository) UpdateFields(ctx context.Context, id int64, updates map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status string, approvedBy *int64) error {
	return r.UpdateFields(ctx, id, map[string]any{
		"status":      status,
		"approved_by": approvedBy,
	})
}

// DeleteCascade removes the bound report row (if any) and the booking
// in one transaction. It returns the orphaned artifact path so the
// caller can unlink the file after the rows are gone.
func (r *BookingRepository) DeleteCascade(ctx context.Context, id int64) (string, error) {
	var artifactPath string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rep reportModel
		res := tx.Where("booking_id = ?", id).First(&rep)
		switch {
		case res.Error == nil:
			artifactPath = rep.FilePath
			if err := tx.Delete(&reportModel{}, rep.ID).Error; err != nil {
				return err
			}
		case !errors.Is(res.Error, gorm.ErrRecordNotFound):
			return res.Error
		}

		res = tx.Delete(&bookingModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return artifactPath, nil
}
