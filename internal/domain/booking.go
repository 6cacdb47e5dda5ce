package domain

import "time"

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

type FieldType string

const (
	FieldBasket FieldType = "basket"
	FieldFutsal FieldType = "futsal"
)

func ValidFieldType(ft string) bool {
	return ft == string(FieldBasket) || ft == string(FieldFutsal)
}

type Booking struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"user_id"`
	FieldType  FieldType     `json:"field_type"`
	Date       time.Time     `json:"date"`
	TimeSlot   string        `json:"time_slot"`
	Status     BookingStatus `json:"status"`
	ApprovedBy *int64        `json:"approved_by,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	User     *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Approver *User `json:"approver,omitempty" gorm:"foreignKey:ApprovedBy"`
}

// Active bookings hold their slot: only pending and approved rows count
// toward the one-booking-per-(field, date, slot) rule.
func (b *Booking) Active() bool {
	return b.Status == BookingPending || b.Status == BookingApproved
}
