package domain

import "time"

// Report is the single generated artifact bound to an approved booking.
// BookingID is unique: regenerating a report overwrites the prior row.
type Report struct {
	ID          int64     `json:"id"`
	BookingID   int64     `json:"booking_id"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"file_path"`
	GeneratedAt time.Time `json:"generated_at"`

	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}
