package booking

type CreateBookingRequest struct {
	FieldType string `json:"field_type" binding:"required"`
	Date      string `json:"date" binding:"required"`
	TimeSlot  string `json:"time_slot" binding:"required"`
}

// UpdateBookingRequest is a sparse patch: a nil field means
// "leave unchanged", a set field is validated and applied.
type UpdateBookingRequest struct {
	FieldType *string `json:"field_type"`
	Date      *string `json:"date"`
	TimeSlot  *string `json:"time_slot"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListQuery struct {
	Status    string `form:"status"`
	FieldType string `form:"field_type"`
	Date      string `form:"date"`
}
