package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sportarea/internal/domain"
)

func TestPDFRenderer_ProducesPDF(t *testing.T) {
	r := NewPDFRenderer()

	adminName := "Admin"
	pdf, err := r.Render(context.Background(), ReportData{
		BookingID:    10,
		FieldType:    domain.FieldBasket,
		Date:         time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:     "10:00 - 11:00",
		UserName:     "Арман Сериков",
		UserPhone:    "87001234567",
		ApproverName: adminName,
		PrintedAt:    time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestPDFRenderer_CancelledContext(t *testing.T) {
	r := NewPDFRenderer()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, ReportData{BookingID: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
