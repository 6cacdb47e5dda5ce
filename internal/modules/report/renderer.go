package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"sportarea/internal/domain"
)

// ReportData is everything the renderer needs about an approved
// booking. The service assembles it so the renderer stays free of
// storage concerns.
type ReportData struct {
	BookingID    int64
	FieldType    domain.FieldType
	Date         time.Time
	TimeSlot     string
	UserName     string
	UserPhone    string
	ApproverName string
	PrintedAt    time.Time
}

func fieldLabel(ft domain.FieldType) (name, code string) {
	if ft == domain.FieldBasket {
		return "Basketball Court", "LAP-B"
	}
	return "Futsal Court", "LAP-F"
}

// PDFRenderer produces the fixed-size landscape booking pass the
// facility prints at the gate.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render builds the page on a goroutine so a cancelled or timed-out
// ctx returns immediately without a partial artifact.
func (r *PDFRenderer) Render(ctx context.Context, data ReportData) ([]byte, error) {
	type result struct {
		pdf []byte
		err error
	}

	done := make(chan result, 1)
	go func() {
		pdf, err := r.build(data)
		done <- result{pdf: pdf, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.pdf, res.err
	}
}

func (r *PDFRenderer) build(data ReportData) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "in",
		Size:    gofpdf.SizeType{Wd: 10.67, Ht: 6.25},
	})
	pdf.SetMargins(0.6, 0.6, 0.6)
	pdf.AddPage()

	fieldName, fieldCode := fieldLabel(data.FieldType)

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 0.5, "Sport Area Booking Pass", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 0.3, fmt.Sprintf("Printed on %s", data.PrintedAt.Format("02 January 2006")), "", 1, "C", false, 0, "")
	pdf.Ln(0.3)

	rows := [][2]string{
		{"Booking ID", fmt.Sprintf("%d", data.BookingID)},
		{"Name", data.UserName},
		{"Phone", orDash(data.UserPhone)},
		{"Field", fmt.Sprintf("%s (%s)", fieldName, fieldCode)},
		{"Date", data.Date.Format("Monday, 02 January 2006")},
		{"Time", data.TimeSlot},
		{"Approved by", orDash(data.ApproverName)},
	}

	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(2.4, 0.42, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 13)
		pdf.CellFormat(0, 0.42, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(0.2)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 0.3, "Present this pass at the facility entrance. Valid only for the slot above.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
