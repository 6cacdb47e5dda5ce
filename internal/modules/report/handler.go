package report

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sportarea/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.POST("/generate-pdf/:bookingId", h.Generate)
		reports.GET("/download/:id", h.Download)
		reports.GET("", h.ListReports)
		reports.GET("/me/all", h.MyReports)
		reports.GET("/:id", h.GetReport)
		reports.DELETE("/:id", h.DeleteReport)
	}
}

func actor(c *gin.Context) (int64, string) {
	return c.GetInt64("user_id"), c.GetString("role")
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid report ID")
		return 0, false
	}
	return id, true
}

func respondReportErr(c *gin.Context, err error) {
	switch err {
	case ErrBookingNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Report not found")
	case ErrNotApproved:
		response.Error(c, http.StatusBadRequest, "NOT_APPROVED", "Reports are only available for approved bookings")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the booking owner or an admin can access this report")
	case ErrFileMissing:
		response.Error(c, http.StatusNotFound, "FILE_MISSING", "Report file not found")
	default:
		response.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Report operation failed")
	}
}

func (h *Handler) Generate(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	userID, role := actor(c)
	rep, genErr := h.service.Generate(c.Request.Context(), bookingID, userID, role)
	if genErr != nil {
		respondReportErr(c, genErr)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"report": rep})
}

func (h *Handler) Download(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	userID, role := actor(c)
	absPath, fileName, err := h.service.Download(c.Request.Context(), id, userID, role)
	if err != nil {
		respondReportErr(c, err)
		return
	}

	c.FileAttachment(absPath, fileName)
}

func (h *Handler) ListReports(c *gin.Context) {
	var bookingID int64
	if raw := c.Query("booking_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
			return
		}
		bookingID = id
	}

	reports, err := h.service.ListReports(c.Request.Context(), bookingID)
	if err != nil {
		respondReportErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reports": reports})
}

func (h *Handler) MyReports(c *gin.Context) {
	userID, _ := actor(c)
	reports, err := h.service.MyReports(c.Request.Context(), userID)
	if err != nil {
		respondReportErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reports": reports})
}

func (h *Handler) GetReport(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	userID, role := actor(c)
	rep, err := h.service.GetReport(c.Request.Context(), id, userID, role)
	if err != nil {
		respondReportErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": rep})
}

func (h *Handler) DeleteReport(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	userID, role := actor(c)
	if err := h.service.DeleteReport(c.Request.Context(), id, userID, role); err != nil {
		respondReportErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
