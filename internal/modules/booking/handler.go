package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sportarea/internal/middleware"
	"sportarea/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/my-bookings", h.MyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.PATCH("/:id/status", middleware.AdminOnly(), h.UpdateStatus)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
}

func actor(c *gin.Context) (int64, string) {
	return c.GetInt64("user_id"), c.GetString("role")
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}

func respondBookingErr(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
	case ErrPastDate:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Booking date cannot be in the past")
	case ErrWeekend:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Bookings are not available on Saturday and Sunday")
	case ErrInvalidSlot:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Time slot is not valid")
	case ErrSlotTaken:
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Time slot is no longer available")
	case ErrAlreadyDecided:
		response.Error(c, http.StatusConflict, "ALREADY_DECIDED", "Only pending bookings can be changed")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the booking owner or an admin can access this booking")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Booking operation failed")
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID, _ := actor(c)
	b, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		respondBookingErr(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListBookings(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	userID, role := actor(c)
	bookings, err := h.service.ListBookings(c.Request.Context(), userID, role, q)
	if err != nil {
		respondBookingErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) MyBookings(c *gin.Context) {
	userID, _ := actor(c)
	bookings, err := h.service.MyBookings(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		respondBookingErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	userID, role := actor(c)
	b, err := h.service.GetBooking(c.Request.Context(), id, userID, role)
	if err != nil {
		respondBookingErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID, _ := actor(c)
	b, err := h.service.UpdateBooking(c.Request.Context(), id, userID, req)
	if err != nil {
		respondBookingErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be 'approved' or 'rejected'")
		return
	}

	userID, role := actor(c)
	b, err := h.service.DecideBooking(c.Request.Context(), id, userID, role, req.Status)
	if err != nil {
		respondBookingErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	userID, role := actor(c)
	if err := h.service.DeleteBooking(c.Request.Context(), id, userID, role); err != nil {
		respondBookingErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
