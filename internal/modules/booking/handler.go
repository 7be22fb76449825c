package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tabbyx/internal/pkg/response"
	"tabbyx/internal/pkg/validator"
)

func init() {
	validator.RegisterStructValidation(func(sl validator.StructLevel) {
		q := sl.Current().Interface().(AvailabilityQuery)
		if !IsCalendarDate(q.Year, q.Month, q.Day) {
			sl.ReportError(q.Day, "day", "Day", "calendar_date", "")
		}
	}, AvailabilityQuery{})
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.GetAvailability)

	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PATCH("/bookings/:id/cancel", h.CancelBooking)

	rg.GET("/users/bookings", h.GetUserBookings)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, string(KindValidation), "Invalid query parameters")
		return
	}
	if errs := validator.Validate(q); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(KindValidation), "Invalid date", errs)
		return
	}

	hours, err := h.service.AvailableHours(c.Request.Context(), q.Year, q.Month, q.Day)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, AvailabilityResponse{
		Year:  q.Year,
		Month: q.Month,
		Day:   q.Day,
		Hours: hours,
	})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(KindValidation), "Invalid request body", err.Error())
		return
	}

	b, err := h.service.MakeBooking(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListBookings(c *gin.Context) {
	var q ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, string(KindValidation), "Invalid query parameters")
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), q.IncludeCancelled)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id := c.Param("id")

	// the affected count alone cannot tell a missing id from a repeated cancel
	if _, err := h.service.GetBooking(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	affected, err := h.service.CancelBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, CancelBookingResponse{ID: id, Affected: affected})
}

func (h *Handler) GetUserBookings(c *gin.Context) {
	var q UserBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, string(KindValidation), "Invalid query parameters")
		return
	}
	if errs := validator.Validate(q); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(KindValidation), "Invalid email", errs)
		return
	}

	bookings, err := h.service.GetBookingsForEmail(c.Request.Context(), q.Email, q.IncludeCancelled)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func writeError(c *gin.Context, err error) {
	kind := KindOf(err)

	switch kind {
	case KindValidation:
		response.Error(c, http.StatusBadRequest, string(kind), "Invalid date")
	case KindNotFound:
		response.Error(c, http.StatusNotFound, string(kind), ErrNotFound.Message)
	case KindInvalidHour:
		response.Error(c, http.StatusUnprocessableEntity, string(kind), ErrInvalidHour.Message)
	case KindSlotConflict:
		response.Error(c, http.StatusConflict, string(kind), ErrSlotConflict.Message)
	case KindRetryExhausted:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, string(kind), ErrRetryExhausted.Message)
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
