package invoice

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"squareinvoice/internal/pkg/response"
	"squareinvoice/internal/square"
)

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/create-payment-link", h.CreatePaymentLink)
	rg.POST("/save-payment-link", h.SavePaymentLink)
}

// CreatePaymentLink godoc
// @Summary      Create a hosted payment link and persist the booking
// @Description  Validates the invoice form submission, creates a Square payment link and saves the booking record
// @Tags         Invoices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        full_name formData string true "Customer name"
// @Param        customer_email formData string true "Customer email"
// @Param        phone formData string true "Customer phone"
// @Param        price formData string true "Invoice amount in dollars"
// @Param        message formData string false "Invoice description"
// @Param        schedule_invoice formData string false "Set when the invoice is scheduled"
// @Param        schedule_date formData string false "Scheduled date, required when scheduling"
// @Router       /create-payment-link [post]
func (h *Handler) CreatePaymentLink(c *gin.Context) {
	var in Input
	if err := c.ShouldBind(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Required fields are missing.")
		return
	}

	res, err := h.service.CreatePaymentLink(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":      res.Message,
		"booking_data": res.BookingData,
		"response":     json.RawMessage(res.RawResponse),
		"booking_id":   res.BookingID,
	})
}

// SavePaymentLink godoc
// @Summary      Attach the payment link to an existing booking
// @Tags         Invoices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        paylink formData string true "Payment link URL"
// @Param        booking_id formData integer true "Booking id"
// @Router       /save-payment-link [post]
func (h *Handler) SavePaymentLink(c *gin.Context) {
	var in SaveLinkInput
	if err := c.ShouldBind(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Required fields are missing.")
		return
	}

	if err := h.service.SavePaymentLink(c.Request.Context(), in); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Payment link saved successfully.",
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var gatewayErr *square.GatewayError

	switch {
	case errors.Is(err, ErrMissingFields):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Required fields are missing.")
	case errors.Is(err, ErrInvalidPrice):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price must be greater than 0.")
	case errors.Is(err, ErrScheduleDateMissing):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please select a date for scheduling.")
	case errors.Is(err, ErrInvalidScheduleDate):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Schedule date is not a valid date.")
	case errors.Is(err, ErrInvalidPaymentLink):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment link.")
	case errors.Is(err, ErrInvalidBookingID):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id.")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found.")
	case errors.Is(err, square.ErrCredentialsMissing):
		response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Square API credentials are missing.")
	case errors.As(err, &gatewayErr):
		h.loggerf("level=error msg=gateway call failed status=%d err=%q", gatewayErr.StatusCode, gatewayErr.Message)
		response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", gatewayErr.Message)
	case errors.Is(err, ErrPersistence):
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to save booking.")
	default:
		h.loggerf("level=error msg=unexpected handler error err=%v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Internal error.")
	}
}
