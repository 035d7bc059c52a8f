package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"squareinvoice/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/bookings", h.ListBookings)
	rg.GET("/admin/bookings/:id", h.GetBooking)
}

// Login godoc
// @Summary      Exchange the operator password for a bearer token
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Router       /admin/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password is required.")
		return
	}

	res, err := h.service.Login(req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrNotConfigured) {
			response.Error(c, http.StatusUnauthorized, "VALIDATION_ERROR", "Invalid credentials.")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Internal error.")
		return
	}

	response.Success(c, http.StatusOK, res)
}

// ListBookings godoc
// @Summary      List bookings, newest first
// @Tags         Admin
// @Security     BearerAuth
// @Produce      json
// @Param        limit query integer false "Page size"
// @Param        offset query integer false "Page offset"
// @Router       /admin/bookings [get]
func (h *Handler) ListBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	res, err := h.service.ListBookings(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to list bookings.")
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id.")
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found.")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load booking.")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}
