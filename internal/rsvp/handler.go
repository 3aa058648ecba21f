package rsvp

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/potluck-rsvp-backend/internal/apperr"
)

// IdempotencyHeader lets a client retry a submission without creating a second guest.
const IdempotencyHeader = "Idempotency-Key"

type Handler struct {
	Service *Service
	Views   *ViewService
}

func NewHandler(s *Service, v *ViewService) *Handler {
	return &Handler{Service: s, Views: v}
}

// Submit godoc
// @Summary Submit an RSVP with optional contributions
// @Tags RSVP
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "client generated key for safe retries"
// @Param body body SubmitRequest true "rsvp"
// @Success 201 {object} SubmitResult
// @Success 200 {object} SubmitResult "replayed submission"
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/rsvp [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Eingabe", "details": err.Error()})
		return
	}

	key := strings.TrimSpace(c.GetHeader(IdempotencyHeader))
	res, err := h.Service.Submit(c.Request.Context(), req, key)
	if err != nil {
		if errors.Is(err, ErrSubmissionInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": "Deine Anmeldung wird bereits verarbeitet."})
			return
		}
		apperr.Respond(c, err)
		return
	}

	status := http.StatusCreated
	if res.Duplicate {
		status = http.StatusOK
	}
	c.JSON(status, res)
}

// Registration godoc
// @Summary Data for the registration form
// @Tags RSVP
// @Produce json
// @Success 200 {object} RegistrationView
// @Failure 500 {object} map[string]string
// @Router /api/v1/registration [get]
func (h *Handler) Registration(c *gin.Context) {
	view, err := h.Views.Registration(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Overview godoc
// @Summary Who brings what
// @Tags RSVP
// @Produce json
// @Success 200 {object} OverviewView
// @Failure 500 {object} map[string]string
// @Router /api/v1/overview [get]
func (h *Handler) Overview(c *gin.Context) {
	view, err := h.Views.Overview(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Confirmation godoc
// @Summary Confirmation text after submitting
// @Tags RSVP
// @Produce json
// @Param coming query bool false "guest is coming" default(true)
// @Success 200 {object} Confirmation
// @Router /api/v1/confirmation [get]
func (h *Handler) Confirmation(c *gin.Context) {
	coming := true
	if raw := c.Query("coming"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			coming = v
		}
	}
	c.JSON(http.StatusOK, ConfirmationFor(coming))
}

// Dashboard godoc
// @Summary Admin dashboard
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardView
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	view, err := h.Views.AdminDashboard(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
