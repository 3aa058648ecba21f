package guest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sharath018/potluck-rsvp-backend/internal/apperr"
	"github.com/sharath018/potluck-rsvp-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

// ListGuests godoc
// @Summary All guests with their items, newest first
// @Tags Guests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Guest
// @Router /api/v1/admin/guests [get]
func (h *Handler) ListGuests(c *gin.Context) {
	out, err := h.Service.ListWithItems(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetGuest godoc
// @Summary Get a guest with items
// @Tags Guests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Guest ID"
// @Success 200 {object} Guest
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/guests/{id} [get]
func (h *Handler) GetGuest(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	out, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdateGuest godoc
// @Summary Edit name, contact, attendance or head count
// @Tags Guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Guest ID"
// @Param body body UpdateGuestRequest true "changes"
// @Success 200 {object} Guest
// @Router /api/v1/admin/guests/{id} [put]
func (h *Handler) UpdateGuest(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	out, err := h.Service.Update(c.Request.Context(), id, req, middleware.ActorFromContext(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteGuest godoc
// @Summary Delete a guest and all of its items
// @Tags Guests
// @Security BearerAuth
// @Param id path string true "Guest ID"
// @Success 204
// @Router /api/v1/admin/guests/{id} [delete]
func (h *Handler) DeleteGuest(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id, middleware.ActorFromContext(c)); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddItem godoc
// @Summary Add a contribution item to a guest
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Guest ID"
// @Param body body ItemInput true "item"
// @Success 201 {object} ContributionItem
// @Router /api/v1/admin/guests/{id}/items [post]
func (h *Handler) AddItem(c *gin.Context) {
	guestID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var in ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	out, err := h.Service.AddItem(c.Request.Context(), guestID, in, middleware.ActorFromContext(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// UpdateItem godoc
// @Summary Replace the fields of an item
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Item ID"
// @Param body body ItemInput true "item"
// @Success 200 {object} ContributionItem
// @Router /api/v1/admin/items/{itemId} [put]
func (h *Handler) UpdateItem(c *gin.Context) {
	itemID, ok := parseUUID(c, "itemId")
	if !ok {
		return
	}
	var in ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	out, err := h.Service.UpdateItem(c.Request.Context(), itemID, in, middleware.ActorFromContext(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteItem godoc
// @Summary Delete a single item, the guest stays
// @Tags Items
// @Security BearerAuth
// @Param itemId path string true "Item ID"
// @Success 204
// @Router /api/v1/admin/items/{itemId} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	itemID, ok := parseUUID(c, "itemId")
	if !ok {
		return
	}
	if err := h.Service.DeleteItem(c.Request.Context(), itemID, middleware.ActorFromContext(c)); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
