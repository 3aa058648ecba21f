package category

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

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return uuid.Nil, false
	}
	return id, true
}

// ListCategories godoc
// @Summary All categories including inactive ones
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Category
// @Router /api/v1/admin/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	out, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetCategory godoc
// @Summary Get a category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} Category
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/categories/{id} [get]
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
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

// CreateCategory godoc
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateCategoryRequest true "category"
// @Success 201 {object} Category
// @Failure 400 {object} map[string]string
// @Router /api/v1/admin/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	out, err := h.Service.Create(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// UpdateCategory godoc
// @Summary Update name, quota, examples, order or active flag
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param body body UpdateCategoryRequest true "changes"
// @Success 200 {object} Category
// @Router /api/v1/admin/categories/{id} [put]
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateCategoryRequest
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

// UpdateQuota godoc
// @Summary Set the quota of a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param body body UpdateQuotaRequest true "quota"
// @Success 200 {object} Category
// @Router /api/v1/admin/categories/{id}/quota [patch]
func (h *Handler) UpdateQuota(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	out, err := h.Service.UpdateQuota(c.Request.Context(), id, *req.Quota, middleware.ActorFromContext(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeactivateCategory godoc
// @Summary Deactivate a category (categories are never deleted)
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} Category
// @Router /api/v1/admin/categories/{id}/deactivate [post]
func (h *Handler) DeactivateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	out, err := h.Service.Deactivate(c.Request.Context(), id, middleware.ActorFromContext(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
