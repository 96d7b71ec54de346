package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hoang-11jjk/RealEstatePro/internal/models"
	"github.com/hoang-11jjk/RealEstatePro/internal/query"
	"github.com/hoang-11jjk/RealEstatePro/internal/services"
	"github.com/hoang-11jjk/RealEstatePro/internal/store"
)

// PropertyHandler handles REST requests for listings.
type PropertyHandler struct {
	propertyService services.IPropertyService
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService services.IPropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// listParamKeys are the query parameters recognized by List. Presence of any
// of them (even with an empty value) switches the response from the legacy
// bare array to the {items,total,page,limit} envelope. Callers branch on the
// response shape, so this is a contract, not an accident.
var listParamKeys = []string{
	"q", "location_like", "type", "status",
	"price_gte", "price_lte", "area_gte", "area_lte",
	"visibility", "_page", "_limit",
}

// List handles GET /api/properties.
func (h *PropertyHandler) List(c *gin.Context) {
	params := c.Request.URL.Query()
	enveloped := false
	for _, key := range listParamKeys {
		if _, ok := params[key]; ok {
			enveloped = true
			break
		}
	}

	if !enveloped {
		items, err := h.propertyService.ListAll(c.Request.Context(), query.Filter{})
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list properties"})
			return
		}
		c.JSON(http.StatusOK, items)
		return
	}

	f := query.Filter{
		Keyword:    c.Query("q"),
		Location:   c.Query("location_like"),
		Type:       models.PropertyType(c.Query("type")),
		Status:     models.MarketStatus(c.Query("status")),
		Visibility: models.Visibility(c.Query("visibility")),
		MinPrice:   int64Param(c, "price_gte"),
		MaxPrice:   int64Param(c, "price_lte"),
		MinArea:    floatParam(c, "area_gte"),
		MaxArea:    floatParam(c, "area_lte"),
	}
	pg := query.Page{
		Page:  intParam(c, "_page"),
		Limit: intParam(c, "_limit"),
	}

	result, err := h.propertyService.List(c.Request.Context(), f, pg)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list properties"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}
	p, err := h.propertyService.Get(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err, "Failed to retrieve property")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create handles POST /api/properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	var in services.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	// Session attribution: the trusted client-supplied identity fills owner
	// fields the payload leaves empty. Absence implies anonymous authorship.
	if in.OwnerEmail == "" {
		in.OwnerEmail = c.GetHeader("X-Owner-Email")
	}
	if in.OwnerName == "" {
		in.OwnerName = c.GetHeader("X-Owner-Name")
	}

	created, err := h.propertyService.Create(c.Request.Context(), in)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": vErr.Error()})
			return
		}
		if errors.Is(err, models.ErrInvalidVisibility) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create property"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Patch handles PATCH /api/properties/:id (owner edit or moderation).
func (h *PropertyHandler) Patch(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.propertyService.Patch(c.Request.Context(), id, fields)
	if err != nil {
		h.renderError(c, err, "Failed to update property")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// moderationBody is the visibility-only update payload.
type moderationBody struct {
	Visibility string `json:"visibility"`
}

// Moderate handles PATCH /api/properties/:id/moderation.
func (h *PropertyHandler) Moderate(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}
	var body moderationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.propertyService.SetVisibility(c.Request.Context(), id, models.Visibility(body.Visibility))
	if err != nil {
		h.renderError(c, err, "Failed to moderate property")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/properties/:id.
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}
	if err := h.propertyService.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err, "Failed to delete property")
		return
	}
	c.Status(http.StatusNoContent)
}

// renderError maps service errors onto the HTTP taxonomy.
func (h *PropertyHandler) renderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
	case errors.Is(err, models.ErrInvalidVisibility):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}

// propertyID parses the :id path parameter. A non-numeric id cannot name any
// record, so it renders 404 directly.
func propertyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return 0, false
	}
	return id, true
}

// Numeric query parameters are lenient like the rest of ingestion:
// unparseable values are treated as absent, not as errors.

func int64Param(c *gin.Context, key string) *int64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func floatParam(c *gin.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func intParam(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
