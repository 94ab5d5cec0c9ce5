package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"listing-builder-service/internal/clients"
	"listing-builder-service/internal/middleware"
	"listing-builder-service/internal/models"
)

// ReferenceHandler relays the per-row select sources the grid editor needs.
// Upstream failures degrade to empty lists so the editor stays usable.
type ReferenceHandler struct {
	client *clients.ReferenceClient
	logger *logrus.Entry
}

func NewReferenceHandler(client *clients.ReferenceClient, logger *logrus.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		client: client,
		logger: logger.WithField("component", "reference"),
	}
}

// GetGrades returns the grade options.
// GET /api/v1/reference/grades
func (h *ReferenceHandler) GetGrades(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	grades, err := h.client.GetGrades(c.Request.Context(), tenantID)
	if err != nil {
		h.logger.WithError(err).Warn("Grades unavailable, serving empty list")
		grades = []models.Option{}
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: grades})
}

// GetSellers returns the seller options.
// GET /api/v1/reference/sellers
func (h *ReferenceHandler) GetSellers(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	sellers, err := h.client.GetSellers(c.Request.Context(), tenantID)
	if err != nil {
		h.logger.WithError(err).Warn("Sellers unavailable, serving empty list")
		sellers = []models.Option{}
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: sellers})
}

// GetCountryCosts returns the cost-by-country list.
// GET /api/v1/reference/country-costs
func (h *ReferenceHandler) GetCountryCosts(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	costs, err := h.client.GetCountryCosts(c.Request.Context(), tenantID)
	if err != nil {
		h.logger.WithError(err).Warn("Country costs unavailable, serving empty list")
		costs = []models.CountryCost{}
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: costs})
}
