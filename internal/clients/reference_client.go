package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"listing-builder-service/internal/models"
)

// ReferenceClient reads the per-row select sources of the grid editor: the
// grade list, the seller list and the cost-by-country list. Every read is
// optional - callers degrade to an empty collection on failure.
type ReferenceClient struct {
	baseURL    string
	httpClient *http.Client
}

type optionListResponse struct {
	Success bool            `json:"success"`
	Data    []models.Option `json:"data"`
}

type countryCostListResponse struct {
	Success bool                 `json:"success"`
	Data    []models.CountryCost `json:"data"`
}

// NewReferenceClient creates a new reference-data client
func NewReferenceClient() *ReferenceClient {
	baseURL := os.Getenv("REFERENCE_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://reference-service:8080"
	}

	return &ReferenceClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetGrades fetches the grade list.
func (c *ReferenceClient) GetGrades(ctx context.Context, tenantID string) ([]models.Option, error) {
	var result optionListResponse
	if err := c.getJSON(ctx, tenantID, c.baseURL+"/api/v1/grades", &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// GetSellers fetches the seller list.
func (c *ReferenceClient) GetSellers(ctx context.Context, tenantID string) ([]models.Option, error) {
	var result optionListResponse
	if err := c.getJSON(ctx, tenantID, c.baseURL+"/api/v1/sellers", &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// GetCountryCosts fetches the cost-by-country list.
func (c *ReferenceClient) GetCountryCosts(ctx context.Context, tenantID string) ([]models.CountryCost, error) {
	var result countryCostListResponse
	if err := c.getJSON(ctx, tenantID, c.baseURL+"/api/v1/country-costs", &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *ReferenceClient) getJSON(ctx context.Context, tenantID, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("x-jwt-claim-tenant-id", tenantID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[ReferenceClient] Error calling %s: %v", url, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[ReferenceClient] %s returned %d: %s", url, resp.StatusCode, string(body))
		return fmt.Errorf("reference-service returned %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
