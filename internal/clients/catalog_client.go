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

// catalogPageSize is deliberately large: the loader only ever needs page 1.
const catalogPageSize = 1000

// CatalogClient handles communication with the catalog-service, which owns
// the SKU-family taxonomy and the global storage list.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// facetCatalogResponse from catalog-service
type facetCatalogResponse struct {
	Success bool                   `json:"success"`
	Data    []models.RawFacetEntry `json:"data"`
}

// storageListResponse from catalog-service
type storageListResponse struct {
	Success bool            `json:"success"`
	Data    []models.Option `json:"data"`
}

// NewCatalogClient creates a new catalog client
func NewCatalogClient() *CatalogClient {
	baseURL := os.Getenv("CATALOG_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://catalog-service:8080"
	}

	return &CatalogClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetFacetCatalog fetches the flattened list of sellable SKU families.
func (c *CatalogClient) GetFacetCatalog(ctx context.Context, tenantID string) ([]models.RawFacetEntry, error) {
	url := fmt.Sprintf("%s/api/v1/sku-families?page=1&limit=%d", c.baseURL, catalogPageSize)

	var result facetCatalogResponse
	if err := c.getJSON(ctx, tenantID, url, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// GetStorages fetches page 1 of the global storage list.
func (c *CatalogClient) GetStorages(ctx context.Context, tenantID string) ([]models.Option, error) {
	url := fmt.Sprintf("%s/api/v1/storages?page=1&limit=%d", c.baseURL, catalogPageSize)

	var result storageListResponse
	if err := c.getJSON(ctx, tenantID, url, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *CatalogClient) getJSON(ctx context.Context, tenantID, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	// Use Istio JWT claim headers for authentication
	req.Header.Set("x-jwt-claim-tenant-id", tenantID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[CatalogClient] Error calling %s: %v", url, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[CatalogClient] %s returned %d: %s", url, resp.StatusCode, string(body))
		return fmt.Errorf("catalog-service returned %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
