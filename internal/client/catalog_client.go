package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

type CatalogClient struct {
	baseURL string
	http    *http.Client
}

func NewCatalogClient(addr string) *CatalogClient {
	return &CatalogClient{
		baseURL: "http://" + addr,
		http:    &http.Client{Timeout: 3 * time.Second},
	}
}

type serviceResponse struct {
	ID         string `json:"id"`
	ProviderID string `json:"provider_id"`
	Price      int64  `json:"price"`
	Currency   string `json:"currency"`
	Active     bool   `json:"active"`
}

func (c *CatalogClient) GetService(ctx context.Context, serviceID string) (*domain.Service, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/services/"+serviceID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewDependency("catalog.GetService", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domain.NewNotFound("service", serviceID)
	default:
		return nil, domain.NewDependency("catalog.GetService", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body serviceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.NewDependency("catalog.GetService", err)
	}

	return &domain.Service{
		ID:         body.ID,
		ProviderID: body.ProviderID,
		Price:      domain.Money(body.Price),
		Currency:   body.Currency,
		Active:     body.Active,
	}, nil
}
