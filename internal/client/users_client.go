package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

type UsersClient struct {
	baseURL string
	http    *http.Client
}

func NewUsersClient(addr string) *UsersClient {
	return &UsersClient{
		baseURL: "http://" + addr,
		http:    &http.Client{Timeout: 3 * time.Second},
	}
}

type accountResponse struct {
	ID       string `json:"id"`
	Active   bool   `json:"active"`
	Verified bool   `json:"verified"`
}

func (c *UsersClient) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/accounts/"+userID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewDependency("users.GetAccount", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domain.NewNotFound("account", userID)
	default:
		return nil, domain.NewDependency("users.GetAccount", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.NewDependency("users.GetAccount", err)
	}

	return &domain.Account{
		ID:       body.ID,
		Active:   body.Active,
		Verified: body.Verified,
	}, nil
}
