package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"match-service/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// Service is the slice of the external profile service this core consumes.
type Service interface {
	GetUser(ctx context.Context, userID int64) (models.User, error)
	IsBlocked(ctx context.Context, a, b int64) (bool, error)
}

// Client calls the profile service over its REST interface.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// GetUser fetches a user by id. Missing users map to ErrUserNotFound.
func (c *Client) GetUser(ctx context.Context, userID int64) (models.User, error) {
	var user models.User
	url := fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID)
	if err := c.getJSON(ctx, url, &user); err != nil {
		return models.User{}, err
	}
	if user.ID == 0 {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// IsBlocked reports whether either user has a profile-level block on the other.
func (c *Client) IsBlocked(ctx context.Context, a, b int64) (bool, error) {
	var resp struct {
		Blocked bool `json:"blocked"`
	}
	url := fmt.Sprintf("%s/internal/blocked?a=%d&b=%d", c.baseURL, a, b)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return false, err
	}
	return resp.Blocked, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrUserNotFound
	case res.StatusCode != http.StatusOK:
		return fmt.Errorf("profile service status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
