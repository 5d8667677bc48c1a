package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Identity is what the server returns for user and session calls.
type Identity struct {
	UserID       string `json:"user_id"`
	EmailAddress string `json:"email_address"`
	Token        string `json:"token"`
}

type Credentials struct {
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type Vehicle struct {
	ID     string `json:"vehicle_id"`
	UserID string `json:"user_id"`
	Year   int    `json:"year"`
	Make   string `json:"make"`
	Model  string `json:"model"`
}

type NewVehicle struct {
	Year  int    `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

func (c *Client) CreateUser(ctx context.Context, emailAddress, password string) (*Identity, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/v1/users/", Credentials{EmailAddress: emailAddress, Password: password})
	if err != nil {
		return nil, err
	}
	var id Identity
	if err := resp.Decode(&id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *Client) GetSession(ctx context.Context) (*Identity, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/v1/session", nil)
	if err != nil {
		return nil, err
	}
	if !resp.HasData() {
		return nil, fmt.Errorf("get session: empty response")
	}
	var id Identity
	if err := resp.Decode(&id); err != nil {
		return nil, err
	}
	return &id, nil
}

// CreateSession logs in. The server may answer 204, in which case the
// returned identity has no token.
func (c *Client) CreateSession(ctx context.Context, emailAddress, password string) (*Identity, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/v1/session", Credentials{EmailAddress: emailAddress, Password: password})
	if err != nil {
		return nil, err
	}
	var id Identity
	if err := resp.Decode(&id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *Client) DeleteSession(ctx context.Context) error {
	_, err := c.Do(ctx, http.MethodDelete, "/v1/session", nil)
	return err
}

func (c *Client) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/v1/vehicles/", nil)
	if err != nil {
		return nil, err
	}
	vehicles := make([]Vehicle, 0)
	if err := resp.Decode(&vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *Client) CreateVehicle(ctx context.Context, v NewVehicle) (*Vehicle, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/v1/vehicles/", v)
	if err != nil {
		return nil, err
	}
	var created Vehicle
	if err := resp.Decode(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteVehicle(ctx context.Context, vehicleID string) error {
	_, err := c.Do(ctx, http.MethodDelete, "/v1/vehicles/"+url.PathEscape(vehicleID), nil)
	return err
}
