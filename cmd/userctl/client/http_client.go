package client

// http_client.go = typed access to the user endpoints for userctl.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"userapi/internal/http-api/dto"
)

const usersPath = "/nisum/api/users"

// APIError is a non-2xx answer from the server, carrying its "mensaje".
type APIError struct {
	StatusCode int
	Mensaje    string
}

func (e *APIError) Error() string {
	if e.Mensaje == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Mensaje)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListUsers fetches every user
func (c *HTTPClient) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	var users []dto.UserResponse
	if err := c.do(ctx, http.MethodGet, nil, http.StatusOK, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser registers a user, expecting 201
func (c *HTTPClient) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.do(ctx, http.MethodPost, req, http.StatusCreated, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser rewrites the user selected by req.Email
func (c *HTTPClient) UpdateUser(ctx context.Context, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.do(ctx, http.MethodPut, req, http.StatusOK, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) do(ctx context.Context, method string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+usersPath, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() // Ensure the response body is closed

	if resp.StatusCode != want {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody dto.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Mensaje = errBody.Mensaje
		}
		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
