// Package client is a typed HTTP client for the Culinary Hub API, used by
// tooling and integration checks.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"culinary-hub/internal/controller/http/dto"

	"github.com/go-resty/resty/v2"
)

var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx answer carrying the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	http  *resty.Client
	token string
}

// New creates a client for baseURL, e.g. "http://localhost:8080/api".
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15 * time.Second).
			SetHeader("Accept", "application/json"),
	}
}

// WithToken returns a copy that sends the bearer token on every request.
func (c *Client) WithToken(token string) *Client {
	return &Client{http: c.http, token: token}
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, result interface{}) error {
	var apiErr dto.MessageResponse
	req := c.http.R().SetContext(ctx).SetError(&apiErr).SetQueryParams(query)
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}
	if resp.IsError() {
		msg := apiErr.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		if msg == "" {
			msg = resp.Status()
		}
		return &APIError{Status: resp.StatusCode(), Message: msg}
	}
	return nil
}

func pageQuery(limit, offset int) map[string]string {
	return map[string]string{
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(offset),
	}
}

func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCourses(ctx context.Context, limit, offset int) (*dto.ListResponse[dto.CourseResponse], error) {
	var out dto.ListResponse[dto.CourseResponse]
	if err := c.do(ctx, http.MethodGet, "/courses", pageQuery(limit, offset), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRecipes(ctx context.Context, cuisine string, limit, offset int) (*dto.ListResponse[dto.RecipeResponse], error) {
	var out dto.ListResponse[dto.RecipeResponse]
	query := pageQuery(limit, offset)
	if cuisine != "" {
		query["cuisine"] = cuisine
	}
	if err := c.do(ctx, http.MethodGet, "/recipes", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Enroll(ctx context.Context, courseID uint) (*dto.EnrollmentResponse, error) {
	var out dto.EnrollmentResponse
	if err := c.do(ctx, http.MethodPost, "/Enrollment", nil, dto.EnrollRequest{CourseID: courseID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProgress sends progress as decimal text so it is not subject to
// float formatting.
func (c *Client) UpdateProgress(ctx context.Context, courseID uint, progress string) (*dto.EnrollmentResponse, error) {
	var out dto.EnrollmentResponse
	path := fmt.Sprintf("/Enrollment/%d/progress", courseID)
	if err := c.do(ctx, http.MethodPut, path, nil, map[string]string{"progress": progress}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
