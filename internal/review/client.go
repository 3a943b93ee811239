package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/careers/internal/dto"
	"github.com/fadilmartias/careers/internal/model"
	"github.com/fadilmartias/careers/internal/response"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// Client calls the review API. It holds the admin session token once Login
// succeeded or SetToken was called.
type Client struct {
	http  *resty.Client
	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetTimeout(30 * time.Second).
			SetHeader("Accept", "application/json"),
	}
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Authenticated() bool {
	return c.token != ""
}

// Login exchanges the admin password for a session token and keeps it.
func (c *Client) Login(ctx context.Context, password string) (*dto.LoginResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.LoginRequest{Password: password}).
		Post("/admin/auth")
	if err != nil {
		return nil, util.NetworkError("could not reach the server", err)
	}
	if resp.IsError() {
		return nil, util.FromAPIResponse(resp.StatusCode(), resp.String())
	}

	var out dto.LoginResponse
	if err := decodeData(resp.String(), &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, util.InternalError("Internal server error", fmt.Errorf("login response carries no token"))
	}
	c.token = out.Token
	return &out, nil
}

// Logout revokes the session on the server and forgets the token. The
// token is dropped even when the server could not be reached.
func (c *Client) Logout(ctx context.Context) error {
	if c.token == "" {
		return nil
	}
	resp, err := c.authorized(ctx).Post("/admin/logout")
	c.token = ""
	if err != nil {
		return util.NetworkError("could not reach the server", err)
	}
	if resp.IsError() && resp.StatusCode() != 401 {
		return util.FromAPIResponse(resp.StatusCode(), resp.String())
	}
	return nil
}

// ListApplications returns every record, newest first.
func (c *Client) ListApplications(ctx context.Context) ([]model.JobApplication, error) {
	resp, err := c.do(c.authorized(ctx).Get, "/applications")
	if err != nil {
		return nil, err
	}

	apps := []model.JobApplication{}
	if err := json.Unmarshal(resp.Body(), &apps); err != nil {
		return nil, util.InternalError("Internal server error", fmt.Errorf("decode applications: %w", err))
	}
	return apps, nil
}

func (c *Client) GetApplication(ctx context.Context, id string) (*model.JobApplication, error) {
	resp, err := c.do(c.authorized(ctx).Get, "/applications/"+id)
	if err != nil {
		return nil, err
	}

	var app model.JobApplication
	if err := decodeData(resp.String(), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatus asks the server to change one record's status and returns
// the record as stored afterwards.
func (c *Client) UpdateStatus(ctx context.Context, id string, status model.Status) (*model.JobApplication, error) {
	req := c.authorized(ctx).SetBody(dto.UpdateStatusRequest{Status: status})
	resp, err := c.do(req.Patch, "/applications/"+id+"/status")
	if err != nil {
		return nil, err
	}

	var app model.JobApplication
	if err := decodeData(resp.String(), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) Stats(ctx context.Context) (*dto.ApplicationStatsDTO, error) {
	resp, err := c.do(c.authorized(ctx).Get, "/applications/stats")
	if err != nil {
		return nil, err
	}

	var stats dto.ApplicationStatsDTO
	if err := decodeData(resp.String(), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Search asks the server for one filtered page.
func (c *Client) Search(ctx context.Context, term string, page, pageSize int) ([]model.JobApplication, *response.Pagination, error) {
	req := c.authorized(ctx).SetQueryParams(map[string]string{
		"search":    term,
		"page":      strconv.Itoa(page),
		"page_size": strconv.Itoa(pageSize),
	})
	resp, err := c.do(req.Get, "/admin/applications")
	if err != nil {
		return nil, nil, err
	}

	apps := []model.JobApplication{}
	if err := decodeData(resp.String(), &apps); err != nil {
		return nil, nil, err
	}
	var pagination response.Pagination
	if raw := gjson.Get(resp.String(), "pagination").Raw; raw != "" {
		if err := json.Unmarshal([]byte(raw), &pagination); err != nil {
			return nil, nil, util.InternalError("Internal server error", fmt.Errorf("decode pagination: %w", err))
		}
	}
	return apps, &pagination, nil
}

func (c *Client) authorized(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx).SetAuthToken(c.token)
}

func (c *Client) do(send func(string) (*resty.Response, error), path string) (*resty.Response, error) {
	if c.token == "" {
		return nil, util.AuthenticationError("Not logged in")
	}
	resp, err := send(path)
	if err != nil {
		return nil, util.NetworkError("could not reach the server", err)
	}
	if resp.IsError() {
		return nil, util.FromAPIResponse(resp.StatusCode(), resp.String())
	}
	return resp, nil
}

// decodeData unmarshals the data member of the success envelope into out.
func decodeData(body string, out any) error {
	data := gjson.Get(body, "data")
	if !data.Exists() {
		return util.InternalError("Internal server error", fmt.Errorf("response has no data"))
	}
	if err := json.Unmarshal([]byte(data.Raw), out); err != nil {
		return util.InternalError("Internal server error", fmt.Errorf("decode response: %w", err))
	}
	return nil
}
