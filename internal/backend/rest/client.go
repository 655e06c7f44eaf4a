// Package rest talks to the translation management API. It hydrates the
// review grid and carries out the persist operations the grid produces.
package rest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/tms/internal/core/grid"
	"github.com/colonyops/tms/internal/core/logging"
)

var _ grid.Backend = (*Client)(nil)

// Options configures a Client.
type Options struct {
	BaseURL   string
	Token     string
	CompanyID string
	ProjectID string
	Timeout   time.Duration
}

// Client is a REST client for the translation management API.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

// New creates a client. Every request carries the bearer token, the
// companyId header and, unless the caller set one, a projectId query
// parameter.
func New(opts Options) *Client {
	c := &Client{
		logger: logging.Component("rest"),
	}

	h := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		h.SetTimeout(opts.Timeout)
	}

	h.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if opts.Token != "" {
			r.SetAuthToken(opts.Token)
		}
		if opts.CompanyID != "" {
			r.SetHeader("companyId", opts.CompanyID)
		}
		if opts.ProjectID != "" && r.QueryParam.Get("projectId") == "" {
			r.SetQueryParam("projectId", opts.ProjectID)
		}
		return nil
	})

	h.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.logger.Debug().
			Ctx(resp.Request.Context()).
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("elapsed", resp.Time()).
			Msg("backend request")

		if resp.IsError() {
			return responseError(resp)
		}
		return nil
	})

	c.http = h
	return c
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// send executes r and turns every failure into an *APIError.
func (c *Client) send(r *resty.Request, method, url string) error {
	_, err := r.Execute(method, url)
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.logger.Warn().
			Ctx(r.Context()).
			Int("status", apiErr.Status).
			Str("url", apiErr.URL).
			Msg(apiErr.Message)
		return apiErr
	}

	c.logger.Error().Ctx(r.Context()).Err(err).Str("url", url).Msg("backend unreachable")
	return noResponseError(url, err)
}
