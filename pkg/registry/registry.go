// Package registry talks to the ClinicalTrials.gov API v2 to refresh
// trial statuses for watched studies.
package registry

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

const (
	defaultBaseURL = "https://clinicaltrials.gov/api/v2/studies/"
	userAgent      = "afwatch/1.0 (+https://github.com/afwatch/afwatch)"
)

// Status is the slice of a study record the tracker cares about. Date
// fields are ISO date strings as returned by the registry, empty when
// the registry omits them.
type Status struct {
	Overall           string
	LastUpdatePosted  string
	PrimaryCompletion string
	Completion        string
}

// Client fetches study statuses with retries.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the registry endpoint (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// NewClient builds a registry client with a sane retry policy.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = 3
	retryClient.HTTPClient.Timeout = 20 * time.Second

	c := &Client{http: retryClient, baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StudyStatus fetches the status module for one NCT ID.
func (c *Client) StudyStatus(ctx context.Context, nctID string) (*Status, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+nctID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", nctID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", nctID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	status := gjson.GetBytes(body, "protocolSection.statusModule")
	return &Status{
		Overall:           status.Get("overallStatus").String(),
		LastUpdatePosted:  status.Get("lastUpdatePostDateStruct.date").String(),
		PrimaryCompletion: status.Get("primaryCompletionDateStruct.date").String(),
		Completion:        status.Get("completionDateStruct.date").String(),
	}, nil
}
