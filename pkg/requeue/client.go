// Copyright 2026 haussearch LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package requeue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// requestTimeout bounds each individual request to the job service
const requestTimeout = 10 * time.Second

// 📄 Job is one record from the job history endpoint
type Job struct {
	Status     string `json:"status"`
	SearchTerm string `json:"searchTerm"`
}

// historyResponse is the envelope of the history endpoint
type historyResponse struct {
	Data []Job `json:"data"`
}

// 🌐 Client talks to the property job service
type Client struct {
	baseURL string
	http    *http.Client
}

// 🏭 NewClient creates a client for the service at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// 📥 History fetches the most recent job records, newest first
func (c *Client) History(ctx context.Context, limit int) ([]Job, error) {
	url := fmt.Sprintf("%s/api/properties/history?limit=%d", c.baseURL, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Errorf("fetching job history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetching job history: unexpected status %d", resp.StatusCode)
	}

	var parsed historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Errorf("decoding job history: %w", err)
	}

	return parsed.Data, nil
}

// 📤 Enqueue submits a scrape job for the search term. The service signals
// acceptance with 202; the status code is returned for anything else so the
// caller can report it.
func (c *Client) Enqueue(ctx context.Context, searchTerm string) (int, error) {
	payload, err := json.Marshal(map[string]string{"searchTerm": searchTerm})
	if err != nil {
		return 0, errors.Errorf("encoding request body: %w", err)
	}

	url := c.baseURL + "/api/properties/scrape"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, errors.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Errorf("submitting scrape job: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	return resp.StatusCode, nil
}
