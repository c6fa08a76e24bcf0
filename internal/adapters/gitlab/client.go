package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/edgarhsanchez/gitlab-ops/internal/logging"
)

// DefaultPageSize is the number of projects requested per page.
const DefaultPageSize = 100

// Client is a GitLab GraphQL API client.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string // For testing - defaults to https://{host}
	pageSize   int
}

// NewClient creates a new GitLab client for the given host.
// host is a hostname, optionally with scheme and port.
func NewClient(token, host string) *Client {
	baseURL := host
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	return &Client{
		token:    token,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		pageSize: DefaultPageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a new GitLab client with a custom base URL (for testing)
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token, baseURL)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// SetPageSize overrides the pagination page size. Values < 1 are ignored.
func (c *Client) SetPageSize(n int) {
	if n >= 1 {
		c.pageSize = n
	}
}

// graphQLRequest represents a GraphQL request
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphQLResponse represents a GraphQL response
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// Execute executes a GraphQL query against /api/graphql
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	reqBody := graphQLRequest{
		Query:     query,
		Variables: variables,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/graphql", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return &DecodeError{Err: err}
	}

	if len(gqlResp.Errors) > 0 {
		messages := make([]string, 0, len(gqlResp.Errors))
		for _, e := range gqlResp.Errors {
			messages = append(messages, e.Message)
		}
		return &GraphQLError{Messages: messages}
	}

	if result != nil {
		if len(gqlResp.Data) == 0 {
			return &DecodeError{Err: fmt.Errorf("response has no data")}
		}
		if err := json.Unmarshal(gqlResp.Data, result); err != nil {
			return &DecodeError{Err: err}
		}
	}

	return nil
}

// projectsQuery requests one page of projects with cursor pagination metadata.
const projectsQuery = `
	query Projects($first: Int, $after: String) {
		projects(first: $first, after: $after) {
			nodes {
				id
				name
				description
				webUrl
			}
			pageInfo {
				hasNextPage
				endCursor
			}
		}
	}
`

// FetchProjects retrieves all projects visible to the token, in server order.
// Pages are requested strictly sequentially; the loop stops when the server
// reports no further pages, or defensively when a page comes back empty while
// hasNextPage is still true (success with the partial result).
func (c *Client) FetchProjects(ctx context.Context) ([]Project, error) {
	log := logging.WithComponent("gitlab")

	var projects []Project
	var after *string

	for {
		variables := map[string]interface{}{
			"first": c.pageSize,
		}
		if after != nil {
			variables["after"] = *after
		}

		var page projectsPage
		if err := c.Execute(ctx, projectsQuery, variables, &page); err != nil {
			return nil, err
		}

		for _, node := range page.Projects.Nodes {
			projects = append(projects, node.toProject())
		}

		info := page.Projects.PageInfo
		if !info.HasNextPage {
			break
		}
		if len(page.Projects.Nodes) == 0 || info.EndCursor == nil {
			// Server claims more pages but gave us nothing to resume from.
			// Stop rather than loop forever; what we have counts as success.
			log.Warn("unusable page with hasNextPage=true, stopping pagination",
				slog.Int("fetched", len(projects)))
			break
		}
		after = info.EndCursor
	}

	log.Debug("fetched projects", slog.Int("count", len(projects)))
	return projects, nil
}
