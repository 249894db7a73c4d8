package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Options struct {
	Token      string
	APIBaseURL string // defaults to https://api.github.com
	GraphQLURL string // defaults to https://api.github.com/graphql
	PageSize   int    // defaults to 100
}

type Client struct {
	token      string
	apiBase    string
	graphqlURL string
	pageSize   int
	httpClient *http.Client
}

func NewClient(opts Options) *Client {
	if opts.APIBaseURL == "" {
		opts.APIBaseURL = "https://api.github.com"
	}
	if opts.GraphQLURL == "" {
		opts.GraphQLURL = "https://api.github.com/graphql"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 100
	}
	return &Client{
		token:      opts.Token,
		apiBase:    opts.APIBaseURL,
		graphqlURL: opts.GraphQLURL,
		pageSize:   opts.PageSize,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// graphql posts a query and decodes the data envelope into out.
func (c *Client) graphql(query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequest("POST", c.graphqlURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("build request (github): %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graphql request (github): %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body (github): %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: restMessage(respBody)}
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("parse graphql response (github): %w", err)
	}
	if len(envelope.Errors) > 0 {
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Errors[0].Message}
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("parse graphql data (github): %w", err)
		}
	}
	return nil
}

// rest performs a REST call with an optional JSON body and decodes the
// response into out. Non-2xx responses become APIErrors carrying GitHub's
// message field.
func (c *Client) rest(method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, c.apiBase+path, body)
	if err != nil {
		return fmt.Errorf("build request (github): %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s (github): %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body (github): %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: restMessage(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parse response (github): %w", err)
		}
	}
	return nil
}

func restMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}
