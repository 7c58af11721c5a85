package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/pkg/logger"

	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint
	DefaultBaseURL = "https://api.github.com"
	userAgent      = "portfolio-api"
	acceptHeader   = "application/vnd.github.v3+json"
)

// ReadmeFilenames are tried in order when looking for a README
var ReadmeFilenames = []string{"README.md", "Readme.md", "readme.md"}

// Client fetches repository metadata from the GitHub REST API
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a GitHub client. An empty token sends anonymous requests.
func NewClient(baseURL, token string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logger.NewNop()
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   http.DefaultTransport,
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     log,
	}
}

type apiErrorBody struct {
	Message string `json:"message"`
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

func (c *Client) makeRequest(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	return resp, nil
}

// ListRepositories returns the public repositories of username, most recently updated first.
func (c *Client) ListRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	query := url.Values{}
	query.Set("sort", "updated")
	query.Set("per_page", "100")

	resp, err := c.makeRequest(ctx, fmt.Sprintf("/users/%s/repos?%s", url.PathEscape(username), query.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository list: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		upstreamErr := classifyResponse(resp, body)
		c.logger.WithFields(map[string]interface{}{
			"username":    username,
			"status_code": resp.StatusCode,
			"kind":        upstreamErr.Kind,
		}).Warn("GitHub repository list request failed")
		return nil, upstreamErr
	}

	var repositories []domain.Repository
	if err := json.Unmarshal(body, &repositories); err != nil {
		return nil, fmt.Errorf("failed to parse repository list: %w", err)
	}

	return repositories, nil
}

// GetLanguages returns the language histogram of a repository
func (c *Client) GetLanguages(ctx context.Context, fullName string) (domain.LanguageStats, error) {
	resp, err := c.makeRequest(ctx, fmt.Sprintf("/repos/%s/languages", fullName))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("languages request for %s returned status %d", fullName, resp.StatusCode)
	}

	var languages domain.LanguageStats
	if err := json.NewDecoder(resp.Body).Decode(&languages); err != nil {
		return nil, fmt.Errorf("failed to parse languages for %s: %w", fullName, err)
	}

	return languages, nil
}

// GetReadme fetches and decodes one README file of a repository
func (c *Client) GetReadme(ctx context.Context, fullName, filename string) (string, error) {
	resp, err := c.makeRequest(ctx, fmt.Sprintf("/repos/%s/contents/%s", fullName, filename))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("contents request for %s/%s returned status %d", fullName, filename, resp.StatusCode)
	}

	var content contentResponse
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return "", fmt.Errorf("failed to parse contents of %s/%s: %w", fullName, filename, err)
	}
	if content.Content == "" {
		return "", nil
	}

	// The API wraps base64 payloads at 60 columns
	raw := strings.NewReplacer("\n", "", "\r", "").Replace(content.Content)
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode contents of %s/%s: %w", fullName, filename, err)
	}

	return string(decoded), nil
}

func classifyResponse(resp *http.Response, body []byte) *UpstreamError {
	var apiErr apiErrorBody
	_ = json.Unmarshal(body, &apiErr)

	message := apiErr.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &UpstreamError{Kind: KindNotFound, StatusCode: resp.StatusCode, Message: "GitHub user not found"}
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden &&
			(resp.Header.Get("X-RateLimit-Remaining") == "0" || strings.Contains(strings.ToLower(message), "rate limit")):
		return &UpstreamError{Kind: KindRateLimited, StatusCode: resp.StatusCode, Message: RateLimitMessage}
	default:
		return &UpstreamError{Kind: KindOther, StatusCode: resp.StatusCode, Message: message}
	}
}
