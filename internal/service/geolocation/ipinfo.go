package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/pkg/logger"
)

// DefaultBaseURL is the public ipinfo.io endpoint
const DefaultBaseURL = "https://ipinfo.io"

// ipinfoResponse is the subset of the ipinfo.io payload we read
type ipinfoResponse struct {
	IP      string `json:"ip"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
	Loc     string `json:"loc"`
}

// IPInfoClient looks up the location of an IP address using ipinfo.io
type IPInfoClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *logger.Logger
}

// NewIPInfoClient creates a geolocation client. Lookups are disabled when token is empty.
func NewIPInfoClient(baseURL, token string, log *logger.Logger) *IPInfoClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &IPInfoClient{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		logger:  log,
	}
}

// Enabled reports whether a token is configured
func (c *IPInfoClient) Enabled() bool {
	return c.token != ""
}

// Lookup returns the location of ip. It is best effort: a nil result with a
// nil error means no location is known.
func (c *IPInfoClient) Lookup(ctx context.Context, ip string) (*domain.Geolocation, error) {
	if !c.Enabled() {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/%s?token=%s", c.baseURL, url.PathEscape(ip), url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geolocation request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call geolocation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation service returned status %d", resp.StatusCode)
	}

	var payload ipinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse geolocation response: %w", err)
	}

	geo := &domain.Geolocation{
		Country: optional(payload.Country),
		City:    optional(payload.City),
		Region:  optional(payload.Region),
	}
	geo.Latitude, geo.Longitude = ParseLoc(payload.Loc)

	c.logger.WithFields(map[string]interface{}{
		"country": payload.Country,
		"region":  payload.Region,
	}).Debug("Geolocation lookup completed")

	return geo, nil
}

// ParseLoc splits a "lat,lon" pair. Each half that fails to parse is nil.
func ParseLoc(loc string) (*float64, *float64) {
	if loc == "" {
		return nil, nil
	}

	parts := strings.SplitN(loc, ",", 2)
	lat := parseCoordinate(parts[0])
	if len(parts) < 2 {
		return lat, nil
	}
	return lat, parseCoordinate(parts[1])
}

// parseCoordinate is strict: a value with trailing junk such as "37.4abc" is
// dropped rather than truncated to its numeric prefix.
func parseCoordinate(value string) *float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
