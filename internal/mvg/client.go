// Package mvg is a client for the unofficial MVG (Münchner
// Verkehrsgesellschaft) web API: location search, departures, nearby
// stations and the station/line directories.
//
// The API is undocumented and its URLs and field names are a hidden
// contract that can change without notice. Every call is one stateless
// request/response round trip: no retries, no caching, no
// authentication. Timeouts and cancellation come from the http.Client
// and the caller's context.
package mvg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// The upstream host is fixed. The newer "fib" API serves search and
// departures, the older "zdm" API serves the static directories.
const (
	defaultFIBBase = "https://www.mvg.de/api/fib/v2"
	defaultZDMBase = "https://www.mvg.de/.rest/zdm"
)

// Client is an HTTP client for the MVG API. It is safe for concurrent
// use; calls share nothing beyond the underlying http.Client.
type Client struct {
	fibBase   string
	zdmBase   string
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewClient creates an MVG API client.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		fibBase: defaultFIBBase,
		zdmBase: defaultZDMBase,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		// The MVG frontend blocks default Go user agents
		userAgent: "gomvg/1.0",
		logger:    logger,
	}
}

// SetUserAgent overrides the User-Agent header sent with every request.
// Call it before the first request.
func (c *Client) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

// Locations searches stations, addresses and POIs matching a free-text
// query. The first result is the best match.
func (c *Client) Locations(ctx context.Context, query string) ([]Location, error) {
	u := c.fibBase + "/location?" + url.Values{"query": {query}}.Encode()

	var locations []Location
	if err := c.getJSON(ctx, "locations", u, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// NearbyLocations searches stations around a WGS84 coordinate, nearest
// first. Results carry DistanceInMeters.
func (c *Client) NearbyLocations(ctx context.Context, latitude, longitude float64) ([]Location, error) {
	u := c.fibBase + "/station/nearby?" + url.Values{
		"latitude":  {strconv.FormatFloat(latitude, 'f', -1, 64)},
		"longitude": {strconv.FormatFloat(longitude, 'f', -1, 64)},
	}.Encode()

	var locations []Location
	if err := c.getJSON(ctx, "nearby locations", u, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// Departures returns upcoming departures for the station identified by
// globalID, as obtained from Locations, Stations or StationGlobalIDs.
func (c *Client) Departures(ctx context.Context, globalID string) ([]Departure, error) {
	if globalID == "" {
		return nil, fmt.Errorf("mvg: departures: empty global id")
	}
	u := c.fibBase + "/departure?" + url.Values{"globalId": {globalID}}.Encode()

	var departures []Departure
	if err := c.getJSON(ctx, "departures", u, &departures); err != nil {
		return nil, err
	}
	return departures, nil
}

// Stations returns the full station directory.
func (c *Client) Stations(ctx context.Context) ([]Station, error) {
	var stations []Station
	if err := c.getJSON(ctx, "stations", c.zdmBase+"/stations", &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// StationGlobalIDs returns the global ids of all stations, e.g.
// "de:09162:1". A global id is the join key to Departures.
func (c *Client) StationGlobalIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := c.getJSON(ctx, "station global ids", c.zdmBase+"/mvgStationGlobalIds", &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Lines returns the full line directory.
func (c *Client) Lines(ctx context.Context) ([]Line, error) {
	var lines []Line
	if err := c.getJSON(ctx, "lines", c.zdmBase+"/lines", &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Messages returns the current disruption and ticker messages.
func (c *Client) Messages(ctx context.Context) ([]Message, error) {
	var messages []Message
	if err := c.getJSON(ctx, "messages", c.fibBase+"/message", &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// getJSON performs a single GET round trip and decodes the body into v.
// Failures are classified: *TransportError when the exchange itself
// failed or returned a non-2xx status, *DecodeError when the body did
// not match the expected shape.
func (c *Client) getJSON(ctx context.Context, op, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return &TransportError{Op: op, URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: op, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: op, URL: u, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, URL: u, Err: err}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{Op: op, URL: u, Err: err}
	}

	c.logger.Debug("mvg request",
		"op", op,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
