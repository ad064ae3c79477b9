// Package stations fetches the station list the search form filters.
package stations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"stationpicker/internal/domain"
	"stationpicker/internal/logging"
)

const (
	// Default timeout when none is configured.
	defaultTimeout = 10 * time.Second

	// Maximum response size (8MB); the SEPTA list is well under 1MB.
	maxBodySize = 8 * 1024 * 1024

	userAgent = "stationpicker"
)

// ErrBadStatus is returned when the source answers with a non-2xx status
var ErrBadStatus = errors.New("unexpected response status")

// Service provides the station list
type Service interface {
	GetStations(ctx context.Context) ([]domain.Station, error)
}

// HTTPService fetches stations as a JSON array from a URL
type HTTPService struct {
	url    string
	client *http.Client
}

// NewService creates a service reading from url
func NewService(url string, timeout time.Duration) *HTTPService {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPService{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// URL returns the source address
func (s *HTTPService) URL() string {
	return s.url
}

// GetStations downloads and decodes the station list. Records without a name
// are skipped; order is preserved.
func (s *HTTPService) GetStations(ctx context.Context) ([]domain.Station, error) {
	log := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read stations: %w", err)
	}

	var records []record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to decode stations: %w", err)
	}

	stations := make([]domain.Station, 0, len(records))
	skipped := 0
	for _, r := range records {
		if r.Name == "" {
			skipped++
			continue
		}
		stations = append(stations, r.station())
	}

	log.Debug().
		Str("url", s.url).
		Int("stations", len(stations)).
		Int("skipped", skipped).
		Dur("took", time.Since(start)).
		Msg("stations fetched")

	return stations, nil
}

// record is one element of the source array. Ids and coordinates show up as
// numbers or strings depending on the feed.
type record struct {
	ID    flexString `json:"id"`
	Name  string     `json:"name"`
	Lat   flexFloat  `json:"lat"`
	Lng   flexFloat  `json:"lng"`
	Lines []string   `json:"lines"`
}

func (r record) station() domain.Station {
	return domain.Station{
		ID:    string(r.ID),
		Name:  r.Name,
		Lat:   float64(r.Lat),
		Lng:   float64(r.Lng),
		Lines: r.Lines,
	}
}

type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", s, err)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
