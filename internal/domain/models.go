package domain

import "strings"

// Station represents a single stop returned by the station data source
type Station struct {
	ID    string   `json:"id,omitempty"`
	Name  string   `json:"name"`
	Lat   float64  `json:"lat,omitempty"`
	Lng   float64  `json:"lng,omitempty"`
	Lines []string `json:"lines,omitempty"`
}

// MatchesText reports whether the station name contains text, ignoring case
func (s Station) MatchesText(text string) bool {
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), strings.ToLower(text))
}

// FilterStations returns the stations whose name contains text, in source order
func FilterStations(stations []Station, text string) []Station {
	filtered := make([]Station, 0, len(stations))
	for _, s := range stations {
		if s.MatchesText(text) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Selection is the pair of stations picked in the search form
type Selection struct {
	From string
	To   string
}

// Complete reports whether both ends of the trip have been chosen
func (s Selection) Complete() bool {
	return s.From != "" && s.To != ""
}
