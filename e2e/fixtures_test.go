//go:build e2e && unix

package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
)

const stationsFixture = `[
  {"id": "90001", "name": "Cynwyd", "lat": "40.0066", "lng": "-75.2316"},
  {"id": "90004", "name": "Gray 30th Street", "lat": "39.9566", "lng": "-75.1820"},
  {"id": "90005", "name": "Suburban Station", "lat": "39.9539", "lng": "-75.1677"},
  {"id": "90006", "name": "Jefferson Station", "lat": "39.9525", "lng": "-75.1580"},
  {"id": "90409", "name": "Jenkintown-Wyncote", "lat": "40.0928", "lng": "-75.1373"},
  {"id": "90007", "name": "Temple University", "lat": "39.9813", "lng": "-75.1495"}
]`

// CreateTestWorkspace creates a temporary HOME for the app under test
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	if err := os.MkdirAll(filepath.Join(tmpDir, ".config"), 0o755); err != nil {
		return "", err
	}
	return tmpDir, nil
}

// StartStationServer serves the station fixture until the test ends
func (tf *TUITestFramework) StartStationServer() string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(stationsFixture))
	}))
	tf.t.Cleanup(srv.Close)
	return srv.URL + "/stations.json"
}

// StartFailingServer answers every request with a 503
func (tf *TUITestFramework) StartFailingServer() string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	tf.t.Cleanup(srv.Close)
	return srv.URL + "/stations.json"
}

// StartWithFixture starts the app against the fixture server and waits for it to render
func (tf *TUITestFramework) StartWithFixture(url string) error {
	workspace, err := tf.CreateTestWorkspace()
	if err != nil {
		return err
	}
	return tf.StartApp(
		"--url", url,
		"--config", filepath.Join(workspace, "config.toml"),
		"--log-file", filepath.Join(workspace, "stationpicker.log"),
	)
}
