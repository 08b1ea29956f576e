// Package feedtest serves canned quake and plate feeds for tests.
package feedtest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// QuakesJSON holds a single M5.2 event.
const QuakesJSON = `{
	"type": "FeatureCollection",
	"metadata": {"title": "USGS Magnitude 1.0+ Earthquakes, Past Week"},
	"features": [
		{"type": "Feature", "id": "test1",
		 "properties": {"mag": 5.2, "place": "10km N of Testville", "time": 1700000000000},
		 "geometry": {"type": "Point", "coordinates": [-120, 35, 8.5]}}
	]
}`

// PlatesJSON holds a single two vertex boundary.
const PlatesJSON = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature",
		 "properties": {"LAYER": "plate", "Name": "AF-AN", "PlateA": "AF", "PlateB": "AN"},
		 "geometry": {"type": "LineString", "coordinates": [[-0.4379, -54.8518], [-0.0381, -54.6348]]}}
	]
}`

// Server serves /quakes and /plates and counts the requests to each.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	quakes response
	plates response

	quakeHits atomic.Int32
	plateHits atomic.Int32
}

type response struct {
	status int
	body   string
}

// NewServer starts a server answering with the canned feeds.
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		quakes: response{status: http.StatusOK, body: QuakesJSON},
		plates: response{status: http.StatusOK, body: PlatesJSON},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/quakes", func(w http.ResponseWriter, _ *http.Request) {
		s.quakeHits.Add(1)
		s.mu.Lock()
		resp := s.quakes
		s.mu.Unlock()
		write(w, resp)
	})
	mux.HandleFunc("/plates", func(w http.ResponseWriter, _ *http.Request) {
		s.plateHits.Add(1)
		s.mu.Lock()
		resp := s.plates
		s.mu.Unlock()
		write(w, resp)
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)

	return s
}

// SetQuakes changes the quake feed answer.
func (s *Server) SetQuakes(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quakes = response{status: status, body: body}
}

// SetPlates changes the plate feed answer.
func (s *Server) SetPlates(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plates = response{status: status, body: body}
}

// QuakesURL is the address of the quake feed.
func (s *Server) QuakesURL() string { return s.URL + "/quakes" }

// PlatesURL is the address of the plate feed.
func (s *Server) PlatesURL() string { return s.URL + "/plates" }

// QuakeHits returns the number of quake feed requests served.
func (s *Server) QuakeHits() int { return int(s.quakeHits.Load()) }

// PlateHits returns the number of plate feed requests served.
func (s *Server) PlateHits() int { return int(s.plateHits.Load()) }

func write(w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}
