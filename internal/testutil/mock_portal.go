// Package testutil provides testing utilities for the profile harvester.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/ryanwatkins/nypd-officer-profiles/pkg/profile"
)

// MockOfficer seeds one officer in the mock portal roster.
type MockOfficer struct {
	TaxID    int
	FullName string
	Letter   string
}

// MockPortal is a configurable mock report portal for testing: it serves
// the token endpoint, the paginated officer lists, and the per-officer
// report datasources built from a seeded roster.
type MockPortal struct {
	server   *httptest.Server
	mu       sync.RWMutex
	roster   map[string][]MockOfficer
	handlers map[string]func(w http.ResponseWriter, r *http.Request)
	pageSize int

	// Tracking
	RequestCount int
	TokenCount   int
	LastCookie   string
}

// NewMockPortal creates a mock portal with the given list page size.
func NewMockPortal(pageSize int) *MockPortal {
	mock := &MockPortal{
		roster:   make(map[string][]MockOfficer),
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
		pageSize: pageSize,
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastCookie = r.Header.Get("Cookie")
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock portal URL.
func (m *MockPortal) URL() string {
	return m.server.URL
}

// TokenURL returns the mock token endpoint URL.
func (m *MockPortal) TokenURL() string {
	return m.server.URL + "/oauth2/token"
}

// Close shuts down the mock portal.
func (m *MockPortal) Close() {
	m.server.Close()
}

// AddOfficers seeds roster entries, bucketed by last-name first letter.
func (m *MockPortal) AddOfficers(officers ...MockOfficer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, officer := range officers {
		letter := officer.Letter
		if letter == "" && officer.FullName != "" {
			letter = officer.FullName[:1]
		}
		m.roster[letter] = append(m.roster[letter], officer)
	}
}

// SetHandler sets a custom handler for a specific path, overriding the
// roster-driven default.
func (m *MockPortal) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// GetRequestCount returns the number of requests made to the portal.
func (m *MockPortal) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

func (m *MockPortal) defaultHandler(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/oauth2/token":
		m.mu.Lock()
		m.TokenCount++
		m.mu.Unlock()
		writeBody(w, `{"access_token": "mock-token", "token_type": "bearer"}`)

	case strings.HasSuffix(r.URL.Path, "/datasource/serverList"):
		m.serveList(w, r)

	case strings.HasSuffix(r.URL.Path, "/datasource/list"):
		m.serveReport(w, r)

	default:
		http.NotFound(w, r)
	}
}

// serveList pages through the roster bucket named in the platform filters.
func (m *MockPortal) serveList(w http.ResponseWriter, r *http.Request) {
	letter := letterFromFilters(r.URL.Query().Get("platformFilters"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	m.mu.RLock()
	bucket := m.roster[letter]
	m.mu.RUnlock()

	start := (page - 1) * m.pageSize
	end := start + m.pageSize
	if start > len(bucket) {
		start = len(bucket)
	}
	if end > len(bucket) {
		end = len(bucket)
	}

	rows := make([]profile.Row, 0, end-start)
	for _, officer := range bucket[start:end] {
		rows = append(rows, ListRow(officer))
	}
	writeJSON(w, profile.ListPayload{Total: len(bucket), Data: rows})
}

// serveReport answers any report datasource with a healthy minimal
// payload: summary, one rank, one training entry, everything else empty.
func (m *MockPortal) serveReport(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	reportID := ""
	for i, part := range parts {
		if part == "reports" && i+1 < len(parts) {
			reportID = parts[i+1]
		}
	}

	switch reportID {
	case "1":
		writeJSON(w, []profile.Row{SummaryRow()})
	case "7":
		writeJSON(w, []profile.Row{RankRow("POM", "07/01/2010 12:00:00 AM")})
	case "1027":
		writeJSON(w, []profile.Row{TrainingRow("05/04/2019 12:00:00 AM", "FIREARMS REQUALIFICATION")})
	default:
		writeBody(w, "[]")
	}
}

func letterFromFilters(filters string) string {
	var decoded struct {
		Filters []struct {
			Key    string   `json:"key"`
			Values []string `json:"values"`
		} `json:"filters"`
	}
	if err := json.Unmarshal([]byte(filters), &decoded); err != nil {
		return ""
	}
	for _, f := range decoded.Filters {
		if f.Key == "@LastNameFirstLetter" && len(f.Values) > 0 {
			return f.Values[0]
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(data)
}

func writeBody(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(body))
}

// cells builds the cell list for a field map from logical values.
func cells(fields map[string]string, values map[string]string) []profile.Cell {
	out := make([]profile.Cell, 0, len(fields))
	for name, id := range fields {
		out = append(out, profile.Cell{ID: id, Value: values[name]})
	}
	return out
}

// ListRow builds a well-formed officer list row for a roster entry.
func ListRow(officer MockOfficer) profile.Row {
	return profile.Row{
		RowValue: strconv.Itoa(officer.TaxID),
		Columns: cells(profile.ListFields, map[string]string{
			"full_name":         officer.FullName,
			"command":           "044 PCT",
			"rank":              "POM",
			"shield_no":         "12345",
			"appt_date":         "07/01/2010 12:00:00 AM",
			"recognition_count": "1",
			"arrest_count":      "2",
		}),
	}
}

// SummaryRow builds a well-formed summary report row.
func SummaryRow() profile.Row {
	return profile.Row{Items: cells(profile.SummaryFields, map[string]string{
		"command":   "044 PCT",
		"rank_desc": "POLICE OFFICER",
		"appt_date": "07/01/2010 12:00:00 AM",
	})}
}

// RankRow builds a well-formed rank history row.
func RankRow(rank, date string) profile.Row {
	return profile.Row{Columns: cells(profile.RankFields, map[string]string{
		"rank":      rank,
		"date":      date,
		"shield_no": "12345",
	})}
}

// TrainingRow builds a well-formed training history row.
func TrainingRow(date, name string) profile.Row {
	return profile.Row{Columns: cells(profile.TrainingFields, map[string]string{
		"date": date,
		"name": name,
	})}
}

// ServerErrorHandler responds 500 to the first n requests on its path,
// then delegates to then.
func ServerErrorHandler(n int, then func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	var mu sync.Mutex
	count := 0
	return func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		count++
		failing := count <= n
		mu.Unlock()
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error": "internal server error"}`)
			return
		}
		then(w, r)
	}
}
