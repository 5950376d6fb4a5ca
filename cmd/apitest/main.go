// Command apitest runs a smoke suite against a running calendar API.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -key $API_KEY
//
// Without -key the world routes are only exercised if the server runs in
// development mode with no API key configured.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type Phase struct {
	Label    string `json:"label"`
	Day      int    `json:"day"`
	Duration int    `json:"duration"`
}

type SeasonInfo struct {
	Label  string `json:"label"`
	Begins struct {
		Absolute int64 `json:"absolute"`
		Relative int64 `json:"relative"`
	} `json:"begins"`
	Duration int   `json:"duration"`
	Day      int64 `json:"day,omitempty"`
}

// CalendarResponse is the response for /calendar and each /calendar/range day.
type CalendarResponse struct {
	Today  int64  `json:"today"`
	RoG    bool   `json:"is_rog"`
	DST    bool   `json:"is_dst"`
	Pace   string `json:"pace"`
	Phase  Phase  `json:"phase"`
	Season struct {
		Current SeasonInfo `json:"current"`
		Next    SeasonInfo `json:"next"`
	} `json:"season"`
}

type RangeResponse struct {
	Start int64              `json:"start"`
	End   int64              `json:"end"`
	Days  []CalendarResponse `json:"days"`
}

type WorldResponse struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Today    int64            `json:"today"`
	Calendar CalendarResponse `json:"calendar"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Don't Starve Calendar API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testKnownDays()
	tr.testSeasonBoundaries()
	tr.testEdgeCases()
	tr.testWorlds()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, status, err := tr.do(http.MethodGet, "/health", nil)
	if err != nil || status != http.StatusOK {
		tr.recordError("Health", describe(status, err))
		return
	}

	var health HealthResponse
	if err := json.Unmarshal(resp.Data, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testKnownDays() {
	tr.printSection("Known Days")

	testCases := []struct {
		query       string
		phase       string
		season      string
		next        string
		nextBegins  int64
		description string
	}{
		{"day=1", "new moon", "summer", "winter", 21, "First day, base game"},
		{"day=20", "waxing quarter", "summer", "winter", 21, "Last day of summer"},
		{"day=21", "first quarter", "winter", "summer", 37, "First day of winter"},
		{"day=37", "first quarter", "summer", "winter", 57, "Second year"},
		{"day=1&rog=true&starting_season=autumn", "new moon", "autumn", "winter", 21, "RoG from autumn"},
		{"day=72&rog=true&starting_season=autumn", "waxing gibbous", "summer", "autumn", 73, "Last day of a RoG year"},
		{"day=11&dst=true", "full moon", "summer", "autumn", 17, "DST full moon"},
	}

	for _, tc := range testCases {
		var data CalendarResponse
		if !tr.getData("/api/v1/calendar?"+tc.query, &data, tc.description) {
			continue
		}

		cur, next := data.Season.Current, data.Season.Next
		if data.Phase.Label != tc.phase || cur.Label != tc.season || next.Label != tc.next || next.Begins.Absolute != tc.nextBegins {
			tr.recordError(tc.description, fmt.Sprintf(
				"got %s / %s → %s@%d, want %s / %s → %s@%d",
				data.Phase.Label, cur.Label, next.Label, next.Begins.Absolute,
				tc.phase, tc.season, tc.next, tc.nextBegins))
			continue
		}

		tr.recordSuccess(fmt.Sprintf("%s (%s): %s, %s", tc.description, tc.query, data.Phase.Label, cur.Label))
		if tr.verbose {
			fmt.Printf("    current began day %d (%+d), next in %d days\n",
				cur.Begins.Absolute, cur.Begins.Relative, next.Begins.Relative)
		}
	}
}

func (tr *TestRunner) testSeasonBoundaries() {
	tr.printSection("Season Boundaries (days 1-72, RoG)")

	var data RangeResponse
	if !tr.getData("/api/v1/calendar/range?start=1&end=72&rog=true&starting_season=autumn", &data, "Range") {
		return
	}
	if len(data.Days) != 72 {
		tr.recordError("Range", fmt.Sprintf("got %d days, want 72", len(data.Days)))
		return
	}

	for i := 1; i < len(data.Days); i++ {
		prev, cur := data.Days[i-1], data.Days[i]
		if prev.Season.Current.Label != cur.Season.Current.Label {
			if cur.Season.Current.Begins.Absolute != cur.Today {
				tr.recordError("Range", fmt.Sprintf("day %d starts %s but reports begin %d",
					cur.Today, cur.Season.Current.Label, cur.Season.Current.Begins.Absolute))
				continue
			}
			tr.recordSuccess(fmt.Sprintf("Day %d: %s → %s", cur.Today, prev.Season.Current.Label, cur.Season.Current.Label))
		}
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	testCases := []struct {
		path       string
		wantStatus int
		wantCode   string
	}{
		{"/api/v1/calendar", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/calendar?day=0", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/calendar?day=-5", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/calendar?day=abc", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/calendar?day=1&pace=short", http.StatusNotImplemented, "NOT_IMPLEMENTED"},
		{"/api/v1/calendar?day=1&starting_season=rain", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/calendar/range?start=1&end=10000", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/worlds/does-not-exist", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tc := range testCases {
		resp, status, err := tr.do(http.MethodGet, tc.path, nil)
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}

		code := ""
		if resp.Error != nil {
			code = resp.Error.Code
		}
		if status != tc.wantStatus || code != tc.wantCode {
			tr.recordError(tc.path, fmt.Sprintf("got HTTP %d %s, want %d %s", status, code, tc.wantStatus, tc.wantCode))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s → %d %s", tc.path, status, code))
	}
}

func (tr *TestRunner) testWorlds() {
	tr.printSection("Saved Worlds")

	name := fmt.Sprintf("apitest-%d", time.Now().Unix())
	path := "/api/v1/worlds/" + url.PathEscape(name)

	resp, status, err := tr.do(http.MethodPost, "/api/v1/worlds", map[string]interface{}{
		"name": name, "today": 20,
	})
	if err != nil {
		tr.recordError("Create world", err.Error())
		return
	}
	if status == http.StatusUnauthorized {
		fmt.Println("  - skipped: server requires an API key (use -key)")
		return
	}
	if status != http.StatusCreated {
		tr.recordError("Create world", describe(status, apiError(resp)))
		return
	}
	tr.recordSuccess("Created " + name)

	// Always clean up, even if a later step fails.
	defer func() {
		if _, status, err := tr.do(http.MethodDelete, path, nil); err != nil || status != http.StatusOK {
			tr.recordError("Delete world", describe(status, err))
			return
		}
		tr.recordSuccess("Deleted " + name)
	}()

	resp, status, err = tr.do(http.MethodPost, path+"/advance", nil)
	if err != nil || status != http.StatusOK {
		tr.recordError("Advance world", describe(status, err))
		return
	}
	var world WorldResponse
	if err := json.Unmarshal(resp.Data, &world); err != nil {
		tr.recordError("Advance world", err.Error())
		return
	}
	if world.Today != 21 || world.Calendar.Season.Current.Label != "winter" {
		tr.recordError("Advance world", fmt.Sprintf("got day %d %s, want 21 winter",
			world.Today, world.Calendar.Season.Current.Label))
		return
	}
	tr.recordSuccess("Advanced to day 21 (winter)")

	resp, status, err = tr.do(http.MethodPatch, path, map[string]interface{}{"is_dst": true})
	if err != nil || status != http.StatusOK {
		tr.recordError("Patch world", describe(status, err))
		return
	}
	if err := json.Unmarshal(resp.Data, &world); err != nil {
		tr.recordError("Patch world", err.Error())
		return
	}
	if !world.Calendar.RoG || !world.Calendar.DST {
		tr.recordError("Patch world", "enabling DST did not enable RoG")
		return
	}
	tr.recordSuccess("Enabling DST also enabled RoG")
}

// =============================================================================
// Helper Methods
// =============================================================================

// do sends a request and decodes the envelope. Non-2xx statuses are not
// errors here; callers check status themselves.
func (tr *TestRunner) do(method, path string, body interface{}) (*APIResponse, int, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal error: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, bodyReader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}

	resp, err := tr.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("parse error: %w", err)
	}
	return &apiResp, resp.StatusCode, nil
}

// getData fetches path and decodes its data into target, recording an error
// under label on failure.
func (tr *TestRunner) getData(path string, target interface{}, label string) bool {
	resp, status, err := tr.do(http.MethodGet, path, nil)
	if err != nil {
		tr.recordError(label, err.Error())
		return false
	}
	if !resp.Success {
		tr.recordError(label, describe(status, apiError(resp)))
		return false
	}
	if err := json.Unmarshal(resp.Data, target); err != nil {
		tr.recordError(label, err.Error())
		return false
	}
	return true
}

func apiError(resp *APIResponse) error {
	if resp == nil || resp.Error == nil {
		return nil
	}
	return fmt.Errorf("%s (%s)", resp.Error.Message, resp.Error.Code)
}

func describe(status int, err error) string {
	if err != nil {
		return fmt.Sprintf("HTTP %d: %v", status, err)
	}
	return fmt.Sprintf("HTTP %d", status)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key for world routes")
	verbose := flag.Bool("v", false, "Verbose output (show season offsets)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
