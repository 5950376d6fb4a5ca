// Command coverage sweeps a running calendar API day by day and checks that
// every answer is consistent: season boundaries line up, offsets agree with
// the day number, and moon phases repeat with the right period.
//
// Usage:
//
//	go run ./cmd/coverage -url http://localhost:8080 -days 720
//
// Every ruleset is swept: base game, RoG from each season, and DST.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
)

// APIResponse matches the API response structure
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type rangeResponse struct {
	Days []calendar.Snapshot `json:"days"`
}

// Ruleset is one combination of query settings to sweep.
type Ruleset struct {
	Name  string
	Query string
	DST   bool
}

var rulesets = []Ruleset{
	{Name: "base/summer", Query: ""},
	{Name: "base/winter", Query: "starting_season=winter"},
	{Name: "rog/autumn", Query: "rog=true&starting_season=autumn"},
	{Name: "rog/spring", Query: "rog=true&starting_season=spring"},
	{Name: "dst/summer", Query: "dst=true", DST: true},
	{Name: "dst/winter", Query: "dst=true&starting_season=winter", DST: true},
}

// TestResult holds the result for a single day of one ruleset
type TestResult struct {
	Ruleset string   `json:"ruleset"`
	Day     int64    `json:"day"`
	Season  string   `json:"season"`
	Phase   string   `json:"phase"`
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
}

// RulesetStats aggregates results for one ruleset.
type RulesetStats struct {
	Ruleset     string  `json:"ruleset"`
	Succeeded  int     `json:"succeeded"`
	Failed     int     `json:"failed"`
	FailedDays []int64 `json:"failed_days"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	days := flag.Int64("days", 720, "Number of days to sweep per ruleset")
	chunk := flag.Int64("chunk", 90, "Days per range request (must not exceed MAX_RANGE_DAYS)")
	verbose := flag.Bool("v", false, "Verbose output (show each failing day)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	fmt.Println("================================================================")
	fmt.Println("Don't Starve Calendar API - Consistency Sweep")
	fmt.Println("================================================================")
	fmt.Printf("Base URL:    %s\n", *baseURL)
	fmt.Printf("Day Range:   1 to %d\n", *days)
	fmt.Printf("Rulesets:    %d\n", len(rulesets))
	fmt.Println()

	// Check if server is reachable
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	var results []TestResult
	for _, rs := range rulesets {
		snaps, err := fetchDays(client, *baseURL, rs, *days, *chunk)
		if err != nil {
			fmt.Printf("Error: %s: %v\n", rs.Name, err)
			os.Exit(1)
		}
		rsResults := checkAll(rs, snaps)
		results = append(results, rsResults...)

		if *verbose {
			for _, r := range rsResults {
				if !r.Success {
					fmt.Printf("  ✗ %s day %d: %v\n", r.Ruleset, r.Day, r.Errors)
				}
			}
		}
	}

	stats := analyzeResults(results)
	failed := printSummary(stats)

	if *outputFile != "" {
		saveResults(*outputFile, results, stats)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// fetchDays reads days 1..total for a ruleset in range requests of chunk days.
func fetchDays(client *http.Client, baseURL string, rs Ruleset, total, chunk int64) ([]calendar.Snapshot, error) {
	snaps := make([]calendar.Snapshot, 0, total)
	for start := int64(1); start <= total; start += chunk {
		end := min(start+chunk-1, total)

		url := fmt.Sprintf("%s/api/v1/calendar/range?start=%d&end=%d", baseURL, start, end)
		if rs.Query != "" {
			url += "&" + rs.Query
		}

		var data rangeResponse
		if err := getData(client, url, &data); err != nil {
			return nil, fmt.Errorf("days %d-%d: %w", start, end, err)
		}
		snaps = append(snaps, data.Days...)
	}
	return snaps, nil
}

func getData(client *http.Client, url string, target interface{}) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	if !apiResp.Success {
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if apiResp.Error != nil {
			msg += ": " + apiResp.Error.Message
		}
		return fmt.Errorf("API error: %s", msg)
	}
	return json.Unmarshal(apiResp.Data, target)
}

func analyzeResults(results []TestResult) []*RulesetStats {
	byName := make(map[string]*RulesetStats)
	var order []string
	for _, r := range results {
		s, ok := byName[r.Ruleset]
		if !ok {
			s = &RulesetStats{Ruleset: r.Ruleset}
			byName[r.Ruleset] = s
			order = append(order, r.Ruleset)
		}
		if r.Success {
			s.Succeeded++
		} else {
			s.Failed++
			s.FailedDays = append(s.FailedDays, r.Day)
		}
	}

	stats := make([]*RulesetStats, len(order))
	for i, name := range order {
		stats[i] = byName[name]
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Failed > stats[j].Failed })
	return stats
}

func printSummary(stats []*RulesetStats) int {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")

	failed := 0
	for _, s := range stats {
		status := "✓"
		if s.Failed > 0 {
			status = "✗"
		}
		total := s.Succeeded + s.Failed
		fmt.Printf("  %s %-12s %d/%d days consistent\n", status, s.Ruleset, s.Succeeded, total)

		if s.Failed > 0 {
			shown := s.FailedDays
			if len(shown) > 5 {
				shown = shown[:5]
			}
			fmt.Printf("      failing days: %v", shown)
			if len(s.FailedDays) > 5 {
				fmt.Printf(" ... and %d more", len(s.FailedDays)-5)
			}
			fmt.Println()
		}
		failed += s.Failed
	}
	fmt.Println()

	if failed == 0 {
		fmt.Println("No inconsistencies! 🎉")
	} else {
		fmt.Printf("%d inconsistent day(s)\n", failed)
	}
	return failed
}

func saveResults(filename string, results []TestResult, stats []*RulesetStats) {
	var failures []TestResult
	for _, r := range results {
		if !r.Success {
			failures = append(failures, r)
		}
	}

	output := struct {
		GeneratedAt string          `json:"generated_at"`
		TotalDays   int             `json:"total_days"`
		ByRuleset   []*RulesetStats `json:"by_ruleset"`
		Failures    []TestResult    `json:"failures"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		TotalDays:   len(results),
		ByRuleset:   stats,
		Failures:    failures,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}
