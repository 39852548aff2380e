package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/unbiaslab/unbias-backend/internal/cache"
	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/types"
)

func newHeuristicClient() ValidationClient {
	return NewValidationClient(logger.NewNop(), cache.NewMemory(), ValidationConfig{})
}

func newRemoteClient(apiURL string) ValidationClient {
	return NewValidationClient(logger.NewNop(), cache.NewMemory(), ValidationConfig{
		APIKey: "test-key",
		APIURL: apiURL,
	})
}

func chatReply(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(body)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestHeuristicScoring(t *testing.T) {
	longPublished := strings.Repeat("x", 110) + " published"

	cases := []struct {
		name            string
		text            string
		source          string
		wantConfidence  float64
		wantStatus      string
		wantSuggestions int
	}{
		{
			name:            "short_no_source",
			text:            "A short note.",
			source:          "",
			wantConfidence:  0.5,
			wantStatus:      types.CitationStatusNeedsReview,
			wantSuggestions: 2,
		},
		{
			name:            "long_keyword_with_source_clamps_to_one",
			text:            longPublished,
			source:          "J. Sci",
			wantConfidence:  1.0,
			wantStatus:      types.CitationStatusValidated,
			wantSuggestions: 0,
		},
		{
			name:            "keyword_only",
			text:            "A study of things.",
			source:          "",
			wantConfidence:  0.65,
			wantStatus:      types.CitationStatusValidated,
			wantSuggestions: 2,
		},
		{
			name:            "source_only",
			text:            "A short note.",
			source:          "J. Sci",
			wantConfidence:  0.7,
			wantStatus:      types.CitationStatusValidated,
			wantSuggestions: 0,
		},
		{
			name:            "whitespace_source_still_counts",
			text:            "A short note.",
			source:          "   ",
			wantConfidence:  0.7,
			wantStatus:      types.CitationStatusValidated,
			wantSuggestions: 0,
		},
		{
			// 60 runes but 120 bytes; the length bonus counts runes.
			name:            "multibyte_under_length_threshold",
			text:            strings.Repeat("é", 60),
			source:          "",
			wantConfidence:  0.5,
			wantStatus:      types.CitationStatusNeedsReview,
			wantSuggestions: 2,
		},
		{
			name:            "multibyte_over_length_threshold",
			text:            strings.Repeat("é", 101),
			source:          "",
			wantConfidence:  0.65,
			wantStatus:      types.CitationStatusValidated,
			wantSuggestions: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newHeuristicClient()
			got, err := c.Validate(context.Background(), tc.text, tc.source)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !almostEqual(got.Confidence, tc.wantConfidence) {
				t.Fatalf("confidence=%v, want %v", got.Confidence, tc.wantConfidence)
			}
			if got.Status != tc.wantStatus {
				t.Fatalf("status=%q, want %q", got.Status, tc.wantStatus)
			}
			if len(got.Suggestions) != tc.wantSuggestions {
				t.Fatalf("suggestions=%v, want %d entries", got.Suggestions, tc.wantSuggestions)
			}
			if !got.Mock {
				t.Fatal("heuristic verdict must be tagged as mock")
			}
		})
	}
}

func TestHeuristicConfidenceBounds(t *testing.T) {
	c := newHeuristicClient()
	texts := []string{
		"x",
		"A plain sentence with no keywords at all.",
		strings.Repeat("research ", 40),
		strings.Repeat("y", 101),
		"published study in a research journal " + strings.Repeat("z", 200),
	}
	sources := []string{"", "Journal of Testing"}

	for _, text := range texts {
		for _, source := range sources {
			got, err := c.Validate(context.Background(), text, source)
			if err != nil {
				t.Fatalf("Validate(%q, %q): %v", text, source, err)
			}
			if got.Confidence < 0.0 || got.Confidence > 1.0 {
				t.Fatalf("confidence %v out of [0,1] for text=%q source=%q", got.Confidence, text, source)
			}
		}
	}
}

func TestValidateEmptyTextRejected(t *testing.T) {
	c := newHeuristicClient()
	if _, err := c.Validate(context.Background(), "   ", ""); err == nil {
		t.Fatal("expected error for empty citation text")
	}
}

func TestValidateCachesVerdict(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, chatReply(`{"status":"needs_review","confidence":0.42,"analysis":"sketchy","suggestions":["check DOI"]}`))
	}))
	defer srv.Close()

	c := newRemoteClient(srv.URL)
	first, err := c.Validate(context.Background(), "Smith et al., 2020", "")
	if err != nil {
		t.Fatalf("first Validate: %v", err)
	}
	second, err := c.Validate(context.Background(), "Smith et al., 2020", "")
	if err != nil {
		t.Fatalf("second Validate: %v", err)
	}

	if calls != 1 {
		t.Fatalf("remote endpoint hit %d times, want 1", calls)
	}
	firstRaw, _ := json.Marshal(first)
	secondRaw, _ := json.Marshal(second)
	if string(firstRaw) != string(secondRaw) {
		t.Fatalf("cached verdict differs: %s vs %s", firstRaw, secondRaw)
	}
	if first.Status != types.CitationStatusNeedsReview || !almostEqual(first.Confidence, 0.42) {
		t.Fatalf("remote verdict not used verbatim: %+v", first)
	}
}

func TestCacheKeyIgnoresSource(t *testing.T) {
	c := newHeuristicClient()
	text := "Smith et al., 2020 study on X"

	// First call has no source: base 0.5 + keyword 0.15.
	first, err := c.Validate(context.Background(), text, "")
	if err != nil {
		t.Fatalf("first Validate: %v", err)
	}
	if !almostEqual(first.Confidence, 0.65) {
		t.Fatalf("first confidence=%v, want 0.65", first.Confidence)
	}

	// A source would add 0.2 on a fresh computation; the cached verdict
	// must come back instead.
	second, err := c.Validate(context.Background(), text, "Journal A")
	if err != nil {
		t.Fatalf("second Validate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected cached verdict regardless of source: %+v vs %+v", first, second)
	}
}

func TestRemoteNonJSONReplyWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply("This citation looks legitimate to me."))
	}))
	defer srv.Close()

	c := newRemoteClient(srv.URL)
	got, err := c.Validate(context.Background(), "Some citation text", "")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.Status != types.CitationStatusValidated {
		t.Fatalf("status=%q, want validated", got.Status)
	}
	if !almostEqual(got.Confidence, 0.7) {
		t.Fatalf("confidence=%v, want 0.7", got.Confidence)
	}
	if got.Analysis != "This citation looks legitimate to me." {
		t.Fatalf("analysis=%q, want raw reply text", got.Analysis)
	}
	if len(got.Suggestions) != 0 {
		t.Fatalf("suggestions=%v, want empty", got.Suggestions)
	}
}

func TestRemoteJSONWithoutStatusUsedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply(`{"confidence":0.9,"analysis":"credible primary source"}`))
	}))
	defer srv.Close()

	c := newRemoteClient(srv.URL)
	got, err := c.Validate(context.Background(), "Some citation text", "")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.Status != "" {
		t.Fatalf("status=%q, want empty (defaulted only at persist time)", got.Status)
	}
	if !almostEqual(got.Confidence, 0.9) {
		t.Fatalf("confidence=%v, want 0.9", got.Confidence)
	}
	if got.Analysis != "credible primary source" {
		t.Fatalf("analysis=%q", got.Analysis)
	}
	if got.Suggestions == nil || len(got.Suggestions) != 0 {
		t.Fatalf("suggestions=%v, want empty non-nil", got.Suggestions)
	}
}

func TestRemoteFailureBecomesErrorVerdict(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newRemoteClient(srv.URL)
	got, err := c.Validate(context.Background(), "Unreachable citation", "")
	if err != nil {
		t.Fatalf("Validate must not fail on remote errors: %v", err)
	}
	if got.Status != types.CitationStatusError {
		t.Fatalf("status=%q, want error", got.Status)
	}
	if got.Confidence != 0.0 {
		t.Fatalf("confidence=%v, want 0", got.Confidence)
	}
	if len(got.Suggestions) != 1 || got.Suggestions[0] != "Manual verification required" {
		t.Fatalf("suggestions=%v", got.Suggestions)
	}

	// The error verdict is cached like any other.
	if _, err := c.Validate(context.Background(), "Unreachable citation", ""); err != nil {
		t.Fatalf("second Validate: %v", err)
	}
	if calls != 1 {
		t.Fatalf("remote endpoint hit %d times, want 1 (error verdict should be cached)", calls)
	}
}

func TestRemoteConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newRemoteClient(url)
	got, err := c.Validate(context.Background(), "Citation against a dead endpoint", "")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.Status != types.CitationStatusError {
		t.Fatalf("status=%q, want error", got.Status)
	}
}
