package services

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/unbiaslab/unbias-backend/internal/cache"
	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/types"
	"github.com/unbiaslab/unbias-backend/internal/utils"
)

// placeholderAPIKey is the sentinel shipped in example env files; a key
// equal to it means "no real credential", same as an empty key.
const placeholderAPIKey = "your_deepseek_api_key_here"

const validationCacheTTL = time.Hour

type ValidationClient interface {
	Validate(ctx context.Context, citationText, source string) (*types.ValidationResult, error)
}

type ValidationConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

func ValidationConfigFromEnv(log *logger.Logger) ValidationConfig {
	return ValidationConfig{
		APIKey:  utils.GetEnv("DEEPSEEK_API_KEY", "", log),
		APIURL:  utils.GetEnv("DEEPSEEK_API_URL", "https://api.deepseek.com/v1", log),
		Model:   utils.GetEnv("DEEPSEEK_MODEL", "deepseek-chat", log),
		Timeout: time.Duration(utils.GetEnvAsInt("DEEPSEEK_TIMEOUT_SECONDS", 30, log)) * time.Second,
	}
}

type validationClient struct {
	log        *logger.Logger
	cache      cache.Cache
	cfg        ValidationConfig
	httpClient *http.Client
}

func NewValidationClient(log *logger.Logger, c cache.Cache, cfg ValidationConfig) ValidationClient {
	if cfg.Model == "" {
		cfg.Model = "deepseek-chat"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &validationClient{
		log:        log.With("service", "ValidationClient"),
		cache:      c,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// validationCacheKey is derived from the citation text alone. Source is
// deliberately excluded: identical text gets the identical verdict no
// matter which source the caller claims.
func validationCacheKey(citationText string) string {
	sum := md5.Sum([]byte(citationText))
	return "citation_validation:" + hex.EncodeToString(sum[:])
}

func (c *validationClient) Validate(ctx context.Context, citationText, source string) (*types.ValidationResult, error) {
	if strings.TrimSpace(citationText) == "" {
		return nil, fmt.Errorf("citation text is empty")
	}

	key := validationCacheKey(citationText)
	if raw, found, err := c.cache.Get(ctx, key); err != nil {
		c.log.Warn("Cache lookup failed, recomputing verdict", "error", err)
	} else if found {
		var cached types.ValidationResult
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		c.log.Warn("Discarding unreadable cached verdict", "key", key)
	}

	var result *types.ValidationResult
	if c.cfg.APIKey == "" || c.cfg.APIKey == placeholderAPIKey {
		result = c.heuristicVerdict(citationText, source)
	} else {
		result = c.remoteVerdict(ctx, citationText, source)
	}

	if raw, err := json.Marshal(result); err == nil {
		if err := c.cache.SetWithTTL(ctx, key, raw, validationCacheTTL); err != nil {
			c.log.Warn("Failed to cache verdict", "key", key, "error", err)
		}
	}
	return result, nil
}

// heuristicVerdict scores a citation without a remote call: longer
// citations with sources and research vocabulary score higher.
func (c *validationClient) heuristicVerdict(citationText, source string) *types.ValidationResult {
	confidence := 0.5
	if source != "" {
		confidence += 0.2
	}
	if utf8.RuneCountInString(citationText) > 100 {
		confidence += 0.15
	}
	lower := strings.ToLower(citationText)
	for _, keyword := range []string{"study", "research", "published", "journal"} {
		if strings.Contains(lower, keyword) {
			confidence += 0.15
			break
		}
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	status := types.CitationStatusNeedsReview
	analysis := "Citation appears to need further verification"
	if confidence > 0.6 {
		status = types.CitationStatusValidated
		analysis = "Citation appears credible"
	}
	suggestions := []string{}
	if confidence < 0.7 {
		suggestions = []string{"Verify original source", "Check publication date"}
	}
	return &types.ValidationResult{
		Status:      status,
		Confidence:  confidence,
		Analysis:    analysis,
		Suggestions: suggestions,
		Mock:        true,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// remoteVerdict makes exactly one attempt against the configured
// endpoint. Every failure mode collapses into an "error" verdict value
// so the caller persists and logs provenance through the same path as a
// success.
func (c *validationClient) remoteVerdict(ctx context.Context, citationText, source string) *types.ValidationResult {
	prompt := buildValidationPrompt(citationText, source)

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
	})
	if err != nil {
		return errorVerdict(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return errorVerdict(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Remote validation call failed", "error", err)
		return errorVerdict(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorVerdict(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("Remote validation returned non-2xx", "status", resp.StatusCode)
		return errorVerdict(fmt.Errorf("deepseek http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var envelope chatResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return errorVerdict(fmt.Errorf("malformed deepseek reply: %w", err))
	}
	if len(envelope.Choices) == 0 {
		return errorVerdict(fmt.Errorf("deepseek reply has no choices"))
	}

	// Any parseable JSON object is taken verbatim, even without a status;
	// callers default an empty status when they persist.
	content := envelope.Choices[0].Message.Content
	var verdict types.ValidationResult
	if err := json.Unmarshal([]byte(content), &verdict); err == nil {
		if verdict.Suggestions == nil {
			verdict.Suggestions = []string{}
		}
		return &verdict
	}

	// Model answered in prose instead of JSON; keep the text as analysis.
	return &types.ValidationResult{
		Status:      types.CitationStatusValidated,
		Confidence:  0.7,
		Analysis:    content,
		Suggestions: []string{},
	}
}

func buildValidationPrompt(citationText, source string) string {
	var b strings.Builder
	b.WriteString("Analyze this citation for credibility and accuracy:\n\n")
	b.WriteString("Citation: " + citationText + "\n")
	if source != "" {
		b.WriteString("Source: " + source + "\n")
	}
	b.WriteString("\nPlease evaluate:\n")
	b.WriteString("1. Does this appear to be a legitimate citation?\n")
	b.WriteString("2. Are there any red flags or issues?\n")
	b.WriteString("3. What is the confidence level (0-1)?\n")
	b.WriteString("4. Any suggestions for verification?\n\n")
	b.WriteString("Respond in JSON format with: status, confidence, analysis, suggestions")
	return b.String()
}

func errorVerdict(err error) *types.ValidationResult {
	return &types.ValidationResult{
		Status:      types.CitationStatusError,
		Confidence:  0.0,
		Analysis:    fmt.Sprintf("Error validating citation: %v", err),
		Suggestions: []string{"Manual verification required"},
	}
}
