package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wutims/draftengine/internal/diag"
	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/metrics"
)

var logger = diag.New("llm.Reranker")

const (
	apiURL       = "https://api.tokenfactory.us-central1.nebius.com/v1/chat/completions"
	defaultModel = "deepseek-ai/DeepSeek-V3-0324-fast"

	defaultTimeout = 15 * time.Second
	maxTimeout     = 30 * time.Second

	requestTemperature = 0.3
	requestMaxTokens    = 2500
)

// Reranker reorders algorithmic pick/ban candidates through a hosted
// chat-completion model, falling back to the algorithm's own order
// whenever the model is unreachable, slow, or returns something that
// doesn't parse.
type Reranker struct {
	apiKey      string
	model       string
	timeout     time.Duration
	httpClient  *http.Client
	cache       *responseCache
	viableRoles ViableRoles
}

// NewReranker builds a Reranker. timeout <= 0 falls back to
// defaultTimeout; timeout above maxTimeout is clamped to it. cache may
// be nil, in which case every call skips caching and goes straight to
// the model.
func NewReranker(apiKey string, timeout time.Duration, cache *responseCache, viableRoles ViableRoles) *Reranker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if timeout > maxTimeout {
		timeout = maxTimeout
	}
	return &Reranker{
		apiKey:      apiKey,
		model:       defaultModel,
		timeout:     timeout,
		httpClient:  &http.Client{Timeout: timeout + 5*time.Second},
		cache:       cache,
		viableRoles: viableRoles,
	}
}

// WithModel overrides the default model.
func (r *Reranker) WithModel(model string) *Reranker {
	if model != "" {
		r.model = model
	}
	return r
}

// RerankPicks reorders pick candidates for the role the draft needs
// filled next, pre-filtered by champion role viability.
func (r *Reranker) RerankPicks(ctx context.Context, role domain.Role, candidates []Candidate, draftCtx DraftContext, ourPlayers, enemyPlayers []PlayerRef, limit int, series *SeriesSection) RerankerResult {
	filtered := filterByRole(candidates, role, r.viableRoles)
	if len(filtered) == 0 {
		filtered = candidates
	}
	prompt := buildPrompt("pick", draftCtx, filtered, ourPlayers, enemyPlayers, series)
	return r.rerank(ctx, prompt, filtered, limit)
}

// RerankBans reorders ban candidates.
func (r *Reranker) RerankBans(ctx context.Context, candidates []Candidate, draftCtx DraftContext, ourPlayers, enemyPlayers []PlayerRef, limit int, series *SeriesSection) RerankerResult {
	prompt := buildPrompt("ban", draftCtx, candidates, ourPlayers, enemyPlayers, series)
	return r.rerank(ctx, prompt, candidates, limit)
}

func (r *Reranker) rerank(ctx context.Context, prompt string, candidates []Candidate, limit int) RerankerResult {
	if r.cache != nil {
		if cached, ok := r.cache.get(prompt); ok {
			metrics.LLMOutcomes.WithLabelValues("cache_hit").Inc()
			return cached
		}
	}

	start := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	content, err := r.call(callCtx, prompt)
	metrics.LLMLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := "transport_error"
		if callCtx.Err() == context.DeadlineExceeded {
			outcome = "timeout"
		}
		metrics.LLMOutcomes.WithLabelValues(outcome).Inc()
		logger.Error("rerank request failed, using algorithm ranking: %v", err)
		return r.fallback(candidates, limit, err.Error())
	}

	result, err := parseResponse(content, candidates, limit)
	if err != nil {
		metrics.LLMOutcomes.WithLabelValues("parse_failure").Inc()
		logger.Error("rerank response unparseable, using algorithm ranking: %v", err)
		return r.fallback(candidates, limit, err.Error())
	}

	metrics.LLMOutcomes.WithLabelValues("success").Inc()
	if r.cache != nil {
		r.cache.set(prompt, result)
	}
	return result
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (r *Reranker) call(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a professional League of Legends draft analyst."},
			{Role: "user", Content: prompt},
		},
		Temperature: requestTemperature,
		MaxTokens:   requestMaxTokens,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode response envelope: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

// fallback preserves the algorithm's own order, tagging every entry so
// the caller and the UI both know the model didn't actually run.
func (r *Reranker) fallback(candidates []Candidate, limit int, errMsg string) RerankerResult {
	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}
	reranked := make([]RerankedRecommendation, 0, limit)
	for i, c := range candidates[:limit] {
		reranked = append(reranked, RerankedRecommendation{
			Champion:      c.Champion,
			OriginalRank:  i + 1,
			NewRank:       i + 1,
			OriginalScore: c.Score,
			Confidence:    0.5,
			Reasoning:     "(using algorithm ranking)",
		})
	}
	return RerankerResult{
		Reranked:      reranked,
		DraftAnalysis: fmt.Sprintf("LLM unavailable (%s). Using algorithm rankings.", truncate(errMsg, 50)),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
