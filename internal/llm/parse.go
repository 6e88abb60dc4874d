package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/wutims/draftengine/internal/domain"
)

// extractJSON isolates the JSON object embedded in a chat completion's
// content, tolerating a leading reasoning block and markdown code
// fences around the payload. Brace matching tracks string/escape state
// so braces inside quoted strings never throw off the depth count.
func extractJSON(content string) (string, error) {
	if idx := strings.LastIndex(content, "</think>"); idx != -1 {
		content = content[idx+len("</think>"):]
	}
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 1 {
			lines = lines[1:]
		}
		if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
			lines = lines[:len(lines)-1]
		}
		content = strings.TrimSpace(strings.Join(lines, "\n"))
	}

	start := strings.IndexByte(content, '{')
	if start == -1 {
		return "", fmt.Errorf("no JSON object found in response")
	}

	depth := 0
	inString := false
	escapeNext := false
	for i := start; i < len(content); i++ {
		c := content[i]
		if escapeNext {
			escapeNext = false
			continue
		}
		switch c {
		case '\\':
			escapeNext = true
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return content[start : i+1], nil
				}
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object in response")
}

// rawRerankResponse mirrors the model's wire shape, which uses
// permissive field types (e.g. a rank that arrives as a string) that
// get normalized once parsed.
type rawRerankResponse struct {
	Reranked []struct {
		Champion         string      `json:"champion"`
		NewRank          json.Number `json:"new_rank"`
		Confidence       json.Number `json:"confidence"`
		Reasoning        string      `json:"reasoning"`
		StrategicFactors []string    `json:"strategic_factors"`
	} `json:"reranked"`
	AdditionalSuggestions []AdditionalSuggestion `json:"additional_suggestions"`
	DraftAnalysis         string                  `json:"draft_analysis"`
}

// parseResponse validates the model's extracted JSON against the
// original candidate list, matching champion names case-insensitively
// so capitalization drift in the model's output doesn't drop an entry.
// An empty reranked list or any malformed payload is treated as a
// parse failure so the caller can fall back to the algorithm ranking.
func parseResponse(content string, candidates []Candidate, limit int) (RerankerResult, error) {
	payload, err := extractJSON(content)
	if err != nil {
		return RerankerResult{}, fmt.Errorf("extract json: %w", err)
	}

	var raw rawRerankResponse
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return RerankerResult{}, fmt.Errorf("decode json: %w", err)
	}
	if len(raw.Reranked) == 0 {
		return RerankerResult{}, fmt.Errorf("model returned no reranked candidates")
	}

	origMap := make(map[string]struct {
		Rank  int
		Score float64
	}, len(candidates))
	for i, c := range candidates {
		origMap[strings.ToLower(c.Champion)] = struct {
			Rank  int
			Score float64
		}{Rank: i + 1, Score: c.Score}
	}

	result := RerankerResult{
		AdditionalSuggestions: raw.AdditionalSuggestions,
		DraftAnalysis:         raw.DraftAnalysis,
	}
	for _, r := range raw.Reranked {
		if limit > 0 && len(result.Reranked) >= limit {
			break
		}
		orig, known := origMap[strings.ToLower(r.Champion)]
		if !known {
			continue
		}
		newRank := orig.Rank
		if n, err := r.NewRank.Int64(); err == nil {
			newRank = int(n)
		}
		confidence := 0.5
		if f, err := strconv.ParseFloat(r.Confidence.String(), 64); err == nil {
			confidence = f
		}
		result.Reranked = append(result.Reranked, RerankedRecommendation{
			Champion:         r.Champion,
			OriginalRank:     orig.Rank,
			NewRank:          newRank,
			OriginalScore:    orig.Score,
			Confidence:       confidence,
			Reasoning:        r.Reasoning,
			StrategicFactors: r.StrategicFactors,
		})
	}
	if len(result.Reranked) == 0 {
		return RerankerResult{}, fmt.Errorf("none of the model's champions matched a known candidate")
	}
	return result, nil
}

// filterByRole drops candidates the champion cannot viably play, using
// the caller-supplied role table rather than any knowledge of how
// viability is computed.
func filterByRole(candidates []Candidate, role domain.Role, viable ViableRoles) []Candidate {
	if viable == nil {
		return candidates
	}
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		for _, r := range viable(c.Champion) {
			if r == role {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
