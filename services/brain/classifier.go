// File: services/brain/classifier.go
package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"huddle/config"
	"huddle/models"
)

// Classification is what a classifier extracts from raw input.
type Classification struct {
	Category string         `json:"category"`
	Summary  string         `json:"summary"`
	Tags     []string       `json:"tags,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
}

// Classifier turns free text into a structured classification.
type Classifier interface {
	Classify(ctx context.Context, text string) (*Classification, error)
}

// NewClassifier picks the configured backend: the external service
// when CLASSIFIER_URL is set, otherwise the built-in keyword rules.
func NewClassifier() Classifier {
	if url := config.AppConfig.ClassifierURL; url != "" {
		return &HTTPClassifier{URL: url, Client: &http.Client{Timeout: 15 * time.Second}}
	}
	return KeywordClassifier{}
}

// HTTPClassifier delegates classification to an external service that
// accepts {"text": ...} and answers with a Classification document.
type HTTPClassifier struct {
	URL    string
	Client *http.Client
}

func (c *HTTPClassifier) Classify(ctx context.Context, text string) (*Classification, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(excerpt))
	}

	var out Classification
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	out.Category = normalizeCategory(out.Category)
	if out.Summary == "" {
		out.Summary = summarize(text)
	}
	return &out, nil
}

var knownCategories = map[string]bool{
	models.CategoryTask:       true,
	models.CategoryIdea:       true,
	models.CategoryShopping:   true,
	models.CategoryNote:       true,
	models.CategoryMeeting:    true,
	models.CategoryReflection: true,
	models.CategoryContact:    true,
	models.CategoryEvent:      true,
}

// normalizeCategory folds anything the classifier invents into the
// known set; unknown labels land in "note".
func normalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if knownCategories[c] {
		return c
	}
	return models.CategoryNote
}

// KeywordClassifier is the zero-dependency fallback used when no
// classifier service is configured. First matching rule wins.
type KeywordClassifier struct{}

var categoryRules = []struct {
	category string
	words    []string
}{
	{models.CategoryMeeting, []string{"meeting", "standup", "agenda", "retro", "sync with"}},
	{models.CategoryTask, []string{"todo", "to do", "need to", "must ", "remind", "deadline", "don't forget", "finish "}},
	{models.CategoryShopping, []string{"buy ", "order ", "purchase", "shopping", "wishlist"}},
	{models.CategoryEvent, []string{"event", "conference", "appointment", "birthday", "party"}},
	{models.CategoryIdea, []string{"idea", "what if", "we could", "prototype", "concept"}},
	{models.CategoryContact, []string{"phone:", "email:", "reach out to", "met with", "introduce"}},
	{models.CategoryReflection, []string{"i feel", "i felt", "grateful", "journal", "today was"}},
}

func (KeywordClassifier) Classify(_ context.Context, text string) (*Classification, error) {
	lower := strings.ToLower(text)
	category := models.CategoryNote
	for _, rule := range categoryRules {
		if containsAny(lower, rule.words) {
			category = rule.category
			break
		}
	}
	return &Classification{
		Category: category,
		Summary:  summarize(text),
		Tags:     hashtags(text),
	}, nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// summarize takes the first line of the input, capped at 140 runes.
func summarize(text string) string {
	line := strings.TrimSpace(text)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	runes := []rune(line)
	if len(runes) > 140 {
		return string(runes[:140])
	}
	return line
}

// hashtags collects #tag style markers from the input, lowercased.
func hashtags(text string) []string {
	var tags []string
	for _, word := range strings.Fields(text) {
		if !strings.HasPrefix(word, "#") || len(word) < 2 {
			continue
		}
		tag := strings.ToLower(strings.TrimRight(word[1:], ".,!?;:"))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
