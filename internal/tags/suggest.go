package tags

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/studiowebux/gist/internal/config"
	"golang.org/x/oauth2"
)

const (
	suggestTimeout = 10 * time.Second
	promptPrefix   = "Extract 3-5 relevant tags separated by commas:\n"
)

// fallbackKeywords are matched case-insensitively against content when no API is used
var fallbackKeywords = []string{"rust", "python", "javascript", "html", "css", "sql", "bash", "code", "snippet"}

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
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Suggester produces tags for content using an OpenAI-compatible chat completion
// endpoint, falling back to keyword detection and default tags.
type Suggester struct {
	settings config.Settings
	client   *http.Client
}

// NewSuggester builds a suggester from a settings snapshot
func NewSuggester(settings config.Settings) *Suggester {
	s := &Suggester{settings: settings}
	if settings.TagAPIKey != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: settings.TagAPIKey, TokenType: "Bearer"})
		s.client = oauth2.NewClient(context.Background(), src)
		s.client.Timeout = suggestTimeout
	}
	return s
}

// Suggest returns a sanitized tag string for content. It never fails:
// API errors degrade to keyword detection, then to the default tags.
func (s *Suggester) Suggest(ctx context.Context, content string) string {
	if !s.settings.AutoGenerateTags {
		return s.settings.DefaultTagString()
	}

	if s.client != nil {
		if tags, err := s.Generate(ctx, content); err == nil && tags != "" {
			return tags
		}
	}

	return s.keywordTags(content)
}

// Generate asks the completion endpoint for tags
func (s *Suggester) Generate(ctx context.Context, content string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("no tag API key configured")
	}

	body, err := json.Marshal(chatRequest{
		Model:       s.settings.AIModel,
		Messages:    []chatMessage{{Role: "user", Content: promptPrefix + content}},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := strings.TrimRight(s.settings.AIBaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request tags: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}

	return Sanitize(decoded.Choices[0].Message.Content), nil
}

func (s *Suggester) keywordTags(content string) string {
	lower := strings.ToLower(content)
	var detected []string
	for _, kw := range fallbackKeywords {
		if strings.Contains(lower, kw) {
			detected = append(detected, kw)
		}
	}
	if len(detected) > 0 {
		return Sanitize(strings.Join(detected, ","))
	}
	return s.settings.DefaultTagString()
}
