package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
)

// generateBackoff holds the delays between generation retry attempts.
var generateBackoff = []time.Duration{2 * time.Second, 5 * time.Second}

// LaunchData is the best-effort prefill the generator produces from a bare
// website URL. Any subset of fields may be empty; the caller falls back to
// manual entry per field.
type LaunchData struct {
	Name         string   `json:"name,omitempty"`
	Tagline      string   `json:"tagline,omitempty"`
	Description  string   `json:"description,omitempty"`
	LogoURL      string   `json:"logo_url,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Category     string   `json:"category,omitempty"`
	Links        []string `json:"links,omitempty"`
	BuiltWith    []string `json:"built_with,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// CancelToken lets the caller abort an in-flight generation, retries
// included. Each request owns its own token; nothing is shared process-wide.
type CancelToken struct {
	mu        sync.Mutex
	cancelled bool
	cancel    context.CancelFunc
}

func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel aborts the bound generation. Safe to call multiple times and before
// the token is bound.
func (t *CancelToken) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelled = true
	if t.cancel != nil {
		t.cancel()
	}
}

// bind derives a cancellable context controlled by this token.
func (t *CancelToken) bind(ctx context.Context) context.Context {
	bound, cancel := context.WithCancel(ctx)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancel = cancel
	if t.cancelled {
		cancel()
	}
	return bound
}

// Generator fetches launch-data prefill for a website. It prefers the
// external generator endpoint; when none is configured it falls back to a
// direct LLM completion. Every path degrades to empty fields rather than
// surfacing an error to the user.
type Generator struct {
	endpoint   string
	httpClient *http.Client
	llm        llms.Model
	logger     zerolog.Logger

	// sleep is swapped out in tests to skip real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewGenerator(endpoint string, llm llms.Model) *Generator {
	return &Generator{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		llm:        llm,
		logger:     log.With().Str("service", "generator").Logger(),
		sleep:      sleepCtx,
	}
}

// Generate returns whatever launch data could be derived for the URL. token
// may be nil when the caller does not need cancellation.
func (g *Generator) Generate(ctx context.Context, websiteURL string, token *CancelToken) *LaunchData {
	if token != nil {
		ctx = token.bind(ctx)
	}

	if g.endpoint != "" {
		for attempt := 0; ; attempt++ {
			data, err := g.fetchFromEndpoint(ctx, websiteURL)
			if err == nil {
				return data
			}
			if ctx.Err() != nil || attempt >= len(generateBackoff) {
				g.logger.Warn().Err(err).Str("url", websiteURL).Msg("generator endpoint failed, degrading")
				break
			}
			if g.sleep(ctx, generateBackoff[attempt]) != nil {
				break
			}
		}
	}

	if g.llm != nil && ctx.Err() == nil {
		if data, err := g.generateWithLLM(ctx, websiteURL); err == nil {
			return data
		} else {
			g.logger.Warn().Err(err).Str("url", websiteURL).Msg("llm generation failed, degrading")
		}
	}

	// Manual entry fallback: the form simply stays blank.
	return &LaunchData{}
}

func (g *Generator) fetchFromEndpoint(ctx context.Context, websiteURL string) (*LaunchData, error) {
	payload, err := json.Marshal(map[string]string{"url": websiteURL})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.endpoint+"/generatelaunchdata", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("generator endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var data LaunchData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (g *Generator) generateWithLLM(ctx context.Context, websiteURL string) (*LaunchData, error) {
	prompt := fmt.Sprintf(`You are filling in a startup directory listing for the website %s.
Respond with a single JSON object and nothing else, using these keys:
name, tagline (under 80 chars), description (2-3 sentences), category, tags (array of up to 5 strings), built_with (array of strings).
Leave out any key you cannot infer.`, websiteURL)

	completion, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		return nil, err
	}

	var data LaunchData
	if err := json.Unmarshal([]byte(extractJSON(completion)), &data); err != nil {
		return nil, fmt.Errorf("unparseable llm output: %w", err)
	}
	return &data, nil
}

// extractJSON pulls the first {...} block out of a completion that may be
// wrapped in prose or code fences.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}
