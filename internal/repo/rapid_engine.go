package repo

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/rapidstack/rapid-insight/internal/cache"
	"github.com/rapidstack/rapid-insight/internal/models"
)

// EngineClient wraps the RAPID engine's evaluate API. Evaluations for an
// identical request body are served from cache while the TTL lasts, since
// the engine is deterministic for a fixed signal window.
type EngineClient struct {
	baseURL      string
	evaluatePath string
	healthPath   string
	httpClient   *http.Client
	cache        cache.Provider
	resultTTL    time.Duration
}

// NewEngineClient constructs a client targeting the configured engine instance.
func NewEngineClient(baseURL, evaluatePath, healthPath string, timeout time.Duration, cacheProvider cache.Provider, resultTTL time.Duration) *EngineClient {
	if cacheProvider == nil {
		cacheProvider = cache.NoopProvider{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if resultTTL < 0 {
		resultTTL = 0
	}
	return &EngineClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		evaluatePath: evaluatePath,
		healthPath:   healthPath,
		httpClient:   &http.Client{Timeout: timeout},
		cache:        cacheProvider,
		resultTTL:    resultTTL,
	}
}

// Evaluate submits a full-pipeline evaluation and returns the engine result.
func (c *EngineClient) Evaluate(ctx context.Context, req models.EvaluateRequest) (models.AnalysisResult, error) {
	if c == nil {
		return models.AnalysisResult{}, fmt.Errorf("engine client not initialised")
	}
	if c.baseURL == "" {
		return models.AnalysisResult{}, fmt.Errorf("engine base URL not configured")
	}
	if req.AssetID == "" {
		return models.AnalysisResult{}, fmt.Errorf("asset_id is required")
	}
	if len(req.Signal.Values) == 0 {
		return models.AnalysisResult{}, fmt.Errorf("signal.values cannot be empty")
	}

	key, keyOK := c.cacheKey(req)
	if keyOK && c.resultTTL > 0 {
		if data, err := c.cache.Get(ctx, key); err == nil {
			var cached models.AnalysisResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
			_ = c.cache.Del(ctx, key)
		}
	}

	var result models.AnalysisResult
	if err := c.postJSON(ctx, c.resolvePath(c.evaluatePath), req, &result); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("engine evaluate request failed: %w", err)
	}

	if keyOK && c.resultTTL > 0 {
		if data, err := json.Marshal(result); err == nil {
			_ = c.cache.Set(ctx, key, data, c.resultTTL)
		}
	}
	return result, nil
}

// Health checks the engine's health endpoint.
func (c *EngineClient) Health(ctx context.Context) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("engine client not configured")
	}
	endpoint := c.resolvePath(c.healthPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine health returned %s", resp.Status)
	}
	return nil
}

func (c *EngineClient) cacheKey(req models.EvaluateRequest) (string, bool) {
	// trace_id changes per submission and must not defeat the cache
	req.TraceID = ""
	body, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(body)
	return "evaluate:" + req.AssetID + ":" + hex.EncodeToString(sum[:8]), true
}

func (c *EngineClient) resolvePath(p string) string {
	if c.baseURL == "" {
		return ""
	}
	cleaned := "/" + strings.TrimLeft(p, "/")
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return c.baseURL + cleaned
	}
	u.Path = path.Join(u.Path, cleaned)
	return u.String()
}

func (c *EngineClient) postJSON(ctx context.Context, endpoint string, payload any, out any) error {
	if endpoint == "" {
		return fmt.Errorf("empty endpoint")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
