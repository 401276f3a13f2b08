package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/okibi/gateway-bridge/internal/core/domain"
	"github.com/okibi/gateway-bridge/internal/core/ports"
	"github.com/okibi/gateway-bridge/internal/httpclient"
	"github.com/okibi/gateway-bridge/internal/modeldata"
	"github.com/okibi/gateway-bridge/pkg/schema"
)

const tracerName = "gateway-bridge/discovery"

// DiscoveryService answers "what models does this backend expose for this
// credential" while bounding network calls and degrading through the
// fallback ladder on failure. It owns the model cache exclusively.
type DiscoveryService struct {
	logger  *zap.Logger
	cache   ports.ModelCache
	client  httpclient.HTTPClient
	clock   func() time.Time
	timeout time.Duration
	limiter *rate.Limiter
	audit   ports.AuditSink

	// Concurrent fetches for one key are not deduplicated; each goes to the
	// network. Completions are fenced with a per-key monotonic sequence so a
	// slow older fetch can never overwrite a newer result.
	mu        sync.Mutex
	nextSeq   map[string]uint64
	committed map[string]uint64
}

type DiscoveryOption func(*DiscoveryService)

// WithHTTPClient replaces the upstream HTTP client.
func WithHTTPClient(c httpclient.HTTPClient) DiscoveryOption {
	return func(s *DiscoveryService) { s.client = c }
}

// WithClock injects a time source for TTL decisions.
func WithClock(clock func() time.Time) DiscoveryOption {
	return func(s *DiscoveryService) { s.clock = clock }
}

// WithTimeout overrides the per-fetch upstream timeout.
func WithTimeout(d time.Duration) DiscoveryOption {
	return func(s *DiscoveryService) { s.timeout = d }
}

// WithLimiter bounds the rate of upstream discovery calls.
func WithLimiter(l *rate.Limiter) DiscoveryOption {
	return func(s *DiscoveryService) { s.limiter = l }
}

// WithAudit records fetch outcomes to the given sink.
func WithAudit(a ports.AuditSink) DiscoveryOption {
	return func(s *DiscoveryService) { s.audit = a }
}

func NewDiscoveryService(logger *zap.Logger, cache ports.ModelCache, opts ...DiscoveryOption) *DiscoveryService {
	s := &DiscoveryService{
		logger:    logger,
		cache:     cache,
		client:    &http.Client{},
		clock:     time.Now,
		timeout:   domain.DefaultRequestTimeout,
		nextSeq:   make(map[string]uint64),
		committed: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchModels returns the current model list for cfg. With force false a
// fresh cache entry short-circuits the network entirely; otherwise the
// backend is queried and the cache entry replaced wholesale. Failures never
// surface: the result degrades to stale cache contents, then the caller's
// default models, then the built-in catalog.
func (s *DiscoveryService) FetchModels(ctx context.Context, cfg domain.EffectiveConfig, force bool) []schema.ModelDescriptor {
	key := cfg.CacheKey()

	if !force {
		if models, fetchedAt, ok := s.cache.Get(key); ok && s.clock().Sub(fetchedAt) < cfg.CacheTTL {
			s.record(ctx, cfg, "hit", 0, len(models), 0)
			return models
		}
	}

	start := s.clock()
	seq := s.begin(key)

	models, status, err := s.fetchUpstream(ctx, cfg)
	if err != nil {
		s.logger.Warn("Model discovery failed, applying fallback",
			zap.Int("status", status),
			zap.String("endpoint", cfg.BaseURL),
			zap.Error(err),
		)
		return s.fallback(ctx, cfg, key, status, s.clock().Sub(start))
	}

	if s.commit(key, seq, models, s.clock()) {
		s.record(ctx, cfg, "fetched", status, len(models), s.clock().Sub(start))
	} else {
		s.logger.Debug("Discarding out-of-order discovery result",
			zap.String("endpoint", cfg.BaseURL),
			zap.Uint64("seq", seq),
		)
	}
	return models
}

// RefreshModels drops the cache entry for cfg and force-fetches. Equivalent
// to FetchModels with force true, but documents the caller's intent to start
// from a clean slate.
func (s *DiscoveryService) RefreshModels(ctx context.Context, cfg domain.EffectiveConfig) []schema.ModelDescriptor {
	if err := s.cache.Delete(cfg.CacheKey()); err != nil {
		s.logger.Warn("Cache invalidation failed", zap.Error(err))
	}
	return s.FetchModels(ctx, cfg, true)
}

// ClearCache removes the entry for cfg, or every entry when cfg is nil.
// Clearing an empty cache or an absent key is a no-op.
func (s *DiscoveryService) ClearCache(cfg *domain.EffectiveConfig) error {
	if cfg == nil {
		return s.cache.Flush()
	}
	return s.cache.Delete(cfg.CacheKey())
}

// CachedModels reads the cache without any network activity, returning the
// entry even when it is past its TTL.
func (s *DiscoveryService) CachedModels(cfg domain.EffectiveConfig) ([]schema.ModelDescriptor, bool) {
	models, _, ok := s.cache.Get(cfg.CacheKey())
	return models, ok
}

// IsCacheValid reports whether a fresh entry exists for cfg.
func (s *DiscoveryService) IsCacheValid(cfg domain.EffectiveConfig) bool {
	_, fetchedAt, ok := s.cache.Get(cfg.CacheKey())
	return ok && s.clock().Sub(fetchedAt) < cfg.CacheTTL
}

// CacheAge returns how old the entry for cfg is.
func (s *DiscoveryService) CacheAge(cfg domain.EffectiveConfig) (time.Duration, bool) {
	_, fetchedAt, ok := s.cache.Get(cfg.CacheKey())
	if !ok {
		return 0, false
	}
	return s.clock().Sub(fetchedAt), true
}

func (s *DiscoveryService) fetchUpstream(ctx context.Context, cfg domain.EffectiveConfig) ([]schema.ModelDescriptor, int, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "discovery.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("endpoint", cfg.BaseURL))

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}

	// The timeout is enforced through cancellation; the timer is released on
	// every exit path.
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	url := strings.TrimRight(cfg.BaseURL, "/") + "/models"
	headers := map[string]string{
		"Authorization": "Bearer " + cfg.Credential,
	}

	body, err := httpclient.GetJSON(ctx, s.client, url, headers)
	if err != nil {
		var upstream *httpclient.UpstreamError
		if errors.As(err, &upstream) {
			span.SetAttributes(attribute.Int("status", upstream.StatusCode))
			return nil, upstream.StatusCode, err
		}
		return nil, 0, err
	}

	models, err := parseModelList(body)
	if err != nil {
		return nil, http.StatusOK, err
	}
	span.SetAttributes(attribute.Int("models", len(models)))
	return models, http.StatusOK, nil
}

// fallback walks the degradation ladder: stale entry, caller defaults,
// built-in catalog. It always produces a list.
func (s *DiscoveryService) fallback(ctx context.Context, cfg domain.EffectiveConfig, key string, status int, latency time.Duration) []schema.ModelDescriptor {
	if models, fetchedAt, ok := s.cache.Get(key); ok {
		s.logger.Warn("Serving stale model list",
			zap.String("endpoint", cfg.BaseURL),
			zap.Duration("age", s.clock().Sub(fetchedAt)),
		)
		s.record(ctx, cfg, "stale", status, len(models), latency)
		return models
	}

	if len(cfg.DefaultModels) > 0 {
		s.record(ctx, cfg, "defaults", status, len(cfg.DefaultModels), latency)
		out := make([]schema.ModelDescriptor, len(cfg.DefaultModels))
		copy(out, cfg.DefaultModels)
		return out
	}

	s.record(ctx, cfg, "builtin", status, 0, latency)
	return modeldata.DefaultCatalog()
}

func (s *DiscoveryService) begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq[key]++
	return s.nextSeq[key]
}

// commit stores the fetch result unless a later-started fetch already
// committed for this key.
func (s *DiscoveryService) commit(key string, seq uint64, models []schema.ModelDescriptor, fetchedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.committed[key] {
		return false
	}
	s.committed[key] = seq

	if err := s.cache.Put(key, models, fetchedAt); err != nil {
		s.logger.Warn("Cache write failed", zap.Error(err))
	}
	return true
}

func (s *DiscoveryService) record(ctx context.Context, cfg domain.EffectiveConfig, outcome string, status, count int, latency time.Duration) {
	if s.audit == nil {
		return
	}
	rec := ports.FetchRecord{
		ID:         uuid.NewString(),
		Endpoint:   cfg.BaseURL,
		Outcome:    outcome,
		StatusCode: status,
		ModelCount: count,
		Latency:    latency,
		At:         s.clock(),
	}
	if err := s.audit.Record(ctx, rec); err != nil {
		s.logger.Warn("Audit write failed", zap.Error(err))
	}
}

// backendModel is the loosely-validated wire shape of one list entry. Every
// field except id is optional; booleans are pointers so an omitted flag can
// be told apart from an explicit false.
type backendModel struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	DisplayName   string        `json:"display_name"`
	Description   string        `json:"description"`
	ContextWindow int           `json:"context_window"`
	ContextLength int           `json:"context_length"`
	MaxOutput     int           `json:"max_output_tokens"`
	Streaming     *bool         `json:"streaming"`
	Vision        *bool         `json:"vision"`
	ToolCalls     *bool         `json:"tool_calls"`
	Pricing       *backendPrice `json:"pricing"`
}

type backendPrice struct {
	Input  float64 `json:"input"`
	Output float64 `json:"output"`
}

// parseModelList validates the untrusted backend body. The top level must be
// a JSON object with a list-typed data field; anything else fails the whole
// parse. Individual entries without a usable id are dropped, not fatal.
func parseModelList(body []byte) ([]schema.ModelDescriptor, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil || wrapper.Data == nil {
		return nil, domain.ErrInvalidResponse
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(wrapper.Data, &raws); err != nil {
		return nil, domain.ErrInvalidResponse
	}

	models := make([]schema.ModelDescriptor, 0, len(raws))
	for _, raw := range raws {
		var entry backendModel
		if err := json.Unmarshal(raw, &entry); err != nil || entry.ID == "" {
			continue
		}
		models = append(models, normalize(entry))
	}
	return models, nil
}

// normalize synthesizes a full descriptor, defaulting every omitted field.
func normalize(entry backendModel) schema.ModelDescriptor {
	d := schema.NewModelDescriptor(entry.ID)

	switch {
	case entry.DisplayName != "":
		d.Name = entry.DisplayName
	case entry.Name != "":
		d.Name = entry.Name
	}
	if entry.Description != "" {
		d.Description = entry.Description
	}

	switch {
	case entry.ContextWindow > 0:
		d.ContextWindow = entry.ContextWindow
	case entry.ContextLength > 0:
		d.ContextWindow = entry.ContextLength
	default:
		if n, ok := modeldata.KnownContextWindow(entry.ID); ok {
			d.ContextWindow = n
		}
	}
	if entry.MaxOutput > 0 {
		d.MaxOutput = entry.MaxOutput
	}

	if entry.Streaming != nil {
		d.Streaming = *entry.Streaming
	}
	if entry.Vision != nil {
		d.Vision = *entry.Vision
	}
	if entry.ToolCalls != nil {
		d.ToolCalls = *entry.ToolCalls
	}
	if entry.Pricing != nil {
		d.Pricing = &schema.ModelPricing{Input: entry.Pricing.Input, Output: entry.Pricing.Output}
	}
	return d
}
