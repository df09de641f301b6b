// Package assistant is the gateway to the generative model: it turns item
// photos into structured records and answers organizing questions.
package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/erazemk/shouna/internal/metrics"
	"github.com/erazemk/shouna/internal/model"
)

// Options tunes a Gateway.
type Options struct {
	// Timeout bounds each provider call.
	Timeout time.Duration
	// CacheSize is the number of analysis results kept; zero disables the
	// cache.
	CacheSize int
	CacheTTL  time.Duration
}

// Gateway wraps a Provider with timeouts, result caching and
// de-duplication of concurrent analyses of the same photo.
type Gateway struct {
	provider Provider
	timeout  time.Duration
	cache    *expirable.LRU[string, model.Analysis]
	group    singleflight.Group
}

// New returns a gateway over p.
func New(p Provider, opts Options) *Gateway {
	g := &Gateway{provider: p, timeout: opts.Timeout}
	if g.timeout <= 0 {
		g.timeout = 60 * time.Second
	}
	if opts.CacheSize > 0 {
		g.cache = expirable.NewLRU[string, model.Analysis](opts.CacheSize, nil, opts.CacheTTL)
	}
	return g
}

// AnalyzeImage extracts an item record from a photo. Any failure is
// returned as an *Error matching ErrGateway; there is no partial result.
func (g *Gateway) AnalyzeImage(ctx context.Context, data []byte, mime string) (*model.Analysis, error) {
	if len(data) == 0 {
		return nil, newError(metrics.OperationAnalyze, "empty image", nil)
	}

	key := cacheKey(data, mime)
	if g.cache != nil {
		if a, ok := g.cache.Get(key); ok {
			metrics.AssistantRequests.WithLabelValues(metrics.OperationAnalyze, metrics.OutcomeCached).Inc()
			return cloneAnalysis(a), nil
		}
	}

	ch := g.group.DoChan(key, func() (any, error) {
		// Shared by every caller waiting on this photo, so it outlives
		// any single caller's cancellation.
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
		defer cancel()
		return g.analyze(callCtx, key, data, mime)
	})

	select {
	case <-ctx.Done():
		return nil, newError(metrics.OperationAnalyze, "request cancelled", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return cloneAnalysis(res.Val.(model.Analysis)), nil
	}
}

func (g *Gateway) analyze(ctx context.Context, key string, data []byte, mime string) (model.Analysis, error) {
	start := time.Now()
	text, err := g.provider.Classify(ctx, data, mime, AnalyzeInstruction)
	metrics.AssistantDuration.WithLabelValues(metrics.OperationAnalyze).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AssistantRequests.WithLabelValues(metrics.OperationAnalyze, metrics.OutcomeError).Inc()
		slog.Warn("image analysis failed", "provider", g.provider.Name(), "error", err)
		return model.Analysis{}, newError(metrics.OperationAnalyze, "provider call failed", err)
	}

	a, err := decodeAnalysis(text)
	if err != nil {
		metrics.AssistantRequests.WithLabelValues(metrics.OperationAnalyze, metrics.OutcomeError).Inc()
		slog.Warn("image analysis returned unusable output", "provider", g.provider.Name(), "error", err)
		return model.Analysis{}, newError(metrics.OperationAnalyze, "unusable response", err)
	}

	metrics.AssistantRequests.WithLabelValues(metrics.OperationAnalyze, metrics.OutcomeSuccess).Inc()
	if g.cache != nil {
		g.cache.Add(key, *a)
	}
	return *a, nil
}

// Advise answers an organizing question with the inventory as context. It
// never fails: provider errors yield FallbackReply and an empty answer
// yields EmptyReply.
func (g *Gateway) Advise(ctx context.Context, question string, items []model.Item) string {
	prompt := AdvicePrompt(question, Summary(items))

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.provider.Complete(ctx, prompt)
	metrics.AssistantDuration.WithLabelValues(metrics.OperationAdvise).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AssistantRequests.WithLabelValues(metrics.OperationAdvise, metrics.OutcomeError).Inc()
		slog.Warn("advice request failed", "provider", g.provider.Name(), "error", err)
		return FallbackReply
	}

	metrics.AssistantRequests.WithLabelValues(metrics.OperationAdvise, metrics.OutcomeSuccess).Inc()
	if strings.TrimSpace(text) == "" {
		return EmptyReply
	}
	return text
}

func cacheKey(data []byte, mime string) string {
	h := sha256.New()
	h.Write([]byte(mime))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

func cloneAnalysis(a model.Analysis) *model.Analysis {
	a.Tags = append([]string{}, a.Tags...)
	return &a
}
