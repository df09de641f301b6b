package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/shouna/internal/model"
)

const coatJSON = `{"name":"羊毛大衣","category":"服装","description":"灰色长款","tags":["冬季","外套"],"suggestedStorageType":"衣柜"}`

type fakeProvider struct {
	classify func(ctx context.Context, data []byte, mime, instruction string) (string, error)
	complete func(ctx context.Context, prompt string) (string, error)

	classifyCalls atomic.Int32
	lastPrompt    string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Classify(ctx context.Context, data []byte, mime, instruction string) (string, error) {
	f.classifyCalls.Add(1)
	return f.classify(ctx, data, mime, instruction)
}

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.complete(ctx, prompt)
}

func replying(text string, err error) func(context.Context, []byte, string, string) (string, error) {
	return func(context.Context, []byte, string, string) (string, error) { return text, err }
}

func TestAnalyzeImage(t *testing.T) {
	var gotMIME, gotInstruction string
	p := &fakeProvider{classify: func(_ context.Context, _ []byte, mime, instruction string) (string, error) {
		gotMIME, gotInstruction = mime, instruction
		return coatJSON, nil
	}}
	g := New(p, Options{Timeout: time.Second})

	a, err := g.AnalyzeImage(context.Background(), []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, &model.Analysis{
		Name:                 "羊毛大衣",
		Category:             "服装",
		Description:          "灰色长款",
		Tags:                 []string{"冬季", "外套"},
		SuggestedStorageType: "衣柜",
	}, a)
	assert.Equal(t, "image/jpeg", gotMIME)
	assert.Equal(t, AnalyzeInstruction, gotInstruction)
}

func TestAnalyzeImageFencedOutput(t *testing.T) {
	p := &fakeProvider{classify: replying("```json\n"+coatJSON+"\n```", nil)}
	g := New(p, Options{})

	a, err := g.AnalyzeImage(context.Background(), []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "羊毛大衣", a.Name)
}

func TestAnalyzeImageFailures(t *testing.T) {
	tests := map[string]*fakeProvider{
		"provider error":   {classify: replying("", errors.New("quota exceeded"))},
		"not configured":   {classify: replying("", ErrNotConfigured)},
		"empty text":       {classify: replying("  ", nil)},
		"not json":         {classify: replying("这是一件大衣", nil)},
		"missing category": {classify: replying(`{"name":"x","description":"","tags":[],"suggestedStorageType":""}`, nil)},
		"tags not array":   {classify: replying(`{"name":"x","category":"y","description":"","tags":"a","suggestedStorageType":""}`, nil)},
	}
	for name, p := range tests {
		t.Run(name, func(t *testing.T) {
			g := New(p, Options{CacheSize: 4})
			a, err := g.AnalyzeImage(context.Background(), []byte("jpeg"), "image/jpeg")
			assert.Nil(t, a)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrGateway))

			var gerr *Error
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, "analyze", gerr.Op)
		})
	}
}

func TestAnalyzeImageEmptyData(t *testing.T) {
	p := &fakeProvider{classify: replying(coatJSON, nil)}
	g := New(p, Options{})

	_, err := g.AnalyzeImage(context.Background(), nil, "image/jpeg")
	assert.True(t, errors.Is(err, ErrGateway))
	assert.Equal(t, int32(0), p.classifyCalls.Load())
}

func TestAnalyzeImageCache(t *testing.T) {
	p := &fakeProvider{classify: replying(coatJSON, nil)}
	g := New(p, Options{CacheSize: 4})
	ctx := context.Background()

	first, err := g.AnalyzeImage(ctx, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	first.Tags[0] = "changed"

	second, err := g.AnalyzeImage(ctx, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "冬季", second.Tags[0])
	assert.Equal(t, int32(1), p.classifyCalls.Load())

	_, err = g.AnalyzeImage(ctx, []byte("jpeg"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, int32(2), p.classifyCalls.Load())
}

func TestAnalyzeImageFailureNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	p := &fakeProvider{classify: func(context.Context, []byte, string, string) (string, error) {
		if fail.Load() {
			return "", errors.New("temporary")
		}
		return coatJSON, nil
	}}
	g := New(p, Options{CacheSize: 4})
	ctx := context.Background()

	_, err := g.AnalyzeImage(ctx, []byte("jpeg"), "image/jpeg")
	require.Error(t, err)

	fail.Store(false)
	a, err := g.AnalyzeImage(ctx, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "羊毛大衣", a.Name)
}

func TestAnalyzeImageWithoutCache(t *testing.T) {
	p := &fakeProvider{classify: replying(coatJSON, nil)}
	g := New(p, Options{})
	ctx := context.Background()

	for range 3 {
		_, err := g.AnalyzeImage(ctx, []byte("jpeg"), "image/jpeg")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), p.classifyCalls.Load())
}

func TestAnalyzeImageSharesInFlightCall(t *testing.T) {
	release := make(chan struct{})
	p := &fakeProvider{classify: func(context.Context, []byte, string, string) (string, error) {
		<-release
		return coatJSON, nil
	}}
	g := New(p, Options{CacheSize: 4})

	const callers = 5
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	errs := make(chan error, callers)
	for range callers {
		go func() {
			defer done.Done()
			started.Done()
			_, err := g.AnalyzeImage(context.Background(), []byte("same"), "image/jpeg")
			errs <- err
		}()
	}

	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	done.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), p.classifyCalls.Load())
}

func TestAnalyzeImageCallerCancelled(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan struct{})
	p := &fakeProvider{classify: func(context.Context, []byte, string, string) (string, error) {
		defer close(finished)
		<-release
		return coatJSON, nil
	}}
	g := New(p, Options{CacheSize: 4})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := g.AnalyzeImage(ctx, []byte("jpeg"), "image/jpeg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGateway))
	assert.True(t, errors.Is(err, context.Canceled))

	close(release)
	<-finished

	require.Eventually(t, func() bool {
		a, err := g.AnalyzeImage(context.Background(), []byte("jpeg"), "image/jpeg")
		return err == nil && a.Name == "羊毛大衣"
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), p.classifyCalls.Load())
}

func TestAnalyzeImageTimeout(t *testing.T) {
	p := &fakeProvider{classify: func(ctx context.Context, _ []byte, _, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	g := New(p, Options{Timeout: 20 * time.Millisecond})

	_, err := g.AnalyzeImage(context.Background(), []byte("jpeg"), "image/jpeg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestAdvise(t *testing.T) {
	p := &fakeProvider{complete: func(context.Context, string) (string, error) {
		return "**先分类**，再收纳。", nil
	}}
	g := New(p, Options{})
	items := []model.Item{
		{Name: "冬季羽绒服", Category: "服装"},
		{Name: "破壁机", Category: "厨房电器"},
	}

	reply := g.Advise(context.Background(), "衣服太多怎么办？", items)
	assert.Equal(t, "**先分类**，再收纳。", reply)
	assert.Contains(t, p.lastPrompt, `用户的问题是: "衣服太多怎么办？"`)
	assert.Contains(t, p.lastPrompt, "冬季羽绒服 (服装), 破壁机 (厨房电器)")
}

func TestAdviseFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		err   error
		reply string
	}{
		{"provider error", "", errors.New("unreachable"), FallbackReply},
		{"not configured", "", ErrNotConfigured, FallbackReply},
		{"empty answer", "", nil, EmptyReply},
		{"blank answer", " \n ", nil, EmptyReply},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{complete: func(context.Context, string) (string, error) {
				return tt.text, tt.err
			}}
			g := New(p, Options{})
			assert.Equal(t, tt.reply, g.Advise(context.Background(), "怎么办", nil))
		})
	}
}

func TestAdviseTimeout(t *testing.T) {
	p := &fakeProvider{complete: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	g := New(p, Options{Timeout: 20 * time.Millisecond})

	assert.Equal(t, FallbackReply, g.Advise(context.Background(), "怎么办", nil))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "", Summary(nil))
	assert.Equal(t, "台灯 (家具)", Summary([]model.Item{{Name: "台灯", Category: "家具"}}))

	items := make([]model.Item, 100)
	for i := range items {
		items[i] = model.Item{Name: "收纳箱子", Category: "储物"}
	}
	s := Summary(items)
	assert.Equal(t, MaxSummaryRunes, len([]rune(s)))
	assert.True(t, strings.HasPrefix(s, "收纳箱子 (储物), 收纳箱子"))
}
