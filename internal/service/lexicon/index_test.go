package lexicon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/config"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

// mockFetcher counts calls and optionally blocks until release is closed.
type mockFetcher struct {
	FetchFunc func(ctx context.Context) ([]domain.LexiconEntry, error)
	calls     atomic.Int32
	release   chan struct{}
}

func (m *mockFetcher) Fetch(ctx context.Context) ([]domain.LexiconEntry, error) {
	m.calls.Add(1)
	if m.release != nil {
		<-m.release
	}
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return sampleEntries(), nil
}

func sampleEntries() []domain.LexiconEntry {
	return []domain.LexiconEntry{
		{Simplified: "语言", Traditional: "語言", Pinyin: "yǔ yán", Glosses: []string{"language"}},
		{Simplified: "有", Traditional: "有", Pinyin: "yǒu", Glosses: []string{"to have"}},
		{Traditional: "電", Pinyin: "diàn", Glosses: []string{"electricity"}},
	}
}

func newTestIndex(f *mockFetcher) *Index {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewIndex(logger, f, config.LexiconConfig{LoadTimeout: 5 * time.Second})
}

func TestIndex_Lookup_BothKeysShareIdentity(t *testing.T) {
	t.Parallel()
	ix := newTestIndex(&mockFetcher{})
	ctx := context.Background()

	simp, err := ix.Lookup(ctx, "语言")
	require.NoError(t, err)
	trad, err := ix.Lookup(ctx, "語言")
	require.NoError(t, err)

	assert.Same(t, simp, trad, "simplified and traditional keys must resolve to the same entry")
	assert.Equal(t, []string{"language"}, simp.Glosses)
}

func TestIndex_Lookup_IdenticalFormsStoredOnce(t *testing.T) {
	t.Parallel()
	ix := newTestIndex(&mockFetcher{})

	_, err := ix.Lookup(context.Background(), "有")
	require.NoError(t, err)
	// 语言, 語言, 有, 電
	assert.Equal(t, 4, ix.Len())
}

func TestIndex_Lookup_NormalizesToken(t *testing.T) {
	t.Parallel()
	ix := newTestIndex(&mockFetcher{})

	e, err := ix.Lookup(context.Background(), "  電 ")
	require.NoError(t, err)
	assert.Equal(t, "diàn", e.Pinyin)
}

func TestIndex_Lookup_Miss(t *testing.T) {
	t.Parallel()
	ix := newTestIndex(&mockFetcher{})

	for _, token := range []string{"猫", "", "   ", "语"} {
		_, err := ix.Lookup(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrNotFound, "token %q", token)
	}
}

func TestIndex_LookupBeforeLoadWaits(t *testing.T) {
	t.Parallel()
	f := &mockFetcher{release: make(chan struct{})}
	ix := newTestIndex(f)

	result := make(chan error, 1)
	go func() {
		_, err := ix.Lookup(context.Background(), "有")
		result <- err
	}()

	select {
	case err := <-result:
		t.Fatalf("lookup returned before the dataset was fetched: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	assert.False(t, ix.Loaded())
	assert.Zero(t, ix.Len())

	close(f.release)
	require.NoError(t, <-result)
	assert.True(t, ix.Loaded())
}

func TestIndex_ConcurrentLoadsFetchOnce(t *testing.T) {
	t.Parallel()
	f := &mockFetcher{release: make(chan struct{})}
	ix := newTestIndex(f)

	const callers = 16
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- ix.Load(context.Background())
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(f.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), f.calls.Load())

	require.NoError(t, ix.Load(context.Background()))
	assert.Equal(t, int32(1), f.calls.Load(), "a completed load is never repeated")
}

func TestIndex_FailedLoadStaysEmpty(t *testing.T) {
	t.Parallel()
	fetchErr := errors.New("network down")
	f := &mockFetcher{FetchFunc: func(ctx context.Context) ([]domain.LexiconEntry, error) {
		return nil, fetchErr
	}}
	ix := newTestIndex(f)
	ctx := context.Background()

	require.NoError(t, ix.Load(ctx), "a failed fetch still completes the load")
	assert.ErrorIs(t, ix.LoadErr(), fetchErr)
	assert.Zero(t, ix.Len())

	_, err := ix.Lookup(ctx, "有")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, ix.Load(ctx))
	assert.Equal(t, int32(1), f.calls.Load(), "failed load is never retried")
}

func TestIndex_CallerCancelDoesNotPoisonLoad(t *testing.T) {
	t.Parallel()
	f := &mockFetcher{release: make(chan struct{})}
	f.FetchFunc = func(ctx context.Context) ([]domain.LexiconEntry, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return sampleEntries(), nil
	}
	ix := newTestIndex(f)

	ctx, cancel := context.WithCancel(context.Background())
	waitErr := make(chan error, 1)
	go func() { waitErr <- ix.Load(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-waitErr, context.Canceled)

	close(f.release)
	e, err := ix.Lookup(context.Background(), "有")
	require.NoError(t, err)
	assert.Equal(t, "yǒu", e.Pinyin)
	assert.NoError(t, ix.LoadErr())
}

func TestIndex_Define(t *testing.T) {
	t.Parallel()
	ix := newTestIndex(&mockFetcher{})
	ctx := context.Background()

	hit, err := ix.Define(ctx, "語言")
	require.NoError(t, err)
	assert.True(t, hit.Found)
	require.NotNil(t, hit.Entry)
	assert.Equal(t, "语言", hit.Entry.Simplified)

	miss, err := ix.Define(ctx, "不在")
	require.NoError(t, err)
	assert.False(t, miss.Found)
	assert.Nil(t, miss.Entry)
}

func TestIndex_Define_CancelledWhileLoading(t *testing.T) {
	t.Parallel()
	f := &mockFetcher{release: make(chan struct{})}
	t.Cleanup(func() { close(f.release) })
	ix := newTestIndex(f)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := ix.Define(ctx, "有")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestIndex_Lookup_LoadedIndexIgnoresCancelledCtx(t *testing.T) {
	t.Parallel()
	ix := newTestIndex(&mockFetcher{})
	require.NoError(t, ix.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// select over two ready channels is random; repeat to catch a stray ctx error
	for range 200 {
		e, err := ix.Lookup(ctx, "有")
		require.NoError(t, err)
		assert.Equal(t, "yǒu", e.Pinyin)
	}
}
