package vocab

import (
	"context"
	"fmt"
	"sync"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

type pageCall struct {
	Offset int
	Limit  int
}

// fakeStore serves pages from an in-memory slice already in browse order.
// When started is set every fetch signals on it; when release is set every
// fetch blocks until release is closed or ctx ends.
type fakeStore struct {
	mu      sync.Mutex
	rows    []domain.VocabularyItem
	err     error
	calls   []pageCall
	started chan struct{}
	release chan struct{}
}

func newFakeStore(n int) *fakeStore {
	return &fakeStore{rows: makeRows(n)}
}

func makeRows(n int) []domain.VocabularyItem {
	rows := make([]domain.VocabularyItem, n)
	for i := range rows {
		rows[i] = domain.VocabularyItem{
			ID:         int64(i + 1),
			Level:      domain.IntPtr(i%domain.MaxLevel + 1),
			Simplified: fmt.Sprintf("字%d", i+1),
			Pinyin:     fmt.Sprintf("zi%03d", i+1),
			English:    fmt.Sprintf("word %d", i+1),
		}
	}
	return rows
}

func (f *fakeStore) FetchPage(ctx context.Context, offset, limit int) ([]domain.VocabularyItem, error) {
	f.mu.Lock()
	f.calls = append(f.calls, pageCall{Offset: offset, Limit: limit})
	err, started, release := f.err, f.started, f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if offset >= len(f.rows) {
		return []domain.VocabularyItem{}, nil
	}
	end := min(offset+limit, len(f.rows))
	return append([]domain.VocabularyItem(nil), f.rows[offset:end]...), nil
}

func (f *fakeStore) Calls() []pageCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]pageCall(nil), f.calls...)
}

func (f *fakeStore) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeStore) gate() {
	f.mu.Lock()
	f.started = make(chan struct{}, 8)
	f.release = make(chan struct{})
	f.mu.Unlock()
}

func (f *fakeStore) ungate() {
	f.mu.Lock()
	close(f.release)
	f.started, f.release = nil, nil
	f.mu.Unlock()
}
