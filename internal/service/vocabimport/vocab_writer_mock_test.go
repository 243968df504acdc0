package vocabimport

import (
	"context"
	"sync"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

var _ vocabWriter = &vocabWriterMock{}

type vocabWriterMock struct {
	InsertRowsFunc func(ctx context.Context, rows []domain.NewVocabulary) (int, error)

	calls struct {
		InsertRows []struct {
			Ctx  context.Context
			Rows []domain.NewVocabulary
		}
	}
	lockInsertRows sync.RWMutex
}

func (mock *vocabWriterMock) InsertRows(ctx context.Context, rows []domain.NewVocabulary) (int, error) {
	if mock.InsertRowsFunc == nil {
		panic("vocabWriterMock.InsertRowsFunc: method is nil but vocabWriter.InsertRows was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Rows []domain.NewVocabulary
	}{Ctx: ctx, Rows: rows}
	mock.lockInsertRows.Lock()
	mock.calls.InsertRows = append(mock.calls.InsertRows, callInfo)
	mock.lockInsertRows.Unlock()
	return mock.InsertRowsFunc(ctx, rows)
}

func (mock *vocabWriterMock) InsertRowsCalls() []struct {
	Ctx  context.Context
	Rows []domain.NewVocabulary
} {
	mock.lockInsertRows.RLock()
	calls := mock.calls.InsertRows
	mock.lockInsertRows.RUnlock()
	return calls
}

var _ sessionInvalidator = &sessionInvalidatorMock{}

type sessionInvalidatorMock struct {
	calls struct {
		InvalidateAll []struct{}
	}
	lockInvalidateAll sync.RWMutex
}

func (mock *sessionInvalidatorMock) InvalidateAll() {
	mock.lockInvalidateAll.Lock()
	mock.calls.InvalidateAll = append(mock.calls.InvalidateAll, struct{}{})
	mock.lockInvalidateAll.Unlock()
}

func (mock *sessionInvalidatorMock) InvalidateAllCalls() []struct{} {
	mock.lockInvalidateAll.RLock()
	calls := mock.calls.InvalidateAll
	mock.lockInvalidateAll.RUnlock()
	return calls
}
