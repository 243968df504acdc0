package vocab

import (
	"context"
	"sync"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

var _ vocabRepo = &vocabRepoMock{}

type vocabRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.VocabularyItem, error)
	UpdateFunc  func(ctx context.Context, id int64, v domain.NewVocabulary) (*domain.VocabularyItem, error)
	DeleteFunc  func(ctx context.Context, id int64) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		Update []struct {
			Ctx context.Context
			ID  int64
			V   domain.NewVocabulary
		}
		Delete []struct {
			Ctx context.Context
			ID  int64
		}
	}
	lockGetByID sync.RWMutex
	lockUpdate  sync.RWMutex
	lockDelete  sync.RWMutex
}

func (mock *vocabRepoMock) GetByID(ctx context.Context, id int64) (*domain.VocabularyItem, error) {
	if mock.GetByIDFunc == nil {
		panic("vocabRepoMock.GetByIDFunc: method is nil but vocabRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *vocabRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *vocabRepoMock) Update(ctx context.Context, id int64, v domain.NewVocabulary) (*domain.VocabularyItem, error) {
	if mock.UpdateFunc == nil {
		panic("vocabRepoMock.UpdateFunc: method is nil but vocabRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
		V   domain.NewVocabulary
	}{Ctx: ctx, ID: id, V: v}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, v)
}

func (mock *vocabRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	ID  int64
	V   domain.NewVocabulary
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *vocabRepoMock) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("vocabRepoMock.DeleteFunc: method is nil but vocabRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *vocabRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
