package vocab

import "sync"

var _ sessionInvalidator = &sessionInvalidatorMock{}

type sessionInvalidatorMock struct {
	InvalidateAllFunc func()

	calls struct {
		InvalidateAll []struct{}
	}
	lockInvalidateAll sync.RWMutex
}

func (mock *sessionInvalidatorMock) InvalidateAll() {
	mock.lockInvalidateAll.Lock()
	mock.calls.InvalidateAll = append(mock.calls.InvalidateAll, struct{}{})
	mock.lockInvalidateAll.Unlock()
	if mock.InvalidateAllFunc != nil {
		mock.InvalidateAllFunc()
	}
}

func (mock *sessionInvalidatorMock) InvalidateAllCalls() []struct{} {
	mock.lockInvalidateAll.RLock()
	calls := mock.calls.InvalidateAll
	mock.lockInvalidateAll.RUnlock()
	return calls
}
