package purchase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/skinstore/backend/internal/domain"
)

var _ skinRepo = &skinRepoMock{}

type skinRepoMock struct {
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Skin, error)
	TouchVersionFunc func(ctx context.Context, id uuid.UUID, version int64) error

	calls struct {
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		TouchVersion []struct {
			Ctx     context.Context
			ID      uuid.UUID
			Version int64
		}
	}
	lockGetForUpdate sync.RWMutex
	lockTouchVersion sync.RWMutex
}

func (mock *skinRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Skin, error) {
	if mock.GetForUpdateFunc == nil {
		panic("skinRepoMock.GetForUpdateFunc: method is nil but skinRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *skinRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *skinRepoMock) TouchVersion(ctx context.Context, id uuid.UUID, version int64) error {
	if mock.TouchVersionFunc == nil {
		panic("skinRepoMock.TouchVersionFunc: method is nil but skinRepo.TouchVersion was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      uuid.UUID
		Version int64
	}{Ctx: ctx, ID: id, Version: version}
	mock.lockTouchVersion.Lock()
	mock.calls.TouchVersion = append(mock.calls.TouchVersion, callInfo)
	mock.lockTouchVersion.Unlock()
	return mock.TouchVersionFunc(ctx, id, version)
}

func (mock *skinRepoMock) TouchVersionCalls() []struct {
	Ctx     context.Context
	ID      uuid.UUID
	Version int64
} {
	mock.lockTouchVersion.RLock()
	calls := mock.calls.TouchVersion
	mock.lockTouchVersion.RUnlock()
	return calls
}
