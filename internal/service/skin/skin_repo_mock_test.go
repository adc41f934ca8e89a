package skin

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/skinstore/backend/internal/domain"
)

var _ skinRepo = &skinRepoMock{}

type skinRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Skin, error)
	CreateFunc     func(ctx context.Context, name string, basePriceUSD decimal.Decimal, isAvailable bool) (*domain.Skin, error)
	UpdateFunc     func(ctx context.Context, id uuid.UUID, params domain.SkinUpdate) (*domain.Skin, error)
	SoftDeleteFunc func(ctx context.Context, id uuid.UUID) error
	ListFunc       func(ctx context.Context, filter domain.SkinFilter) ([]domain.Skin, error)
	CountFunc      func(ctx context.Context, filter domain.SkinFilter) (int, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Create []struct {
			Ctx          context.Context
			Name         string
			BasePriceUSD decimal.Decimal
			IsAvailable  bool
		}
		Update []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Params domain.SkinUpdate
		}
		SoftDelete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Filter domain.SkinFilter
		}
		Count []struct {
			Ctx    context.Context
			Filter domain.SkinFilter
		}
	}
	lockGetByID    sync.RWMutex
	lockCreate     sync.RWMutex
	lockUpdate     sync.RWMutex
	lockSoftDelete sync.RWMutex
	lockList       sync.RWMutex
	lockCount      sync.RWMutex
}

func (mock *skinRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Skin, error) {
	if mock.GetByIDFunc == nil {
		panic("skinRepoMock.GetByIDFunc: method is nil but skinRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *skinRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *skinRepoMock) Create(ctx context.Context, name string, basePriceUSD decimal.Decimal, isAvailable bool) (*domain.Skin, error) {
	if mock.CreateFunc == nil {
		panic("skinRepoMock.CreateFunc: method is nil but skinRepo.Create was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		Name         string
		BasePriceUSD decimal.Decimal
		IsAvailable  bool
	}{Ctx: ctx, Name: name, BasePriceUSD: basePriceUSD, IsAvailable: isAvailable}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, name, basePriceUSD, isAvailable)
}

func (mock *skinRepoMock) CreateCalls() []struct {
	Ctx          context.Context
	Name         string
	BasePriceUSD decimal.Decimal
	IsAvailable  bool
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *skinRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.SkinUpdate) (*domain.Skin, error) {
	if mock.UpdateFunc == nil {
		panic("skinRepoMock.UpdateFunc: method is nil but skinRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Params domain.SkinUpdate
	}{Ctx: ctx, ID: id, Params: params}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, params)
}

func (mock *skinRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Params domain.SkinUpdate
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *skinRepoMock) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if mock.SoftDeleteFunc == nil {
		panic("skinRepoMock.SoftDeleteFunc: method is nil but skinRepo.SoftDelete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockSoftDelete.Lock()
	mock.calls.SoftDelete = append(mock.calls.SoftDelete, callInfo)
	mock.lockSoftDelete.Unlock()
	return mock.SoftDeleteFunc(ctx, id)
}

func (mock *skinRepoMock) SoftDeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockSoftDelete.RLock()
	calls := mock.calls.SoftDelete
	mock.lockSoftDelete.RUnlock()
	return calls
}

func (mock *skinRepoMock) List(ctx context.Context, filter domain.SkinFilter) ([]domain.Skin, error) {
	if mock.ListFunc == nil {
		panic("skinRepoMock.ListFunc: method is nil but skinRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.SkinFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *skinRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.SkinFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *skinRepoMock) Count(ctx context.Context, filter domain.SkinFilter) (int, error) {
	if mock.CountFunc == nil {
		panic("skinRepoMock.CountFunc: method is nil but skinRepo.Count was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.SkinFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockCount.Lock()
	mock.calls.Count = append(mock.calls.Count, callInfo)
	mock.lockCount.Unlock()
	return mock.CountFunc(ctx, filter)
}

func (mock *skinRepoMock) CountCalls() []struct {
	Ctx    context.Context
	Filter domain.SkinFilter
} {
	mock.lockCount.RLock()
	calls := mock.calls.Count
	mock.lockCount.RUnlock()
	return calls
}
