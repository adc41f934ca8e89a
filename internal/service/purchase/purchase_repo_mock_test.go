package purchase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/skinstore/backend/internal/domain"
)

var _ purchaseRepo = &purchaseRepoMock{}

type purchaseRepoMock struct {
	CreateFunc              func(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error)
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Purchase, error)
	GetByIdempotencyKeyFunc func(ctx context.Context, key string) (*domain.Purchase, error)
	ListFunc                func(ctx context.Context, filter domain.PurchaseFilter) ([]domain.Purchase, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			P   *domain.Purchase
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByIdempotencyKey []struct {
			Ctx context.Context
			Key string
		}
		List []struct {
			Ctx    context.Context
			Filter domain.PurchaseFilter
		}
	}
	lockCreate              sync.RWMutex
	lockGetByID             sync.RWMutex
	lockGetByIdempotencyKey sync.RWMutex
	lockList                sync.RWMutex
}

func (mock *purchaseRepoMock) Create(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error) {
	if mock.CreateFunc == nil {
		panic("purchaseRepoMock.CreateFunc: method is nil but purchaseRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.Purchase
	}{Ctx: ctx, P: p}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *purchaseRepoMock) CreateCalls() []struct {
	Ctx context.Context
	P   *domain.Purchase
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *purchaseRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	if mock.GetByIDFunc == nil {
		panic("purchaseRepoMock.GetByIDFunc: method is nil but purchaseRepo.GetByID was just called")
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

func (mock *purchaseRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *purchaseRepoMock) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Purchase, error) {
	if mock.GetByIdempotencyKeyFunc == nil {
		panic("purchaseRepoMock.GetByIdempotencyKeyFunc: method is nil but purchaseRepo.GetByIdempotencyKey was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockGetByIdempotencyKey.Lock()
	mock.calls.GetByIdempotencyKey = append(mock.calls.GetByIdempotencyKey, callInfo)
	mock.lockGetByIdempotencyKey.Unlock()
	return mock.GetByIdempotencyKeyFunc(ctx, key)
}

func (mock *purchaseRepoMock) GetByIdempotencyKeyCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockGetByIdempotencyKey.RLock()
	calls := mock.calls.GetByIdempotencyKey
	mock.lockGetByIdempotencyKey.RUnlock()
	return calls
}

func (mock *purchaseRepoMock) List(ctx context.Context, filter domain.PurchaseFilter) ([]domain.Purchase, error) {
	if mock.ListFunc == nil {
		panic("purchaseRepoMock.ListFunc: method is nil but purchaseRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.PurchaseFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *purchaseRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.PurchaseFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
