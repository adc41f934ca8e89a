package rates

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

var _ rateProvider = &rateProviderMock{}

type rateProviderMock struct {
	FetchRateFunc func(ctx context.Context) (decimal.Decimal, error)

	calls struct {
		FetchRate []struct {
			Ctx context.Context
		}
	}
	lockFetchRate sync.RWMutex
}

func (mock *rateProviderMock) FetchRate(ctx context.Context) (decimal.Decimal, error) {
	if mock.FetchRateFunc == nil {
		panic("rateProviderMock.FetchRateFunc: method is nil but rateProvider.FetchRate was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockFetchRate.Lock()
	mock.calls.FetchRate = append(mock.calls.FetchRate, callInfo)
	mock.lockFetchRate.Unlock()
	return mock.FetchRateFunc(ctx)
}

func (mock *rateProviderMock) FetchRateCalls() []struct {
	Ctx context.Context
} {
	mock.lockFetchRate.RLock()
	calls := mock.calls.FetchRate
	mock.lockFetchRate.RUnlock()
	return calls
}
