package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// MockQuoteSource is a mock implementation of ports.QuoteSource.
type MockQuoteSource struct {
	mock.Mock
}

// MockQuoteSource_Expecter provides typed expectation helpers.
type MockQuoteSource_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expectation helper.
func (_m *MockQuoteSource) EXPECT() *MockQuoteSource_Expecter {
	return &MockQuoteSource_Expecter{mock: &_m.Mock}
}

// QuotesByTag provides a mock function with given fields: ctx, tag
func (_m *MockQuoteSource) QuotesByTag(ctx context.Context, tag string) ([]*domain.Quote, error) {
	ret := _m.Called(ctx, tag)

	if len(ret) == 0 {
		panic("no return value specified for QuotesByTag")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string) ([]*domain.Quote, error)); ok {
		return rf(ctx, tag)
	}

	var r0 []*domain.Quote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*domain.Quote)
	}

	return r0, ret.Error(1)
}

// MockQuoteSource_QuotesByTag_Call wraps a QuotesByTag expectation.
type MockQuoteSource_QuotesByTag_Call struct {
	*mock.Call
}

// QuotesByTag is a helper method to define mock.On call
//   - ctx context.Context
//   - tag string
func (_e *MockQuoteSource_Expecter) QuotesByTag(ctx any, tag any) *MockQuoteSource_QuotesByTag_Call {
	return &MockQuoteSource_QuotesByTag_Call{Call: _e.mock.On("QuotesByTag", ctx, tag)}
}

func (_c *MockQuoteSource_QuotesByTag_Call) Run(run func(ctx context.Context, tag string)) *MockQuoteSource_QuotesByTag_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockQuoteSource_QuotesByTag_Call) Return(_a0 []*domain.Quote, _a1 error) *MockQuoteSource_QuotesByTag_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockQuoteSource_QuotesByTag_Call) RunAndReturn(run func(context.Context, string) ([]*domain.Quote, error)) *MockQuoteSource_QuotesByTag_Call {
	_c.Call.Return(run)
	return _c
}

// RandomQuote provides a mock function with given fields: ctx
func (_m *MockQuoteSource) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for RandomQuote")
	}

	if rf, ok := ret.Get(0).(func(context.Context) (*domain.Quote, error)); ok {
		return rf(ctx)
	}

	var r0 *domain.Quote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Quote)
	}

	return r0, ret.Error(1)
}

// MockQuoteSource_RandomQuote_Call wraps a RandomQuote expectation.
type MockQuoteSource_RandomQuote_Call struct {
	*mock.Call
}

// RandomQuote is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockQuoteSource_Expecter) RandomQuote(ctx any) *MockQuoteSource_RandomQuote_Call {
	return &MockQuoteSource_RandomQuote_Call{Call: _e.mock.On("RandomQuote", ctx)}
}

func (_c *MockQuoteSource_RandomQuote_Call) Run(run func(ctx context.Context)) *MockQuoteSource_RandomQuote_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockQuoteSource_RandomQuote_Call) Return(_a0 *domain.Quote, _a1 error) *MockQuoteSource_RandomQuote_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockQuoteSource_RandomQuote_Call) RunAndReturn(run func(context.Context) (*domain.Quote, error)) *MockQuoteSource_RandomQuote_Call {
	_c.Call.Return(run)
	return _c
}

// SearchQuotes provides a mock function with given fields: ctx, query
func (_m *MockQuoteSource) SearchQuotes(ctx context.Context, query string) ([]*domain.Quote, error) {
	ret := _m.Called(ctx, query)

	if len(ret) == 0 {
		panic("no return value specified for SearchQuotes")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string) ([]*domain.Quote, error)); ok {
		return rf(ctx, query)
	}

	var r0 []*domain.Quote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*domain.Quote)
	}

	return r0, ret.Error(1)
}

// MockQuoteSource_SearchQuotes_Call wraps a SearchQuotes expectation.
type MockQuoteSource_SearchQuotes_Call struct {
	*mock.Call
}

// SearchQuotes is a helper method to define mock.On call
//   - ctx context.Context
//   - query string
func (_e *MockQuoteSource_Expecter) SearchQuotes(ctx any, query any) *MockQuoteSource_SearchQuotes_Call {
	return &MockQuoteSource_SearchQuotes_Call{Call: _e.mock.On("SearchQuotes", ctx, query)}
}

func (_c *MockQuoteSource_SearchQuotes_Call) Run(run func(ctx context.Context, query string)) *MockQuoteSource_SearchQuotes_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockQuoteSource_SearchQuotes_Call) Return(_a0 []*domain.Quote, _a1 error) *MockQuoteSource_SearchQuotes_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockQuoteSource_SearchQuotes_Call) RunAndReturn(run func(context.Context, string) ([]*domain.Quote, error)) *MockQuoteSource_SearchQuotes_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockQuoteSource creates a new instance of MockQuoteSource. It also
// registers a cleanup function to assert the mock's expectations.
func NewMockQuoteSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQuoteSource {
	m := &MockQuoteSource{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
