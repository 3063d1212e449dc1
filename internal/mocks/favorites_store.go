package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// MockFavoritesStore is a mock implementation of ports.FavoritesStore.
type MockFavoritesStore struct {
	mock.Mock
}

// MockFavoritesStore_Expecter provides typed expectation helpers.
type MockFavoritesStore_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expectation helper.
func (_m *MockFavoritesStore) EXPECT() *MockFavoritesStore_Expecter {
	return &MockFavoritesStore_Expecter{mock: &_m.Mock}
}

// Save provides a mock function with given fields: ctx, userID, quote
func (_m *MockFavoritesStore) Save(ctx context.Context, userID string, quote *domain.Quote) (*domain.FavoriteRecord, error) {
	ret := _m.Called(ctx, userID, quote)

	if len(ret) == 0 {
		panic("no return value specified for Save")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string, *domain.Quote) (*domain.FavoriteRecord, error)); ok {
		return rf(ctx, userID, quote)
	}

	var r0 *domain.FavoriteRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.FavoriteRecord)
	}

	return r0, ret.Error(1)
}

// MockFavoritesStore_Save_Call wraps a Save expectation.
type MockFavoritesStore_Save_Call struct {
	*mock.Call
}

// Save is a helper method to define mock.On call
//   - ctx context.Context
//   - userID string
//   - quote *domain.Quote
func (_e *MockFavoritesStore_Expecter) Save(ctx any, userID any, quote any) *MockFavoritesStore_Save_Call {
	return &MockFavoritesStore_Save_Call{Call: _e.mock.On("Save", ctx, userID, quote)}
}

func (_c *MockFavoritesStore_Save_Call) Run(run func(ctx context.Context, userID string, quote *domain.Quote)) *MockFavoritesStore_Save_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(*domain.Quote))
	})
	return _c
}

func (_c *MockFavoritesStore_Save_Call) Return(_a0 *domain.FavoriteRecord, _a1 error) *MockFavoritesStore_Save_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockFavoritesStore_Save_Call) RunAndReturn(run func(context.Context, string, *domain.Quote) (*domain.FavoriteRecord, error)) *MockFavoritesStore_Save_Call {
	_c.Call.Return(run)
	return _c
}

// Remove provides a mock function with given fields: ctx, userID, quoteID
func (_m *MockFavoritesStore) Remove(ctx context.Context, userID string, quoteID string) error {
	ret := _m.Called(ctx, userID, quoteID)

	if len(ret) == 0 {
		panic("no return value specified for Remove")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string, string) error); ok {
		return rf(ctx, userID, quoteID)
	}

	return ret.Error(0)
}

// MockFavoritesStore_Remove_Call wraps a Remove expectation.
type MockFavoritesStore_Remove_Call struct {
	*mock.Call
}

// Remove is a helper method to define mock.On call
//   - ctx context.Context
//   - userID string
//   - quoteID string
func (_e *MockFavoritesStore_Expecter) Remove(ctx any, userID any, quoteID any) *MockFavoritesStore_Remove_Call {
	return &MockFavoritesStore_Remove_Call{Call: _e.mock.On("Remove", ctx, userID, quoteID)}
}

func (_c *MockFavoritesStore_Remove_Call) Run(run func(ctx context.Context, userID string, quoteID string)) *MockFavoritesStore_Remove_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(string))
	})
	return _c
}

func (_c *MockFavoritesStore_Remove_Call) Return(_a0 error) *MockFavoritesStore_Remove_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockFavoritesStore_Remove_Call) RunAndReturn(run func(context.Context, string, string) error) *MockFavoritesStore_Remove_Call {
	_c.Call.Return(run)
	return _c
}

// List provides a mock function with given fields: ctx, userID
func (_m *MockFavoritesStore) List(ctx context.Context, userID string) ([]*domain.FavoriteRecord, error) {
	ret := _m.Called(ctx, userID)

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string) ([]*domain.FavoriteRecord, error)); ok {
		return rf(ctx, userID)
	}

	var r0 []*domain.FavoriteRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*domain.FavoriteRecord)
	}

	return r0, ret.Error(1)
}

// MockFavoritesStore_List_Call wraps a List expectation.
type MockFavoritesStore_List_Call struct {
	*mock.Call
}

// List is a helper method to define mock.On call
//   - ctx context.Context
//   - userID string
func (_e *MockFavoritesStore_Expecter) List(ctx any, userID any) *MockFavoritesStore_List_Call {
	return &MockFavoritesStore_List_Call{Call: _e.mock.On("List", ctx, userID)}
}

func (_c *MockFavoritesStore_List_Call) Run(run func(ctx context.Context, userID string)) *MockFavoritesStore_List_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockFavoritesStore_List_Call) Return(_a0 []*domain.FavoriteRecord, _a1 error) *MockFavoritesStore_List_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockFavoritesStore_List_Call) RunAndReturn(run func(context.Context, string) ([]*domain.FavoriteRecord, error)) *MockFavoritesStore_List_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockFavoritesStore creates a new instance of MockFavoritesStore. It also
// registers a cleanup function to assert the mock's expectations.
func NewMockFavoritesStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFavoritesStore {
	m := &MockFavoritesStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
