// Package mocks provides test doubles for the overpass client.
package mocks

import (
	"context"

	overpass "github.com/sells-group/venue-finder/pkg/overpass"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// Interpret provides a mock function with given fields: ctx, query
func (_m *MockClient) Interpret(ctx context.Context, query overpass.Query) (*overpass.Response, error) {
	ret := _m.Called(ctx, query)

	if len(ret) == 0 {
		panic("no return value specified for Interpret")
	}

	var r0 *overpass.Response
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, overpass.Query) (*overpass.Response, error)); ok {
		return rf(ctx, query)
	}
	if rf, ok := ret.Get(0).(func(context.Context, overpass.Query) *overpass.Response); ok {
		r0 = rf(ctx, query)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*overpass.Response)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, overpass.Query) error); ok {
		r1 = rf(ctx, query)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	mock := &MockClient{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
