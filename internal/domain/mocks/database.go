// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/wvsbeta/dumpkeeper/internal/domain"
)

// MockDatabase is a mock implementation of the domain.Database interface
type MockDatabase struct {
	mock.Mock
}

// Dump provides a mock function with given fields: ctx, out
func (m *MockDatabase) Dump(ctx context.Context, out io.Writer) (domain.DumpStatus, error) {
	ret := m.Called(ctx, out)

	if rf, ok := ret.Get(0).(func(context.Context, io.Writer) (domain.DumpStatus, error)); ok {
		return rf(ctx, out)
	}

	var r0 domain.DumpStatus
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.DumpStatus)
	}

	return r0, ret.Error(1)
}

// GetName provides a mock function with given fields:
func (m *MockDatabase) GetName() string {
	ret := m.Called()
	return ret.String(0)
}

// GetType provides a mock function with given fields:
func (m *MockDatabase) GetType() string {
	ret := m.Called()
	return ret.String(0)
}

// Ping provides a mock function with given fields: ctx
func (m *MockDatabase) Ping(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}

// NewMockDatabase creates a new instance of MockDatabase
func NewMockDatabase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDatabase {
	m := &MockDatabase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
