// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of the domain.Storage interface
type MockStorage struct {
	mock.Mock
}

// Upload provides a mock function with given fields: ctx, localPath, remoteName
func (m *MockStorage) Upload(ctx context.Context, localPath string, remoteName string) error {
	ret := m.Called(ctx, localPath, remoteName)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) error); ok {
		r0 = rf(ctx, localPath, remoteName)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Name provides a mock function with given fields:
func (m *MockStorage) Name() string {
	ret := m.Called()
	return ret.String(0)
}

// NewMockStorage creates a new instance of MockStorage
func NewMockStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStorage {
	m := &MockStorage{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
