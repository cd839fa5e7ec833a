// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockUploadGate is a mock implementation of the domain.UploadGate interface
type MockUploadGate struct {
	mock.Mock
}

// Due provides a mock function with given fields: ctx, now
func (m *MockUploadGate) Due(ctx context.Context, now time.Time) (bool, error) {
	ret := m.Called(ctx, now)
	return ret.Bool(0), ret.Error(1)
}

// Record provides a mock function with given fields: ctx, at, remoteName
func (m *MockUploadGate) Record(ctx context.Context, at time.Time, remoteName string) error {
	ret := m.Called(ctx, at, remoteName)
	return ret.Error(0)
}

// NewMockUploadGate creates a new instance of MockUploadGate
func NewMockUploadGate(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUploadGate {
	m := &MockUploadGate{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
