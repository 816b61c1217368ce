package region

import (
	"reflect"

	"go.uber.org/mock/gomock"
)

// MockProvider is a gomock-style mock of Provider, hand-written in the
// shape mockgen would emit for this interface. It exists to drive the
// Init region-acquisition-failure path in allocator tests without relying
// on a real OS mapping failing on demand.
type MockProvider struct {
	ctrl     *gomock.Controller
	recorder *MockProviderRecorder
}

// MockProviderRecorder records expected calls on a MockProvider.
type MockProviderRecorder struct {
	mock *MockProvider
}

// NewMockProvider returns a new mock controlled by ctrl.
func NewMockProvider(ctrl *gomock.Controller) *MockProvider {
	m := &MockProvider{ctrl: ctrl}
	m.recorder = &MockProviderRecorder{mock: m}

	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockProvider) EXPECT() *MockProviderRecorder {
	return m.recorder
}

func (m *MockProvider) Acquire(length int) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Acquire", length)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)

	return ret0, ret1
}

func (mr *MockProviderRecorder) Acquire(length any) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Acquire",
		reflect.TypeOf((*MockProvider)(nil).Acquire), length)
}

func (m *MockProvider) PageSize() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PageSize")
	ret0, _ := ret[0].(int)

	return ret0
}

func (mr *MockProviderRecorder) PageSize() *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PageSize",
		reflect.TypeOf((*MockProvider)(nil).PageSize))
}

var _ Provider = (*MockProvider)(nil)
