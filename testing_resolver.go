package listenerlist

import (
	"github.com/stretchr/testify/mock"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ResolveCategory(name string) (*Category, error) {
	args := m.Called(name)
	c, _ := args.Get(0).(*Category)
	return c, args.Error(1)
}

func (m *mockResolver) NewListener(kind string) (any, error) {
	args := m.Called(kind)
	return args.Get(0), args.Error(1)
}
