// Package mocks provides a recording Store double for tests.
package mocks

import (
	"context"
	"sync"

	"github.com/example/wathera-admin/internal/storage"
)

// MockStore is an in-memory Store that records calls and can be told to fail.
type MockStore struct {
	mu   sync.Mutex
	data map[string][]byte

	// For tracking calls in tests
	GetCalls    []string
	PutCalls    []PutCall
	DeleteCalls []string

	// Injectable failures
	GetErr    error
	PutErr    error
	DeleteErr error
}

// PutCall records parameters passed to Put
type PutCall struct {
	Key   string
	Value []byte
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string][]byte)}
}

// SetData seeds a key without recording a call.
func (m *MockStore) SetData(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}

// Data returns the stored value for a key, if any.
func (m *MockStore) Data(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok
}

func (m *MockStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, key)
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	value, ok := m.data[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MockStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PutCalls = append(m.PutCalls, PutCall{Key: key, Value: append([]byte(nil), value...)})
	if m.PutErr != nil {
		return m.PutErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MockStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, key)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.data, key)
	return nil
}

func (m *MockStore) Close() error { return nil }
