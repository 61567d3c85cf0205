package storage

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/etnz/wealthflow"
)

// Memory is a Store keeping encoded documents in memory. It is used for guest
// sessions and tests.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemory returns an empty memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, userID string) (wealthflow.Document, error) {
	m.mu.RLock()
	data, ok := m.docs[userID]
	m.mu.RUnlock()
	if !ok {
		return wealthflow.Document{}, fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}
	return wealthflow.DecodeDocument(bytes.NewReader(data))
}

func (m *Memory) Save(_ context.Context, userID string, doc wealthflow.Document) error {
	var buf bytes.Buffer
	if err := wealthflow.EncodeDocument(&buf, doc); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[userID] = buf.Bytes()
	return nil
}
