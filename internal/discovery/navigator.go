package discovery

import "sync"

// Navigator - адресная строка: чтение начального состояния и замена (не push) query string
type Navigator interface {
	ReadQuery() string
	ReplaceQuery(query string)
}

// MemoryNavigator хранит query string в памяти (сессии и одноразовые запросы)
type MemoryNavigator struct {
	mu       sync.RWMutex
	query    string
	replaces int
}

func NewMemoryNavigator(initial string) *MemoryNavigator {
	return &MemoryNavigator{query: initial}
}

func (n *MemoryNavigator) ReadQuery() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.query
}

func (n *MemoryNavigator) ReplaceQuery(query string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.query = query
	n.replaces++
}

// Replaces - сколько раз query string был заменён
func (n *MemoryNavigator) Replaces() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.replaces
}
