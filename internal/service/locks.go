package service

import (
	"bytes"
	"sort"
	"sync"

	"github.com/gofrs/uuid/v5"
)

// accountLocks hands out one mutex per account so every balance-affecting
// mutation on an account is serialized. All services share one registry.
type accountLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (l *accountLocks) get(accountID uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[accountID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[accountID] = m
	}
	return m
}

// lock acquires the mutex for one account and returns its release func.
func (l *accountLocks) lock(accountID uuid.UUID) func() {
	m := l.get(accountID)
	m.Lock()
	return m.Unlock
}

// lockAll acquires the mutexes for a set of accounts in ascending id order,
// so two operations touching the same accounts in opposite directions cannot
// deadlock. Duplicate ids lock once.
func (l *accountLocks) lockAll(accountIDs []uuid.UUID) func() {
	unique := make([]uuid.UUID, 0, len(accountIDs))
	seen := make(map[uuid.UUID]bool, len(accountIDs))
	for _, id := range accountIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Slice(unique, func(i, j int) bool {
		return bytes.Compare(unique[i].Bytes(), unique[j].Bytes()) < 0
	})

	held := make([]*sync.Mutex, len(unique))
	for i, id := range unique {
		held[i] = l.get(id)
		held[i].Lock()
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

// lockPair acquires the mutexes for two accounts, ordered.
func (l *accountLocks) lockPair(a, b uuid.UUID) func() {
	return l.lockAll([]uuid.UUID{a, b})
}
