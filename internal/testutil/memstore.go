// Package testutil provides test helpers: in-memory stores, fixtures, and
// assertions.
package testutil

import (
	"context"
	"sync"

	"budgetboard/internal/models"
	"budgetboard/internal/store"
)

// cloneLedger deep-copies a ledger so stored state and caller state never
// alias each other, matching a real document store round-trip.
func cloneLedger(l *models.Ledger) *models.Ledger {
	out := &models.Ledger{UserID: l.UserID, Version: l.Version}
	out.Months = make([]models.MonthRecord, len(l.Months))
	for i, m := range l.Months {
		cm := m
		cm.Categories = make([]models.CategoryRecord, len(m.Categories))
		for j, c := range m.Categories {
			cc := c
			cc.SubCategories = append([]models.SubCategoryRecord(nil), c.SubCategories...)
			cm.Categories[j] = cc
		}
		out.Months[i] = cm
	}
	return out
}

// MemLedgerStore is an in-memory store.LedgerStore with the same version
// semantics as the MongoDB implementation.
type MemLedgerStore struct {
	mu   sync.Mutex
	docs map[string]*models.Ledger

	// ConflictNext forces that many subsequent Update calls to fail with
	// ErrVersionConflict, for exercising retry paths.
	ConflictNext int
}

// NewMemLedgerStore creates an empty in-memory ledger store.
func NewMemLedgerStore() *MemLedgerStore {
	return &MemLedgerStore{docs: make(map[string]*models.Ledger)}
}

func (s *MemLedgerStore) Get(_ context.Context, userID string) (*models.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneLedger(doc), nil
}

func (s *MemLedgerStore) Insert(_ context.Context, ledger *models.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[ledger.UserID]; ok {
		return store.ErrDuplicateKey
	}
	s.docs[ledger.UserID] = cloneLedger(ledger)
	return nil
}

func (s *MemLedgerStore) Update(_ context.Context, ledger *models.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ConflictNext > 0 {
		s.ConflictNext--
		return store.ErrVersionConflict
	}
	current, ok := s.docs[ledger.UserID]
	if !ok || current.Version != ledger.Version {
		return store.ErrVersionConflict
	}
	next := cloneLedger(ledger)
	next.Version = ledger.Version + 1
	s.docs[ledger.UserID] = next
	ledger.Version = next.Version
	return nil
}

func (s *MemLedgerStore) Replace(_ context.Context, ledger *models.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[ledger.UserID] = cloneLedger(ledger)
	return nil
}

// Delete drops a user's document. Only tests need this.
func (s *MemLedgerStore) Delete(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[userID]; !ok {
		return store.ErrNotFound
	}
	delete(s.docs, userID)
	return nil
}

func (s *MemLedgerStore) Exists(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[userID]
	return ok, nil
}

// MemUserStore is an in-memory store.UserStore preserving registration order.
type MemUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
	order []string
}

// NewMemUserStore creates an empty in-memory user store.
func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: make(map[string]*models.User)}
}

func (s *MemUserStore) Get(_ context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *MemUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; ok {
		return store.ErrDuplicateKey
	}
	copied := *user
	s.users[user.UserID] = &copied
	s.order = append(s.order, user.UserID)
	return nil
}

func (s *MemUserStore) Exists(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[userID]
	return ok, nil
}

func (s *MemUserStore) ListIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...), nil
}

// MemAuditStore is an in-memory store.AuditStore collecting entries.
type MemAuditStore struct {
	mu      sync.Mutex
	Entries []models.AuditLog
}

// NewMemAuditStore creates an empty in-memory audit store.
func NewMemAuditStore() *MemAuditStore {
	return &MemAuditStore{}
}

func (s *MemAuditStore) Append(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries = append(s.Entries, *entry)
	return nil
}
