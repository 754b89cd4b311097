// Package memory provides an in-memory Mintgate store for tests and demos.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/xraph/mintgate"
	"github.com/xraph/mintgate/escrow"
	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/quota"
	"github.com/xraph/mintgate/sale"
	mintgatestore "github.com/xraph/mintgate/store"
	"github.com/xraph/mintgate/types"
)

// compile-time interface check
var _ mintgatestore.Store = (*Store)(nil)

type Store struct {
	mu sync.RWMutex

	// Sale configuration storage
	sales map[string]*sale.Config

	// Escrow balance storage
	balances map[string]*escrow.Balance

	// Quota records, keyed product|buyer
	quotas map[string]*quota.Record
}

func New() *Store {
	return &Store{
		sales:    make(map[string]*sale.Config),
		balances: make(map[string]*escrow.Balance),
		quotas:   make(map[string]*quota.Record),
	}
}

// Sale config Store implementation

func (s *Store) PutSaleConfig(_ context.Context, cfg *sale.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Wholesale replace; no partial merge.
	cp := *cfg
	s.sales[cfg.ProductID.String()] = &cp
	return nil
}

func (s *Store) GetSaleConfig(_ context.Context, productID id.ProductID) (*sale.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cfg, ok := s.sales[productID.String()]; ok {
		cp := *cfg
		return &cp, nil
	}
	return nil, mintgate.ErrSaleNotFound
}

func (s *Store) DeleteSaleConfig(_ context.Context, productID id.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sales, productID.String())
	return nil
}

// Escrow Store implementation

func (s *Store) GetEscrow(_ context.Context, productID id.ProductID) (*escrow.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if bal, ok := s.balances[productID.String()]; ok {
		cp := *bal
		return &cp, nil
	}
	return nil, mintgate.ErrEscrowNotFound
}

func (s *Store) CreditEscrow(_ context.Context, productID id.ProductID, amount types.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := productID.String()
	bal, ok := s.balances[key]
	if !ok {
		s.balances[key] = &escrow.Balance{
			Entity:    types.NewEntity(),
			ProductID: productID,
			Amount:    amount,
		}
		return nil
	}

	if bal.Amount.Asset != "" && bal.Amount.Asset != amount.Asset {
		return fmt.Errorf("memory: escrow asset mismatch for %s: %s != %s", key, bal.Amount.Asset, amount.Asset)
	}

	bal.Amount = types.Amount{Value: bal.Amount.Value + amount.Value, Asset: amount.Asset}
	bal.Touch()
	return nil
}

func (s *Store) ResetEscrow(_ context.Context, productID id.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bal, ok := s.balances[productID.String()]; ok {
		bal.Amount = types.Zero(bal.Amount.Asset)
		bal.Touch()
	}
	return nil
}

// Quota Store implementation

func (s *Store) QuotaUsed(_ context.Context, productID id.ProductID, buyer string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.quotas[quotaKey(productID, buyer)]; ok {
		return rec.Used, nil
	}
	return 0, nil
}

// CheckAndRecordQuota checks and records in one step under the store
// lock: either the full quantity is recorded or nothing changes.
func (s *Store) CheckAndRecordQuota(_ context.Context, productID id.ProductID, buyer string, quantity, limit int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := quotaKey(productID, buyer)
	rec, ok := s.quotas[key]
	if !ok {
		rec = &quota.Record{
			Entity:    types.NewEntity(),
			ProductID: productID,
			Buyer:     buyer,
		}
		s.quotas[key] = rec
	}

	// Subtraction form: a huge quantity must not wrap the sum negative.
	if quantity > limit-rec.Used {
		return quota.ErrExceeded
	}

	rec.Used += quantity
	rec.Touch()
	return nil
}

func (s *Store) ReleaseQuota(_ context.Context, productID id.ProductID, buyer string, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.quotas[quotaKey(productID, buyer)]; ok {
		rec.Used -= quantity
		if rec.Used < 0 {
			rec.Used = 0
		}
		rec.Touch()
	}
	return nil
}

// Core methods

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func quotaKey(productID id.ProductID, buyer string) string {
	return productID.String() + "|" + buyer
}
