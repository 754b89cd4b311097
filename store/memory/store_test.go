package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/xraph/mintgate"
	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/quota"
	"github.com/xraph/mintgate/sale"
	"github.com/xraph/mintgate/types"
)

func TestSaleConfigLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()
	productID := id.NewProductID()

	if _, err := s.GetSaleConfig(ctx, productID); !errors.Is(err, mintgate.ErrSaleNotFound) {
		t.Fatalf("expected ErrSaleNotFound, got %v", err)
	}

	cfg := &sale.Config{
		Entity:      types.NewEntity(),
		ProductID:   productID,
		Start:       time.Now(),
		End:         time.Now().Add(time.Hour),
		UnitPrice:   types.NewAmount("usdc", 10),
		MaxPerBuyer: 5,
		Recipient:   "treasury",
	}
	if err := s.PutSaleConfig(ctx, cfg); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := s.GetSaleConfig(ctx, productID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.MaxPerBuyer != 5 || !got.UnitPrice.Equal(types.NewAmount("usdc", 10)) {
		t.Errorf("unexpected config: %+v", got)
	}

	// Put fully replaces.
	replacement := *cfg
	replacement.MaxPerBuyer = 0
	replacement.Recipient = ""
	if err := s.PutSaleConfig(ctx, &replacement); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	got, _ = s.GetSaleConfig(ctx, productID)
	if got.MaxPerBuyer != 0 || got.Recipient != "" {
		t.Errorf("replace was partial: %+v", got)
	}

	if err := s.DeleteSaleConfig(ctx, productID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := s.GetSaleConfig(ctx, productID); !errors.Is(err, mintgate.ErrSaleNotFound) {
		t.Errorf("expected ErrSaleNotFound after delete, got %v", err)
	}
}

func TestEscrowCreditAndReset(t *testing.T) {
	s := New()
	ctx := context.Background()
	productID := id.NewProductID()

	if _, err := s.GetEscrow(ctx, productID); !errors.Is(err, mintgate.ErrEscrowNotFound) {
		t.Fatalf("expected ErrEscrowNotFound, got %v", err)
	}

	if err := s.CreditEscrow(ctx, productID, types.NewAmount("usdc", 30)); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if err := s.CreditEscrow(ctx, productID, types.NewAmount("usdc", 20)); err != nil {
		t.Fatalf("second credit failed: %v", err)
	}

	bal, err := s.GetEscrow(ctx, productID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !bal.Amount.Equal(types.NewAmount("usdc", 50)) {
		t.Errorf("balance: got %v, want 50 usdc", bal.Amount)
	}

	if err := s.CreditEscrow(ctx, productID, types.NewAmount("credits", 1)); err == nil {
		t.Error("expected asset mismatch error")
	}

	if err := s.ResetEscrow(ctx, productID); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	bal, _ = s.GetEscrow(ctx, productID)
	if !bal.Amount.IsZero() {
		t.Errorf("balance after reset: got %v, want zero", bal.Amount)
	}

	// Reset on an unknown product is a no-op.
	if err := s.ResetEscrow(ctx, id.NewProductID()); err != nil {
		t.Errorf("reset of unknown product: %v", err)
	}
}

func TestQuotaCheckAndRecord(t *testing.T) {
	s := New()
	ctx := context.Background()
	productID := id.NewProductID()

	if err := s.CheckAndRecordQuota(ctx, productID, "alice", 2, 3); err != nil {
		t.Fatalf("first record failed: %v", err)
	}

	// 2 already used; 2 more would exceed 3 and must record nothing.
	if err := s.CheckAndRecordQuota(ctx, productID, "alice", 2, 3); !errors.Is(err, quota.ErrExceeded) {
		t.Fatalf("expected ErrExceeded, got %v", err)
	}
	used, _ := s.QuotaUsed(ctx, productID, "alice")
	if used != 2 {
		t.Errorf("used after denial: got %d, want 2", used)
	}

	// 1 more still fits.
	if err := s.CheckAndRecordQuota(ctx, productID, "alice", 1, 3); err != nil {
		t.Fatalf("record within limit failed: %v", err)
	}
	used, _ = s.QuotaUsed(ctx, productID, "alice")
	if used != 3 {
		t.Errorf("used: got %d, want 3", used)
	}

	// Independent per buyer.
	if err := s.CheckAndRecordQuota(ctx, productID, "bob", 3, 3); err != nil {
		t.Errorf("other buyer should have a fresh quota: %v", err)
	}

	// A quantity huge enough to wrap the cumulative sum negative must be
	// denied, not slipped under the limit.
	if err := s.CheckAndRecordQuota(ctx, productID, "alice", math.MaxInt64, 3); !errors.Is(err, quota.ErrExceeded) {
		t.Fatalf("expected ErrExceeded for wrapping quantity, got %v", err)
	}
	used, _ = s.QuotaUsed(ctx, productID, "alice")
	if used != 3 {
		t.Errorf("used after wrapping attempt: got %d, want 3", used)
	}
}

func TestQuotaRelease(t *testing.T) {
	s := New()
	ctx := context.Background()
	productID := id.NewProductID()

	if err := s.CheckAndRecordQuota(ctx, productID, "alice", 3, 5); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := s.ReleaseQuota(ctx, productID, "alice", 2); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	used, _ := s.QuotaUsed(ctx, productID, "alice")
	if used != 1 {
		t.Errorf("used after release: got %d, want 1", used)
	}

	// Release never goes negative.
	if err := s.ReleaseQuota(ctx, productID, "alice", 10); err != nil {
		t.Fatalf("over-release failed: %v", err)
	}
	used, _ = s.QuotaUsed(ctx, productID, "alice")
	if used != 0 {
		t.Errorf("used after over-release: got %d, want 0", used)
	}
}
