package plugin

import (
	"context"
	"testing"
)

type testPlugin struct {
	name     string
	saleSets int
	deposits int
	denials  int
}

func (p *testPlugin) Name() string { return p.name }

func (p *testPlugin) OnSaleSet(_ context.Context, _ interface{}) error {
	p.saleSets++
	return nil
}

func (p *testPlugin) OnEscrowDeposit(_ context.Context, _, _ string, _ interface{}) error {
	p.deposits++
	return nil
}

func (p *testPlugin) OnQuotaExceeded(_ context.Context, _, _ string, _, _ int64) error {
	p.denials++
	return nil
}

func TestRegisterAndDispatch(t *testing.T) {
	r := NewRegistry()
	p := &testPlugin{name: "test"}

	if err := r.Register(p); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if r.Count() != 1 {
		t.Fatalf("expected 1 plugin, got %d", r.Count())
	}

	ctx := context.Background()
	r.EmitSaleSet(ctx, nil)
	r.EmitEscrowDeposit(ctx, "prod_x", "buyer", nil)
	r.EmitQuotaExceeded(ctx, "prod_x", "buyer", 2, 1)
	// Not implemented by the plugin; must be a no-op.
	r.EmitEscrowRedeemed(ctx, "prod_x", "recipient", nil)

	if p.saleSets != 1 || p.deposits != 1 || p.denials != 1 {
		t.Errorf("dispatch counts: saleSets=%d deposits=%d denials=%d", p.saleSets, p.deposits, p.denials)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&testPlugin{name: "dup"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := r.Register(&testPlugin{name: "dup"}); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestGetAndList(t *testing.T) {
	r := NewRegistry()
	p := &testPlugin{name: "lookup"}

	if err := r.Register(p); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if got := r.Get("lookup"); got != p {
		t.Error("Get returned wrong plugin")
	}
	if got := r.Get("missing"); got != nil {
		t.Error("Get for unknown name should return nil")
	}
	if len(r.List()) != 1 {
		t.Errorf("List: expected 1, got %d", len(r.List()))
	}
}
