package id_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/xraph/mintgate/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"ProductID", id.NewProductID, "prod_"},
		{"UnitID", id.NewUnitID, "unit_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixProduct)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixProduct {
		t.Errorf("expected prefix %q, got %q", id.PrefixProduct, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"ProductID", id.NewProductID, id.ParseProductID},
		{"UnitID", id.NewUnitID, id.ParseUnitID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	unit := id.NewUnitID()
	if _, err := id.ParseProductID(unit.String()); err == nil {
		t.Error("expected error parsing unit ID as product ID")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []string{
		"",
		"not a typeid",
		"prod_!!!!",
	}

	for _, s := range tests {
		if _, err := id.Parse(s); err == nil {
			t.Errorf("expected error parsing %q", s)
		}
	}
}

func TestNilID(t *testing.T) {
	var i id.ID
	if !i.IsNil() {
		t.Error("zero-value ID should be nil")
	}
	if i.String() != "" {
		t.Errorf("nil ID string: got %q, want empty", i.String())
	}
	if i.Prefix() != "" {
		t.Errorf("nil ID prefix: got %q, want empty", i.Prefix())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	original := id.NewProductID()

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded id.ID
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.String() != original.String() {
		t.Errorf("JSON round-trip mismatch: %q != %q", decoded.String(), original.String())
	}
}

func TestScanAndValue(t *testing.T) {
	original := id.NewProductID()

	v, err := original.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}

	var scanned id.ID
	if err := scanned.Scan(v); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if scanned.String() != original.String() {
		t.Errorf("scan round-trip mismatch: %q != %q", scanned.String(), original.String())
	}

	var nilID id.ID
	if err := nilID.Scan(nil); err != nil {
		t.Fatalf("scan nil failed: %v", err)
	}
	if !nilID.IsNil() {
		t.Error("scanning nil should produce the Nil ID")
	}
}
