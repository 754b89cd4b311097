package postgres

import (
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/mintgate/escrow"
	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/sale"
	"github.com/xraph/mintgate/types"
)

type saleModel struct {
	grove.BaseModel `grove:"table:mintgate_sales"`

	ProductID   string    `grove:"product_id,pk"`
	StartAt     time.Time `grove:"start_at"`
	EndAt       time.Time `grove:"end_at"`
	PriceValue  int64     `grove:"price_value"`
	PriceAsset  string    `grove:"price_asset"`
	MaxPerBuyer int64     `grove:"max_per_buyer"`
	Recipient   string    `grove:"recipient"`
	CreatedAt   time.Time `grove:"created_at"`
	UpdatedAt   time.Time `grove:"updated_at"`
}

func toSaleModel(cfg *sale.Config) *saleModel {
	return &saleModel{
		ProductID:   cfg.ProductID.String(),
		StartAt:     cfg.Start,
		EndAt:       cfg.End,
		PriceValue:  cfg.UnitPrice.Value,
		PriceAsset:  cfg.UnitPrice.Asset,
		MaxPerBuyer: cfg.MaxPerBuyer,
		Recipient:   cfg.Recipient,
		CreatedAt:   cfg.CreatedAt,
		UpdatedAt:   cfg.UpdatedAt,
	}
}

func fromSaleModel(m *saleModel) (*sale.Config, error) {
	productID, err := id.ParseProductID(m.ProductID)
	if err != nil {
		return nil, fmt.Errorf("mintgate/postgres: sale config %q: %w", m.ProductID, err)
	}
	return &sale.Config{
		Entity:      types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ProductID:   productID,
		Start:       m.StartAt,
		End:         m.EndAt,
		UnitPrice:   types.Amount{Value: m.PriceValue, Asset: m.PriceAsset},
		MaxPerBuyer: m.MaxPerBuyer,
		Recipient:   m.Recipient,
	}, nil
}

type escrowModel struct {
	grove.BaseModel `grove:"table:mintgate_escrow"`

	ProductID   string    `grove:"product_id,pk"`
	AmountValue int64     `grove:"amount_value"`
	AmountAsset string    `grove:"amount_asset"`
	CreatedAt   time.Time `grove:"created_at"`
	UpdatedAt   time.Time `grove:"updated_at"`
}

func fromEscrowModel(m *escrowModel) (*escrow.Balance, error) {
	productID, err := id.ParseProductID(m.ProductID)
	if err != nil {
		return nil, fmt.Errorf("mintgate/postgres: escrow balance %q: %w", m.ProductID, err)
	}
	return &escrow.Balance{
		Entity:    types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ProductID: productID,
		Amount:    types.Amount{Value: m.AmountValue, Asset: m.AmountAsset},
	}, nil
}

type quotaModel struct {
	grove.BaseModel `grove:"table:mintgate_quota"`

	ProductID string    `grove:"product_id"`
	Buyer     string    `grove:"buyer"`
	Used      int64     `grove:"used"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}
