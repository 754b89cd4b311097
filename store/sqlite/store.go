// Package sqlite provides a Mintgate store backed by SQLite via Grove ORM.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	mintgate "github.com/xraph/mintgate"
	"github.com/xraph/mintgate/escrow"
	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/quota"
	"github.com/xraph/mintgate/sale"
	mintgatestore "github.com/xraph/mintgate/store"
	"github.com/xraph/mintgate/types"
)

// compile-time interface check
var _ mintgatestore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("mintgate/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("mintgate/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Sale config store ====================

func (s *Store) PutSaleConfig(ctx context.Context, cfg *sale.Config) error {
	m := toSaleModel(cfg)
	m.UpdatedAt = now()
	_, err := s.sdb.NewInsert(m).
		OnConflict("(product_id) DO UPDATE").
		Set("start_at = EXCLUDED.start_at").
		Set("end_at = EXCLUDED.end_at").
		Set("price_value = EXCLUDED.price_value").
		Set("price_asset = EXCLUDED.price_asset").
		Set("max_per_buyer = EXCLUDED.max_per_buyer").
		Set("recipient = EXCLUDED.recipient").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *Store) GetSaleConfig(ctx context.Context, productID id.ProductID) (*sale.Config, error) {
	m := new(saleModel)
	err := s.sdb.NewSelect(m).
		Where("product_id = ?", productID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, mintgate.ErrSaleNotFound
		}
		return nil, err
	}
	return fromSaleModel(m)
}

func (s *Store) DeleteSaleConfig(ctx context.Context, productID id.ProductID) error {
	_, err := s.sdb.NewDelete((*saleModel)(nil)).
		Where("product_id = ?", productID.String()).
		Exec(ctx)
	return err
}

// ==================== Escrow store ====================

func (s *Store) GetEscrow(ctx context.Context, productID id.ProductID) (*escrow.Balance, error) {
	m := new(escrowModel)
	err := s.sdb.NewSelect(m).
		Where("product_id = ?", productID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, mintgate.ErrEscrowNotFound
		}
		return nil, err
	}
	return fromEscrowModel(m)
}

func (s *Store) CreditEscrow(ctx context.Context, productID id.ProductID, amount types.Amount) error {
	t := now()
	m := &escrowModel{
		ProductID:   productID.String(),
		AmountValue: amount.Value,
		AmountAsset: amount.Asset,
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	_, err := s.sdb.NewInsert(m).
		OnConflict("(product_id) DO UPDATE").
		Set("amount_value = mintgate_escrow.amount_value + EXCLUDED.amount_value").
		Set("amount_asset = EXCLUDED.amount_asset").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *Store) ResetEscrow(ctx context.Context, productID id.ProductID) error {
	_, err := s.sdb.NewUpdate((*escrowModel)(nil)).
		Set("amount_value = 0").
		Set("updated_at = ?", now()).
		Where("product_id = ?", productID.String()).
		Exec(ctx)
	return err
}

// ==================== Quota store ====================

func (s *Store) QuotaUsed(ctx context.Context, productID id.ProductID, buyer string) (int64, error) {
	var used int64
	err := s.sdb.NewRaw(`
		SELECT COALESCE(SUM(used), 0) FROM mintgate_quota
		WHERE product_id = ? AND buyer = ?
	`, productID.String(), buyer).Scan(ctx, &used)
	if err != nil {
		return 0, err
	}
	return used, nil
}

// CheckAndRecordQuota records quantity for (product, buyer) only if the new
// cumulative total stays within limit. The conditional UPDATE makes the
// check-and-record a single atomic statement.
func (s *Store) CheckAndRecordQuota(ctx context.Context, productID id.ProductID, buyer string, quantity, limit int64) error {
	t := now()

	// Ensure a row exists so the conditional update below has a target.
	seed := &quotaModel{
		ProductID: productID.String(),
		Buyer:     buyer,
		Used:      0,
		CreatedAt: t,
		UpdatedAt: t,
	}
	if _, err := s.sdb.NewInsert(seed).
		OnConflict("(product_id, buyer) DO NOTHING").
		Exec(ctx); err != nil {
		return err
	}

	res, err := s.sdb.NewUpdate((*quotaModel)(nil)).
		Set("used = used + ?", quantity).
		Set("updated_at = ?", t).
		Where("product_id = ?", productID.String()).
		Where("buyer = ?", buyer).
		// Subtraction form so the comparison cannot wrap on a huge quantity.
		Where("used <= ? - ?", limit, quantity).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return quota.ErrExceeded
	}
	return nil
}

func (s *Store) ReleaseQuota(ctx context.Context, productID id.ProductID, buyer string, quantity int64) error {
	_, err := s.sdb.NewUpdate((*quotaModel)(nil)).
		Set("used = MAX(used - ?, 0)", quantity).
		Set("updated_at = ?", now()).
		Where("product_id = ?", productID.String()).
		Where("buyer = ?", buyer).
		Exec(ctx)
	return err
}

// ==================== Models ====================

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
		return nil, fmt.Errorf("mintgate/sqlite: sale config %q: %w", m.ProductID, err)
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
		return nil, fmt.Errorf("mintgate/sqlite: escrow balance %q: %w", m.ProductID, err)
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

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
