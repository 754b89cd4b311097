// Package mongo provides a Mintgate store backed by MongoDB via Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	mintgate "github.com/xraph/mintgate"
	"github.com/xraph/mintgate/escrow"
	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/quota"
	"github.com/xraph/mintgate/sale"
	mintgatestore "github.com/xraph/mintgate/store"
	"github.com/xraph/mintgate/types"
)

// Collection name constants.
const (
	colSales  = "mintgate_sales"
	colEscrow = "mintgate_escrow"
	colQuota  = "mintgate_quota"
)

// compile-time interface check
var _ mintgatestore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all mintgate collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("mintgate/mongo: migrate %s indexes: %w", col, err)
		}
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

	_, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ProductID}).
		SetUpdate(bson.M{"$set": bson.M{
			"_id":           m.ProductID,
			"start_at":      m.StartAt,
			"end_at":        m.EndAt,
			"price_value":   m.PriceValue,
			"price_asset":   m.PriceAsset,
			"max_per_buyer": m.MaxPerBuyer,
			"recipient":     m.Recipient,
			"created_at":    m.CreatedAt,
			"updated_at":    m.UpdatedAt,
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("mintgate/mongo: put sale config: %w", err)
	}
	return nil
}

func (s *Store) GetSaleConfig(ctx context.Context, productID id.ProductID) (*sale.Config, error) {
	var m saleModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": productID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, mintgate.ErrSaleNotFound
		}
		return nil, fmt.Errorf("mintgate/mongo: get sale config: %w", err)
	}
	return fromSaleModel(&m)
}

func (s *Store) DeleteSaleConfig(ctx context.Context, productID id.ProductID) error {
	_, err := s.mdb.NewDelete((*saleModel)(nil)).
		Filter(bson.M{"_id": productID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("mintgate/mongo: delete sale config: %w", err)
	}
	return nil
}

// ==================== Escrow store ====================

func (s *Store) GetEscrow(ctx context.Context, productID id.ProductID) (*escrow.Balance, error) {
	var m escrowModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": productID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, mintgate.ErrEscrowNotFound
		}
		return nil, fmt.Errorf("mintgate/mongo: get escrow: %w", err)
	}
	return fromEscrowModel(&m)
}

func (s *Store) CreditEscrow(ctx context.Context, productID id.ProductID, amount types.Amount) error {
	t := now()
	_, err := s.mdb.NewUpdate((*escrowModel)(nil)).
		Filter(bson.M{"_id": productID.String()}).
		SetUpdate(bson.M{
			"$inc": bson.M{"amount_value": amount.Value},
			"$set": bson.M{
				"amount_asset": amount.Asset,
				"updated_at":   t,
			},
			"$setOnInsert": bson.M{"created_at": t},
		}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("mintgate/mongo: credit escrow: %w", err)
	}
	return nil
}

func (s *Store) ResetEscrow(ctx context.Context, productID id.ProductID) error {
	_, err := s.mdb.NewUpdate((*escrowModel)(nil)).
		Filter(bson.M{"_id": productID.String()}).
		SetUpdate(bson.M{"$set": bson.M{
			"amount_value": int64(0),
			"updated_at":   now(),
		}}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("mintgate/mongo: reset escrow: %w", err)
	}
	return nil
}

// ==================== Quota store ====================

func (s *Store) QuotaUsed(ctx context.Context, productID id.ProductID, buyer string) (int64, error) {
	var m quotaModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": quotaKey(productID, buyer)}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("mintgate/mongo: quota used: %w", err)
	}
	return m.Used, nil
}

// CheckAndRecordQuota records quantity for (product, buyer) only if the new
// cumulative total stays within limit. The conditional update with a usage
// filter makes the check-and-record a single atomic statement.
func (s *Store) CheckAndRecordQuota(ctx context.Context, productID id.ProductID, buyer string, quantity, limit int64) error {
	t := now()
	key := quotaKey(productID, buyer)

	// Ensure a document exists so the conditional update below has a target.
	_, err := s.mdb.NewUpdate((*quotaModel)(nil)).
		Filter(bson.M{"_id": key}).
		SetUpdate(bson.M{"$setOnInsert": bson.M{
			"product_id": productID.String(),
			"buyer":      buyer,
			"used":       int64(0),
			"created_at": t,
			"updated_at": t,
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("mintgate/mongo: seed quota: %w", err)
	}

	res, err := s.mdb.NewUpdate((*quotaModel)(nil)).
		Filter(bson.M{
			"_id":  key,
			"used": bson.M{"$lte": limit - quantity},
		}).
		SetUpdate(bson.M{
			"$inc": bson.M{"used": quantity},
			"$set": bson.M{"updated_at": t},
		}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("mintgate/mongo: record quota: %w", err)
	}
	if res.MatchedCount() == 0 {
		return quota.ErrExceeded
	}
	return nil
}

func (s *Store) ReleaseQuota(ctx context.Context, productID id.ProductID, buyer string, quantity int64) error {
	// Pipeline update so the subtraction floors at zero in one statement.
	_, err := s.mdb.Collection(colQuota).UpdateOne(ctx,
		bson.M{"_id": quotaKey(productID, buyer)},
		bson.A{
			bson.M{"$set": bson.M{
				"used":       bson.M{"$max": bson.A{int64(0), bson.M{"$subtract": bson.A{"$used", quantity}}}},
				"updated_at": now(),
			}},
		})
	if err != nil {
		return fmt.Errorf("mintgate/mongo: release quota: %w", err)
	}
	return nil
}

// ==================== Helpers ====================

func quotaKey(productID id.ProductID, buyer string) string {
	return productID.String() + "|" + buyer
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all mintgate collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colSales:  {},
		colEscrow: {},
		colQuota: {
			{
				Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "buyer", Value: 1}},
				Options: options.Index().
					SetUnique(true),
			},
		},
	}
}
