package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/storefront/internal/core/domain"
)

const collectionCarts = "carts"

// CartRepository stores one document per identity, keyed by identity id.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCarts)}
}

type cartDocument struct {
	IdentityID string            `bson:"_id"`
	Items      []domain.LineItem `bson:"items"`
	UpdatedAt  time.Time         `bson:"updated_at"`
}

// LoadCart returns the identity's items, or an empty cart when none is stored.
func (r *CartRepository) LoadCart(ctx context.Context, identityID string) ([]domain.LineItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc cartDocument
	err := r.col.FindOne(ctx, bson.M{"_id": identityID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []domain.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if doc.Items == nil {
		return []domain.LineItem{}, nil
	}
	return doc.Items, nil
}

// SaveCart replaces the identity's cart document.
func (r *CartRepository) SaveCart(ctx context.Context, identityID string, items []domain.LineItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := cartDocument{IdentityID: identityID, Items: items, UpdatedAt: time.Now().UTC()}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": identityID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (r *CartRepository) DeleteCart(ctx context.Context, identityID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": identityID}); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// EnsureIndexes creates the secondary indexes on the carts collection.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
