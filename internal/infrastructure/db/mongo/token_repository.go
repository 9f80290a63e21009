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

const (
	sessionCollection = "session"
	tokenDocumentID   = "bearer"
)

// TokenRepository keeps the bearer token in a single document.
type TokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{coll: db.Collection(sessionCollection)}
}

type tokenDocument struct {
	ID        string `bson:"_id"`
	Token     string `bson:"token"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *TokenRepository) LoadToken(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tokenDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": tokenDocumentID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return doc.Token, nil
}

func (r *TokenRepository) SaveToken(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := tokenDocument{ID: tokenDocumentID, Token: token, UpdatedAt: time.Now().Unix()}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": tokenDocumentID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (r *TokenRepository) DeleteToken(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": tokenDocumentID}); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
