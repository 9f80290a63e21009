package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Store combines the token and cart repositories over one database.
type Store struct {
	*TokenRepository
	*CartRepository

	client *mongo.Client
}

func NewStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		TokenRepository: NewTokenRepository(db),
		CartRepository:  NewCartRepository(db),
		client:          client,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
