package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopify-sitemap-service/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCredentialStore implements the credential store on MongoDB,
// upserting one document per shop domain.
type MongoCredentialStore struct {
	collection *mongo.Collection
}

func NewMongoCredentialStore(db *mongo.Database) *MongoCredentialStore {
	return &MongoCredentialStore{
		collection: db.Collection("credentials"),
	}
}

func (s *MongoCredentialStore) Set(ctx context.Context, cred *domain.ShopCredential) error {
	if cred == nil || cred.ShopDomain == "" {
		return errors.New("credential requires a shop domain")
	}

	now := time.Now()
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"domain": cred.ShopDomain}
	update := bson.M{
		"$set": bson.M{
			"domain":       cred.ShopDomain,
			"access_token": cred.AccessToken,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

func (s *MongoCredentialStore) Get(ctx context.Context, shopDomain string) (*domain.ShopCredential, error) {
	var cred domain.ShopCredential
	filter := bson.M{"domain": shopDomain}

	err := s.collection.FindOne(ctx, filter).Decode(&cred)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return &cred, nil
}

func (s *MongoCredentialStore) Delete(ctx context.Context, shopDomain string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"domain": shopDomain}); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

func (s *MongoCredentialStore) ListShops(ctx context.Context) ([]string, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	defer cursor.Close(ctx)

	var shops []string
	for cursor.Next(ctx) {
		var cred domain.ShopCredential
		if err := cursor.Decode(&cred); err != nil {
			return nil, fmt.Errorf("failed to decode credential: %w", err)
		}
		shops = append(shops, cred.ShopDomain)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return shops, nil
}
