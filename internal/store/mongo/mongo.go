// Package mongo is the document-database store adapter. One transactions
// collection keyed by id and indexed by owner, plus a users collection for
// credentials.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"finsight/internal/core"
	"finsight/internal/store"
)

type Store struct {
	client       *mongo.Client
	transactions *mongo.Collection
	users        *mongo.Collection
}

type txDoc struct {
	ID          string    `bson:"_id"`
	Date        time.Time `bson:"date"`
	AmountCents int64     `bson:"amount_cents"`
	Category    string    `bson:"category"`
	Status      string    `bson:"status"`
	Owner       string    `bson:"owner"`
	UserProfile string    `bson:"user_profile,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

type userDoc struct {
	ID           string    `bson:"_id"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

// New connects to the database, verifies the connection, and ensures the
// owner index exists.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:       client,
		transactions: db.Collection("transactions"),
		users:        db.Collection("users"),
	}

	_, err = s.transactions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create owner index: %w", err)
	}

	return s, nil
}

func (s *Store) FindByOwner(ctx context.Context, owner string) ([]core.Transaction, error) {
	cur, err := s.transactions.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("find by owner: %w", err)
	}
	defer cur.Close(ctx)

	var docs []txDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	out := make([]core.Transaction, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, err := s.transactions.InsertOne(ctx, fromDomain(t)); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (s *Store) UpdateFields(ctx context.Context, id, owner string, p core.Patch) (core.Transaction, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Date != nil {
		set["date"] = *p.Date
	}
	if p.Amount != nil {
		set["amount_cents"] = p.Amount.Cents
	}
	if p.Category != nil {
		set["category"] = string(*p.Category)
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.UserProfile != nil {
		set["user_profile"] = *p.UserProfile
	}

	var doc txDoc
	err := s.transactions.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner": owner},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *Store) DeleteByID(ctx context.Context, id, owner string) error {
	res, err := s.transactions.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, u store.User) error {
	doc := userDoc{ID: u.ID, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (store.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.User{}, store.ErrUserNotFound
	}
	if err != nil {
		return store.User{}, fmt.Errorf("find user: %w", err)
	}
	return store.User{ID: doc.ID, PasswordHash: doc.PasswordHash, CreatedAt: doc.CreatedAt}, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func fromDomain(t core.Transaction) txDoc {
	return txDoc{
		ID:          t.ID,
		Date:        t.Date,
		AmountCents: t.Amount.Cents,
		Category:    string(t.Category),
		Status:      string(t.Status),
		Owner:       t.Owner,
		UserProfile: t.UserProfile,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (d txDoc) toDomain() core.Transaction {
	return core.Transaction{
		ID:          d.ID,
		Date:        d.Date,
		Amount:      core.Money{Cents: d.AmountCents},
		Category:    core.Category(d.Category),
		Status:      core.Status(d.Status),
		Owner:       d.Owner,
		UserProfile: d.UserProfile,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
