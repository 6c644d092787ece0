package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"budgetboard/internal/logger"
	"budgetboard/internal/models"
)

const (
	ledgerCollection = "expenses"
	userCollection   = "users"
	auditCollection  = "audit_log"
)

// Manager owns the MongoDB client and hands out collection-backed stores.
type Manager struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewManager connects to MongoDB and verifies the connection with a ping.
func NewManager(ctx context.Context, uri, dbName string) (*Manager, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Get().Infow("connected to MongoDB", "database", dbName)
	return &Manager{client: client, db: client.Database(dbName)}, nil
}

// Close disconnects the underlying client.
func (m *Manager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ledgers returns the ledger store backed by the expenses collection.
func (m *Manager) Ledgers() LedgerStore {
	return &mongoLedgerStore{coll: m.db.Collection(ledgerCollection)}
}

// Users returns the user store backed by the users collection.
func (m *Manager) Users() UserStore {
	return &mongoUserStore{coll: m.db.Collection(userCollection)}
}

// Audit returns the audit store backed by the audit_log collection.
func (m *Manager) Audit() AuditStore {
	return &mongoAuditStore{coll: m.db.Collection(auditCollection)}
}

type mongoLedgerStore struct {
	coll *mongo.Collection
}

func (s *mongoLedgerStore) Get(ctx context.Context, userID string) (*models.Ledger, error) {
	var ledger models.Ledger
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&ledger)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger: %w", err)
	}
	return &ledger, nil
}

func (s *mongoLedgerStore) Insert(ctx context.Context, ledger *models.Ledger) error {
	if _, err := s.coll.InsertOne(ctx, ledger); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert ledger: %w", err)
	}
	return nil
}

// Update compares-and-swaps on the version counter: the replacement only
// matches when the stored version equals the snapshot's version, so a
// concurrent writer causes ErrVersionConflict instead of a lost update.
func (s *mongoLedgerStore) Update(ctx context.Context, ledger *models.Ledger) error {
	next := *ledger
	next.Version = ledger.Version + 1

	res, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": ledger.UserID, "version": ledger.Version}, &next)
	if err != nil {
		return fmt.Errorf("failed to update ledger: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	ledger.Version = next.Version
	return nil
}

func (s *mongoLedgerStore) Replace(ctx context.Context, ledger *models.Ledger) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": ledger.UserID}, ledger, opts); err != nil {
		return fmt.Errorf("failed to replace ledger: %w", err)
	}
	return nil
}

func (s *mongoLedgerStore) Exists(ctx context.Context, userID string) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to check ledger existence: %w", err)
	}
	return count > 0, nil
}

type mongoUserStore struct {
	coll *mongo.Collection
}

func (s *mongoUserStore) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (s *mongoUserStore) Insert(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *mongoUserStore) Exists(ctx context.Context, userID string) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

// ListIDs enumerates user ids sorted by registration time so leaderboard tie
// order stays stable across calls.
func (s *mongoUserStore) ListIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err == nil {
			ids = append(ids, doc.ID)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return ids, nil
}

type mongoAuditStore struct {
	coll *mongo.Collection
}

func (s *mongoAuditStore) Append(ctx context.Context, entry *models.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if _, err := s.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
