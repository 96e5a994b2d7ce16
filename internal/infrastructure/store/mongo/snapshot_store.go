package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/esgview/admin-gateway/internal/core/domain"
)

const snapshotCollection = "session_snapshots"

// Entry keys. Token and profile live in separate documents on purpose: the
// two writes are independent, mirroring the front-end's two storage slots.
const (
	tokenEntry   = "token"
	profileEntry = "profile"
)

// SnapshotStore persists the session entries in a MongoDB collection, for
// deployments that already run the platform's database.
type SnapshotStore struct {
	coll *mongo.Collection
}

func NewSnapshotStore(db *mongo.Database) *SnapshotStore {
	return &SnapshotStore{coll: db.Collection(snapshotCollection)}
}

type tokenDoc struct {
	ID        string `bson:"_id"`
	Token     string `bson:"token"`
	UpdatedAt int64  `bson:"updated_at"`
}

type profileDoc struct {
	ID              string   `bson:"_id"`
	Username        string   `bson:"username"`
	UserID          string   `bson:"user_id,omitempty"`
	FullName        string   `bson:"full_name,omitempty"`
	Email           string   `bson:"email,omitempty"`
	Role            string   `bson:"role"`
	PortfolioAccess []string `bson:"portfolio_access"`
	Status          string   `bson:"status,omitempty"`
	Quality         string   `bson:"quality,omitempty"`
	UpdatedAt       int64    `bson:"updated_at"`
}

func (s *SnapshotStore) SaveToken(ctx context.Context, token string) error {
	doc := tokenDoc{ID: tokenEntry, Token: token, UpdatedAt: time.Now().Unix()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": tokenEntry}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *SnapshotStore) LoadToken(ctx context.Context) (string, error) {
	var doc tokenDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": tokenEntry}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", fmt.Errorf("load token: %w", err)
	}
	return doc.Token, nil
}

func (s *SnapshotStore) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	doc := profileDoc{
		ID:              profileEntry,
		Username:        profile.Username,
		UserID:          profile.ID,
		FullName:        profile.FullName,
		Email:           profile.Email,
		Role:            profile.Role,
		PortfolioAccess: profile.PortfolioAccess,
		Status:          profile.Status,
		Quality:         string(profile.Quality),
		UpdatedAt:       time.Now().Unix(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": profileEntry}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *SnapshotStore) LoadProfile(ctx context.Context) (*domain.UserProfile, error) {
	var doc profileDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": profileEntry}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	return &domain.UserProfile{
		ID:              doc.UserID,
		Username:        doc.Username,
		FullName:        doc.FullName,
		Email:           doc.Email,
		Role:            doc.Role,
		PortfolioAccess: doc.PortfolioAccess,
		Status:          doc.Status,
		Quality:         domain.IdentityQuality(doc.Quality),
	}, nil
}

func (s *SnapshotStore) Clear(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": []string{tokenEntry, profileEntry}}})
	if err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
