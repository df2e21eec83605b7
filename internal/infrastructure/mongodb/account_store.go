package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

const accountsCollection = "users"

type AccountStore struct {
	coll *mongo.Collection
}

func NewAccountStore(db *mongo.Database) *AccountStore {
	return &AccountStore{coll: db.Collection(accountsCollection)}
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *AccountStore) FindByMobile(ctx context.Context, mobile string) (*entity.Account, error) {
	return s.findOne(ctx, bson.M{"mobile": mobile})
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *AccountStore) findOne(ctx context.Context, filter bson.M) (*entity.Account, error) {
	a := &entity.Account{}
	if err := s.coll.FindOne(ctx, filter).Decode(a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AccountStore) Insert(ctx context.Context, a *entity.Account) error {
	if err := a.CheckOTPState(); err != nil {
		return err
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

func (s *AccountStore) UpdateByID(ctx context.Context, id string, fields map[string]interface{}) (*entity.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	updated := &entity.Account{}
	err = s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *AccountStore) Save(ctx context.Context, a *entity.Account) error {
	if err := a.CheckOTPState(); err != nil {
		return err
	}
	a.UpdatedAt = time.Now().UTC()

	// ReplaceOne drops cleared otp fields from the document entirely
	// (omitempty), matching the pending/resolved lifecycle.
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AccountStore = (*AccountStore)(nil)
