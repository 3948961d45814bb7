package mongo

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

const franchiseCollection = "franchises"

type FranchiseRepository struct {
	coll *mongo.Collection
}

func NewFranchiseRepository(db *mongo.Database) *FranchiseRepository {
	return &FranchiseRepository{coll: db.Collection(franchiseCollection)}
}

type franchiseDoc struct {
	ID     primitive.ObjectID      `bson:"_id,omitempty"`
	Name   string                  `bson:"name"`
	Admins []domain.FranchiseAdmin `bson:"admins"`
	Stores []storeDoc              `bson:"stores"`
}

type storeDoc struct {
	ID   primitive.ObjectID `bson:"id"`
	Name string             `bson:"name"`
}

func (d *franchiseDoc) toDomain() domain.Franchise {
	stores := make([]domain.Store, 0, len(d.Stores))
	for _, s := range d.Stores {
		stores = append(stores, domain.Store{ID: s.ID.Hex(), Name: s.Name})
	}
	return domain.Franchise{
		ID:     d.ID.Hex(),
		Name:   d.Name,
		Admins: d.Admins,
		Stores: stores,
	}
}

func (r *FranchiseRepository) Create(ctx context.Context, franchise *domain.Franchise) (*domain.Franchise, error) {
	doc := franchiseDoc{
		Name:   franchise.Name,
		Admins: franchise.Admins,
		Stores: []storeDoc{},
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert franchise: %w", err)
	}

	created := *franchise
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *FranchiseRepository) FindByID(ctx context.Context, id string) (*domain.Franchise, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFranchiseNotFound
	}

	var doc franchiseDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrFranchiseNotFound
		}
		return nil, fmt.Errorf("find franchise: %w", err)
	}

	franchise := doc.toDomain()
	return &franchise, nil
}

// List fetches limit+1 documents to detect whether more pages follow.
func (r *FranchiseRepository) List(ctx context.Context, page, limit int, name string) ([]domain.Franchise, bool, error) {
	filter := bson.M{}
	if name != "" && name != "*" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"}
	}

	opts := options.Find().
		SetSkip(int64(page * limit)).
		SetLimit(int64(limit + 1)).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, false, fmt.Errorf("list franchises: %w", err)
	}
	defer cur.Close(ctx)

	var docs []franchiseDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, false, fmt.Errorf("decode franchises: %w", err)
	}

	more := len(docs) > limit
	if more {
		docs = docs[:limit]
	}

	franchises := make([]domain.Franchise, 0, len(docs))
	for i := range docs {
		franchises = append(franchises, docs[i].toDomain())
	}
	return franchises, more, nil
}

func (r *FranchiseRepository) FindByAdmin(ctx context.Context, userID string) ([]domain.Franchise, error) {
	cur, err := r.coll.Find(ctx, bson.M{"admins.id": userID})
	if err != nil {
		return nil, fmt.Errorf("find franchises by admin: %w", err)
	}
	defer cur.Close(ctx)

	var docs []franchiseDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode franchises: %w", err)
	}

	franchises := make([]domain.Franchise, 0, len(docs))
	for i := range docs {
		franchises = append(franchises, docs[i].toDomain())
	}
	return franchises, nil
}

func (r *FranchiseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFranchiseNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete franchise: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFranchiseNotFound
	}
	return nil
}

func (r *FranchiseRepository) AddStore(ctx context.Context, franchiseID string, store *domain.Store) (*domain.Store, error) {
	oid, err := primitive.ObjectIDFromHex(franchiseID)
	if err != nil {
		return nil, domain.ErrFranchiseNotFound
	}

	doc := storeDoc{ID: primitive.NewObjectID(), Name: store.Name}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$push": bson.M{"stores": doc}})
	if err != nil {
		return nil, fmt.Errorf("add store: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrFranchiseNotFound
	}

	return &domain.Store{ID: doc.ID.Hex(), Name: doc.Name}, nil
}

func (r *FranchiseRepository) RemoveStore(ctx context.Context, franchiseID, storeID string) error {
	oid, err := primitive.ObjectIDFromHex(franchiseID)
	if err != nil {
		return domain.ErrFranchiseNotFound
	}
	sid, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return domain.ErrStoreNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$pull": bson.M{"stores": bson.M{"id": sid}}})
	if err != nil {
		return fmt.Errorf("remove store: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFranchiseNotFound
	}
	if res.ModifiedCount == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}
