package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

const menuCollection = "menu"

type MenuRepository struct {
	coll *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{coll: db.Collection(menuCollection)}
}

type menuItemDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Image       string             `bson:"image"`
	Price       float64            `bson:"price"`
}

func (r *MenuRepository) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	defer cur.Close(ctx)

	var docs []menuItemDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	items := make([]domain.MenuItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, domain.MenuItem{
			ID:          d.ID.Hex(),
			Title:       d.Title,
			Description: d.Description,
			Image:       d.Image,
			Price:       d.Price,
		})
	}
	return items, nil
}

func (r *MenuRepository) AddItem(ctx context.Context, item *domain.MenuItem) error {
	doc := menuItemDoc{
		Title:       item.Title,
		Description: item.Description,
		Image:       item.Image,
		Price:       item.Price,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	item.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}
