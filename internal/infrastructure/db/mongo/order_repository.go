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

const orderCollection = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(orderCollection)}
}

type orderDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	DinerID     string             `bson:"diner_id"`
	FranchiseID string             `bson:"franchise_id"`
	StoreID     string             `bson:"store_id"`
	Date        int64              `bson:"date"`
	Items       []domain.OrderItem `bson:"items"`
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	doc := orderDoc{
		DinerID:     order.DinerID,
		FranchiseID: order.FranchiseID,
		StoreID:     order.StoreID,
		Date:        order.Date.Unix(),
		Items:       order.Items,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created := *order
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *OrderRepository) FindByDiner(ctx context.Context, dinerID string, page, limit int) ([]domain.Order, error) {
	opts := options.Find().
		SetSkip(int64(page * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "date", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.M{"diner_id": dinerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, domain.Order{
			ID:          d.ID.Hex(),
			DinerID:     d.DinerID,
			FranchiseID: d.FranchiseID,
			StoreID:     d.StoreID,
			Date:        unixToTime(d.Date),
			Items:       d.Items,
		})
	}
	return orders, nil
}
