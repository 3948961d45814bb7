package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// FactoryDiner identifies the ordering diner to the pizza factory.
type FactoryDiner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FactoryOrder is the fulfillment request sent to the pizza factory.
type FactoryOrder struct {
	Diner FactoryDiner  `json:"diner"`
	Order *domain.Order `json:"order"`
}

// FactoryResult is the factory's response. OK reflects the HTTP outcome;
// ReportURL is returned on both success and failure.
type FactoryResult struct {
	OK        bool
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
	Message   string `json:"message"`
}

// FactoryClient submits orders to the external fulfillment factory.
type FactoryClient interface {
	Fulfill(ctx context.Context, order FactoryOrder) (*FactoryResult, error)
}
