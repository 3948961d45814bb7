package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
	"github.com/jwtpizza/pizza-service/internal/core/token"
)

const ordersPerPage = 10

// OrderService implements the menu and diner order flows, including the
// synchronous fulfillment call to the external pizza factory.
type OrderService struct {
	menu    ports.MenuRepository
	orders  ports.OrderRepository
	factory ports.FactoryClient
	metrics ports.MetricsSink
	logger  zerolog.Logger
}

func NewOrderService(menu ports.MenuRepository, orders ports.OrderRepository, factory ports.FactoryClient, metrics ports.MetricsSink, logger zerolog.Logger) *OrderService {
	return &OrderService{menu: menu, orders: orders, factory: factory, metrics: metrics, logger: logger}
}

func (s *OrderService) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	return s.menu.GetMenu(ctx)
}

// AddMenuItem stores a new menu item and returns the full updated menu.
func (s *OrderService) AddMenuItem(ctx context.Context, item *domain.MenuItem) ([]domain.MenuItem, error) {
	if item.Title == "" || item.Price < 0 {
		return nil, domain.ErrMenuItemInvalid
	}
	if err := s.menu.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return s.menu.GetMenu(ctx)
}

// Orders returns one page of the caller's order history.
func (s *OrderService) Orders(ctx context.Context, caller *token.Claims, page int) (*ports.OrderPage, error) {
	if page < 0 {
		page = 0
	}

	orders, err := s.orders.FindByDiner(ctx, caller.UserID, page, ordersPerPage)
	if err != nil {
		return nil, err
	}
	return &ports.OrderPage{DinerID: caller.UserID, Orders: orders, Page: page}, nil
}

// Create persists the order, then submits it to the factory. A factory
// rejection is not an error: the receipt carries Fulfilled=false plus the
// factory's report link so the route can surface it.
func (s *OrderService) Create(ctx context.Context, caller *token.Claims, in ports.CreateOrderInput) (*ports.OrderReceipt, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrOrderInvalid
	}

	order := &domain.Order{
		DinerID:     caller.UserID,
		FranchiseID: in.FranchiseID,
		StoreID:     in.StoreID,
		Date:        time.Now().UTC(),
		Items:       in.Items,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.factory.Fulfill(ctx, ports.FactoryOrder{
		Diner: ports.FactoryDiner{ID: caller.UserID, Name: caller.Name, Email: caller.Email},
		Order: created,
	})
	latency := time.Since(start)
	if err != nil {
		s.metrics.PizzaPurchase(false, latency, 0)
		s.logger.Error().Err(err).Str("order_id", created.ID).Msg("factory unreachable")
		return nil, domain.ErrFactoryFailure
	}

	receipt := &ports.OrderReceipt{
		Order:     created,
		Fulfilled: result.OK,
		JWT:       result.JWT,
		ReportURL: result.ReportURL,
		Message:   result.Message,
	}

	if result.OK {
		s.metrics.PizzaPurchase(true, latency, created.Total())
		s.logger.Info().Str("order_id", created.ID).Float64("total", created.Total()).Msg("order fulfilled")
	} else {
		s.metrics.PizzaPurchase(false, latency, 0)
		s.logger.Warn().Str("order_id", created.ID).Str("factory_message", result.Message).Msg("factory rejected order")
	}
	return receipt, nil
}
