package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
	"github.com/jwtpizza/pizza-service/internal/core/token"
)

type stubMenuRepo struct {
	items []domain.MenuItem
}

func (r *stubMenuRepo) GetMenu(_ context.Context) ([]domain.MenuItem, error) {
	return append([]domain.MenuItem(nil), r.items...), nil
}

func (r *stubMenuRepo) AddItem(_ context.Context, item *domain.MenuItem) error {
	item.ID = "m" + strconv.Itoa(len(r.items)+1)
	r.items = append(r.items, *item)
	return nil
}

type stubOrderRepo struct {
	orders []domain.Order
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	created := *order
	created.ID = "o" + strconv.Itoa(len(r.orders)+1)
	r.orders = append(r.orders, created)
	return &created, nil
}

func (r *stubOrderRepo) FindByDiner(_ context.Context, dinerID string, page, limit int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.DinerID == dinerID {
			out = append(out, o)
		}
	}
	start := page * limit
	if start >= len(out) {
		return nil, nil
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

type stubFactory struct {
	result *ports.FactoryResult
	err    error
	got    *ports.FactoryOrder
}

func (f *stubFactory) Fulfill(_ context.Context, order ports.FactoryOrder) (*ports.FactoryResult, error) {
	f.got = &order
	return f.result, f.err
}

func dinerClaims() *token.Claims {
	return &token.Claims{
		UserID: "u1",
		Name:   "diner1",
		Email:  "d1@x.com",
		Roles:  []domain.RoleRef{{Role: domain.RoleDiner}},
	}
}

func newOrderFixture(factory *stubFactory) (*OrderService, *stubMenuRepo, *stubOrderRepo, *countMetrics) {
	menu := &stubMenuRepo{}
	orders := &stubOrderRepo{}
	metrics := &countMetrics{}
	return NewOrderService(menu, orders, factory, metrics, zerolog.Nop()), menu, orders, metrics
}

func TestOrderService_AddMenuItem(t *testing.T) {
	svc, _, _, _ := newOrderFixture(&stubFactory{})
	ctx := context.Background()

	menu, err := svc.AddMenuItem(ctx, &domain.MenuItem{Title: "Veggie", Price: 0.0038})
	if err != nil {
		t.Fatalf("AddMenuItem returned error: %v", err)
	}
	if len(menu) != 1 || menu[0].Title != "Veggie" {
		t.Fatalf("unexpected menu: %+v", menu)
	}

	if _, err := svc.AddMenuItem(ctx, &domain.MenuItem{Title: "", Price: 1}); err != domain.ErrMenuItemInvalid {
		t.Fatalf("expected ErrMenuItemInvalid, got %v", err)
	}
}

func TestOrderService_Create_Fulfilled(t *testing.T) {
	factory := &stubFactory{result: &ports.FactoryResult{OK: true, JWT: "factory-jwt", ReportURL: "http://report"}}
	svc, _, orders, metrics := newOrderFixture(factory)

	receipt, err := svc.Create(context.Background(), dinerClaims(), ports.CreateOrderInput{
		FranchiseID: "f1",
		StoreID:     "s1",
		Items: []domain.OrderItem{
			{MenuID: "m1", Description: "Veggie", Price: 1},
			{MenuID: "m2", Description: "Student", Price: 2},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !receipt.Fulfilled || receipt.JWT != "factory-jwt" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
	if receipt.Order.ID == "" || receipt.Order.DinerID != "u1" {
		t.Fatalf("order not persisted for diner: %+v", receipt.Order)
	}
	if len(orders.orders) != 1 {
		t.Fatalf("expected one stored order, got %d", len(orders.orders))
	}
	if factory.got == nil || factory.got.Diner.Email != "d1@x.com" {
		t.Fatalf("factory did not receive the diner identity: %+v", factory.got)
	}
	if metrics.sold != 1 || metrics.revenue != 3 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

func TestOrderService_Create_FactoryRejected(t *testing.T) {
	factory := &stubFactory{result: &ports.FactoryResult{OK: false, Message: "chaos", ReportURL: "http://report"}}
	svc, _, _, metrics := newOrderFixture(factory)

	receipt, err := svc.Create(context.Background(), dinerClaims(), ports.CreateOrderInput{
		Items: []domain.OrderItem{{MenuID: "m1", Description: "Veggie", Price: 0.05}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if receipt.Fulfilled {
		t.Fatalf("expected unfulfilled receipt")
	}
	if receipt.ReportURL != "http://report" {
		t.Fatalf("report link lost: %+v", receipt)
	}
	if metrics.failed != 1 || metrics.sold != 0 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

func TestOrderService_Create_FactoryUnreachable(t *testing.T) {
	factory := &stubFactory{err: errors.New("connection refused")}
	svc, _, _, metrics := newOrderFixture(factory)

	_, err := svc.Create(context.Background(), dinerClaims(), ports.CreateOrderInput{
		Items: []domain.OrderItem{{MenuID: "m1", Description: "Veggie", Price: 0.05}},
	})
	if !errors.Is(err, domain.ErrFactoryFailure) {
		t.Fatalf("expected ErrFactoryFailure, got %v", err)
	}
	if metrics.failed != 1 {
		t.Fatalf("expected one failed purchase, got %d", metrics.failed)
	}
}

func TestOrderService_Create_EmptyOrder(t *testing.T) {
	svc, _, _, _ := newOrderFixture(&stubFactory{})

	if _, err := svc.Create(context.Background(), dinerClaims(), ports.CreateOrderInput{}); err != domain.ErrOrderInvalid {
		t.Fatalf("expected ErrOrderInvalid, got %v", err)
	}
}

func TestOrderService_Orders_ScopedToCaller(t *testing.T) {
	factory := &stubFactory{result: &ports.FactoryResult{OK: true}}
	svc, _, orders, _ := newOrderFixture(factory)
	ctx := context.Background()

	orders.orders = []domain.Order{
		{ID: "o1", DinerID: "u1"},
		{ID: "o2", DinerID: "someone-else"},
		{ID: "o3", DinerID: "u1"},
	}

	page, err := svc.Orders(ctx, dinerClaims(), 0)
	if err != nil {
		t.Fatalf("Orders returned error: %v", err)
	}
	if page.DinerID != "u1" || len(page.Orders) != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
	for _, o := range page.Orders {
		if o.DinerID != "u1" {
			t.Fatalf("foreign order leaked: %+v", o)
		}
	}
}
