package command

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	catalogdomain "github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/internal/order/domain"
	"github.com/verdantgoods/storefront/kafka"
	"github.com/verdantgoods/storefront/pkg/apperr"
	"github.com/verdantgoods/storefront/pkg/logger"
)

var tracer = otel.Tracer("order-engine")

// OrderLine is one requested {product, quantity} pair.
type OrderLine struct {
	Slug     string
	Quantity int
}

// PlaceOrderCommand represents a checkout request.
type PlaceOrderCommand struct {
	UserID uint
	Items  []OrderLine
}

// PlaceOrderHandler runs the checkout: it validates the proposed
// purchase against current stock and either commits a fully consistent
// sale or changes nothing at all.
type PlaceOrderHandler struct {
	sales    domain.SaleRepository
	products catalogdomain.ProductRepository
	events   *kafka.Publisher // optional
}

// NewPlaceOrderHandler creates a new place order handler. The event
// publisher may be nil, in which case no events are emitted.
func NewPlaceOrderHandler(sales domain.SaleRepository, products catalogdomain.ProductRepository, events *kafka.Publisher) *PlaceOrderHandler {
	return &PlaceOrderHandler{sales: sales, products: products, events: events}
}

// Handle executes the checkout.
//
// All validation happens before any write: the full batch of slugs is
// resolved at once, quantities are normalized (invalid input coerces to
// 1, a deliberate product decision), and stock is pre-checked so the
// common failure surfaces with the offending product named. The
// conditional decrement inside the transaction re-checks stock, so a
// concurrent checkout that wins the race aborts this one instead of
// driving stock negative.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Sale, error) {
	ctx, span := tracer.Start(ctx, "checkout.place_order",
		trace.WithAttributes(attribute.Int64("user.id", int64(cmd.UserID))))
	defer span.End()

	if len(cmd.Items) == 0 {
		return nil, apperr.Validationf("cart is empty")
	}

	slugs := make([]string, 0, len(cmd.Items))
	for _, line := range cmd.Items {
		slugs = append(slugs, line.Slug)
	}

	products, err := h.products.FindBySlugs(slugs)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]catalogdomain.Product, len(products))
	for _, p := range products {
		bySlug[p.Slug] = p
	}

	sale := &domain.Sale{
		Reference: uuid.NewString(),
		UserID:    cmd.UserID,
		CreatedAt: time.Now(),
	}

	for _, line := range cmd.Items {
		product, ok := bySlug[line.Slug]
		if !ok {
			return nil, apperr.Validationf("unknown product %q", line.Slug)
		}

		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}

		if qty > product.Stock {
			return nil, apperr.Validationf("insufficient stock for product %q", product.Slug)
		}

		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID: product.ID,
			Slug:      product.Slug,
			Quantity:  qty,
			UnitPrice: product.Price, // price snapshot, not a live re-read
		})
		sale.Total += product.Price * float64(qty)
	}

	if err := h.sales.CreateSale(sale); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("order.id", int64(sale.ID)),
		attribute.Float64("order.total", sale.Total),
	)

	h.publishEvent(ctx, sale)
	return sale, nil
}

// publishEvent emits the order placed event. The sale is already
// committed, so publish failures are logged and swallowed.
func (h *PlaceOrderHandler) publishEvent(ctx context.Context, sale *domain.Sale) {
	if h.events == nil {
		return
	}

	items := make([]kafka.OrderItemEvent, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, kafka.OrderItemEvent{
			ProductID: item.ProductID,
			Slug:      item.Slug,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	event := kafka.OrderPlacedEvent{
		OrderID:   sale.ID,
		Reference: sale.Reference,
		UserID:    sale.UserID,
		Total:     sale.Total,
		Items:     items,
	}
	if err := h.events.PublishOrderPlaced(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Uint("order_id", sale.ID).Msg("Order event publish failed")
	}
}
