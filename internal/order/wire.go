//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/verdantgoods/storefront/internal/catalog/domain"
	catalogrepo "github.com/verdantgoods/storefront/internal/catalog/repository"
	httpDelivery "github.com/verdantgoods/storefront/internal/order/delivery/http"
	"github.com/verdantgoods/storefront/internal/order/domain"
	"github.com/verdantgoods/storefront/internal/order/repository"
	"github.com/verdantgoods/storefront/internal/order/usecase/command"
	"github.com/verdantgoods/storefront/internal/order/usecase/query"
	"github.com/verdantgoods/storefront/kafka"
)

// ProvideSaleRepository provides the sale repository
func ProvideSaleRepository(db *gorm.DB) domain.SaleRepository {
	return repository.NewGormSaleRepository(db)
}

// ProvideProductRepository provides the product repository used for
// stock checks at checkout
func ProvideProductRepository(db *gorm.DB) catalogdomain.ProductRepository {
	return catalogrepo.NewGormProductRepository(db)
}

// Command Handlers Providers
func ProvidePlaceOrderHandler(sales domain.SaleRepository, products catalogdomain.ProductRepository, events *kafka.Publisher) *command.PlaceOrderHandler {
	return command.NewPlaceOrderHandler(sales, products, events)
}

// Query Handlers Providers
func ProvideGetSaleHandler(repo domain.SaleRepository) *query.GetSaleHandler {
	return query.NewGetSaleHandler(repo)
}

func ProvideListSalesHandler(repo domain.SaleRepository) *query.ListSalesHandler {
	return query.NewListSalesHandler(repo)
}

func ProvideGetStatsHandler(repo domain.SaleRepository) *query.GetStatsHandler {
	return query.NewGetStatsHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideSaleRepository,
	ProvideProductRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvidePlaceOrderHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetSaleHandler,
	ProvideListSalesHandler,
	ProvideGetStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHandler initializes the order handler with all dependencies
func InitializeHandler(db *gorm.DB, events *kafka.Publisher) (*httpDelivery.OrderHandler, error) {
	wire.Build(
		AllHandlersSet,
		httpDelivery.NewOrderHandler,
	)
	return nil, nil
}
