package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// A BasketService talks to the basket resources of the commerce API.
//
// An empty basket id addresses the current basket of the session.
type BasketService interface {
	GetBasket(ctx context.Context, basketID string) (domain.Basket, error)
	CreateBasket(ctx context.Context) (domain.Basket, error)
	UpdateBasket(ctx context.Context, basketID string, u domain.BasketUpdate) error

	GetBasketItems(ctx context.Context, basketID string) ([]domain.LineItem, error)
	AddItemsToBasket(ctx context.Context, basketID string, items []domain.ProductQuantity) error
	AddQuoteToBasket(ctx context.Context, basketID, quoteID string) (link string, err error)
	UpdateBasketItem(ctx context.Context, basketID, itemID string, u domain.LineItemUpdate) error
	DeleteBasketItem(ctx context.Context, basketID, itemID string) error

	GetBasketEligibleShippingMethods(ctx context.Context, basketID string) ([]domain.ShippingMethod, error)
	GetBasketEligiblePaymentMethods(ctx context.Context, basketID string) ([]domain.PaymentMethod, error)

	GetBasketPayments(ctx context.Context, basketID string) ([]domain.Payment, error)
	SetBasketPayment(ctx context.Context, basketID, paymentName string) error
	DeleteBasketPayment(ctx context.Context, basketID, paymentID string) error
	CreateBasketPaymentInstrument(ctx context.Context, basketID string, pi domain.PaymentInstrument) error
	DeleteBasketPaymentInstrument(ctx context.Context, basketID, instrumentID string) error

	CreateBasketAddress(ctx context.Context, basketID string, a domain.Address, usage domain.AddressUsage) (domain.Address, error)
	UpdateBasketAddress(ctx context.Context, basketID string, a domain.Address) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, basketID string) (domain.Order, error)
}

type CategoriesService interface {
	GetTopLevelCategories(ctx context.Context, depth int) (domain.CategoryTree, error)
	GetCategory(ctx context.Context, categoryID string) (domain.CategoryTree, error)
}

type ProductsService interface {
	GetProduct(ctx context.Context, sku string) (domain.Product, error)
	GetCategoryProducts(ctx context.Context, categoryID string) (domain.ProductListing, error)
	SearchProducts(ctx context.Context, term string, amount, offset int) (domain.ProductListing, error)
}

type SuggestService interface {
	Suggest(ctx context.Context, term string) ([]domain.Suggestion, error)
}

// A Navigator moves the presentation to another location.
// Navigate must not block.
type Navigator interface {
	Navigate(path string)
}

// A TokenSource provides the authentication token of the session.
// An empty token without error means the session is anonymous.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type TokenStorage interface {
	TokenSource
	SetToken(ctx context.Context, token string) error
	DeleteToken(ctx context.Context) error
}

type IntentJournal interface {
	AppendEntries(ctx context.Context, entries []domain.JournalEntry) error
}

type CatalogUpdater interface {
	ApplyProductUpdates(ctx context.Context, products []domain.Product) error
}
