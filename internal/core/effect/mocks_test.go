package effect_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/effect"
	"github.com/niksmo/storefront/internal/core/intent"
	"github.com/niksmo/storefront/internal/core/store"
)

type MockBasketService struct {
	mock.Mock
}

func (m *MockBasketService) GetBasket(ctx context.Context, basketID string) (domain.Basket, error) {
	args := m.Called(ctx, basketID)
	b, _ := args.Get(0).(domain.Basket)
	return b, args.Error(1)
}

func (m *MockBasketService) CreateBasket(ctx context.Context) (domain.Basket, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).(domain.Basket)
	return b, args.Error(1)
}

func (m *MockBasketService) UpdateBasket(ctx context.Context, basketID string, u domain.BasketUpdate) error {
	return m.Called(ctx, basketID, u).Error(0)
}

func (m *MockBasketService) GetBasketItems(ctx context.Context, basketID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, basketID)
	items, _ := args.Get(0).([]domain.LineItem)
	return items, args.Error(1)
}

func (m *MockBasketService) AddItemsToBasket(
	ctx context.Context, basketID string, items []domain.ProductQuantity,
) error {
	return m.Called(ctx, basketID, items).Error(0)
}

func (m *MockBasketService) AddQuoteToBasket(ctx context.Context, basketID, quoteID string) (string, error) {
	args := m.Called(ctx, basketID, quoteID)
	return args.String(0), args.Error(1)
}

func (m *MockBasketService) UpdateBasketItem(
	ctx context.Context, basketID, itemID string, u domain.LineItemUpdate,
) error {
	return m.Called(ctx, basketID, itemID, u).Error(0)
}

func (m *MockBasketService) DeleteBasketItem(ctx context.Context, basketID, itemID string) error {
	return m.Called(ctx, basketID, itemID).Error(0)
}

func (m *MockBasketService) GetBasketEligibleShippingMethods(
	ctx context.Context, basketID string,
) ([]domain.ShippingMethod, error) {
	args := m.Called(ctx, basketID)
	methods, _ := args.Get(0).([]domain.ShippingMethod)
	return methods, args.Error(1)
}

func (m *MockBasketService) GetBasketEligiblePaymentMethods(
	ctx context.Context, basketID string,
) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, basketID)
	methods, _ := args.Get(0).([]domain.PaymentMethod)
	return methods, args.Error(1)
}

func (m *MockBasketService) GetBasketPayments(ctx context.Context, basketID string) ([]domain.Payment, error) {
	args := m.Called(ctx, basketID)
	payments, _ := args.Get(0).([]domain.Payment)
	return payments, args.Error(1)
}

func (m *MockBasketService) SetBasketPayment(ctx context.Context, basketID, paymentName string) error {
	return m.Called(ctx, basketID, paymentName).Error(0)
}

func (m *MockBasketService) DeleteBasketPayment(ctx context.Context, basketID, paymentID string) error {
	return m.Called(ctx, basketID, paymentID).Error(0)
}

func (m *MockBasketService) CreateBasketPaymentInstrument(
	ctx context.Context, basketID string, pi domain.PaymentInstrument,
) error {
	return m.Called(ctx, basketID, pi).Error(0)
}

func (m *MockBasketService) DeleteBasketPaymentInstrument(
	ctx context.Context, basketID, instrumentID string,
) error {
	return m.Called(ctx, basketID, instrumentID).Error(0)
}

func (m *MockBasketService) CreateBasketAddress(
	ctx context.Context, basketID string, a domain.Address, usage domain.AddressUsage,
) (domain.Address, error) {
	args := m.Called(ctx, basketID, a, usage)
	created, _ := args.Get(0).(domain.Address)
	return created, args.Error(1)
}

func (m *MockBasketService) UpdateBasketAddress(ctx context.Context, basketID string, a domain.Address) error {
	return m.Called(ctx, basketID, a).Error(0)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, basketID string) (domain.Order, error) {
	args := m.Called(ctx, basketID)
	order, _ := args.Get(0).(domain.Order)
	return order, args.Error(1)
}

type MockCategoriesService struct {
	mock.Mock
}

func (m *MockCategoriesService) GetTopLevelCategories(
	ctx context.Context, depth int,
) (domain.CategoryTree, error) {
	args := m.Called(ctx, depth)
	tree, _ := args.Get(0).(domain.CategoryTree)
	return tree, args.Error(1)
}

func (m *MockCategoriesService) GetCategory(
	ctx context.Context, categoryID string,
) (domain.CategoryTree, error) {
	args := m.Called(ctx, categoryID)
	tree, _ := args.Get(0).(domain.CategoryTree)
	return tree, args.Error(1)
}

type MockProductsService struct {
	mock.Mock
}

func (m *MockProductsService) GetProduct(ctx context.Context, sku string) (domain.Product, error) {
	args := m.Called(ctx, sku)
	p, _ := args.Get(0).(domain.Product)
	return p, args.Error(1)
}

func (m *MockProductsService) GetCategoryProducts(
	ctx context.Context, categoryID string,
) (domain.ProductListing, error) {
	args := m.Called(ctx, categoryID)
	l, _ := args.Get(0).(domain.ProductListing)
	return l, args.Error(1)
}

func (m *MockProductsService) SearchProducts(
	ctx context.Context, term string, amount, offset int,
) (domain.ProductListing, error) {
	args := m.Called(ctx, term, amount, offset)
	l, _ := args.Get(0).(domain.ProductListing)
	return l, args.Error(1)
}

type MockSuggestService struct {
	mock.Mock
}

func (m *MockSuggestService) Suggest(ctx context.Context, term string) ([]domain.Suggestion, error) {
	args := m.Called(ctx, term)
	s, _ := args.Get(0).([]domain.Suggestion)
	return s, args.Error(1)
}

type MockTokenStorage struct {
	mock.Mock
}

func (m *MockTokenStorage) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStorage) SetToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockTokenStorage) DeleteToken(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockIntentJournal struct {
	mock.Mock
}

func (m *MockIntentJournal) AppendEntries(ctx context.Context, entries []domain.JournalEntry) error {
	return m.Called(ctx, entries).Error(0)
}

// recorder captures every reduced intent in reduction order.
type recorder struct {
	mu  sync.Mutex
	ins []intent.Intent
}

func (r *recorder) Notify(in intent.Intent, _ store.State) []intent.Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ins = append(r.ins, in)
	return nil
}

func (r *recorder) intents() []intent.Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]intent.Intent(nil), r.ins...)
}

func (r *recorder) names() []string {
	return intent.Names(r.intents())
}

func (r *recorder) count(in intent.Intent) int {
	var n int
	for _, got := range r.intents() {
		if got.Name() == in.Name() {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ins = nil
}

type navRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (n *navRecorder) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *navRecorder) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// env is a store wired with every effect and mocked remote services.
type env struct {
	store *store.Store
	rec   *recorder
	nav   *navRecorder

	basket     *MockBasketService
	orders     *MockOrderService
	categories *MockCategoriesService
	products   *MockProductsService
	suggest    *MockSuggestService
	tokens     *MockTokenStorage
}

func newEnv(t *testing.T, initial store.State, opts ...effect.SearchOpt) *env {
	t.Helper()

	e := &env{
		rec:        new(recorder),
		nav:        new(navRecorder),
		basket:     new(MockBasketService),
		orders:     new(MockOrderService),
		categories: new(MockCategoriesService),
		products:   new(MockProductsService),
		suggest:    new(MockSuggestService),
		tokens:     new(MockTokenStorage),
	}
	e.store = store.New(store.InitialStateOpt(initial))

	ctx := t.Context()
	basketEffects := effect.NewBasketEffects(ctx, e.store, e.basket, e.orders, e.nav)
	sessionEffects := effect.NewSessionEffects(ctx, e.store, basketEffects, e.tokens)
	categoriesEffects := effect.NewCategoriesEffects(ctx, e.store, e.categories, e.nav)
	productsEffects := effect.NewProductsEffects(ctx, e.store, e.products, e.nav)
	searchEffects := effect.NewSearchEffects(
		ctx, e.store, e.products, e.suggest, e.nav, opts...,
	)

	e.store.Register(
		e.rec,
		basketEffects,
		sessionEffects,
		categoriesEffects,
		productsEffects,
		searchEffects,
	)

	t.Cleanup(func() {
		searchEffects.Close()
		productsEffects.Close()
		categoriesEffects.Close()
		sessionEffects.Close()
		basketEffects.Close()
	})
	return e
}

// dispatch dispatches the intents and waits until every effect has settled.
func (e *env) dispatch(t *testing.T, ins ...intent.Intent) {
	t.Helper()
	e.store.Dispatch(ins...)
	e.wait(t)
}

func (e *env) wait(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.store.WaitIdle(ctx))
}

func (e *env) assertExpectations(t *testing.T) {
	t.Helper()
	e.basket.AssertExpectations(t)
	e.orders.AssertExpectations(t)
	e.categories.AssertExpectations(t)
	e.products.AssertExpectations(t)
	e.suggest.AssertExpectations(t)
	e.tokens.AssertExpectations(t)
}

// expectReload accepts the requests of a basket reload.
func (e *env) expectReload(b domain.Basket) {
	e.basket.On("GetBasket", mock.Anything, "").Return(b, nil).Maybe()
	e.basket.On("GetBasketItems", mock.Anything, b.ID).Return(b.LineItems, nil).Maybe()
	e.basket.On("GetBasketPayments", mock.Anything, b.ID).Return([]domain.Payment(nil), nil).Maybe()
}

// stateWithBasket returns a state holding the basket and the products of
// its line items.
func stateWithBasket(b domain.Basket) store.State {
	st := store.InitialState()
	st.Basket.Basket = &b
	for _, li := range b.LineItems {
		st.Products.Entities[li.ProductSKU] = domain.Product{SKU: li.ProductSKU}
		st.Products.IDs = append(st.Products.IDs, li.ProductSKU)
	}
	return st
}

func testBasket() domain.Basket {
	return domain.Basket{
		ID: "b1",
		LineItems: []domain.LineItem{
			{ID: "li1", ProductSKU: "sku1", Quantity: 1},
			{ID: "li2", ProductSKU: "sku2", Quantity: 3},
			{ID: "li3", ProductSKU: "sku3", Quantity: 5},
		},
	}
}
