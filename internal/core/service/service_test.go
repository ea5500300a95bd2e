package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/effect"
	"github.com/niksmo/storefront/internal/core/intent"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/internal/core/store"
)

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

type MockIntentJournal struct {
	mock.Mock
}

func (m *MockIntentJournal) AppendEntries(ctx context.Context, entries []domain.JournalEntry) error {
	return m.Called(ctx, entries).Error(0)
}

type nopNavigator struct{}

func (nopNavigator) Navigate(string) {}

// Services the tests never call. Any call panics on the nil embedded interface.
type (
	unusedBasket   struct{ port.BasketService }
	unusedOrders   struct{ port.OrderService }
	unusedProducts struct{ port.ProductsService }
	unusedSuggest  struct{ port.SuggestService }
)

func remote(categories *MockCategoriesService) service.Remote {
	return service.Remote{
		Basket:     unusedBasket{},
		Orders:     unusedOrders{},
		Categories: categories,
		Products:   unusedProducts{},
		Suggest:    unusedSuggest{},
	}
}

func waitIdle(t *testing.T, svc *service.Service) {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	require.NoError(t, svc.WaitIdle(ctx))
}

func TestServiceRun(t *testing.T) {
	categories := new(MockCategoriesService)
	tree := domain.NewCategoryTree(domain.Category{UniqueID: "A", CategoryPath: []string{"A"}})
	categories.On("GetTopLevelCategories", mock.Anything, 2).Return(tree, nil).Once()

	svc := service.New(t.Context(), remote(categories), nopNavigator{},
		service.NavigationDepthOpt(2),
		service.SearchOpts(effect.ItemsPerPageOpt(24)),
	)
	defer svc.Close()

	svc.Run()
	waitIdle(t, svc)

	categories.AssertExpectations(t)
	assert.Equal(t, []string{"A"}, store.CategoryIDs(svc.State()))
	assert.Equal(t, 24, svc.ItemsPerPage())
}

func TestServiceApplyProductUpdates(t *testing.T) {
	st := store.InitialState()
	st.Products.Entities["cached"] = domain.Product{SKU: "cached", Name: "old"}
	st.Products.IDs = []string{"cached"}

	svc := service.New(t.Context(), remote(new(MockCategoriesService)), nopNavigator{},
		service.InitialStateOpt(st),
	)
	defer svc.Close()

	err := svc.ApplyProductUpdates(t.Context(), []domain.Product{
		{SKU: "cached", Name: "new", Completeness: domain.ProductDetail},
		{SKU: "unknown", Name: "skip"},
	})
	require.NoError(t, err)

	got := svc.State()
	assert.Equal(t, "new", got.Products.Entities["cached"].Name)
	_, ok := got.Products.Entities["unknown"]
	assert.False(t, ok)

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		err := svc.ApplyProductUpdates(ctx, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestServiceJournal(t *testing.T) {
	journal := new(MockIntentJournal)
	var (
		mu    sync.Mutex
		names []string
	)
	journal.On("AppendEntries", mock.Anything, mock.Anything).Return(nil).
		Run(func(args mock.Arguments) {
			mu.Lock()
			defer mu.Unlock()
			for _, e := range args.Get(1).([]domain.JournalEntry) {
				names = append(names, e.Name)
			}
		})

	svc := service.New(t.Context(), remote(new(MockCategoriesService)), nopNavigator{},
		service.JournalOpt(journal, "s1"),
	)
	defer svc.Close()

	svc.Dispatch(intent.ClearError{})
	waitIdle(t, svc)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{intent.ClearError{}.Name()}, names)
}

func TestServiceCloseFlushesJournal(t *testing.T) {
	journal := new(MockIntentJournal)
	var (
		mu    sync.Mutex
		names []string
	)
	journal.On("AppendEntries", mock.Anything, mock.Anything).Return(nil).
		Run(func(args mock.Arguments) {
			mu.Lock()
			defer mu.Unlock()
			for _, e := range args.Get(1).([]domain.JournalEntry) {
				names = append(names, e.Name)
			}
		})

	svc := service.New(t.Context(), remote(new(MockCategoriesService)), nopNavigator{},
		service.JournalOpt(journal, "s1"),
	)

	svc.Dispatch(intent.ClearError{}, intent.LogoutUser{})
	svc.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, names, intent.ClearError{}.Name())
	assert.Contains(t, names, intent.LogoutUser{}.Name())
	assert.Contains(t, names, intent.ResetBasket{}.Name())
}
