package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/intent"
	"github.com/niksmo/storefront/internal/core/store"
)

type recorder struct {
	ins []intent.Intent
	sts []store.State
}

func (r *recorder) Notify(in intent.Intent, st store.State) []intent.Intent {
	r.ins = append(r.ins, in)
	r.sts = append(r.sts, st)
	return nil
}

func TestStoreDispatch(t *testing.T) {
	t.Run("FollowUpsAfterBatch", func(t *testing.T) {
		rec := new(recorder)
		s := store.New(store.ListenersOpt(
			rec,
			store.ListenerFunc(func(in intent.Intent, _ store.State) []intent.Intent {
				if in, ok := in.(intent.SelectProduct); ok && in.SKU == "a" {
					return []intent.Intent{intent.SelectProduct{SKU: "b"}}
				}
				return nil
			}),
		))

		s.Dispatch(intent.SelectProduct{SKU: "a"}, intent.SelectProduct{SKU: "c"})

		assert.Equal(t, []intent.Intent{
			intent.SelectProduct{SKU: "a"},
			intent.SelectProduct{SKU: "c"},
			intent.SelectProduct{SKU: "b"},
		}, rec.ins)
		assert.Equal(t, "b", s.State().Products.Selected)
	})

	t.Run("ListenersSeeStateAfterReduction", func(t *testing.T) {
		rec := new(recorder)
		s := store.New()
		s.Register(rec)

		s.Dispatch(intent.SelectCategory{CategoryID: "A"}, intent.SelectCategory{CategoryID: "B"})

		require.Len(t, rec.sts, 2)
		assert.Equal(t, "A", store.SelectedCategoryID(rec.sts[0]))
		assert.Equal(t, "B", store.SelectedCategoryID(rec.sts[1]))
	})

	t.Run("InitialState", func(t *testing.T) {
		st := store.InitialState()
		st.Search.Term = "cam"
		s := store.New(store.InitialStateOpt(st))

		assert.Equal(t, "cam", store.Select(s, store.SearchTerm))
	})
}

func TestStoreWaitIdle(t *testing.T) {
	t.Run("NothingInFlight", func(t *testing.T) {
		s := store.New()
		require.NoError(t, s.WaitIdle(t.Context()))
	})

	t.Run("WaitsForRelease", func(t *testing.T) {
		s := store.New()
		release := s.Hold()
		go func() {
			time.Sleep(10 * time.Millisecond)
			release()
			release()
		}()

		ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
		defer cancel()
		require.NoError(t, s.WaitIdle(ctx))
	})

	t.Run("ContextDone", func(t *testing.T) {
		s := store.New()
		release := s.Hold()
		defer release()

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, s.WaitIdle(ctx), context.DeadlineExceeded)
	})
}

func TestReduceImmutability(t *testing.T) {
	before := store.Reduce(store.InitialState(), intent.LoadProductSuccess{
		Product: domain.Product{SKU: "a"},
	})
	after := store.Reduce(before, intent.LoadProductSuccess{
		Product: domain.Product{SKU: "b"},
	})

	assert.Len(t, before.Products.Entities, 1)
	assert.Equal(t, []string{"a"}, before.Products.IDs)
	assert.Len(t, after.Products.Entities, 2)
	assert.Equal(t, []string{"a", "b"}, store.ProductIDs(after))
}

func TestReduceBasket(t *testing.T) {
	b := domain.Basket{
		ID:        "b1",
		LineItems: []domain.LineItem{{ID: "li1", ProductSKU: "sku1", Quantity: 2}},
	}
	st := store.Reduce(store.InitialState(), intent.LoadBasketSuccess{Basket: b})

	t.Run("LoadKeepsItemsOfSameBasket", func(t *testing.T) {
		got := store.Reduce(st, intent.LoadBasketSuccess{Basket: domain.Basket{ID: "b1"}})
		assert.Equal(t, b.LineItems, store.CurrentBasket(got).LineItems)

		got = store.Reduce(st, intent.LoadBasketSuccess{Basket: domain.Basket{ID: "b2"}})
		assert.Empty(t, store.CurrentBasket(got).LineItems)
	})

	t.Run("LoadingFlag", func(t *testing.T) {
		got := store.Reduce(st, intent.UpdateBasket{})
		assert.True(t, store.BasketLoading(got))

		got = store.Reduce(got, intent.UpdateBasketFail{Err: domain.ErrRejected})
		assert.False(t, store.BasketLoading(got))
		assert.ErrorIs(t, store.BasketError(got), domain.ErrRejected)
		assert.Equal(t, "b1", store.CurrentBasket(got).ID)
	})

	t.Run("Count", func(t *testing.T) {
		assert.Equal(t, 2, store.BasketItemsCount(st))
		assert.Zero(t, store.BasketItemsCount(store.InitialState()))
	})

	t.Run("Reset", func(t *testing.T) {
		got := store.Reduce(st, intent.ResetBasket{})
		assert.Nil(t, store.CurrentBasket(got))
	})

	t.Run("OrderCreated", func(t *testing.T) {
		got := store.Reduce(st, intent.CreateOrderSuccess{Order: domain.Order{ID: "o1"}})
		assert.Nil(t, store.CurrentBasket(got))
		require.NotNil(t, got.Basket.LastOrder)
		assert.Equal(t, "o1", got.Basket.LastOrder.ID)
	})
}

func TestReduceCategories(t *testing.T) {
	full := domain.Category{UniqueID: "A", CategoryPath: []string{"A"}, Completeness: domain.CompletenessFull}
	partial := full
	partial.Completeness = domain.CompletenessPartial
	child := domain.Category{UniqueID: "A.B", CategoryPath: []string{"A", "A.B"}}

	st := store.Reduce(store.InitialState(), intent.LoadCategorySuccess{
		Tree: domain.NewCategoryTree(full),
	})
	st = store.Reduce(st, intent.LoadTopLevelCategoriesSuccess{
		Tree: domain.NewCategoryTree(partial, child),
	})

	assert.Equal(t, []string{"A", "A.B"}, store.CategoryIDs(st))
	assert.True(t, st.Categories.Tree.Nodes["A"].IsComplete())

	top := store.TopLevelCategories(st)
	require.Len(t, top, 1)
	children := top[0].Children()
	require.Len(t, children, 1)
	assert.Equal(t, "A.B", children[0].UniqueID)

	st = store.Reduce(st, intent.SelectCategory{CategoryID: "A.B"})
	st = store.Reduce(st, intent.SelectedCategoryAvailable{CategoryID: "A.B"})
	assert.Equal(t, "A.B", st.Categories.Available)

	st = store.Reduce(st, intent.SelectCategory{CategoryID: "A"})
	assert.Empty(t, st.Categories.Available)
	assert.Equal(t, "A", store.SelectedCategory(st).UniqueID)

	st = store.Reduce(st, intent.DeselectCategory{})
	assert.Nil(t, store.SelectedCategory(st))
	assert.Empty(t, store.ProductSKUsForSelectedCategory(st))
}

func TestReduceSearch(t *testing.T) {
	st := store.Reduce(store.InitialState(), intent.PrepareNewSearch{SearchTerm: "cam"})
	st = store.Reduce(st, intent.SearchProductsSuccess{SearchTerm: "cam", Page: 2, SKUs: []string{"c"}})
	st = store.Reduce(st, intent.SearchProductsSuccess{SearchTerm: "cam", Page: 1, SKUs: []string{"a", "b"}})
	st = store.Reduce(st, intent.SetPagingInfo{CurrentPage: 2, TotalItems: 3})

	assert.Equal(t, []string{"a", "b", "c"}, store.SearchResultSKUs(st))
	assert.Equal(t, []string{"c"}, store.SearchPageSKUs(st, 2))
	assert.False(t, store.CanRequestMore(st, 2))
	assert.True(t, store.CanRequestMore(st, 1))

	same := store.Reduce(st, intent.PrepareNewSearch{SearchTerm: "cam"})
	assert.Equal(t, []string{"a", "b", "c"}, store.SearchResultSKUs(same))

	other := store.Reduce(st, intent.PrepareNewSearch{SearchTerm: "lens"})
	assert.Equal(t, "lens", store.SearchTerm(other))
	assert.Empty(t, store.SearchResultSKUs(other))
	assert.Equal(t, []string{"a", "b", "c"}, store.SearchResultSKUs(st))

	reset := store.Reduce(st, intent.ResetPagingInfo{})
	assert.Zero(t, store.PagingPage(reset))
	assert.True(t, store.CanRequestMore(reset, 2))
}

func TestReduceProducts(t *testing.T) {
	detail := domain.Product{SKU: "a", LongDescription: "long", Completeness: domain.ProductDetail}
	stub := domain.Product{SKU: "a", Name: "stub"}

	st := store.Reduce(store.InitialState(), intent.LoadProductSuccess{Product: detail})
	st = store.Reduce(st, intent.LoadProductSuccess{Product: stub})

	p, ok := store.Product(st, "a")
	require.True(t, ok)
	assert.Equal(t, "long", p.LongDescription)

	newer := detail
	newer.Name = "renamed"
	st = store.Reduce(st, intent.LoadProductSuccess{Product: newer})
	p, _ = store.Product(st, "a")
	assert.Equal(t, "renamed", p.Name)
	assert.Equal(t, []string{"a"}, store.ProductIDs(st))
}

func TestReduceError(t *testing.T) {
	st := store.Reduce(store.InitialState(), intent.LoadProductFail{
		SKU: "a", Err: domain.NewStatusError(404, "unknown"),
	})
	assert.Nil(t, store.CurrentError(st))

	st = store.Reduce(st, intent.LoadProductFail{
		SKU: "a", Err: domain.NewCommunicationError(context.DeadlineExceeded),
	})
	assert.ErrorIs(t, store.CurrentError(st), domain.ErrCommunication)
	assert.Equal(t, intent.LoadProductFail{}.Name(), st.Error.Type)

	st = store.Reduce(st, intent.ClearError{})
	assert.Nil(t, store.CurrentError(st))
}

func TestReduceUser(t *testing.T) {
	st := store.Reduce(store.InitialState(), intent.LoginUserSuccess{
		Customer: domain.Customer{CustomerNo: "c1"},
	})
	assert.True(t, store.IsAuthorized(st))
	assert.Equal(t, "c1", store.CurrentCustomer(st).CustomerNo)

	st = store.Reduce(st, intent.LogoutUser{})
	assert.False(t, store.IsAuthorized(st))
	assert.Nil(t, store.CurrentCustomer(st))
}
