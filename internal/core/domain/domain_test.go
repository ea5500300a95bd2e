package domain_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/core/domain"
)

func TestCategoryTreeMerge(t *testing.T) {
	root := func(c domain.Completeness) domain.Category {
		return domain.Category{UniqueID: "A", Name: c.String(), CategoryPath: []string{"A"}, Completeness: c}
	}
	child := domain.Category{UniqueID: "A.B", CategoryPath: []string{"A", "A.B"}}

	t.Run("MoreCompleteWins", func(t *testing.T) {
		full := domain.NewCategoryTree(root(domain.CompletenessFull))
		partial := domain.NewCategoryTree(root(domain.CompletenessPartial), child)

		merged := full.Merge(partial)
		assert.Equal(t, domain.CompletenessFull, merged.Nodes["A"].Completeness)
		assert.True(t, merged.Has("A.B"))

		merged = partial.Merge(full)
		assert.Equal(t, domain.CompletenessFull, merged.Nodes["A"].Completeness)
	})

	t.Run("TieGoesToOther", func(t *testing.T) {
		a := domain.NewCategoryTree(root(domain.CompletenessPartial))
		renamed := root(domain.CompletenessPartial)
		renamed.Name = "renamed"
		b := domain.NewCategoryTree(renamed)

		assert.Equal(t, "renamed", a.Merge(b).Nodes["A"].Name)
	})

	t.Run("OperandsUntouched", func(t *testing.T) {
		a := domain.NewCategoryTree(root(domain.CompletenessPartial))
		b := domain.NewCategoryTree(child)

		merged := a.Merge(b)
		assert.Len(t, merged.Nodes, 2)
		assert.Len(t, a.Nodes, 1)
		assert.Empty(t, a.Edges["A"])
		assert.Equal(t, []string{"A.B"}, merged.Edges["A"])
	})

	t.Run("EdgesStayUnique", func(t *testing.T) {
		a := domain.NewCategoryTree(root(domain.CompletenessFull), child)
		merged := a.Merge(a).Merge(a)

		assert.Equal(t, []string{"A"}, merged.RootIDs)
		assert.Equal(t, []string{"A.B"}, merged.Edges["A"])
	})
}

func TestCategoryView(t *testing.T) {
	tree := domain.NewCategoryTree(
		domain.Category{UniqueID: "A", CategoryPath: []string{"A"}},
		domain.Category{UniqueID: "A.B", CategoryPath: []string{"A", "A.B"}},
		domain.Category{UniqueID: "A.B.C", CategoryPath: []string{"A", "A.B", "A.B.C"}},
	)

	assert.Nil(t, tree.View("X"))

	v := tree.View("A.B.C")
	require.NotNil(t, v)
	assert.False(t, v.HasChildren())
	parent, ok := v.ParentID()
	assert.True(t, ok)
	assert.Equal(t, "A.B", parent)

	var path []string
	for _, c := range v.PathCategories() {
		path = append(path, c.UniqueID)
	}
	assert.Equal(t, []string{"A", "A.B", "A.B.C"}, path)

	top := tree.TopLevel()
	require.Len(t, top, 1)
	assert.True(t, top[0].HasChildren())
	_, ok = top[0].ParentID()
	assert.False(t, ok)
}

func TestBasketChangedQuantities(t *testing.T) {
	b := domain.Basket{LineItems: []domain.LineItem{
		{ID: "1", Quantity: 1},
		{ID: "2", Quantity: 2},
		{ID: "3", Quantity: 3},
	}}

	changed := b.ChangedQuantities([]domain.ItemQuantity{
		{ItemID: "3", Quantity: 0},
		{ItemID: "unknown", Quantity: 4},
		{ItemID: "2", Quantity: 2},
		{ItemID: "1", Quantity: 5},
	})

	assert.Equal(t, []domain.ItemQuantity{
		{ItemID: "1", Quantity: 5},
		{ItemID: "3", Quantity: 0},
	}, changed)
	assert.Empty(t, b.ChangedQuantities(nil))
}

func TestBasketHelpers(t *testing.T) {
	var nilBasket *domain.Basket
	assert.False(t, nilBasket.HasLineItems())

	b := &domain.Basket{LineItems: []domain.LineItem{{ID: "1", ProductSKU: "sku1", Quantity: 2}}}
	assert.True(t, b.HasLineItems())
	assert.Equal(t, []domain.ProductQuantity{{SKU: "sku1", Quantity: 2}}, b.ProductQuantities())

	li, ok := b.LineItem("1")
	assert.True(t, ok)
	assert.Equal(t, "sku1", li.ProductSKU)
	_, ok = b.LineItem("2")
	assert.False(t, ok)
}

func TestRemoteError(t *testing.T) {
	tests := []struct {
		status    int
		sentinel  error
		transient bool
	}{
		{http.StatusNotFound, domain.ErrNotFound, false},
		{http.StatusBadRequest, domain.ErrRejected, false},
		{http.StatusUnprocessableEntity, domain.ErrRejected, false},
		{http.StatusRequestTimeout, domain.ErrCommunication, true},
		{http.StatusInternalServerError, domain.ErrServerFault, true},
		{http.StatusServiceUnavailable, domain.ErrServerFault, true},
		{http.StatusGatewayTimeout, domain.ErrServerFault, true},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", domain.NewStatusError(tt.status, "msg"))
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.transient, domain.IsTransient(err))
		})
	}

	t.Run("Communication", func(t *testing.T) {
		err := domain.NewCommunicationError(io.ErrUnexpectedEOF)
		assert.ErrorIs(t, err, domain.ErrCommunication)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.True(t, domain.IsTransient(err))
	})

	t.Run("NoBasket", func(t *testing.T) {
		assert.ErrorIs(t, domain.ErrNoBasket, domain.ErrRejected)
		assert.Equal(t, domain.KindRejected, domain.KindOf(domain.ErrNoBasket))
	})

	t.Run("Unclassified", func(t *testing.T) {
		assert.Equal(t, domain.KindCommunication, domain.KindOf(errors.New("boom")))
	})
}

func TestCanRequestMore(t *testing.T) {
	assert.True(t, domain.CanRequestMore(0, 0, 12))
	assert.True(t, domain.CanRequestMore(1, 13, 12))
	assert.False(t, domain.CanRequestMore(1, 12, 12))
	assert.False(t, domain.CanRequestMore(2, 20, 12))

	assert.Equal(t, 0, domain.SearchPage{Page: 1}.Offset(12))
	assert.Equal(t, 24, domain.SearchPage{Page: 3}.Offset(12))
	assert.Equal(t, 0, domain.SearchPage{}.Offset(12))
}

func TestMergeProduct(t *testing.T) {
	detail := domain.Product{SKU: "a", Name: "detail", Completeness: domain.ProductDetail}
	stub := domain.Product{SKU: "a", Name: "stub", Completeness: domain.ProductStub}

	assert.Equal(t, "detail", domain.MergeProduct(detail, stub).Name)
	assert.Equal(t, "detail", domain.MergeProduct(stub, detail).Name)
	assert.Equal(t, "stub", domain.MergeProduct(stub, stub).Name)

	l := domain.ProductListing{Products: []domain.Product{detail, {SKU: "b"}}}
	assert.Equal(t, []string{"a", "b"}, l.SKUs())
}
