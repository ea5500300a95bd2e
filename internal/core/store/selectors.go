package store

import (
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
)

// SelectedCategoryID returns the selected category id. It may reference a
// category which is not loaded yet or does not exist.
//
// Prefer SelectedCategory when the category itself is needed.
func SelectedCategoryID(st State) string {
	return st.Categories.Selected
}

// SelectedCategory returns the resolved selected category or nil when the
// selection is empty or unresolved.
func SelectedCategory(st State) *domain.CategoryView {
	if st.Categories.Selected == "" {
		return nil
	}
	return st.Categories.Tree.View(st.Categories.Selected)
}

func CategoryIDs(st State) []string {
	return st.Categories.Tree.IDs()
}

func TopLevelCategories(st State) []*domain.CategoryView {
	return st.Categories.Tree.TopLevel()
}

func CategoryLoading(st State) bool {
	return st.Categories.Loading
}

func ProductSKUsForSelectedCategory(st State) []string {
	c := SelectedCategory(st)
	if c == nil {
		return nil
	}
	return st.Categories.ProductSKUs[c.UniqueID]
}

func ProductsForSelectedCategory(st State) []domain.Product {
	return productsOf(st, ProductSKUsForSelectedCategory(st))
}

// ProductsForSelectedCategoryNotLoaded reports whether the selected category
// has online products while none of its SKUs are known.
func ProductsForSelectedCategoryNotLoaded(st State) bool {
	c := SelectedCategory(st)
	return c != nil && c.HasOnlineProducts && len(ProductSKUsForSelectedCategory(st)) == 0
}

func ProductEntities(st State) map[string]domain.Product {
	return st.Products.Entities
}

// ProductIDs returns the SKUs of the loaded products in load order.
func ProductIDs(st State) []string {
	return slices.Clone(st.Products.IDs)
}

func Product(st State, sku string) (domain.Product, bool) {
	p, ok := st.Products.Entities[sku]
	return p, ok
}

// SelectedProduct returns the selected product or nil when it is not loaded.
func SelectedProduct(st State) *domain.Product {
	p, ok := st.Products.Entities[st.Products.Selected]
	if !ok {
		return nil
	}
	return &p
}

func SearchTerm(st State) string {
	return st.Search.Term
}

func SearchLoading(st State) bool {
	return st.Search.Loading
}

// SearchResultSKUs returns the SKUs of all fetched pages of the current
// search, page by page.
func SearchResultSKUs(st State) []string {
	pages := make([]int, 0, len(st.Search.Pages))
	for page := range st.Search.Pages {
		pages = append(pages, page)
	}
	slices.Sort(pages)

	var skus []string
	for _, page := range pages {
		skus = append(skus, st.Search.Pages[page]...)
	}
	return skus
}

// SearchPageSKUs returns the SKUs of a single fetched page.
func SearchPageSKUs(st State, page int) []string {
	return st.Search.Pages[page]
}

func SearchResultProducts(st State) []domain.Product {
	return productsOf(st, SearchResultSKUs(st))
}

func Suggestions(st State) []domain.Suggestion {
	return st.Search.Suggestions
}

func PagingPage(st State) int {
	return st.Viewconf.Page
}

func TotalItems(st State) int {
	return st.Viewconf.TotalItems
}

func SortKeys(st State) []string {
	return st.Viewconf.SortKeys
}

// CanRequestMore reports whether another page of the current listing may
// hold items.
func CanRequestMore(st State, itemsPerPage int) bool {
	return domain.CanRequestMore(st.Viewconf.Page, st.Viewconf.TotalItems, itemsPerPage)
}

func CurrentCustomer(st State) *domain.Customer {
	return st.User.Customer
}

func IsAuthorized(st State) bool {
	return st.User.Authorized
}

func CurrentError(st State) error {
	return st.Error.Current
}

func productsOf(st State, skus []string) []domain.Product {
	products := make([]domain.Product, 0, len(skus))
	for _, sku := range skus {
		if p, ok := st.Products.Entities[sku]; ok {
			products = append(products, p)
		}
	}
	return products
}
