package intent

import "github.com/niksmo/storefront/internal/core/domain"

type LoadTopLevelCategories struct {
	marker
	Depth int
}

func (LoadTopLevelCategories) Name() string { return "[Shopping] Load top level categories" }

type LoadTopLevelCategoriesSuccess struct {
	marker
	Tree domain.CategoryTree
}

func (LoadTopLevelCategoriesSuccess) Name() string { return "[Shopping] Load top level categories Success" }

type LoadTopLevelCategoriesFail struct {
	marker
	Err error
}

func (LoadTopLevelCategoriesFail) Name() string { return "[Shopping] Load top level categories Fail" }

func (i LoadTopLevelCategoriesFail) Cause() error { return i.Err }

type LoadCategory struct {
	marker
	CategoryID string
}

func (LoadCategory) Name() string { return "[Shopping] Load Category" }

type LoadCategorySuccess struct {
	marker
	Tree domain.CategoryTree
}

func (LoadCategorySuccess) Name() string { return "[Shopping] Load Category Success" }

type LoadCategoryFail struct {
	marker
	CategoryID string
	Err        error
}

func (LoadCategoryFail) Name() string { return "[Shopping] Load Category Fail" }

func (i LoadCategoryFail) Cause() error { return i.Err }

// A SelectCategory selects a category which may not be loaded or may not exist.
type SelectCategory struct {
	marker
	CategoryID string
}

func (SelectCategory) Name() string { return "[Shopping] Select Category" }

type DeselectCategory struct{ marker }

func (DeselectCategory) Name() string { return "[Shopping] Deselect Category" }

type SelectedCategoryAvailable struct {
	marker
	CategoryID string
}

func (SelectedCategoryAvailable) Name() string { return "[Shopping] Selected Category Available" }

type LoadProduct struct {
	marker
	SKU string
}

func (LoadProduct) Name() string { return "[Shopping] Load Product" }

// A LoadProductSuccess upserts a product.
type LoadProductSuccess struct {
	marker
	Product domain.Product
}

func (LoadProductSuccess) Name() string { return "[Shopping] Load Product Success" }

type LoadProductFail struct {
	marker
	SKU string
	Err error
}

func (LoadProductFail) Name() string { return "[Shopping] Load Product Fail" }

func (i LoadProductFail) Cause() error { return i.Err }

type SelectProduct struct {
	marker
	SKU string
}

func (SelectProduct) Name() string { return "[Shopping] Select Product" }

type LoadProductsForCategory struct {
	marker
	CategoryID string
}

func (LoadProductsForCategory) Name() string { return "[Shopping] Load Products for Category" }

type LoadProductsForCategoryFail struct {
	marker
	CategoryID string
	Err        error
}

func (LoadProductsForCategoryFail) Name() string { return "[Shopping] Load Products for Category Fail" }

func (i LoadProductsForCategoryFail) Cause() error { return i.Err }

type SetProductSkusForCategory struct {
	marker
	CategoryID string
	SKUs       []string
}

func (SetProductSkusForCategory) Name() string { return "[Shopping] Set Product SKUs For Category" }

// A PrepareNewSearch starts a search session for a term.
type PrepareNewSearch struct {
	marker
	SearchTerm string
}

func (PrepareNewSearch) Name() string { return "[Shopping] Prepare New Search" }

type SearchProducts struct {
	marker
	SearchTerm string
}

func (SearchProducts) Name() string { return "[Shopping] Search Products" }

type SearchMoreProducts struct {
	marker
	SearchTerm string
}

func (SearchMoreProducts) Name() string { return "[Shopping] Search More Products" }

type SearchProductsSuccess struct {
	marker
	SearchTerm string
	Page       int
	SKUs       []string
}

func (SearchProductsSuccess) Name() string { return "[Shopping] Search Products Success" }

type SearchProductsFail struct {
	marker
	Err error
}

func (SearchProductsFail) Name() string { return "[Shopping] Search Products Fail" }

func (i SearchProductsFail) Cause() error { return i.Err }

// A SearchProductsAbort replaces a search request beyond the last page.
type SearchProductsAbort struct{ marker }

func (SearchProductsAbort) Name() string { return "[Shopping] Search Products Abort" }

type SuggestSearch struct {
	marker
	SearchTerm string
}

func (SuggestSearch) Name() string { return "[Shopping] Suggest Search" }

type SuggestSearchSuccess struct {
	marker
	Suggestions []domain.Suggestion
}

func (SuggestSearchSuccess) Name() string { return "[Shopping] Suggest Search Success" }

type SetPagingInfo struct {
	marker
	CurrentPage int
	TotalItems  int
}

func (SetPagingInfo) Name() string { return "[Viewconf] Set Paging Info" }

type ResetPagingInfo struct{ marker }

func (ResetPagingInfo) Name() string { return "[Viewconf] Reset Paging Info" }

type SetSortKeys struct {
	marker
	SortKeys []string
}

func (SetSortKeys) Name() string { return "[Viewconf] Set Sort Keys" }
