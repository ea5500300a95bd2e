package store

import (
	"maps"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/intent"
)

func reduceCategories(s CategoriesState, in intent.Intent) CategoriesState {
	switch in := in.(type) {
	case intent.LoadTopLevelCategories, intent.LoadCategory:
		s.Loading = true
	case intent.LoadTopLevelCategoriesSuccess:
		s.Tree = s.Tree.Merge(in.Tree)
		s.Loading = false
	case intent.LoadCategorySuccess:
		s.Tree = s.Tree.Merge(in.Tree)
		s.Loading = false
	case intent.LoadTopLevelCategoriesFail:
		s.Loading = false
		s.Err = in.Err
	case intent.LoadCategoryFail:
		s.Loading = false
		s.Err = in.Err
	case intent.SelectCategory:
		if s.Selected != in.CategoryID {
			s.Available = ""
		}
		s.Selected = in.CategoryID
	case intent.DeselectCategory:
		s.Selected = ""
		s.Available = ""
	case intent.SelectedCategoryAvailable:
		s.Available = in.CategoryID
	case intent.SetProductSkusForCategory:
		skus := maps.Clone(s.ProductSKUs)
		if skus == nil {
			skus = map[string][]string{}
		}
		skus[in.CategoryID] = slices.Clone(in.SKUs)
		s.ProductSKUs = skus
	}
	return s
}

func reduceProducts(s ProductsState, in intent.Intent) ProductsState {
	switch in := in.(type) {
	case intent.LoadProduct, intent.LoadProductsForCategory:
		s.Loading = true
	case intent.LoadProductSuccess:
		s = upsertProduct(s, in.Product)
		s.Loading = false
	case intent.LoadProductFail:
		s.Loading = false
		s.Err = in.Err
	case intent.LoadProductsForCategoryFail:
		s.Loading = false
		s.Err = in.Err
	case intent.SetProductSkusForCategory:
		s.Loading = false
	case intent.SelectProduct:
		s.Selected = in.SKU
	}
	return s
}

func upsertProduct(s ProductsState, p domain.Product) ProductsState {
	entities := maps.Clone(s.Entities)
	if entities == nil {
		entities = map[string]domain.Product{}
	}
	existing, ok := entities[p.SKU]
	if ok {
		entities[p.SKU] = domain.MergeProduct(existing, p)
	} else {
		entities[p.SKU] = p
		s.IDs = append(slices.Clone(s.IDs), p.SKU)
	}
	s.Entities = entities
	return s
}

func reduceSearch(s SearchState, in intent.Intent) SearchState {
	switch in := in.(type) {
	case intent.PrepareNewSearch:
		if in.SearchTerm != s.Term {
			return SearchState{
				Term:        in.SearchTerm,
				Pages:       map[int][]string{},
				Suggestions: s.Suggestions,
			}
		}
	case intent.SearchProducts, intent.SearchMoreProducts:
		s.Loading = true
	case intent.SearchProductsSuccess:
		if in.SearchTerm != s.Term {
			s.Term = in.SearchTerm
			s.Pages = nil
		}
		pages := maps.Clone(s.Pages)
		if pages == nil {
			pages = map[int][]string{}
		}
		pages[in.Page] = slices.Clone(in.SKUs)
		s.Pages = pages
		s.Loading = false
		s.Err = nil
	case intent.SearchProductsFail:
		s.Loading = false
		s.Err = in.Err
	case intent.SearchProductsAbort:
		s.Loading = false
	case intent.SuggestSearchSuccess:
		s.Suggestions = slices.Clone(in.Suggestions)
	}
	return s
}

func reduceViewconf(s ViewconfState, in intent.Intent) ViewconfState {
	switch in := in.(type) {
	case intent.SetPagingInfo:
		s.Page = in.CurrentPage
		s.TotalItems = in.TotalItems
	case intent.ResetPagingInfo:
		s.Page = 0
		s.TotalItems = 0
	case intent.SetSortKeys:
		s.SortKeys = slices.Clone(in.SortKeys)
	}
	return s
}
