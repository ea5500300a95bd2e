package effect

import (
	"context"

	"github.com/niksmo/storefront/internal/core/intent"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/store"
)

var _ store.Listener = (*ProductsEffects)(nil)

type ProductsEffects struct {
	products port.ProductsService
	nav      port.Navigator
	merge    Runner
}

func NewProductsEffects(
	ctx context.Context, d Dispatcher, products port.ProductsService, nav port.Navigator,
) *ProductsEffects {
	if products == nil || nav == nil {
		panic("effect.NewProductsEffects: nil dependency (develop mistake)")
	}
	return &ProductsEffects{
		products: products,
		nav:      nav,
		merge:    NewMergeRunner(ctx, d),
	}
}

func (e *ProductsEffects) Close() {
	e.merge.Close()
}

func (e *ProductsEffects) Notify(in intent.Intent, st store.State) []intent.Intent {
	switch in := in.(type) {
	case intent.LoadProduct:
		e.merge.Submit(e.loadProduct(in.SKU))

	case intent.SelectProduct:
		if in.SKU != "" {
			return []intent.Intent{intent.LoadProduct{SKU: in.SKU}}
		}

	case intent.LoadProductFail:
		if in.SKU != "" && in.SKU == st.Products.Selected {
			e.nav.Navigate(pathError)
		}

	case intent.LoadProductsForCategory:
		e.merge.Submit(e.loadCategoryProducts(in.CategoryID))
	}
	return nil
}

func (e *ProductsEffects) loadProduct(sku string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "ProductsEffects.loadProduct"

		p, err := e.products.GetProduct(ctx, sku)
		if err != nil {
			logFail(op, err, "sku", sku)
			return []intent.Intent{intent.LoadProductFail{SKU: sku, Err: err}}
		}
		return []intent.Intent{intent.LoadProductSuccess{Product: p}}
	}
}

// loadCategoryProducts upserts the listed products before publishing the
// category SKUs, so the listing never references unknown products.
func (e *ProductsEffects) loadCategoryProducts(categoryID string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "ProductsEffects.loadCategoryProducts"

		listing, err := e.products.GetCategoryProducts(ctx, categoryID)
		if err != nil {
			logFail(op, err, "categoryID", categoryID)
			return []intent.Intent{
				intent.LoadProductsForCategoryFail{CategoryID: categoryID, Err: err},
			}
		}

		out := make([]intent.Intent, 0, len(listing.Products)+3)
		for _, p := range listing.Products {
			out = append(out, intent.LoadProductSuccess{Product: p})
		}
		out = append(out,
			intent.SetProductSkusForCategory{CategoryID: categoryID, SKUs: listing.SKUs()},
			intent.SetPagingInfo{CurrentPage: 1, TotalItems: listing.Total},
			intent.SetSortKeys{SortKeys: listing.SortKeys},
		)
		return out
	}
}
