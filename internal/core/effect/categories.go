package effect

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/intent"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/store"
)

const pathError = "/error"

var _ store.Listener = (*CategoriesEffects)(nil)

// CategoriesEffects loads categories on demand and completes the selected
// category: its ancestors and its products.
type CategoriesEffects struct {
	categories port.CategoriesService
	nav        port.Navigator
	merge      Runner

	// announced is the selected category SelectedCategoryAvailable has been
	// emitted for. Only touched by Notify.
	announced string
}

func NewCategoriesEffects(
	ctx context.Context, d Dispatcher, categories port.CategoriesService, nav port.Navigator,
) *CategoriesEffects {
	if categories == nil || nav == nil {
		panic("effect.NewCategoriesEffects: nil dependency (develop mistake)")
	}
	return &CategoriesEffects{
		categories: categories,
		nav:        nav,
		merge:      NewMergeRunner(ctx, d),
	}
}

func (e *CategoriesEffects) Close() {
	e.merge.Close()
}

func (e *CategoriesEffects) Notify(in intent.Intent, st store.State) []intent.Intent {
	var out []intent.Intent

	switch in := in.(type) {
	case intent.LoadTopLevelCategories:
		e.merge.Submit(e.loadTopLevel(in.Depth))

	case intent.LoadCategory:
		e.merge.Submit(e.loadCategory(in.CategoryID))

	case intent.SelectCategory:
		if st.Categories.Available == "" {
			e.announced = ""
		}
		if in.CategoryID != "" && !isComplete(st.Categories.Tree, in.CategoryID) {
			out = append(out, intent.LoadCategory{CategoryID: in.CategoryID})
		}

	case intent.DeselectCategory:
		e.announced = ""

	case intent.SelectedCategoryAvailable:
		return completeCategory(in.CategoryID, st)

	case intent.LoadCategoryFail:
		if in.CategoryID == st.Categories.Selected {
			e.nav.Navigate(pathError)
		}
	}

	if id := st.Categories.Selected; id != "" &&
		id != st.Categories.Available &&
		id != e.announced &&
		isComplete(st.Categories.Tree, id) {
		e.announced = id
		out = append(out, intent.SelectedCategoryAvailable{CategoryID: id})
	}
	return out
}

// completeCategory requests the not yet complete ancestors of a category and
// its products.
func completeCategory(id string, st store.State) []intent.Intent {
	c := st.Categories.Tree.View(id)
	if c == nil {
		return nil
	}

	var out []intent.Intent
	for _, ancestor := range c.CategoryPath {
		if ancestor == id {
			continue
		}
		if !isComplete(st.Categories.Tree, ancestor) {
			out = append(out, intent.LoadCategory{CategoryID: ancestor})
		}
	}
	if _, loaded := st.Categories.ProductSKUs[id]; c.HasOnlineProducts && !loaded {
		out = append(out, intent.LoadProductsForCategory{CategoryID: id})
	}
	return out
}

func isComplete(t domain.CategoryTree, id string) bool {
	c, ok := t.Nodes[id]
	return ok && c.IsComplete()
}

func (e *CategoriesEffects) loadTopLevel(depth int) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "CategoriesEffects.loadTopLevel"

		tree, err := e.categories.GetTopLevelCategories(ctx, depth)
		if err != nil {
			logFail(op, err)
			return []intent.Intent{intent.LoadTopLevelCategoriesFail{Err: err}}
		}
		return []intent.Intent{intent.LoadTopLevelCategoriesSuccess{Tree: tree}}
	}
}

func (e *CategoriesEffects) loadCategory(id string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "CategoriesEffects.loadCategory"

		tree, err := e.categories.GetCategory(ctx, id)
		if err != nil {
			logFail(op, err, "categoryID", id)
			return []intent.Intent{intent.LoadCategoryFail{CategoryID: id, Err: err}}
		}
		return []intent.Intent{intent.LoadCategorySuccess{Tree: tree}}
	}
}
