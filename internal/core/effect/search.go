package effect

import (
	"context"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/intent"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/store"
)

const (
	DefaultItemsPerPage    = 12
	DefaultSuggestDebounce = 400 * time.Millisecond
)

var _ store.Listener = (*SearchEffects)(nil)

type SearchOpt func(*SearchEffects)

func ItemsPerPageOpt(n int) SearchOpt {
	return func(e *SearchEffects) {
		if n > 0 {
			e.itemsPerPage = n
		}
	}
}

func SuggestDebounceOpt(d time.Duration) SearchOpt {
	return func(e *SearchEffects) {
		if d >= 0 {
			e.suggestDebounce = d
		}
	}
}

// SearchEffects runs the paginated product search and the search
// suggestions.
//
// A page of a search term is requested once in a row; another request for
// the same page is dropped until the term or the page changes.
type SearchEffects struct {
	products port.ProductsService
	suggest  port.SuggestService
	nav      port.Navigator

	itemsPerPage    int
	suggestDebounce time.Duration

	concat   Runner
	latest   Runner
	debounce *DebounceRunner

	// Only touched by Notify.
	preparedTerm string
	prepared     bool
	lastPage     domain.SearchPage
	requested    bool
}

func NewSearchEffects(
	ctx context.Context,
	d Dispatcher,
	products port.ProductsService,
	suggest port.SuggestService,
	nav port.Navigator,
	opts ...SearchOpt,
) *SearchEffects {
	if products == nil || suggest == nil || nav == nil {
		panic("effect.NewSearchEffects: nil dependency (develop mistake)")
	}
	e := &SearchEffects{
		products:        products,
		suggest:         suggest,
		nav:             nav,
		itemsPerPage:    DefaultItemsPerPage,
		suggestDebounce: DefaultSuggestDebounce,
		concat:          NewConcatRunner(ctx, d),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.latest = NewLatestRunner(ctx, d)
	e.debounce = NewDebounceRunner(d, e.suggestDebounce, e.latest)
	return e
}

func (e *SearchEffects) ItemsPerPage() int {
	return e.itemsPerPage
}

func (e *SearchEffects) Close() {
	e.debounce.Close()
	e.latest.Close()
	e.concat.Close()
}

func (e *SearchEffects) Notify(in intent.Intent, st store.State) []intent.Intent {
	switch in := in.(type) {
	case intent.PrepareNewSearch:
		if e.prepared && e.preparedTerm == in.SearchTerm {
			return nil
		}
		e.preparedTerm, e.prepared = in.SearchTerm, true
		return []intent.Intent{
			intent.ResetPagingInfo{},
			intent.SearchProducts{SearchTerm: in.SearchTerm},
		}

	case intent.SearchProducts:
		return e.requestNextPage(in.SearchTerm, st)

	case intent.SearchMoreProducts:
		return e.requestNextPage(in.SearchTerm, st)

	case intent.SearchProductsFail:
		e.requested = false
		e.nav.Navigate(pathError)

	case intent.SuggestSearch:
		e.debounce.SubmitKey(in.SearchTerm, e.suggestTerm(in.SearchTerm))
	}
	return nil
}

func (e *SearchEffects) requestNextPage(term string, st store.State) []intent.Intent {
	page, total := st.Viewconf.Page, st.Viewconf.TotalItems
	if term != st.Search.Term {
		page, total = 0, 0
	}
	if !domain.CanRequestMore(page, total, e.itemsPerPage) {
		return []intent.Intent{intent.SearchProductsAbort{}}
	}

	next := domain.SearchPage{Term: term, Page: page + 1}
	if e.requested && next == e.lastPage {
		return nil
	}
	e.lastPage, e.requested = next, true
	e.concat.Submit(e.search(next))
	return nil
}

func (e *SearchEffects) search(p domain.SearchPage) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "SearchEffects.search"

		listing, err := e.products.SearchProducts(
			ctx, p.Term, e.itemsPerPage, p.Offset(e.itemsPerPage),
		)
		if err != nil {
			logFail(op, err, "term", p.Term, "page", p.Page)
			return []intent.Intent{intent.SearchProductsFail{Err: err}}
		}

		out := make([]intent.Intent, 0, len(listing.Products)+3)
		out = append(out,
			intent.SearchProductsSuccess{SearchTerm: p.Term, Page: p.Page, SKUs: listing.SKUs()},
			intent.SetPagingInfo{CurrentPage: p.Page, TotalItems: listing.Total},
		)
		for _, product := range listing.Products {
			out = append(out, intent.LoadProductSuccess{Product: product})
		}
		out = append(out, intent.SetSortKeys{SortKeys: listing.SortKeys})
		return out
	}
}

// suggestTerm fetches suggestions. Failures are dropped.
func (e *SearchEffects) suggestTerm(term string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "SearchEffects.suggestTerm"

		suggestions, err := e.suggest.Suggest(ctx, term)
		if err != nil {
			if ctx.Err() == nil {
				slog.Debug("suggest failed", "op", op, "term", term, "err", err)
			}
			return nil
		}
		return []intent.Intent{intent.SuggestSearchSuccess{Suggestions: suggestions}}
	}
}
