package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/effect"
	"github.com/niksmo/storefront/internal/core/intent"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/store"
)

var _ port.CatalogUpdater = (*Service)(nil)

// Remote groups the commerce API services.
type Remote struct {
	Basket     port.BasketService
	Orders     port.OrderService
	Categories port.CategoriesService
	Products   port.ProductsService
	Suggest    port.SuggestService
}

type options struct {
	initial         *store.State
	tokens          port.TokenStorage
	journals        []port.IntentJournal
	sessionID       string
	searchOpts      []effect.SearchOpt
	navigationDepth int
}

type Opt func(*options)

func InitialStateOpt(st store.State) Opt {
	return func(o *options) {
		o.initial = &st
	}
}

func TokenStorageOpt(ts port.TokenStorage) Opt {
	return func(o *options) {
		o.tokens = ts
	}
}

// JournalOpt records every reduced intent of the session. Every journal
// passed by repeated options gets all the intents.
func JournalOpt(j port.IntentJournal, sessionID string) Opt {
	return func(o *options) {
		o.journals = append(o.journals, j)
		o.sessionID = sessionID
	}
}

func SearchOpts(opts ...effect.SearchOpt) Opt {
	return func(o *options) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// NavigationDepthOpt sets the depth of the category tree loaded by Run.
func NavigationDepthOpt(depth int) Opt {
	return func(o *options) {
		o.navigationDepth = depth
	}
}

type closer interface {
	Close()
}

// Service is the storefront state of one session together with the effects
// keeping it in sync with the commerce API.
type Service struct {
	store   *store.Store
	search  *effect.SearchEffects
	effects  []closer
	journals []closer
	depth    int
}

func New(ctx context.Context, remote Remote, nav port.Navigator, opts ...Opt) *Service {
	o := options{navigationDepth: 1}
	for _, opt := range opts {
		opt(&o)
	}

	var storeOpts []store.Opt
	if o.initial != nil {
		storeOpts = append(storeOpts, store.InitialStateOpt(*o.initial))
	}
	s := store.New(storeOpts...)

	basket := effect.NewBasketEffects(ctx, s, remote.Basket, remote.Orders, nav)
	session := effect.NewSessionEffects(ctx, s, basket, o.tokens)
	categories := effect.NewCategoriesEffects(ctx, s, remote.Categories, nav)
	products := effect.NewProductsEffects(ctx, s, remote.Products, nav)
	search := effect.NewSearchEffects(
		ctx, s, remote.Products, remote.Suggest, nav, o.searchOpts...,
	)

	svc := &Service{
		store:  s,
		search: search,
		depth:  o.navigationDepth,
	}
	s.Register(basket, session, categories, products, search)
	svc.effects = append(svc.effects, basket, session, categories, products, search)

	for _, j := range o.journals {
		journal := effect.NewJournalEffects(ctx, s, j, o.sessionID)
		s.Register(journal)
		svc.journals = append(svc.journals, journal)
	}
	return svc
}

// Run loads the data every page of the storefront needs.
func (s *Service) Run() {
	s.store.Dispatch(intent.LoadTopLevelCategories{Depth: s.depth})
}

// Close stops the effects. Running remote calls are canceled. The journals
// close last, so they keep the intents of the canceled calls.
func (s *Service) Close() {
	for i := len(s.effects) - 1; i >= 0; i-- {
		s.effects[i].Close()
	}
	for _, j := range s.journals {
		j.Close()
	}
}

func (s *Service) Dispatch(ins ...intent.Intent) {
	s.store.Dispatch(ins...)
}

func (s *Service) State() store.State {
	return s.store.State()
}

// WaitIdle blocks until every effect has settled.
func (s *Service) WaitIdle(ctx context.Context) error {
	const op = "Service.WaitIdle"

	if err := s.store.WaitIdle(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) ItemsPerPage() int {
	return s.search.ItemsPerPage()
}

// ApplyProductUpdates refreshes the cached products. Products the session
// has never loaded are skipped.
func (s *Service) ApplyProductUpdates(ctx context.Context, ps []domain.Product) error {
	const op = "Service.ApplyProductUpdates"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	entities := store.ProductEntities(s.store.State())
	var updates []intent.Intent
	for _, p := range ps {
		if _, ok := entities[p.SKU]; ok {
			updates = append(updates, intent.LoadProductSuccess{Product: p})
		}
	}
	if len(updates) == 0 {
		return nil
	}

	slog.Debug("applying product updates", "op", op, "products", len(updates))
	s.store.Dispatch(updates...)
	return nil
}
