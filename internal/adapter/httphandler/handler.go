package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/intent"
	"github.com/niksmo/storefront/internal/core/store"
)

var errInvalidBody = errors.New("invalid request body")

// A Storefront is the session state exposed over HTTP.
type Storefront interface {
	Dispatch(ins ...intent.Intent)
	State() store.State
	WaitIdle(ctx context.Context) error
	ItemsPerPage() int
}

// StorefrontHandler turns requests into intents and serves the selector
// views of the current state.
//
// Intent endpoints answer 202 Accepted as soon as the intents are
// dispatched. With ?wait=1 the answer is held until every effect has
// settled, so a following GET observes the outcome.
type StorefrontHandler struct {
	sf  Storefront
	nav *NavigationRecorder
}

func NewRouter(sf Storefront, nav *NavigationRecorder) chi.Router {
	if sf == nil || nav == nil {
		panic("httphandler.NewRouter: nil dependency (develop mistake)")
	}
	h := StorefrontHandler{sf: sf, nav: nav}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LogRequests)
	r.Use(AllowJSON)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/basket", func(r chi.Router) {
			r.Get("/", h.GetBasket)
			r.Patch("/", h.PatchBasket)
			r.Delete("/", h.ResetBasket)
			r.Post("/load", h.LoadBasket)

			r.Post("/items", h.AddItems)
			r.Patch("/items", h.UpdateItems)
			r.Delete("/items/{itemID}", h.DeleteItem)
			r.Post("/quotes", h.AddQuote)

			r.Post("/eligible-shipping-methods/load", h.LoadShippingMethods)
			r.Post("/eligible-payment-methods/load", h.LoadPaymentMethods)

			r.Post("/payments/load", h.LoadPayments)
			r.Put("/payment", h.SetPayment)
			r.Post("/payment-instruments", h.CreatePaymentInstrument)
			r.Delete("/payment-instruments/{instrumentID}", h.DeletePaymentInstrument)

			r.Post("/addresses", h.CreateAddress)
			r.Put("/addresses/{addressID}", h.UpdateAddress)
		})
		r.Post("/orders", h.CreateOrder)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.GetCategories)
			r.Post("/load", h.LoadTopLevelCategories)
			r.Get("/selected", h.GetSelectedCategory)
			r.Put("/selected", h.SelectCategory)
			r.Delete("/selected", h.DeselectCategory)
			r.Post("/{categoryID}/load", h.LoadCategory)
			r.Post("/{categoryID}/products/load", h.LoadCategoryProducts)
		})

		r.Route("/products", func(r chi.Router) {
			r.Put("/selected", h.SelectProduct)
			r.Get("/{sku}", h.GetProduct)
			r.Post("/{sku}/load", h.LoadProduct)
		})

		r.Route("/search", func(r chi.Router) {
			r.Get("/", h.GetSearch)
			r.Post("/", h.NewSearch)
			r.Post("/more", h.SearchMore)
		})
		r.Get("/suggest", h.GetSuggestions)
		r.Post("/suggest", h.Suggest)

		r.Get("/session", h.GetSession)
		r.Post("/session", h.Login)
		r.Delete("/session", h.Logout)

		r.Get("/navigation", h.GetNavigation)
		r.Get("/error", h.GetError)
		r.Delete("/error", h.ClearError)
	})
	return r
}

func (h StorefrontHandler) LoadBasket(w http.ResponseWriter, r *http.Request) {
	var body BasketRef
	if !decodeOptional(w, r, &body) {
		return
	}
	h.accept(w, r, intent.LoadBasket{BasketID: body.BasketID})
}

func (h StorefrontHandler) PatchBasket(w http.ResponseWriter, r *http.Request) {
	var body BasketPatch
	if !decode(w, r, &body) {
		return
	}

	var ins []intent.Intent
	if body.InvoiceToAddressID != "" {
		ins = append(ins, intent.UpdateBasketInvoiceAddress{AddressID: body.InvoiceToAddressID})
	}
	if body.CommonShipToAddressID != "" {
		ins = append(ins, intent.UpdateBasketShippingAddress{AddressID: body.CommonShipToAddressID})
	}
	if body.CommonShippingMethodID != "" {
		ins = append(ins, intent.UpdateBasketShippingMethod{ShippingMethodID: body.CommonShippingMethodID})
	}
	if len(ins) == 0 {
		badRequest(w, "nothing to update")
		return
	}
	h.accept(w, r, ins...)
}

func (h StorefrontHandler) ResetBasket(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, intent.ResetBasket{})
}

func (h StorefrontHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	var body AddItems
	if !decode(w, r, &body) {
		return
	}
	if len(body.Items) == 0 {
		badRequest(w, "no items")
		return
	}

	items := make([]domain.ProductQuantity, 0, len(body.Items))
	for _, it := range body.Items {
		if it.SKU == "" || it.Quantity < 1 {
			badRequest(w, "item requires sku and positive quantity")
			return
		}
		items = append(items, domain.ProductQuantity(it))
	}
	h.accept(w, r, intent.AddItemsToBasket{Items: items, BasketID: body.BasketID})
}

func (h StorefrontHandler) UpdateItems(w http.ResponseWriter, r *http.Request) {
	var body UpdateItems
	if !decode(w, r, &body) {
		return
	}
	if len(body.Items) == 0 {
		badRequest(w, "no items")
		return
	}

	items := make([]domain.ItemQuantity, 0, len(body.Items))
	for _, it := range body.Items {
		if it.ItemID == "" || it.Quantity < 0 {
			badRequest(w, "item requires item_id and non-negative quantity")
			return
		}
		items = append(items, domain.ItemQuantity(it))
	}
	h.accept(w, r, intent.UpdateBasketItems{Items: items})
}

func (h StorefrontHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, intent.DeleteBasketItem{ItemID: chi.URLParam(r, "itemID")})
}

func (h StorefrontHandler) AddQuote(w http.ResponseWriter, r *http.Request) {
	var body QuoteRef
	if !decode(w, r, &body) {
		return
	}
	if body.QuoteID == "" {
		badRequest(w, "quote_id is required")
		return
	}
	h.accept(w, r, intent.AddQuoteToBasket{QuoteID: body.QuoteID})
}

func (h StorefrontHandler) LoadShippingMethods(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, intent.LoadBasketEligibleShippingMethods{})
}

func (h StorefrontHandler) LoadPaymentMethods(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, intent.LoadBasketEligiblePaymentMethods{})
}

func (h StorefrontHandler) LoadPayments(w http.ResponseWriter, r *http.Request) {
	var basketID string
	if b := h.sf.State().Basket.Basket; b != nil {
		basketID = b.ID
	}
	h.accept(w, r, intent.LoadBasketPayments{BasketID: basketID})
}

func (h StorefrontHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	var body PaymentRef
	if !decode(w, r, &body) {
		return
	}
	if body.Name == "" {
		badRequest(w, "name is required")
		return
	}
	h.accept(w, r, intent.SetBasketPayment{PaymentName: body.Name})
}

func (h StorefrontHandler) CreatePaymentInstrument(w http.ResponseWriter, r *http.Request) {
	var body PaymentInstrument
	if !decode(w, r, &body) {
		return
	}
	if body.PaymentMethod == "" {
		badRequest(w, "payment_method is required")
		return
	}

	pi := domain.PaymentInstrument{PaymentMethod: body.PaymentMethod}
	for _, p := range body.Parameters {
		pi.Parameters = append(pi.Parameters, domain.PaymentParameter(p))
	}
	h.accept(w, r, intent.CreateBasketPayment{Instrument: pi})
}

func (h StorefrontHandler) DeletePaymentInstrument(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, intent.DeleteBasketPayment{InstrumentID: chi.URLParam(r, "instrumentID")})
}

func (h StorefrontHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var body NewAddress
	if !decode(w, r, &body) {
		return
	}

	usage := domain.AddressUsage(body.Usage)
	if usage != domain.AddressUsageInvoice && usage != domain.AddressUsageShipping {
		badRequest(w, "usage must be invoice or shipping")
		return
	}
	h.accept(w, r, intent.CreateBasketAddress{Address: body.Address.toDomain(), Usage: usage})
}

func (h StorefrontHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var body Address
	if !decode(w, r, &body) {
		return
	}
	body.ID = chi.URLParam(r, "addressID")
	h.accept(w, r, intent.UpdateBasketAddress{Address: body.toDomain()})
}

func (h StorefrontHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body BasketRef
	if !decodeOptional(w, r, &body) {
		return
	}
	basketID := body.BasketID
	if b := h.sf.State().Basket.Basket; basketID == "" && b != nil {
		basketID = b.ID
	}
	h.accept(w, r, intent.CreateOrder{BasketID: basketID})
}

func (h StorefrontHandler) LoadTopLevelCategories(w http.ResponseWriter, r *http.Request) {
	depth, ok := depthParam(w, r)
	if !ok {
		return
	}
	h.accept(w, r, intent.LoadTopLevelCategories{Depth: depth})
}

func (h StorefrontHandler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	var body CategoryRef
	if !decode(w, r, &body) {
		return
	}
	if body.CategoryID == "" {
		badRequest(w, "category_id is required")
		return
	}
	h.accept(w, r, intent.SelectCategory{CategoryID: body.CategoryID})
}

func (h StorefrontHandler) DeselectCategory(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, intent.DeselectCategory{})
}

func (h StorefrontHandler) LoadCategory(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, intent.LoadCategory{CategoryID: chi.URLParam(r, "categoryID")})
}

func (h StorefrontHandler) LoadCategoryProducts(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, intent.LoadProductsForCategory{CategoryID: chi.URLParam(r, "categoryID")})
}

func (h StorefrontHandler) SelectProduct(w http.ResponseWriter, r *http.Request) {
	var body ProductRef
	if !decode(w, r, &body) {
		return
	}
	if body.SKU == "" {
		badRequest(w, "sku is required")
		return
	}
	h.accept(w, r, intent.SelectProduct{SKU: body.SKU})
}

func (h StorefrontHandler) LoadProduct(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, intent.LoadProduct{SKU: chi.URLParam(r, "sku")})
}

func (h StorefrontHandler) NewSearch(w http.ResponseWriter, r *http.Request) {
	term, ok := searchTerm(w, r)
	if !ok {
		return
	}
	h.accept(w, r, intent.PrepareNewSearch{SearchTerm: term})
}

func (h StorefrontHandler) SearchMore(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	if !decodeOptional(w, r, &body) {
		return
	}
	term := body.SearchTerm
	if term == "" {
		term = store.SearchTerm(h.sf.State())
	}
	if term == "" {
		badRequest(w, "no search to continue")
		return
	}
	h.accept(w, r, intent.SearchMoreProducts{SearchTerm: term})
}

func (h StorefrontHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	term, ok := searchTerm(w, r)
	if !ok {
		return
	}
	h.accept(w, r, intent.SuggestSearch{SearchTerm: term})
}

func (h StorefrontHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body Login
	if !decode(w, r, &body) {
		return
	}
	if body.Token == "" {
		badRequest(w, "token is required")
		return
	}
	h.accept(w, r, intent.LoginUserSuccess{
		Customer: domain.Customer(body.Customer),
		Token:    body.Token,
	})
}

func (h StorefrontHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, intent.LogoutUser{})
}

func (h StorefrontHandler) ClearError(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, intent.ClearError{})
}

// accept dispatches ins and answers 202 with the intent names.
func (h StorefrontHandler) accept(
	w http.ResponseWriter, r *http.Request, ins ...intent.Intent,
) {
	const op = "StorefrontHandler.accept"
	log := slog.With("op", op)

	h.sf.Dispatch(ins...)
	names := intent.Names(ins)
	log.Debug("dispatched", "intents", names)

	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		if err := h.sf.WaitIdle(r.Context()); err != nil {
			log.Warn("effects did not settle", "err", err)
			writeError(w, http.StatusGatewayTimeout, "effects did not settle")
			return
		}
	}

	writeJSON(w, http.StatusAccepted, map[string][]string{"accepted": names})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	const op = "httphandler.decode"

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Warn("failed to parse JSON", "op", op, "err", err)
		badRequest(w, errInvalidBody.Error())
		return false
	}
	return true
}

// decodeOptional accepts an empty body, including an empty chunked one,
// and leaves v untouched.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	const op = "httphandler.decodeOptional"

	if r.ContentLength == 0 {
		return true
	}
	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case errors.Is(err, io.EOF):
		return true
	case err != nil:
		slog.Warn("failed to parse JSON", "op", op, "err", err)
		badRequest(w, errInvalidBody.Error())
		return false
	}
	return true
}

func searchTerm(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body SearchRequest
	if !decode(w, r, &body) {
		return "", false
	}
	if body.SearchTerm == "" {
		badRequest(w, "search_term is required")
		return "", false
	}
	return body.SearchTerm, true
}

func depthParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	s := r.URL.Query().Get("depth")
	if s == "" {
		return 1, true
	}
	depth, err := strconv.Atoi(s)
	if err != nil || depth < 0 {
		badRequest(w, "depth must be a non-negative integer")
		return 0, false
	}
	return depth, true
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
