package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/store"
)

func (h StorefrontHandler) GetBasket(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, basketOf(h.sf.State()))
}

func (h StorefrontHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	depth, ok := depthParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, categoriesOf(h.sf.State(), depth))
}

func (h StorefrontHandler) GetSelectedCategory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, selectedCategoryOf(h.sf.State()))
}

// GetProduct serves a product of the session cache. It never fetches.
func (h StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := store.Product(h.sf.State(), chi.URLParam(r, "sku"))
	if !ok {
		writeError(w, http.StatusNotFound, "product not loaded")
		return
	}
	writeJSON(w, http.StatusOK, productOf(p))
}

func (h StorefrontHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, searchOf(h.sf.State(), h.sf.ItemsPerPage()))
}

func (h StorefrontHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, suggestionsOf(h.sf.State()))
}

func (h StorefrontHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionOf(h.sf.State()))
}

func (h StorefrontHandler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Navigation{
		Location: h.nav.Location(),
		History:  h.nav.History(),
	})
}

// GetError answers 204 when no general error is pending.
func (h StorefrontHandler) GetError(w http.ResponseWriter, r *http.Request) {
	st := h.sf.State()
	err := store.CurrentError(st)
	if err == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, Error{
		Type:    st.Error.Type,
		Kind:    domain.KindOf(err).String(),
		Message: err.Error(),
	})
}
