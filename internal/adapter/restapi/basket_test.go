package restapi_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/core/domain"
)

func TestClientBasket(t *testing.T) {
	ok := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
	api, c := newFakeAPI(t, func(r chi.Router) {
		r.Get("/baskets/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
				"id":                   "b1",
				"commonShippingMethod": map[string]string{"id": "std", "name": "Standard"},
				"payment":              map[string]string{"id": "pay1", "name": "Invoice"},
				"invoiceToAddress":     map[string]string{"id": "addr1", "city": "Jena"},
				"totals": map[string]any{
					"total": map[string]any{"value": 12.5, "currency": "USD"},
				},
			}})
		})
		r.Post("/baskets", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]string{"id": "new"}})
		})
		r.Patch("/baskets/{id}", ok)
		r.Get("/baskets/{id}/items", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{{
				"id":              "li1",
				"product":         "sku1",
				"quantity":        map[string]any{"value": 2},
				"shippingMethod":  map[string]string{"id": "std"},
				"singleBasePrice": map[string]any{"value": 5, "currency": "USD"},
			}}})
		})
		r.Post("/baskets/{id}/items", ok)
		r.Patch("/baskets/{id}/items/{item}", ok)
		r.Delete("/baskets/{id}/items/{item}", ok)
		r.Post("/baskets/{id}/quotes", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]string{
				"type": "Link", "uri": "baskets/b1",
			}})
		})
		r.Get("/baskets/{id}/eligible-shipping-methods", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]string{{"id": "std", "name": "Standard"}}})
		})
		r.Get("/baskets/{id}/eligible-payment-methods", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]string{{"id": "inv", "name": "Invoice"}}})
		})
		r.Get("/baskets/{id}/payments", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]string{{
				"id": "pay1", "paymentMethod": "inv", "paymentInstrument": "pi1",
			}}})
		})
		r.Put("/baskets/{id}/payments/{name}", ok)
		r.Delete("/baskets/{id}/payments/{payment}", ok)
		r.Post("/baskets/{id}/payment-instruments", ok)
		r.Delete("/baskets/{id}/payment-instruments/{pi}", ok)
		r.Post("/baskets/{id}/addresses", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]string{"id": "addr2", "city": "Jena"}})
		})
		r.Patch("/baskets/{id}/addresses/{address}", ok)
		r.Post("/orders", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]string{
				"id": "o1", "documentNumber": "00001", "status": "NEW", "basket": "b1",
			}})
		})
	})

	last := func(t *testing.T) request {
		t.Helper()
		calls := api.calls()
		require.NotEmpty(t, calls)
		return calls[len(calls)-1]
	}

	t.Run("GetCurrentBasket", func(t *testing.T) {
		b, err := c.GetBasket(t.Context(), "")
		require.NoError(t, err)

		req := last(t)
		assert.Equal(t, "/api/v1/baskets/current", req.Path)
		assert.Equal(t, "secret", req.Token)

		assert.Equal(t, "b1", b.ID)
		assert.Equal(t, &domain.ShippingMethod{ID: "std", Name: "Standard"}, b.CommonShippingMethod)
		assert.Equal(t, &domain.PaymentMethod{ID: "pay1", Name: "Invoice"}, b.PaymentMethod)
		require.NotNil(t, b.InvoiceToAddress)
		assert.Equal(t, "Jena", b.InvoiceToAddress.City)
		assert.Nil(t, b.CommonShipToAddress)
		assert.Equal(t, domain.Price{Value: 12.5, Currency: "USD"}, b.Totals.Total)
	})

	t.Run("CreateBasket", func(t *testing.T) {
		b, err := c.CreateBasket(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "new", b.ID)
		assert.Equal(t, http.MethodPost, last(t).Method)
	})

	t.Run("UpdateBasket", func(t *testing.T) {
		err := c.UpdateBasket(t.Context(), "b1", domain.BasketUpdate{CommonShippingMethodID: "exp"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"commonShippingMethod":"exp"}`, last(t).Body)
	})

	t.Run("Items", func(t *testing.T) {
		items, err := c.GetBasketItems(t.Context(), "b1")
		require.NoError(t, err)
		assert.Equal(t, []domain.LineItem{{
			ID:             "li1",
			ProductSKU:     "sku1",
			Quantity:       2,
			ShippingMethod: &domain.ShippingMethod{ID: "std"},
			SinglePrice:    domain.Price{Value: 5, Currency: "USD"},
		}}, items)

		err = c.AddItemsToBasket(t.Context(), "b1", []domain.ProductQuantity{{SKU: "sku2", Quantity: 3}})
		require.NoError(t, err)
		assert.JSONEq(t, `[{"product":"sku2","quantity":{"value":3}}]`, last(t).Body)

		err = c.UpdateBasketItem(t.Context(), "b1", "li1", domain.LineItemUpdate{Quantity: domain.IntPtr(4)})
		require.NoError(t, err)
		req := last(t)
		assert.Equal(t, http.MethodPatch, req.Method)
		assert.Equal(t, "/api/v1/baskets/b1/items/li1", req.Path)
		assert.JSONEq(t, `{"quantity":{"value":4}}`, req.Body)

		require.NoError(t, c.DeleteBasketItem(t.Context(), "b1", "li1"))
		assert.Equal(t, http.MethodDelete, last(t).Method)
	})

	t.Run("Quote", func(t *testing.T) {
		link, err := c.AddQuoteToBasket(t.Context(), "b1", "q1")
		require.NoError(t, err)
		assert.Equal(t, "baskets/b1", link)
		assert.JSONEq(t, `{"id":"q1"}`, last(t).Body)
	})

	t.Run("EligibleMethods", func(t *testing.T) {
		shipping, err := c.GetBasketEligibleShippingMethods(t.Context(), "b1")
		require.NoError(t, err)
		assert.Equal(t, []domain.ShippingMethod{{ID: "std", Name: "Standard"}}, shipping)

		payment, err := c.GetBasketEligiblePaymentMethods(t.Context(), "b1")
		require.NoError(t, err)
		assert.Equal(t, []domain.PaymentMethod{{ID: "inv", Name: "Invoice"}}, payment)
	})

	t.Run("Payments", func(t *testing.T) {
		payments, err := c.GetBasketPayments(t.Context(), "b1")
		require.NoError(t, err)
		assert.Equal(t, []domain.Payment{{ID: "pay1", PaymentMethod: "inv", PaymentInstrument: "pi1"}}, payments)

		require.NoError(t, c.DeleteBasketPayment(t.Context(), "b1", "pay1"))
		assert.Equal(t, "/api/v1/baskets/b1/payments/pay1", last(t).Path)

		require.NoError(t, c.SetBasketPayment(t.Context(), "b1", "ISH_INVOICE"))
		req := last(t)
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/api/v1/baskets/b1/payments/ISH_INVOICE", req.Path)

		err = c.CreateBasketPaymentInstrument(t.Context(), "b1", domain.PaymentInstrument{
			PaymentMethod: "ISH_DEBIT",
			Parameters:    []domain.PaymentParameter{{Name: "IBAN", Value: "DE00"}},
		})
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"paymentMethod":"ISH_DEBIT","parameters":[{"name":"IBAN","value":"DE00"}]}`,
			last(t).Body,
		)

		require.NoError(t, c.DeleteBasketPaymentInstrument(t.Context(), "b1", "pi1"))
		assert.Equal(t, "/api/v1/baskets/b1/payment-instruments/pi1", last(t).Path)
	})

	t.Run("Addresses", func(t *testing.T) {
		before := len(api.calls())
		created, err := c.CreateBasketAddress(t.Context(), "b1",
			domain.Address{City: "Jena"}, domain.AddressUsageShipping)
		require.NoError(t, err)
		assert.Equal(t, "addr2", created.ID)

		calls := api.calls()[before:]
		require.Len(t, calls, 2)
		assert.Equal(t, "/api/v1/baskets/b1/addresses", calls[0].Path)
		assert.Equal(t, http.MethodPatch, calls[1].Method)
		assert.JSONEq(t, `{"commonShipToAddress":"addr2"}`, calls[1].Body)

		_, err = c.CreateBasketAddress(t.Context(), "b1", domain.Address{}, "billing")
		assert.ErrorIs(t, err, domain.ErrRejected)
		assert.Len(t, api.calls(), before+2)

		require.NoError(t, c.UpdateBasketAddress(t.Context(), "b1", domain.Address{ID: "addr2", City: "Berlin"}))
		assert.Equal(t, "/api/v1/baskets/b1/addresses/addr2", last(t).Path)
	})

	t.Run("CreateOrder", func(t *testing.T) {
		order, err := c.CreateOrder(t.Context(), "b1")
		require.NoError(t, err)
		assert.Equal(t, domain.Order{ID: "o1", DocumentNo: "00001", Status: "NEW", BasketID: "b1"}, order)
		assert.JSONEq(t, `{"basket":"b1","termsAndConditionsAccepted":true}`, last(t).Body)
	})
}
