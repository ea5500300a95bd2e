package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
)

const currentBasket = "current"

func basketPath(basketID string, segments ...string) string {
	if basketID == "" {
		basketID = currentBasket
	}
	return pathOf(append([]string{"baskets", basketID}, segments...)...)
}

func (c *Client) GetBasket(ctx context.Context, basketID string) (domain.Basket, error) {
	const op = "Client.GetBasket"

	var res dataEnvelope[basketData]
	if err := c.get(ctx, basketPath(basketID), nil, &res); err != nil {
		return domain.Basket{}, opErr(err, op)
	}
	return res.Data.toDomain(), nil
}

func (c *Client) CreateBasket(ctx context.Context) (domain.Basket, error) {
	const op = "Client.CreateBasket"

	var res dataEnvelope[basketData]
	if err := c.send(ctx, http.MethodPost, "baskets", struct{}{}, &res); err != nil {
		return domain.Basket{}, opErr(err, op)
	}
	return res.Data.toDomain(), nil
}

func (c *Client) UpdateBasket(ctx context.Context, basketID string, u domain.BasketUpdate) error {
	const op = "Client.UpdateBasket"

	body := basketUpdateData{
		InvoiceToAddress:     u.InvoiceToAddressID,
		CommonShipToAddress:  u.CommonShipToAddressID,
		CommonShippingMethod: u.CommonShippingMethodID,
	}
	if err := c.send(ctx, http.MethodPatch, basketPath(basketID), body, nil); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (c *Client) GetBasketItems(ctx context.Context, basketID string) ([]domain.LineItem, error) {
	const op = "Client.GetBasketItems"

	var res dataEnvelope[[]lineItemData]
	if err := c.get(ctx, basketPath(basketID, "items"), nil, &res); err != nil {
		return nil, opErr(err, op)
	}
	items := make([]domain.LineItem, len(res.Data))
	for i, li := range res.Data {
		items[i] = li.toDomain()
	}
	return items, nil
}

func (c *Client) AddItemsToBasket(
	ctx context.Context, basketID string, items []domain.ProductQuantity,
) error {
	const op = "Client.AddItemsToBasket"

	body := make([]addItemData, len(items))
	for i, item := range items {
		body[i] = addItemData{
			Product:  item.SKU,
			Quantity: quantityData{Value: item.Quantity},
		}
	}
	err := c.send(ctx, http.MethodPost, basketPath(basketID, "items"), body, nil)
	if err != nil {
		return opErr(err, op)
	}
	return nil
}

// AddQuoteToBasket copies the items of a quote into the basket and returns
// the link to the updated basket.
func (c *Client) AddQuoteToBasket(ctx context.Context, basketID, quoteID string) (string, error) {
	const op = "Client.AddQuoteToBasket"

	var res dataEnvelope[linkData]
	header, err := c.do(ctx, http.MethodPost, basketPath(basketID, "quotes"), nil,
		map[string]string{"id": quoteID}, &res)
	if err != nil {
		return "", opErr(err, op)
	}
	if res.Data.URI != "" {
		return res.Data.URI, nil
	}
	return header.Get("Location"), nil
}

func (c *Client) UpdateBasketItem(
	ctx context.Context, basketID, itemID string, u domain.LineItemUpdate,
) error {
	const op = "Client.UpdateBasketItem"

	body := lineItemUpdateData{ShippingMethod: u.ShippingMethodID}
	if u.Quantity != nil {
		body.Quantity = &quantityData{Value: *u.Quantity}
	}
	err := c.send(ctx, http.MethodPatch, basketPath(basketID, "items", itemID), body, nil)
	if err != nil {
		return opErr(err, op)
	}
	return nil
}

func (c *Client) DeleteBasketItem(ctx context.Context, basketID, itemID string) error {
	const op = "Client.DeleteBasketItem"

	err := c.send(ctx, http.MethodDelete, basketPath(basketID, "items", itemID), nil, nil)
	if err != nil {
		return opErr(err, op)
	}
	return nil
}

func (c *Client) GetBasketEligibleShippingMethods(
	ctx context.Context, basketID string,
) ([]domain.ShippingMethod, error) {
	const op = "Client.GetBasketEligibleShippingMethods"

	var res dataEnvelope[[]namedData]
	err := c.get(ctx, basketPath(basketID, "eligible-shipping-methods"), nil, &res)
	if err != nil {
		return nil, opErr(err, op)
	}
	methods := make([]domain.ShippingMethod, len(res.Data))
	for i, m := range res.Data {
		methods[i] = domain.ShippingMethod{ID: m.ID, Name: m.Name}
	}
	return methods, nil
}

func (c *Client) GetBasketEligiblePaymentMethods(
	ctx context.Context, basketID string,
) ([]domain.PaymentMethod, error) {
	const op = "Client.GetBasketEligiblePaymentMethods"

	var res dataEnvelope[[]namedData]
	err := c.get(ctx, basketPath(basketID, "eligible-payment-methods"), nil, &res)
	if err != nil {
		return nil, opErr(err, op)
	}
	methods := make([]domain.PaymentMethod, len(res.Data))
	for i, m := range res.Data {
		methods[i] = domain.PaymentMethod{ID: m.ID, Name: m.Name}
	}
	return methods, nil
}

func (c *Client) GetBasketPayments(ctx context.Context, basketID string) ([]domain.Payment, error) {
	const op = "Client.GetBasketPayments"

	var res dataEnvelope[[]paymentData]
	if err := c.get(ctx, basketPath(basketID, "payments"), nil, &res); err != nil {
		return nil, opErr(err, op)
	}
	payments := make([]domain.Payment, len(res.Data))
	for i, p := range res.Data {
		payments[i] = domain.Payment(p)
	}
	return payments, nil
}

func (c *Client) SetBasketPayment(ctx context.Context, basketID, paymentName string) error {
	const op = "Client.SetBasketPayment"

	body := map[string]string{"name": paymentName, "type": "Payment"}
	err := c.send(ctx, http.MethodPut, basketPath(basketID, "payments", paymentName), body, nil)
	if err != nil {
		return opErr(err, op)
	}
	return nil
}

func (c *Client) DeleteBasketPayment(ctx context.Context, basketID, paymentID string) error {
	const op = "Client.DeleteBasketPayment"

	err := c.send(ctx, http.MethodDelete, basketPath(basketID, "payments", paymentID), nil, nil)
	if err != nil {
		return opErr(err, op)
	}
	return nil
}

func (c *Client) CreateBasketPaymentInstrument(
	ctx context.Context, basketID string, pi domain.PaymentInstrument,
) error {
	const op = "Client.CreateBasketPaymentInstrument"

	body := paymentInstrumentData{ID: pi.ID, PaymentMethod: pi.PaymentMethod}
	for _, p := range pi.Parameters {
		body.Parameters = append(body.Parameters, parameterData(p))
	}
	err := c.send(ctx, http.MethodPost, basketPath(basketID, "payment-instruments"), body, nil)
	if err != nil {
		return opErr(err, op)
	}
	return nil
}

func (c *Client) DeleteBasketPaymentInstrument(ctx context.Context, basketID, instrumentID string) error {
	const op = "Client.DeleteBasketPaymentInstrument"

	path := basketPath(basketID, "payment-instruments", instrumentID)
	if err := c.send(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return opErr(err, op)
	}
	return nil
}

// CreateBasketAddress creates the address and assigns it to the basket for
// the given usage.
func (c *Client) CreateBasketAddress(
	ctx context.Context, basketID string, a domain.Address, usage domain.AddressUsage,
) (domain.Address, error) {
	const op = "Client.CreateBasketAddress"

	var u domain.BasketUpdate
	switch usage {
	case domain.AddressUsageInvoice, domain.AddressUsageShipping:
	default:
		return domain.Address{}, opErr(fmt.Errorf("%w: address usage %q", domain.ErrRejected, usage), op)
	}

	var res dataEnvelope[addressData]
	err := c.send(ctx, http.MethodPost, basketPath(basketID, "addresses"), addressFromDomain(a), &res)
	if err != nil {
		return domain.Address{}, opErr(err, op)
	}
	created := *res.Data.toDomain()

	if usage == domain.AddressUsageInvoice {
		u.InvoiceToAddressID = created.ID
	} else {
		u.CommonShipToAddressID = created.ID
	}
	if err := c.UpdateBasket(ctx, basketID, u); err != nil {
		return created, opErr(err, op)
	}
	return created, nil
}

func (c *Client) UpdateBasketAddress(ctx context.Context, basketID string, a domain.Address) error {
	const op = "Client.UpdateBasketAddress"

	path := basketPath(basketID, "addresses", a.ID)
	if err := c.send(ctx, http.MethodPatch, path, addressFromDomain(a), nil); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (c *Client) CreateOrder(ctx context.Context, basketID string) (domain.Order, error) {
	const op = "Client.CreateOrder"

	body := createOrderData{Basket: basketID, TermsAndConditionsAccepted: true}
	var res dataEnvelope[orderData]
	if err := c.send(ctx, http.MethodPost, "orders", body, &res); err != nil {
		return domain.Order{}, opErr(err, op)
	}
	return res.Data.toDomain(), nil
}
