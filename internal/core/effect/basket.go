package effect

import (
	"context"
	"errors"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/intent"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/store"
)

const pathReceipt = "/checkout/receipt"

var _ store.Listener = (*BasketEffects)(nil)

// BasketEffects keeps the basket in sync with the commerce API.
//
// Reads run concurrently, mutations run one after another. Every successful
// mutation reloads the basket.
type BasketEffects struct {
	basket port.BasketService
	orders port.OrderService
	nav    port.Navigator

	merge  Runner
	concat Runner
}

func NewBasketEffects(
	ctx context.Context,
	d Dispatcher,
	basket port.BasketService,
	orders port.OrderService,
	nav port.Navigator,
) *BasketEffects {
	if basket == nil || orders == nil || nav == nil {
		panic("effect.NewBasketEffects: nil dependency (develop mistake)")
	}
	return &BasketEffects{
		basket: basket,
		orders: orders,
		nav:    nav,
		merge:  NewMergeRunner(ctx, d),
		concat: NewConcatRunner(ctx, d),
	}
}

func (e *BasketEffects) Close() {
	e.concat.Close()
	e.merge.Close()
}

func (e *BasketEffects) Notify(in intent.Intent, st store.State) []intent.Intent {
	switch in := in.(type) {
	case intent.LoadBasket:
		e.merge.Submit(e.loadBasket(in.BasketID))

	case intent.LoadBasketSuccess:
		return []intent.Intent{
			intent.LoadBasketItems{BasketID: in.Basket.ID},
			intent.LoadBasketPayments{BasketID: in.Basket.ID},
		}

	case intent.LoadBasketItems:
		e.merge.Submit(e.loadBasketItems(in.BasketID))

	case intent.LoadBasketItemsSuccess:
		return missingProducts(in.Items, st)

	case intent.UpdateBasketInvoiceAddress:
		return []intent.Intent{intent.UpdateBasket{
			Update: domain.BasketUpdate{InvoiceToAddressID: in.AddressID},
		}}

	case intent.UpdateBasketShippingAddress:
		return []intent.Intent{intent.UpdateBasket{
			Update: domain.BasketUpdate{CommonShipToAddressID: in.AddressID},
		}}

	case intent.UpdateBasket:
		b := st.Basket.Basket
		if b == nil {
			return []intent.Intent{intent.UpdateBasketFail{Err: domain.ErrNoBasket}}
		}
		e.concat.Submit(e.updateBasket(b.ID, in.Update))

	case intent.UpdateBasketShippingMethod:
		b := st.Basket.Basket
		if b == nil {
			return []intent.Intent{intent.UpdateBasketFail{Err: domain.ErrNoBasket}}
		}
		e.concat.Submit(e.updateShippingMethod(*b, in.ShippingMethodID))

	case intent.AddProductToBasket:
		return []intent.Intent{intent.AddItemsToBasket{
			Items: []domain.ProductQuantity{{SKU: in.SKU, Quantity: in.Quantity}},
		}}

	case intent.AddItemsToBasket:
		basketID := in.BasketID
		if basketID == "" && st.Basket.Basket != nil {
			basketID = st.Basket.Basket.ID
		}
		if basketID == "" {
			e.merge.Submit(e.resolveBasketAndAdd(in.Items))
			break
		}
		e.concat.Submit(e.addItems(basketID, in.Items))

	case intent.AddQuoteToBasket:
		b := st.Basket.Basket
		if b == nil {
			return []intent.Intent{intent.AddQuoteToBasketFail{Err: domain.ErrNoBasket}}
		}
		e.concat.Submit(e.addQuote(b.ID, in.QuoteID))

	case intent.UpdateBasketItems:
		b := st.Basket.Basket
		if b == nil {
			return []intent.Intent{intent.UpdateBasketItemsFail{Err: domain.ErrNoBasket}}
		}
		e.concat.Submit(e.updateItems(b.ID, b.ChangedQuantities(in.Items)))

	case intent.DeleteBasketItem:
		b := st.Basket.Basket
		if b == nil {
			return []intent.Intent{intent.DeleteBasketItemFail{Err: domain.ErrNoBasket}}
		}
		e.concat.Submit(e.deleteItem(b.ID, in.ItemID))

	case intent.LoadBasketEligibleShippingMethods:
		b := st.Basket.Basket
		if b == nil {
			return []intent.Intent{intent.LoadBasketEligibleShippingMethodsFail{Err: domain.ErrNoBasket}}
		}
		e.concat.Submit(e.loadShippingMethods(b.ID))

	case intent.LoadBasketEligiblePaymentMethods:
		b := st.Basket.Basket
		if b == nil {
			return []intent.Intent{intent.LoadBasketEligiblePaymentMethodsFail{Err: domain.ErrNoBasket}}
		}
		e.concat.Submit(e.loadPaymentMethods(b.ID))

	case intent.LoadBasketPayments:
		e.merge.Submit(e.loadPayments(in.BasketID))

	case intent.SetBasketPayment:
		b := st.Basket.Basket
		if b == nil {
			return []intent.Intent{intent.SetBasketPaymentFail{Err: domain.ErrNoBasket}}
		}
		e.concat.Submit(e.setPayment(*b, in.PaymentName))

	case intent.CreateBasketPayment:
		b := st.Basket.Basket
		if b == nil {
			return []intent.Intent{intent.CreateBasketPaymentFail{Err: domain.ErrNoBasket}}
		}
		e.concat.Submit(e.createPayment(b.ID, in.Instrument))

	case intent.DeleteBasketPayment:
		b := st.Basket.Basket
		if b == nil {
			return []intent.Intent{intent.DeleteBasketPaymentFail{Err: domain.ErrNoBasket}}
		}
		e.concat.Submit(e.deletePayment(b.ID, in.InstrumentID))

	case intent.CreateBasketAddress:
		b := st.Basket.Basket
		if b == nil {
			return []intent.Intent{intent.CreateBasketAddressFail{Err: domain.ErrNoBasket}}
		}
		e.concat.Submit(e.createAddress(b.ID, in.Address, in.Usage))

	case intent.UpdateBasketAddress:
		b := st.Basket.Basket
		if b == nil {
			return []intent.Intent{intent.UpdateBasketAddressFail{Err: domain.ErrNoBasket}}
		}
		e.concat.Submit(e.updateAddress(b.ID, in.Address))

	case intent.CreateOrder:
		basketID := in.BasketID
		if basketID == "" && st.Basket.Basket != nil {
			basketID = st.Basket.Basket.ID
		}
		if basketID == "" {
			return []intent.Intent{intent.CreateOrderFail{Err: domain.ErrNoBasket}}
		}
		e.merge.Submit(e.createOrder(basketID))

	case intent.CreateOrderSuccess:
		e.nav.Navigate(pathReceipt)

	case intent.UpdateBasketSuccess,
		intent.AddItemsToBasketSuccess,
		intent.AddQuoteToBasketSuccess,
		intent.UpdateBasketItemsSuccess,
		intent.DeleteBasketItemSuccess,
		intent.SetBasketPaymentSuccess,
		intent.SetBasketPaymentFail,
		intent.CreateBasketPaymentSuccess,
		intent.DeleteBasketPaymentSuccess,
		intent.DeleteBasketPaymentFail,
		intent.CreateBasketAddressSuccess,
		intent.UpdateBasketAddressSuccess:
		// A failed payment change may already have removed the former
		// payment method.
		return []intent.Intent{intent.LoadBasket{}}
	}
	return nil
}

// missingProducts requests the products of line items which are not cached.
func missingProducts(items []domain.LineItem, st store.State) []intent.Intent {
	var (
		out  []intent.Intent
		seen = make(map[string]struct{})
	)
	for _, li := range items {
		if _, ok := st.Products.Entities[li.ProductSKU]; ok {
			continue
		}
		if _, ok := seen[li.ProductSKU]; ok {
			continue
		}
		seen[li.ProductSKU] = struct{}{}
		out = append(out, intent.LoadProduct{SKU: li.ProductSKU})
	}
	return out
}

func (e *BasketEffects) loadBasket(basketID string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.loadBasket"

		b, err := e.basket.GetBasket(ctx, basketID)
		if err != nil {
			logFail(op, err)
			return []intent.Intent{intent.LoadBasketFail{Err: err}}
		}
		return []intent.Intent{intent.LoadBasketSuccess{Basket: b}}
	}
}

func (e *BasketEffects) loadBasketItems(basketID string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.loadBasketItems"

		items, err := e.basket.GetBasketItems(ctx, basketID)
		if err != nil {
			logFail(op, err)
			return []intent.Intent{intent.LoadBasketItemsFail{Err: err}}
		}
		return []intent.Intent{intent.LoadBasketItemsSuccess{Items: items}}
	}
}

func (e *BasketEffects) updateBasket(basketID string, u domain.BasketUpdate) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.updateBasket"

		if err := e.basket.UpdateBasket(ctx, basketID, u); err != nil {
			logFail(op, err)
			return []intent.Intent{intent.UpdateBasketFail{Err: err}}
		}
		return []intent.Intent{intent.UpdateBasketSuccess{}}
	}
}

func (e *BasketEffects) updateShippingMethod(b domain.Basket, shippingMethodID string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.updateShippingMethod"

		u := domain.LineItemUpdate{ShippingMethodID: shippingMethodID}
		for _, li := range b.LineItems {
			if err := e.basket.UpdateBasketItem(ctx, b.ID, li.ID, u); err != nil {
				logFail(op, err)
				return []intent.Intent{intent.UpdateBasketFail{Err: err}}
			}
		}
		return []intent.Intent{intent.UpdateBasketSuccess{}}
	}
}

// resolveBasket returns the current basket of the session and creates one
// when there is none.
func (e *BasketEffects) resolveBasket(ctx context.Context) (domain.Basket, error) {
	b, err := e.basket.GetBasket(ctx, "")
	if errors.Is(err, domain.ErrNotFound) {
		return e.basket.CreateBasket(ctx)
	}
	return b, err
}

func (e *BasketEffects) resolveBasketAndAdd(items []domain.ProductQuantity) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.resolveBasketAndAdd"

		b, err := e.resolveBasket(ctx)
		if err != nil {
			logFail(op, err)
			return []intent.Intent{intent.AddItemsToBasketFail{Err: err}}
		}
		return []intent.Intent{intent.AddItemsToBasket{Items: items, BasketID: b.ID}}
	}
}

func (e *BasketEffects) addItems(basketID string, items []domain.ProductQuantity) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.addItems"

		if err := e.basket.AddItemsToBasket(ctx, basketID, items); err != nil {
			logFail(op, err)
			return []intent.Intent{intent.AddItemsToBasketFail{Err: err}}
		}
		return []intent.Intent{intent.AddItemsToBasketSuccess{}}
	}
}

func (e *BasketEffects) addQuote(basketID, quoteID string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.addQuote"

		link, err := e.basket.AddQuoteToBasket(ctx, basketID, quoteID)
		if err != nil {
			logFail(op, err)
			return []intent.Intent{intent.AddQuoteToBasketFail{Err: err}}
		}
		return []intent.Intent{intent.AddQuoteToBasketSuccess{Link: link}}
	}
}

// updateItems patches changed quantities and deletes items set to zero, one
// request after another. Already applied changes are kept on failure.
func (e *BasketEffects) updateItems(basketID string, changed []domain.ItemQuantity) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.updateItems"

		for _, item := range changed {
			var err error
			if item.Quantity > 0 {
				u := domain.LineItemUpdate{Quantity: domain.IntPtr(item.Quantity)}
				err = e.basket.UpdateBasketItem(ctx, basketID, item.ItemID, u)
			} else {
				err = e.basket.DeleteBasketItem(ctx, basketID, item.ItemID)
			}
			if err != nil {
				logFail(op, err, "itemID", item.ItemID)
				return []intent.Intent{intent.UpdateBasketItemsFail{Err: err}}
			}
		}
		return []intent.Intent{intent.UpdateBasketItemsSuccess{}}
	}
}

func (e *BasketEffects) deleteItem(basketID, itemID string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.deleteItem"

		if err := e.basket.DeleteBasketItem(ctx, basketID, itemID); err != nil {
			logFail(op, err, "itemID", itemID)
			return []intent.Intent{intent.DeleteBasketItemFail{Err: err}}
		}
		return []intent.Intent{intent.DeleteBasketItemSuccess{}}
	}
}

func (e *BasketEffects) loadShippingMethods(basketID string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.loadShippingMethods"

		methods, err := e.basket.GetBasketEligibleShippingMethods(ctx, basketID)
		if err != nil {
			logFail(op, err)
			return []intent.Intent{intent.LoadBasketEligibleShippingMethodsFail{Err: err}}
		}
		return []intent.Intent{
			intent.LoadBasketEligibleShippingMethodsSuccess{ShippingMethods: methods},
		}
	}
}

func (e *BasketEffects) loadPaymentMethods(basketID string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.loadPaymentMethods"

		methods, err := e.basket.GetBasketEligiblePaymentMethods(ctx, basketID)
		if err != nil {
			logFail(op, err)
			return []intent.Intent{intent.LoadBasketEligiblePaymentMethodsFail{Err: err}}
		}
		return []intent.Intent{
			intent.LoadBasketEligiblePaymentMethodsSuccess{PaymentMethods: methods},
		}
	}
}

func (e *BasketEffects) loadPayments(basketID string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.loadPayments"

		payments, err := e.basket.GetBasketPayments(ctx, basketID)
		if err != nil {
			logFail(op, err)
			return []intent.Intent{intent.LoadBasketPaymentsFail{Err: err}}
		}
		return []intent.Intent{intent.LoadBasketPaymentsSuccess{Payments: payments}}
	}
}

// setPayment replaces the payment method of the basket. The former payment
// is deleted before the new one is set.
func (e *BasketEffects) setPayment(b domain.Basket, paymentName string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.setPayment"

		if b.PaymentMethod != nil {
			err := e.basket.DeleteBasketPayment(ctx, b.ID, b.PaymentMethod.ID)
			if err != nil {
				logFail(op, err)
				return []intent.Intent{intent.SetBasketPaymentFail{Err: err}}
			}
		}
		if err := e.basket.SetBasketPayment(ctx, b.ID, paymentName); err != nil {
			logFail(op, err)
			return []intent.Intent{intent.SetBasketPaymentFail{Err: err}}
		}
		return []intent.Intent{intent.SetBasketPaymentSuccess{}}
	}
}

func (e *BasketEffects) createPayment(basketID string, pi domain.PaymentInstrument) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.createPayment"

		if err := e.basket.CreateBasketPaymentInstrument(ctx, basketID, pi); err != nil {
			logFail(op, err)
			return []intent.Intent{intent.CreateBasketPaymentFail{Err: err}}
		}
		return []intent.Intent{intent.CreateBasketPaymentSuccess{}}
	}
}

func (e *BasketEffects) deletePayment(basketID, instrumentID string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.deletePayment"

		err := e.basket.DeleteBasketPaymentInstrument(ctx, basketID, instrumentID)
		if err != nil {
			logFail(op, err)
			return []intent.Intent{intent.DeleteBasketPaymentFail{Err: err}}
		}
		return []intent.Intent{intent.DeleteBasketPaymentSuccess{}}
	}
}

func (e *BasketEffects) createAddress(basketID string, a domain.Address, usage domain.AddressUsage) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.createAddress"

		created, err := e.basket.CreateBasketAddress(ctx, basketID, a, usage)
		if err != nil {
			logFail(op, err)
			return []intent.Intent{intent.CreateBasketAddressFail{Err: err}}
		}
		return []intent.Intent{intent.CreateBasketAddressSuccess{Address: created}}
	}
}

func (e *BasketEffects) updateAddress(basketID string, a domain.Address) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.updateAddress"

		if err := e.basket.UpdateBasketAddress(ctx, basketID, a); err != nil {
			logFail(op, err)
			return []intent.Intent{intent.UpdateBasketAddressFail{Err: err}}
		}
		return []intent.Intent{intent.UpdateBasketAddressSuccess{}}
	}
}

func (e *BasketEffects) createOrder(basketID string) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "BasketEffects.createOrder"

		order, err := e.orders.CreateOrder(ctx, basketID)
		if err != nil {
			logFail(op, err)
			return []intent.Intent{intent.CreateOrderFail{Err: err}}
		}
		slog.Info("order created", "op", op, "orderID", order.ID)
		return []intent.Intent{intent.CreateOrderSuccess{Order: order}}
	}
}

func logFail(op string, err error, args ...any) {
	slog.Warn("remote call failed", append([]any{"op", op, "err", err}, args...)...)
}
