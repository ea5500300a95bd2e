package store

import (
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/intent"
)

func reduceBasket(s BasketState, in intent.Intent) BasketState {
	switch in := in.(type) {
	case intent.LoadBasket,
		intent.LoadBasketItems,
		intent.UpdateBasket,
		intent.UpdateBasketShippingMethod,
		intent.AddItemsToBasket,
		intent.AddQuoteToBasket,
		intent.UpdateBasketItems,
		intent.DeleteBasketItem,
		intent.LoadBasketEligibleShippingMethods,
		intent.LoadBasketEligiblePaymentMethods,
		intent.LoadBasketPayments,
		intent.SetBasketPayment,
		intent.CreateBasketPayment,
		intent.DeleteBasketPayment,
		intent.CreateBasketAddress,
		intent.UpdateBasketAddress,
		intent.CreateOrder:
		s.Loading = true

	case intent.LoadBasketFail,
		intent.LoadBasketItemsFail,
		intent.UpdateBasketFail,
		intent.AddItemsToBasketFail,
		intent.AddQuoteToBasketFail,
		intent.UpdateBasketItemsFail,
		intent.DeleteBasketItemFail,
		intent.LoadBasketEligibleShippingMethodsFail,
		intent.LoadBasketEligiblePaymentMethodsFail,
		intent.LoadBasketPaymentsFail,
		intent.SetBasketPaymentFail,
		intent.CreateBasketPaymentFail,
		intent.DeleteBasketPaymentFail,
		intent.CreateBasketAddressFail,
		intent.UpdateBasketAddressFail,
		intent.CreateOrderFail:
		s.Loading = false
		s.Err = in.(intent.Failure).Cause()

	case intent.UpdateBasketSuccess,
		intent.AddItemsToBasketSuccess,
		intent.AddQuoteToBasketSuccess,
		intent.UpdateBasketItemsSuccess,
		intent.DeleteBasketItemSuccess,
		intent.SetBasketPaymentSuccess,
		intent.CreateBasketPaymentSuccess,
		intent.DeleteBasketPaymentSuccess,
		intent.CreateBasketAddressSuccess,
		intent.UpdateBasketAddressSuccess:
		s.Loading = false
		s.Err = nil

	case intent.LoadBasketSuccess:
		basket := in.Basket
		if basket.LineItems == nil && s.Basket != nil && s.Basket.ID == basket.ID {
			basket.LineItems = s.Basket.LineItems
		}
		s.Basket = &basket
		s.Loading = false
		s.Err = nil

	case intent.LoadBasketItemsSuccess:
		if s.Basket != nil {
			basket := *s.Basket
			basket.LineItems = slices.Clone(in.Items)
			s.Basket = &basket
		}
		s.Loading = false
		s.Err = nil

	case intent.LoadBasketEligibleShippingMethodsSuccess:
		s.EligibleShippingMethods = slices.Clone(in.ShippingMethods)
		s.Loading = false
		s.Err = nil

	case intent.LoadBasketEligiblePaymentMethodsSuccess:
		s.EligiblePaymentMethods = slices.Clone(in.PaymentMethods)
		s.Loading = false
		s.Err = nil

	case intent.LoadBasketPaymentsSuccess:
		s.Payments = slices.Clone(in.Payments)
		s.Loading = false
		s.Err = nil

	case intent.CreateOrderSuccess:
		order := in.Order
		return BasketState{LastOrder: &order}

	case intent.ResetBasket:
		return BasketState{}
	}
	return s
}

// CurrentBasket returns the current basket or nil before the first load.
func CurrentBasket(st State) *domain.Basket {
	return st.Basket.Basket
}

func BasketLoading(st State) bool {
	return st.Basket.Loading
}

func BasketError(st State) error {
	return st.Basket.Err
}

// BasketItemsCount sums the quantities of the current basket line items.
func BasketItemsCount(st State) int {
	b := st.Basket.Basket
	if b == nil {
		return 0
	}
	var n int
	for _, li := range b.LineItems {
		n += li.Quantity
	}
	return n
}
