package intent

import "github.com/niksmo/storefront/internal/core/domain"

// A LoadBasket loads the basket with BasketID, or the current basket when empty.
type LoadBasket struct {
	marker
	BasketID string
}

func (LoadBasket) Name() string { return "[Basket] Load Basket" }

type LoadBasketSuccess struct {
	marker
	Basket domain.Basket
}

func (LoadBasketSuccess) Name() string { return "[Basket] Load Basket Success" }

type LoadBasketFail struct {
	marker
	Err error
}

func (LoadBasketFail) Name() string { return "[Basket] Load Basket Fail" }

func (i LoadBasketFail) Cause() error { return i.Err }

type LoadBasketItems struct {
	marker
	BasketID string
}

func (LoadBasketItems) Name() string { return "[Basket] Load Basket Items" }

type LoadBasketItemsSuccess struct {
	marker
	Items []domain.LineItem
}

func (LoadBasketItemsSuccess) Name() string { return "[Basket] Load Basket Items Success" }

type LoadBasketItemsFail struct {
	marker
	Err error
}

func (LoadBasketItemsFail) Name() string { return "[Basket] Load Basket Items Fail" }

func (i LoadBasketItemsFail) Cause() error { return i.Err }

type UpdateBasketInvoiceAddress struct {
	marker
	AddressID string
}

func (UpdateBasketInvoiceAddress) Name() string { return "[Basket] Update Basket Invoice Address" }

type UpdateBasketShippingAddress struct {
	marker
	AddressID string
}

func (UpdateBasketShippingAddress) Name() string { return "[Basket] Update Basket Shipping Address" }

// An UpdateBasketShippingMethod sets the shipping method of every line item.
type UpdateBasketShippingMethod struct {
	marker
	ShippingMethodID string
}

func (UpdateBasketShippingMethod) Name() string { return "[Basket] Update Basket Shipping Method" }

type UpdateBasket struct {
	marker
	Update domain.BasketUpdate
}

func (UpdateBasket) Name() string { return "[Basket] Update Basket" }

type UpdateBasketSuccess struct{ marker }

func (UpdateBasketSuccess) Name() string { return "[Basket] Update Basket Success" }

type UpdateBasketFail struct {
	marker
	Err error
}

func (UpdateBasketFail) Name() string { return "[Basket] Update Basket Fail" }

func (i UpdateBasketFail) Cause() error { return i.Err }

type AddProductToBasket struct {
	marker
	SKU      string
	Quantity int
}

func (AddProductToBasket) Name() string { return "[Basket] Add Product To Basket" }

// An AddItemsToBasket adds items to the basket with BasketID, or to the
// current basket when empty. Without any basket the current basket is
// resolved first.
type AddItemsToBasket struct {
	marker
	Items    []domain.ProductQuantity
	BasketID string
}

func (AddItemsToBasket) Name() string { return "[Basket] Add Items To Basket" }

type AddItemsToBasketSuccess struct{ marker }

func (AddItemsToBasketSuccess) Name() string { return "[Basket] Add Items To Basket Success" }

type AddItemsToBasketFail struct {
	marker
	Err error
}

func (AddItemsToBasketFail) Name() string { return "[Basket] Add Items To Basket Fail" }

func (i AddItemsToBasketFail) Cause() error { return i.Err }

type AddQuoteToBasket struct {
	marker
	QuoteID string
}

func (AddQuoteToBasket) Name() string { return "[Basket] Add Quote To Basket" }

type AddQuoteToBasketSuccess struct {
	marker
	Link string
}

func (AddQuoteToBasketSuccess) Name() string { return "[Basket] Add Quote To Basket Success" }

type AddQuoteToBasketFail struct {
	marker
	Err error
}

func (AddQuoteToBasketFail) Name() string { return "[Basket] Add Quote To Basket Fail" }

func (i AddQuoteToBasketFail) Cause() error { return i.Err }

// An UpdateBasketItems sets line item quantities. Zero deletes the line item.
type UpdateBasketItems struct {
	marker
	Items []domain.ItemQuantity
}

func (UpdateBasketItems) Name() string { return "[Basket] Update Basket Items" }

type UpdateBasketItemsSuccess struct{ marker }

func (UpdateBasketItemsSuccess) Name() string { return "[Basket] Update Basket Items Success" }

type UpdateBasketItemsFail struct {
	marker
	Err error
}

func (UpdateBasketItemsFail) Name() string { return "[Basket] Update Basket Items Fail" }

func (i UpdateBasketItemsFail) Cause() error { return i.Err }

type DeleteBasketItem struct {
	marker
	ItemID string
}

func (DeleteBasketItem) Name() string { return "[Basket] Delete Basket Item" }

type DeleteBasketItemSuccess struct{ marker }

func (DeleteBasketItemSuccess) Name() string { return "[Basket] Delete Basket Item Success" }

type DeleteBasketItemFail struct {
	marker
	Err error
}

func (DeleteBasketItemFail) Name() string { return "[Basket] Delete Basket Item Fail" }

func (i DeleteBasketItemFail) Cause() error { return i.Err }

type LoadBasketEligibleShippingMethods struct{ marker }

func (LoadBasketEligibleShippingMethods) Name() string { return "[Basket] Load Basket Eligible Shipping Methods" }

type LoadBasketEligibleShippingMethodsSuccess struct {
	marker
	ShippingMethods []domain.ShippingMethod
}

func (LoadBasketEligibleShippingMethodsSuccess) Name() string { return "[Basket] Load Basket Eligible Shipping Methods Success" }

type LoadBasketEligibleShippingMethodsFail struct {
	marker
	Err error
}

func (LoadBasketEligibleShippingMethodsFail) Name() string { return "[Basket] Load Basket Eligible Shipping Methods Fail" }

func (i LoadBasketEligibleShippingMethodsFail) Cause() error { return i.Err }

type LoadBasketEligiblePaymentMethods struct{ marker }

func (LoadBasketEligiblePaymentMethods) Name() string { return "[Basket] Load Basket Eligible Payment Methods" }

type LoadBasketEligiblePaymentMethodsSuccess struct {
	marker
	PaymentMethods []domain.PaymentMethod
}

func (LoadBasketEligiblePaymentMethodsSuccess) Name() string { return "[Basket] Load Basket Eligible Payment Methods Success" }

type LoadBasketEligiblePaymentMethodsFail struct {
	marker
	Err error
}

func (LoadBasketEligiblePaymentMethodsFail) Name() string { return "[Basket] Load Basket Eligible Payment Methods Fail" }

func (i LoadBasketEligiblePaymentMethodsFail) Cause() error { return i.Err }

type LoadBasketPayments struct {
	marker
	BasketID string
}

func (LoadBasketPayments) Name() string { return "[Basket] Load Basket Payments" }

type LoadBasketPaymentsSuccess struct {
	marker
	Payments []domain.Payment
}

func (LoadBasketPaymentsSuccess) Name() string { return "[Basket] Load Basket Payments Success" }

type LoadBasketPaymentsFail struct {
	marker
	Err error
}

func (LoadBasketPaymentsFail) Name() string { return "[Basket] Load Basket Payments Fail" }

func (i LoadBasketPaymentsFail) Cause() error { return i.Err }

type SetBasketPayment struct {
	marker
	PaymentName string
}

func (SetBasketPayment) Name() string { return "[Basket] Set Payment" }

type SetBasketPaymentSuccess struct{ marker }

func (SetBasketPaymentSuccess) Name() string { return "[Basket] Set Payment Success" }

type SetBasketPaymentFail struct {
	marker
	Err error
}

func (SetBasketPaymentFail) Name() string { return "[Basket] Set Payment Fail" }

func (i SetBasketPaymentFail) Cause() error { return i.Err }

type CreateBasketPayment struct {
	marker
	Instrument domain.PaymentInstrument
}

func (CreateBasketPayment) Name() string { return "[Basket] Create Basket Payment" }

type CreateBasketPaymentSuccess struct{ marker }

func (CreateBasketPaymentSuccess) Name() string { return "[Basket] Create Basket Payment Success" }

type CreateBasketPaymentFail struct {
	marker
	Err error
}

func (CreateBasketPaymentFail) Name() string { return "[Basket] Create Basket Payment Fail" }

func (i CreateBasketPaymentFail) Cause() error { return i.Err }

type DeleteBasketPayment struct {
	marker
	InstrumentID string
}

func (DeleteBasketPayment) Name() string { return "[Basket] Delete Basket Payment" }

type DeleteBasketPaymentSuccess struct{ marker }

func (DeleteBasketPaymentSuccess) Name() string { return "[Basket] Delete Basket Payment Success" }

type DeleteBasketPaymentFail struct {
	marker
	Err error
}

func (DeleteBasketPaymentFail) Name() string { return "[Basket] Delete Basket Payment Fail" }

func (i DeleteBasketPaymentFail) Cause() error { return i.Err }

type CreateBasketAddress struct {
	marker
	Address domain.Address
	Usage   domain.AddressUsage
}

func (CreateBasketAddress) Name() string { return "[Basket] Create Basket Address" }

type CreateBasketAddressSuccess struct {
	marker
	Address domain.Address
}

func (CreateBasketAddressSuccess) Name() string { return "[Basket] Create Basket Address Success" }

type CreateBasketAddressFail struct {
	marker
	Err error
}

func (CreateBasketAddressFail) Name() string { return "[Basket] Create Basket Address Fail" }

func (i CreateBasketAddressFail) Cause() error { return i.Err }

type UpdateBasketAddress struct {
	marker
	Address domain.Address
}

func (UpdateBasketAddress) Name() string { return "[Basket] Update Basket Address" }

type UpdateBasketAddressSuccess struct{ marker }

func (UpdateBasketAddressSuccess) Name() string { return "[Basket] Update Basket Address Success" }

type UpdateBasketAddressFail struct {
	marker
	Err error
}

func (UpdateBasketAddressFail) Name() string { return "[Basket] Update Basket Address Fail" }

func (i UpdateBasketAddressFail) Cause() error { return i.Err }

type ResetBasket struct{ marker }

func (ResetBasket) Name() string { return "[Basket] Reset Basket" }

type CreateOrder struct {
	marker
	BasketID string
}

func (CreateOrder) Name() string { return "[Basket] Create Order" }

type CreateOrderSuccess struct {
	marker
	Order domain.Order
}

func (CreateOrderSuccess) Name() string { return "[Basket] Create Order Success" }

type CreateOrderFail struct {
	marker
	Err error
}

func (CreateOrderFail) Name() string { return "[Basket] Create Order Fail" }

func (i CreateOrderFail) Cause() error { return i.Err }
