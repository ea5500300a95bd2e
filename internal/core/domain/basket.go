package domain

type (
	Basket struct {
		ID                   string
		LineItems            []LineItem
		InvoiceToAddress     *Address
		CommonShipToAddress  *Address
		CommonShippingMethod *ShippingMethod
		PaymentMethod        *PaymentMethod
		Totals               BasketTotals
	}

	LineItem struct {
		ID             string
		ProductSKU     string
		Quantity       int
		ShippingMethod *ShippingMethod
		SinglePrice    Price
		TotalPrice     Price
	}

	BasketTotals struct {
		ItemTotal     Price
		ShippingTotal Price
		Total         Price
	}

	Price struct {
		Value    float64
		Currency string
	}

	Address struct {
		ID           string
		FirstName    string
		LastName     string
		AddressLine1 string
		AddressLine2 string
		PostalCode   string
		City         string
		CountryCode  string
		Email        string
	}

	ShippingMethod struct {
		ID   string
		Name string
	}

	PaymentMethod struct {
		ID   string
		Name string
	}

	PaymentInstrument struct {
		ID            string
		PaymentMethod string
		Parameters    []PaymentParameter
	}

	PaymentParameter struct {
		Name  string
		Value string
	}

	Payment struct {
		ID                string
		PaymentMethod     string
		PaymentInstrument string
	}
)

// A BasketUpdate carries the basket header fields to patch.
// Empty ids are left untouched.
type BasketUpdate struct {
	InvoiceToAddressID     string
	CommonShipToAddressID  string
	CommonShippingMethodID string
}

// A LineItemUpdate carries the line item fields to patch.
type LineItemUpdate struct {
	Quantity         *int
	ShippingMethodID string
}

// An ItemQuantity is the requested quantity of a basket line item.
// Zero quantity requests the deletion of the line item.
type ItemQuantity struct {
	ItemID   string
	Quantity int
}

// A ProductQuantity is a product to add to a basket.
type ProductQuantity struct {
	SKU      string
	Quantity int
}

type AddressUsage string

const (
	AddressUsageInvoice  AddressUsage = "invoice"
	AddressUsageShipping AddressUsage = "shipping"
)

type Order struct {
	ID         string
	DocumentNo string
	Status     string
	BasketID   string
	LineItems  []LineItem
	Totals     BasketTotals
}

// LineItem returns the line item with the given id.
func (b Basket) LineItem(id string) (LineItem, bool) {
	for _, li := range b.LineItems {
		if li.ID == id {
			return li, true
		}
	}
	return LineItem{}, false
}

// HasLineItems reports whether the basket holds at least one line item.
func (b *Basket) HasLineItems() bool {
	return b != nil && len(b.LineItems) != 0
}

// ProductQuantities returns the basket content as products to add,
// preserving line item order.
func (b Basket) ProductQuantities() []ProductQuantity {
	items := make([]ProductQuantity, 0, len(b.LineItems))
	for _, li := range b.LineItems {
		items = append(items, ProductQuantity{
			SKU:      li.ProductSKU,
			Quantity: li.Quantity,
		})
	}
	return items
}

// ChangedQuantities returns the requested item quantities which differ from
// the stored line items. Unknown item ids are skipped. The result keeps the
// order of the basket line items.
func (b Basket) ChangedQuantities(items []ItemQuantity) []ItemQuantity {
	var changed []ItemQuantity
	for _, li := range b.LineItems {
		for _, item := range items {
			if li.ID == item.ItemID && li.Quantity != item.Quantity {
				changed = append(changed, item)
			}
		}
	}
	return changed
}

func IntPtr(v int) *int {
	return &v
}
