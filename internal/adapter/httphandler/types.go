package httphandler

import (
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/store"
)

// Request bodies.
type (
	BasketRef struct {
		BasketID string `json:"basket_id"`
	}

	BasketPatch struct {
		InvoiceToAddressID     string `json:"invoice_to_address_id"`
		CommonShipToAddressID  string `json:"common_ship_to_address_id"`
		CommonShippingMethodID string `json:"common_shipping_method_id"`
	}

	ProductQuantity struct {
		SKU      string `json:"sku"`
		Quantity int    `json:"quantity"`
	}

	AddItems struct {
		BasketID string            `json:"basket_id"`
		Items    []ProductQuantity `json:"items"`
	}

	ItemQuantity struct {
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
	}

	UpdateItems struct {
		Items []ItemQuantity `json:"items"`
	}

	QuoteRef struct {
		QuoteID string `json:"quote_id"`
	}

	PaymentRef struct {
		Name string `json:"name"`
	}

	PaymentParameter struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}

	PaymentInstrument struct {
		PaymentMethod string             `json:"payment_method"`
		Parameters    []PaymentParameter `json:"parameters"`
	}

	Address struct {
		ID           string `json:"id,omitempty"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		AddressLine1 string `json:"address_line1"`
		AddressLine2 string `json:"address_line2,omitempty"`
		PostalCode   string `json:"postal_code"`
		City         string `json:"city"`
		CountryCode  string `json:"country_code"`
		Email        string `json:"email,omitempty"`
	}

	NewAddress struct {
		Address
		Usage string `json:"usage"`
	}

	CategoryRef struct {
		CategoryID string `json:"category_id"`
	}

	ProductRef struct {
		SKU string `json:"sku"`
	}

	SearchRequest struct {
		SearchTerm string `json:"search_term"`
	}

	Login struct {
		Token    string   `json:"token"`
		Customer Customer `json:"customer"`
	}
)

// Views.
type (
	Price struct {
		Value    float64 `json:"value"`
		Currency string  `json:"currency"`
	}

	NamedRef struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	LineItem struct {
		ID             string    `json:"id"`
		ProductSKU     string    `json:"product_sku"`
		Quantity       int       `json:"quantity"`
		ShippingMethod *NamedRef `json:"shipping_method,omitempty"`
		SinglePrice    Price     `json:"single_price"`
		TotalPrice     Price     `json:"total_price"`
		Product        *Product  `json:"product,omitempty"`
	}

	Totals struct {
		ItemTotal     Price `json:"item_total"`
		ShippingTotal Price `json:"shipping_total"`
		Total         Price `json:"total"`
	}

	Payment struct {
		ID                string `json:"id"`
		PaymentMethod     string `json:"payment_method"`
		PaymentInstrument string `json:"payment_instrument"`
	}

	Order struct {
		ID         string `json:"id"`
		DocumentNo string `json:"document_no"`
		Status     string `json:"status"`
		Totals     Totals `json:"totals"`
	}

	Basket struct {
		ID                      string     `json:"id,omitempty"`
		LineItems               []LineItem `json:"line_items"`
		InvoiceToAddress        *Address   `json:"invoice_to_address,omitempty"`
		CommonShipToAddress     *Address   `json:"common_ship_to_address,omitempty"`
		CommonShippingMethod    *NamedRef  `json:"common_shipping_method,omitempty"`
		PaymentMethod           *NamedRef  `json:"payment_method,omitempty"`
		Totals                  *Totals    `json:"totals,omitempty"`
		EligibleShippingMethods []NamedRef `json:"eligible_shipping_methods"`
		EligiblePaymentMethods  []NamedRef `json:"eligible_payment_methods"`
		Payments                []Payment  `json:"payments"`
		LastOrder               *Order     `json:"last_order,omitempty"`
		Loading                 bool       `json:"loading"`
		Error                   string     `json:"error,omitempty"`
	}

	ProductImage struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	}

	Product struct {
		SKU               string            `json:"sku"`
		Name              string            `json:"name"`
		ShortDescription  string            `json:"short_description,omitempty"`
		LongDescription   string            `json:"long_description,omitempty"`
		Manufacturer      string            `json:"manufacturer,omitempty"`
		DefaultCategoryID string            `json:"default_category_id,omitempty"`
		Price             Price             `json:"price"`
		Available         bool              `json:"available"`
		Images            []ProductImage    `json:"images,omitempty"`
		Attributes        map[string]string `json:"attributes,omitempty"`
		Detail            bool              `json:"detail"`
	}

	Category struct {
		ID                string     `json:"id"`
		Name              string     `json:"name"`
		Description       string     `json:"description,omitempty"`
		Path              []string   `json:"path"`
		HasOnlineProducts bool       `json:"has_online_products"`
		Completeness      string     `json:"completeness"`
		Children          []Category `json:"children,omitempty"`
	}

	Categories struct {
		TopLevel []Category `json:"top_level"`
		Loading  bool       `json:"loading"`
		Error    string     `json:"error,omitempty"`
	}

	SelectedCategory struct {
		ID       string    `json:"id"`
		Category *Category `json:"category"`
		Products []Product `json:"products"`
		Page     int       `json:"page"`
		Total    int       `json:"total_items"`
		SortKeys []string  `json:"sort_keys"`
	}

	Search struct {
		SearchTerm string    `json:"search_term"`
		Products   []Product `json:"products"`
		Page       int       `json:"page"`
		Total      int       `json:"total_items"`
		CanRequest bool      `json:"can_request_more"`
		Loading    bool      `json:"loading"`
		Error      string    `json:"error,omitempty"`
	}

	Suggestion struct {
		Term string `json:"term"`
		Type string `json:"type"`
	}

	Navigation struct {
		Location string   `json:"location"`
		History  []string `json:"history"`
	}

	Error struct {
		Type    string `json:"type"`
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}

	Customer struct {
		CustomerNo string `json:"customer_no"`
		Email      string `json:"email"`
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
	}

	Session struct {
		Authorized bool      `json:"authorized"`
		Customer   *Customer `json:"customer,omitempty"`
	}
)

func (a Address) toDomain() domain.Address {
	return domain.Address(a)
}

func addressOf(a *domain.Address) *Address {
	if a == nil {
		return nil
	}
	v := Address(*a)
	return &v
}

func priceOf(p domain.Price) Price {
	return Price(p)
}

func totalsOf(t domain.BasketTotals) Totals {
	return Totals{
		ItemTotal:     priceOf(t.ItemTotal),
		ShippingTotal: priceOf(t.ShippingTotal),
		Total:         priceOf(t.Total),
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func basketOf(st store.State) Basket {
	bs := st.Basket
	v := Basket{
		LineItems:               []LineItem{},
		EligibleShippingMethods: make([]NamedRef, 0, len(bs.EligibleShippingMethods)),
		EligiblePaymentMethods:  make([]NamedRef, 0, len(bs.EligiblePaymentMethods)),
		Payments:                make([]Payment, 0, len(bs.Payments)),
		Loading:                 bs.Loading,
		Error:                   errText(bs.Err),
	}
	for _, m := range bs.EligibleShippingMethods {
		v.EligibleShippingMethods = append(v.EligibleShippingMethods, NamedRef(m))
	}
	for _, m := range bs.EligiblePaymentMethods {
		v.EligiblePaymentMethods = append(v.EligiblePaymentMethods, NamedRef(m))
	}
	for _, p := range bs.Payments {
		v.Payments = append(v.Payments, Payment(p))
	}
	if o := bs.LastOrder; o != nil {
		v.LastOrder = &Order{
			ID:         o.ID,
			DocumentNo: o.DocumentNo,
			Status:     o.Status,
			Totals:     totalsOf(o.Totals),
		}
	}

	b := bs.Basket
	if b == nil {
		return v
	}
	v.ID = b.ID
	v.InvoiceToAddress = addressOf(b.InvoiceToAddress)
	v.CommonShipToAddress = addressOf(b.CommonShipToAddress)
	if m := b.CommonShippingMethod; m != nil {
		v.CommonShippingMethod = &NamedRef{ID: m.ID, Name: m.Name}
	}
	if m := b.PaymentMethod; m != nil {
		v.PaymentMethod = &NamedRef{ID: m.ID, Name: m.Name}
	}
	totals := totalsOf(b.Totals)
	v.Totals = &totals

	for _, li := range b.LineItems {
		item := LineItem{
			ID:          li.ID,
			ProductSKU:  li.ProductSKU,
			Quantity:    li.Quantity,
			SinglePrice: priceOf(li.SinglePrice),
			TotalPrice:  priceOf(li.TotalPrice),
		}
		if m := li.ShippingMethod; m != nil {
			item.ShippingMethod = &NamedRef{ID: m.ID, Name: m.Name}
		}
		if p, ok := store.Product(st, li.ProductSKU); ok {
			pv := productOf(p)
			item.Product = &pv
		}
		v.LineItems = append(v.LineItems, item)
	}
	return v
}

func productOf(p domain.Product) Product {
	v := Product{
		SKU:               p.SKU,
		Name:              p.Name,
		ShortDescription:  p.ShortDescription,
		LongDescription:   p.LongDescription,
		Manufacturer:      p.Manufacturer,
		DefaultCategoryID: p.DefaultCategoryID,
		Price:             priceOf(p.Price),
		Available:         p.Available,
		Attributes:        p.Attributes,
		Detail:            p.Completeness == domain.ProductDetail,
	}
	for _, img := range p.Images {
		v.Images = append(v.Images, ProductImage(img))
	}
	return v
}

func productsOf(ps []domain.Product) []Product {
	vs := make([]Product, 0, len(ps))
	for _, p := range ps {
		vs = append(vs, productOf(p))
	}
	return vs
}

// categoryOf resolves the view down to depth levels of loaded children.
func categoryOf(c *domain.CategoryView, depth int) Category {
	v := Category{
		ID:                c.UniqueID,
		Name:              c.Name,
		Description:       c.Description,
		Path:              c.CategoryPath,
		HasOnlineProducts: c.HasOnlineProducts,
		Completeness:      c.Completeness.String(),
	}
	if depth == 0 {
		return v
	}
	for _, child := range c.Children() {
		v.Children = append(v.Children, categoryOf(child, depth-1))
	}
	return v
}

func categoriesOf(st store.State, depth int) Categories {
	top := store.TopLevelCategories(st)
	v := Categories{
		TopLevel: make([]Category, 0, len(top)),
		Loading:  store.CategoryLoading(st),
		Error:    errText(st.Categories.Err),
	}
	for _, c := range top {
		v.TopLevel = append(v.TopLevel, categoryOf(c, depth))
	}
	return v
}

func selectedCategoryOf(st store.State) SelectedCategory {
	v := SelectedCategory{
		ID:       store.SelectedCategoryID(st),
		Products: productsOf(store.ProductsForSelectedCategory(st)),
		Page:     store.PagingPage(st),
		Total:    store.TotalItems(st),
		SortKeys: store.SortKeys(st),
	}
	if c := store.SelectedCategory(st); c != nil {
		cv := categoryOf(c, 1)
		v.Category = &cv
	}
	return v
}

func searchOf(st store.State, itemsPerPage int) Search {
	return Search{
		SearchTerm: store.SearchTerm(st),
		Products:   productsOf(store.SearchResultProducts(st)),
		Page:       store.PagingPage(st),
		Total:      store.TotalItems(st),
		CanRequest: store.CanRequestMore(st, itemsPerPage),
		Loading:    store.SearchLoading(st),
		Error:      errText(st.Search.Err),
	}
}

func suggestionsOf(st store.State) []Suggestion {
	ss := store.Suggestions(st)
	vs := make([]Suggestion, 0, len(ss))
	for _, s := range ss {
		vs = append(vs, Suggestion(s))
	}
	return vs
}

func sessionOf(st store.State) Session {
	v := Session{Authorized: store.IsAuthorized(st)}
	if c := store.CurrentCustomer(st); c != nil {
		customer := Customer(*c)
		v.Customer = &customer
	}
	return v
}
