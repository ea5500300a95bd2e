package restapi

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

type errorData struct {
	Message string `json:"message"`
	Errors  []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type priceData struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

func (p *priceData) toDomain() domain.Price {
	if p == nil {
		return domain.Price{}
	}
	return domain.Price{Value: p.Value, Currency: p.Currency}
}

type quantityData struct {
	Value int    `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

type namedData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type addressData struct {
	ID           string `json:"id,omitempty"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	PostalCode   string `json:"postalCode"`
	City         string `json:"city"`
	CountryCode  string `json:"countryCode"`
	Email        string `json:"email,omitempty"`
}

func addressFromDomain(a domain.Address) addressData {
	return addressData(a)
}

func (a *addressData) toDomain() *domain.Address {
	if a == nil {
		return nil
	}
	v := domain.Address(*a)
	return &v
}

type totalsData struct {
	ItemTotal     *priceData `json:"itemTotal"`
	ShippingTotal *priceData `json:"shippingTotal"`
	Total         *priceData `json:"total"`
}

func (t totalsData) toDomain() domain.BasketTotals {
	return domain.BasketTotals{
		ItemTotal:     t.ItemTotal.toDomain(),
		ShippingTotal: t.ShippingTotal.toDomain(),
		Total:         t.Total.toDomain(),
	}
}

type basketData struct {
	ID                   string       `json:"id"`
	InvoiceToAddress     *addressData `json:"invoiceToAddress"`
	CommonShipToAddress  *addressData `json:"commonShipToAddress"`
	CommonShippingMethod *namedData   `json:"commonShippingMethod"`
	Payment              *namedData   `json:"payment"`
	Totals               totalsData   `json:"totals"`
}

func (b basketData) toDomain() domain.Basket {
	basket := domain.Basket{
		ID:                  b.ID,
		InvoiceToAddress:    b.InvoiceToAddress.toDomain(),
		CommonShipToAddress: b.CommonShipToAddress.toDomain(),
		Totals:              b.Totals.toDomain(),
	}
	if m := b.CommonShippingMethod; m != nil {
		basket.CommonShippingMethod = &domain.ShippingMethod{ID: m.ID, Name: m.Name}
	}
	if p := b.Payment; p != nil {
		basket.PaymentMethod = &domain.PaymentMethod{ID: p.ID, Name: p.Name}
	}
	return basket
}

type basketUpdateData struct {
	InvoiceToAddress     string `json:"invoiceToAddress,omitempty"`
	CommonShipToAddress  string `json:"commonShipToAddress,omitempty"`
	CommonShippingMethod string `json:"commonShippingMethod,omitempty"`
}

type lineItemData struct {
	ID             string       `json:"id"`
	Product        string       `json:"product"`
	Quantity       quantityData `json:"quantity"`
	ShippingMethod *namedData   `json:"shippingMethod"`
	SinglePrice    *priceData   `json:"singleBasePrice"`
	TotalPrice     *priceData   `json:"totalPrice"`
}

func (li lineItemData) toDomain() domain.LineItem {
	item := domain.LineItem{
		ID:          li.ID,
		ProductSKU:  li.Product,
		Quantity:    li.Quantity.Value,
		SinglePrice: li.SinglePrice.toDomain(),
		TotalPrice:  li.TotalPrice.toDomain(),
	}
	if m := li.ShippingMethod; m != nil {
		item.ShippingMethod = &domain.ShippingMethod{ID: m.ID, Name: m.Name}
	}
	return item
}

type addItemData struct {
	Product  string       `json:"product"`
	Quantity quantityData `json:"quantity"`
}

type lineItemUpdateData struct {
	Quantity       *quantityData `json:"quantity,omitempty"`
	ShippingMethod string        `json:"shippingMethod,omitempty"`
}

type paymentData struct {
	ID                string `json:"id"`
	PaymentMethod     string `json:"paymentMethod"`
	PaymentInstrument string `json:"paymentInstrument"`
}

type paymentInstrumentData struct {
	ID            string          `json:"id,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	Parameters    []parameterData `json:"parameters,omitempty"`
}

type parameterData struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type linkData struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type orderData struct {
	ID             string         `json:"id"`
	DocumentNumber string         `json:"documentNumber"`
	Status         string         `json:"status"`
	Basket         string         `json:"basket"`
	LineItems      []lineItemData `json:"lineItems"`
	Totals         totalsData     `json:"totals"`
}

func (o orderData) toDomain() domain.Order {
	order := domain.Order{
		ID:         o.ID,
		DocumentNo: o.DocumentNumber,
		Status:     o.Status,
		BasketID:   o.Basket,
		Totals:     o.Totals.toDomain(),
	}
	for _, li := range o.LineItems {
		order.LineItems = append(order.LineItems, li.toDomain())
	}
	return order
}

type createOrderData struct {
	Basket                     string `json:"basket"`
	TermsAndConditionsAccepted bool   `json:"termsAndConditionsAccepted"`
}

// categoryData is a node of the category API. Category ids are local to
// their parent, the unique id joins the ids of the category path with dots.
type categoryData struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	HasOnlineProducts bool               `json:"hasOnlineProducts"`
	CategoryPath      []categoryPathData `json:"categoryPath"`
	SubCategories     []categoryData     `json:"subCategories"`
}

type categoryPathData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// uniquePath returns the unique ids of the category path. Nodes without a
// path are placed below parent.
func (c categoryData) uniquePath(parent []string) []string {
	if len(c.CategoryPath) == 0 {
		path := slices.Clone(parent)
		if len(path) == 0 {
			return []string{c.ID}
		}
		return append(path, path[len(path)-1]+"."+c.ID)
	}
	path := make([]string, len(c.CategoryPath))
	for i, p := range c.CategoryPath {
		if i == 0 {
			path[i] = p.ID
			continue
		}
		path[i] = path[i-1] + "." + p.ID
	}
	return path
}

// collect appends the category with the given completeness and its
// descendants as partial categories to dst.
func (c categoryData) collect(
	dst []domain.Category, parent []string, completeness domain.Completeness,
) []domain.Category {
	path := c.uniquePath(parent)
	dst = append(dst, domain.Category{
		UniqueID:          path[len(path)-1],
		Name:              c.Name,
		Description:       c.Description,
		CategoryPath:      path,
		HasOnlineProducts: c.HasOnlineProducts,
		Completeness:      completeness,
	})
	for _, sub := range c.SubCategories {
		dst = sub.collect(dst, path, domain.CompletenessPartial)
	}
	return dst
}

// categoryPath turns a unique category id into the resource path.
func categoryPath(uniqueID string) []string {
	return strings.Split(uniqueID, ".")
}

// ancestorIDs returns the unique ids of the ancestors of a category.
func ancestorIDs(uniqueID string) []string {
	local := categoryPath(uniqueID)
	ids := make([]string, 0, len(local)-1)
	for i := 1; i < len(local); i++ {
		ids = append(ids, strings.Join(local[:i], "."))
	}
	return ids
}

type attributeData struct {
	Name  string          `json:"name"`
	Type  string          `json:"type,omitempty"`
	Value json.RawMessage `json:"value"`
}

func (a attributeData) text() string {
	var s string
	if json.Unmarshal(a.Value, &s) == nil {
		return s
	}
	var p priceData
	if json.Unmarshal(a.Value, &p) == nil && p.Currency != "" {
		return strconv.FormatFloat(p.Value, 'f', -1, 64) + " " + p.Currency
	}
	return strings.TrimSpace(string(a.Value))
}

type imageData struct {
	EffectiveURL string `json:"effectiveUrl"`
	Name         string `json:"name"`
}

type productData struct {
	SKU              string          `json:"sku"`
	ProductName      string          `json:"productName"`
	ShortDescription string          `json:"shortDescription"`
	LongDescription  string          `json:"longDescription"`
	Manufacturer     string          `json:"manufacturer"`
	DefaultCategory  *linkData       `json:"defaultCategory"`
	SalePrice        *priceData      `json:"salePrice"`
	Availability     bool            `json:"availability"`
	Images           []imageData     `json:"images"`
	Attributes       []attributeData `json:"attributes"`
}

func (p productData) toDomain() domain.Product {
	product := domain.Product{
		SKU:              p.SKU,
		Name:             p.ProductName,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Manufacturer:     p.Manufacturer,
		Price:            p.SalePrice.toDomain(),
		Available:        p.Availability,
		Completeness:     domain.ProductDetail,
	}
	if p.DefaultCategory != nil {
		product.DefaultCategoryID = p.DefaultCategory.Title
	}
	for _, img := range p.Images {
		product.Images = append(product.Images, domain.ProductImage{
			URL: img.EffectiveURL,
			Alt: img.Name,
		})
	}
	if len(p.Attributes) != 0 {
		product.Attributes = make(map[string]string, len(p.Attributes))
		for _, a := range p.Attributes {
			product.Attributes[a.Name] = a.text()
		}
	}
	return product
}

// productLinkData is a product of a listing. The requested attributes are
// carried as a name/value list.
type productLinkData struct {
	linkData
	Attributes []attributeData `json:"attributes"`
}

func (l productLinkData) toDomain() domain.Product {
	p := domain.Product{Name: l.Title, Completeness: domain.ProductStub}
	for _, a := range l.Attributes {
		switch a.Name {
		case "sku":
			p.SKU = a.text()
		case "shortDescription":
			p.ShortDescription = a.text()
		case "salePrice":
			var price priceData
			if json.Unmarshal(a.Value, &price) == nil {
				p.Price = price.toDomain()
			}
		case "availability":
			p.Available = a.text() == "true"
		}
	}
	return p
}

type listingData struct {
	Elements []productLinkData `json:"elements"`
	SortKeys []string          `json:"sortKeys"`
	Total    int               `json:"total"`
}

func (l listingData) toDomain() domain.ProductListing {
	listing := domain.ProductListing{
		Products: make([]domain.Product, 0, len(l.Elements)),
		Total:    l.Total,
		SortKeys: l.SortKeys,
	}
	for _, e := range l.Elements {
		p := e.toDomain()
		if p.SKU == "" {
			continue
		}
		listing.Products = append(listing.Products, p)
	}
	if listing.Total == 0 {
		listing.Total = len(listing.Products)
	}
	return listing
}

type suggestData struct {
	Elements []struct {
		Term string `json:"term"`
		Type string `json:"type"`
	} `json:"elements"`
}
