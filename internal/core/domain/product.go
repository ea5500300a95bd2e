package domain

// A ProductCompleteness tells whether a product record holds the full
// product detail or only the listing fields.
type ProductCompleteness int

const (
	ProductStub ProductCompleteness = iota
	ProductDetail
)

type (
	Product struct {
		SKU               string
		Name              string
		ShortDescription  string
		LongDescription   string
		Manufacturer      string
		DefaultCategoryID string
		Price             Price
		Available         bool
		Images            []ProductImage
		Attributes        map[string]string
		Completeness      ProductCompleteness
	}

	ProductImage struct {
		URL string
		Alt string
	}

	// A ProductListing is one page of products of a category or a search.
	ProductListing struct {
		Products []Product
		Total    int
		SortKeys []string
	}
)

// MergeProduct returns the record to keep when incoming arrives for a SKU
// already holding existing. A less complete record never replaces a more
// complete one.
func MergeProduct(existing, incoming Product) Product {
	if existing.Completeness > incoming.Completeness {
		return existing
	}
	return incoming
}

// SKUs returns the product SKUs of the listing in order.
func (l ProductListing) SKUs() []string {
	skus := make([]string, len(l.Products))
	for i, p := range l.Products {
		skus[i] = p.SKU
	}
	return skus
}
