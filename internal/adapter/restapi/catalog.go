package restapi

import (
	"context"
	"net/url"
	"slices"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
)

// listingAttrs are the product attributes requested for listings.
const listingAttrs = "sku,salePrice,shortDescription,availability"

// GetTopLevelCategories returns the category tree down to depth. Every node
// of the result is partial.
func (c *Client) GetTopLevelCategories(ctx context.Context, depth int) (domain.CategoryTree, error) {
	const op = "Client.GetTopLevelCategories"

	query := url.Values{
		"view":  {"tree"},
		"limit": {strconv.Itoa(depth)},
	}
	var res []categoryData
	if err := c.get(ctx, "categories", query, &res); err != nil {
		return domain.CategoryTree{}, opErr(err, op)
	}

	var categories []domain.Category
	for _, cd := range res {
		categories = cd.collect(categories, nil, domain.CompletenessPartial)
	}
	return domain.NewCategoryTree(categories...), nil
}

// GetCategory returns the category together with its ancestors and direct
// subcategories. Only the requested category is complete.
func (c *Client) GetCategory(ctx context.Context, categoryID string) (domain.CategoryTree, error) {
	const op = "Client.GetCategory"

	path := pathOf(append([]string{"categories"}, categoryPath(categoryID)...)...)
	var res categoryData
	if err := c.get(ctx, path, nil, &res); err != nil {
		return domain.CategoryTree{}, opErr(err, op)
	}

	parent := ancestorIDs(categoryID)
	uniquePath := res.uniquePath(parent)
	var categories []domain.Category
	for i, id := range uniquePath[:len(uniquePath)-1] {
		name := ""
		if i < len(res.CategoryPath) {
			name = res.CategoryPath[i].Name
		}
		categories = append(categories, domain.Category{
			UniqueID:     id,
			Name:         name,
			CategoryPath: slices.Clone(uniquePath[:i+1]),
			Completeness: domain.CompletenessNone,
		})
	}
	categories = res.collect(categories, parent, domain.CompletenessFull)
	return domain.NewCategoryTree(categories...), nil
}

func (c *Client) GetProduct(ctx context.Context, sku string) (domain.Product, error) {
	const op = "Client.GetProduct"

	var res productData
	if err := c.get(ctx, pathOf("products", sku), nil, &res); err != nil {
		return domain.Product{}, opErr(err, op)
	}
	p := res.toDomain()
	if p.SKU == "" {
		p.SKU = sku
	}
	return p, nil
}

func (c *Client) GetCategoryProducts(
	ctx context.Context, categoryID string,
) (domain.ProductListing, error) {
	const op = "Client.GetCategoryProducts"

	segments := append([]string{"categories"}, categoryPath(categoryID)...)
	path := pathOf(append(segments, "products")...)
	query := url.Values{"attrs": {listingAttrs}}

	var res listingData
	if err := c.get(ctx, path, query, &res); err != nil {
		return domain.ProductListing{}, opErr(err, op)
	}
	return res.toDomain(), nil
}

func (c *Client) SearchProducts(
	ctx context.Context, term string, amount, offset int,
) (domain.ProductListing, error) {
	const op = "Client.SearchProducts"

	query := url.Values{
		"searchTerm": {term},
		"amount":     {strconv.Itoa(amount)},
		"offset":     {strconv.Itoa(offset)},
		"attrs":      {listingAttrs},
	}
	var res listingData
	if err := c.get(ctx, "products", query, &res); err != nil {
		return domain.ProductListing{}, opErr(err, op)
	}
	return res.toDomain(), nil
}

func (c *Client) Suggest(ctx context.Context, term string) ([]domain.Suggestion, error) {
	const op = "Client.Suggest"

	var res suggestData
	if err := c.get(ctx, "suggest", url.Values{"SearchTerm": {term}}, &res); err != nil {
		return nil, opErr(err, op)
	}
	suggestions := make([]domain.Suggestion, len(res.Elements))
	for i, e := range res.Elements {
		suggestions[i] = domain.Suggestion{Term: e.Term, Type: e.Type}
	}
	return suggestions, nil
}
