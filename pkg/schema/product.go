package schema

const ProductSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront.catalog",
	"name": "product",
	"fields" : [
		{"name": "sku", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "short_description", "type": "string"},
		{"name": "long_description", "type": "string"},
		{"name": "manufacturer", "type": "string"},
		{"name": "default_category_id", "type": "string"},
		{"name": "price", "type": {
			"type": "record",
			"name": "price",
			"fields": [
				{"name": "value", "type": "double"},
				{"name": "currency", "type": "string"}
			]
		}},
		{"name": "available", "type": "boolean"},
		{"name": "images", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "image",
				"fields": [
					{"name": "url", "type": "string"},
					{"name": "alt", "type": "string"}
				]
			}
		}},
		{"name": "attributes", "type": {"type": "map", "values": "string"}}
	]
}`

type (
	ProductV1 struct {
		SKU               string            `avro:"sku"`
		Name              string            `avro:"name"`
		ShortDescription  string            `avro:"short_description"`
		LongDescription   string            `avro:"long_description"`
		Manufacturer      string            `avro:"manufacturer"`
		DefaultCategoryID string            `avro:"default_category_id"`
		Price             ProductPriceV1    `avro:"price"`
		Available         bool              `avro:"available"`
		Images            []ProductImageV1  `avro:"images"`
		Attributes        map[string]string `avro:"attributes"`
	}

	ProductPriceV1 struct {
		Value    float64 `avro:"value"`
		Currency string  `avro:"currency"`
	}

	ProductImageV1 struct {
		URL string `avro:"url"`
		Alt string `avro:"alt"`
	}
)
