package schema

import (
	"context"

	"github.com/hamba/avro/v2"
)

// A SchemaIdentifier registers a schema under the subject and returns
// the schema id assigned by the registry.
type SchemaIdentifier interface {
	DetermineID(ctx context.Context, subject, avroSchemaText string) (int, error)
}

func ProductV1Avro() avro.Schema {
	return avro.MustParse(ProductSchemaTextV1)
}

func IntentRecordV1Avro() avro.Schema {
	return avro.MustParse(IntentRecordSchemaTextV1)
}

func AvroEncodeFn(s avro.Schema) func(v any) ([]byte, error) {
	return func(v any) ([]byte, error) {
		return avro.Marshal(s, v)
	}
}

func AvroDecodeFn(s avro.Schema) func([]byte, any) error {
	return func(data []byte, v any) error {
		return avro.Unmarshal(s, data, v)
	}
}
