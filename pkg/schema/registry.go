package schema

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/sr"
)

var _ SchemaIdentifier = RegistryIdentifier{}

type SchemaCreater interface {
	CreateSchema(ctx context.Context, subject string, s sr.Schema) (sr.SubjectSchema, error)
}

// A RegistryIdentifier registers avro schemas in the schema registry and
// reports the id the registry assigned. Registering a known schema again
// returns its existing id.
type RegistryIdentifier struct {
	sc SchemaCreater
}

func NewRegistryIdentifier(sc SchemaCreater) RegistryIdentifier {
	if sc == nil {
		panic("schema.NewRegistryIdentifier: schema creater is nil (develop mistake)")
	}
	return RegistryIdentifier{sc}
}

func (r RegistryIdentifier) DetermineID(
	ctx context.Context, subject, avroSchemaText string,
) (int, error) {
	const op = "RegistryIdentifier.DetermineID"

	ss, err := r.sc.CreateSchema(ctx, subject, sr.Schema{
		Type:   sr.TypeAvro,
		Schema: avroSchemaText,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ss.ID, nil
}
