package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var (
	ErrTooFewOpts = errors.New("too few options")
)

// A Definition is an avro schema and the Go type its records decode into.
type Definition struct {
	Name    string
	Text    string
	Example any
}

var (
	ProductV1Definition = Definition{
		Name:    "ProductV1",
		Text:    ProductSchemaTextV1,
		Example: ProductV1{},
	}
	IntentRecordV1Definition = Definition{
		Name:    "IntentRecordV1",
		Text:    IntentRecordSchemaTextV1,
		Example: IntentRecordV1{},
	}
)

// Serde encodes registered types in the schema registry wire format.
type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

type Opt func(*serdeOpts) error

type serdeOpts struct {
	subject string
	si      SchemaIdentifier
}

func (so serdeOpts) complete() bool {
	return so.subject != "" && so.si != nil
}

func SubjectOpt(subject string) Opt {
	return func(so *serdeOpts) error {
		if subject == "" {
			return errors.New("subject is empty string")
		}
		so.subject = subject
		return nil
	}
}

func SchemaIdentifierOpt(si SchemaIdentifier) Opt {
	return func(so *serdeOpts) error {
		if si == nil {
			return errors.New("schema identifier is nil")
		}
		so.si = si
		return nil
	}
}

func NewSerdeProductV1(ctx context.Context, opts ...Opt) (Serde, error) {
	return NewSerde(ctx, ProductV1Definition, opts...)
}

func NewSerdeIntentRecordV1(ctx context.Context, opts ...Opt) (Serde, error) {
	return NewSerde(ctx, IntentRecordV1Definition, opts...)
}

// NewSerde registers the definition under the subject and returns a serde
// for its type. Both SubjectOpt and SchemaIdentifierOpt are required.
func NewSerde(ctx context.Context, def Definition, opts ...Opt) (Serde, error) {
	op := "NewSerde" + def.Name

	var so serdeOpts
	for _, o := range opts {
		if err := o(&so); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if !so.complete() {
		return nil, fmt.Errorf("%s: %w", op, ErrTooFewOpts)
	}

	avroSchema, err := avro.Parse(def.Text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := so.si.DetermineID(ctx, so.subject, def.Text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := new(sr.Serde)
	s.Register(
		id,
		def.Example,
		sr.EncodeFn(AvroEncodeFn(avroSchema)),
		sr.DecodeFn(AvroDecodeFn(avroSchema)),
	)
	return s, nil
}
