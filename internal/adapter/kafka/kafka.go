package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
)

var (
	ErrTooFewOpts = errors.New("too few options")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

// NewProducerClient connects a client producing to topic.
// A nil tlsConfig keeps the connection in plain text.
func NewProducerClient(
	ctx context.Context, seedBrokers []string, topic string, tlsConfig *tls.Config,
) (*kgo.Client, error) {
	const op = "NewProducerClient"

	opts := []kgo.Opt{
		kgo.SeedBrokers(seedBrokers...),
		kgo.DefaultProduceTopicAlways(),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.AllowAutoTopicCreation(),
	}
	if tlsConfig != nil {
		opts = append(opts, kgo.DialTLSConfig(tlsConfig))
	}

	cl, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, opErr(err, op)
	}
	if err := cl.Ping(ctx); err != nil {
		cl.Close()
		return nil, opErr(err, op)
	}
	return cl, nil
}

// NewConsumerClient returns a group member consuming topic. Offsets are
// committed by the consumer after processing.
func NewConsumerClient(
	seedBrokers []string, topic, group string, tlsConfig *tls.Config,
) (*kgo.Client, error) {
	const op = "NewConsumerClient"

	opts := []kgo.Opt{
		kgo.SeedBrokers(seedBrokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumerGroup(group),
		kgo.DisableAutoCommit(),
	}
	if tlsConfig != nil {
		opts = append(opts, kgo.DialTLSConfig(tlsConfig))
	}

	cl, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, opErr(err, op)
	}
	return cl, nil
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func journalEntryToSchemaV1(v domain.JournalEntry) (s schema.IntentRecordV1) {
	s.ID = v.ID.String()
	s.SessionID = v.SessionID
	s.Name = v.Name
	s.OccurredAt = v.OccurredAt
	s.Payload = v.Payload
	return
}

func schemaV1ToProduct(s schema.ProductV1) (p domain.Product) {
	p.SKU = s.SKU
	p.Name = s.Name
	p.ShortDescription = s.ShortDescription
	p.LongDescription = s.LongDescription
	p.Manufacturer = s.Manufacturer
	p.DefaultCategoryID = s.DefaultCategoryID
	p.Price.Value = s.Price.Value
	p.Price.Currency = s.Price.Currency
	p.Available = s.Available
	p.Attributes = s.Attributes
	p.Completeness = domain.ProductDetail

	if len(s.Images) != 0 {
		p.Images = make([]domain.ProductImage, len(s.Images))
		for i := range s.Images {
			p.Images[i].URL = s.Images[i].URL
			p.Images[i].Alt = s.Images[i].Alt
		}
	}
	return p
}
