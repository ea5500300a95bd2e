package kafka

import (
	"context"
	"errors"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.IntentJournal = IntentsProducer{}

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("producer client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// An IntentsProducer writes journal entries as [schema.IntentRecordV1]
// records keyed by session id.
type IntentsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewIntentsProducer(opts ...ProducerOpt) (IntentsProducer, error) {
	const op = "NewIntentsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return IntentsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "IntentsProducer"
	return IntentsProducer{
		producer: producer{opPrefix: opPrefix, cl: options.cl},
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p IntentsProducer) Close() {
	p.producer.close()
}

func (p IntentsProducer) AppendEntries(
	ctx context.Context, entries []domain.JournalEntry,
) error {
	const op = "AppendEntries"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	if len(entries) == 0 {
		return nil
	}

	rs, err := p.createRecords(entries)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, rs...); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p IntentsProducer) createRecords(
	entries []domain.JournalEntry,
) (rs []*kgo.Record, err error) {
	const op = "createRecords"

	for _, e := range entries {
		s := journalEntryToSchemaV1(e)
		b, err := p.encoder.Encode(s)
		if err != nil {
			return nil, opErr(err, p.opPrefix, op)
		}
		rs = append(rs, &kgo.Record{
			Key:       []byte(s.SessionID),
			Value:     b,
			Timestamp: e.OccurredAt,
		})
	}
	return rs, nil
}
