package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

const slowDownTimeout = 1 * time.Second

type ConsumerOpt func(*consumerOpts) error

func ConsumerClientOpt(cl ConsumerClient) ConsumerOpt {
	return func(co *consumerOpts) error {
		if cl == nil {
			return errors.New("consumer client is nil")
		}
		co.cl = cl
		return nil
	}
}

func ConsumerDecoderOpt(decoder Decoder) ConsumerOpt {
	return func(co *consumerOpts) error {
		if decoder == nil {
			return errors.New("decoder is nil")
		}
		co.decoder = decoder
		return nil
	}
}

func ConsumerCatalogUpdaterOpt(u port.CatalogUpdater) ConsumerOpt {
	return func(co *consumerOpts) error {
		if u == nil {
			return errors.New("catalog updater is nil")
		}
		co.updater = u
		return nil
	}
}

type consumerOpts struct {
	cl      ConsumerClient
	decoder Decoder
	updater port.CatalogUpdater
}

func (co *consumerOpts) apply(opts ...ConsumerOpt) error {
	for _, opt := range opts {
		if err := opt(co); err != nil {
			return err
		}
	}
	return nil
}

type consumerParent interface {
	processFetches(context.Context, kgo.Fetches) error
}

// A consumer is used for composition.
//
// Fetching records from kafka broker and closing underlying [kgo.Client].
type consumer struct {
	opPrefix      string
	parent        consumerParent
	cl            ConsumerClient
	slowDownTimer *time.Timer
}

func (c consumer) run(ctx context.Context) {
	const op = "run"
	log := slog.With("op", makeOp(c.opPrefix, op))

	log.Info("running")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			err := c.consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				log.Error("failed to consume", "err", err)
				c.slowDown(ctx)
			}
		}
	}
}

func (c consumer) consume(ctx context.Context) error {
	const op = "consume"

	fetches, err := c.pollFetches(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	if fetches.Empty() {
		return nil
	}

	err = c.parent.processFetches(ctx, fetches)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	err = c.commit(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c consumer) pollFetches(ctx context.Context) (kgo.Fetches, error) {
	const op = "pollFetches"

	fetches := c.cl.PollFetches(ctx)
	if err := fetches.Err0(); err != nil {
		return nil, opErr(err, c.opPrefix, op)
	}

	err := c.handleFetchesErrs(fetches)
	if err != nil {
		return nil, opErr(err, c.opPrefix, op)
	}

	return fetches, nil
}

func (c consumer) handleFetchesErrs(fetches kgo.Fetches) error {
	var errs []error
	fetches.EachError(func(t string, p int32, err error) {
		errs = append(errs, fmt.Errorf("topic %q partition %d: %w", t, p, err))
	})
	return errors.Join(errs...)
}

func (c consumer) slowDown(ctx context.Context) {
	c.slowDownTimer.Reset(slowDownTimeout)
	select {
	case <-ctx.Done():
	case <-c.slowDownTimer.C:
	}
}

func (c consumer) commit(ctx context.Context) error {
	const op = "commit"

	err := ctx.Err()
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	err = c.cl.CommitUncommittedOffsets(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c consumer) close() {
	const op = "close"
	log := slog.With("op", makeOp(c.opPrefix, op))

	c.slowDownTimer.Stop()

	log.Info("closing consumer...")
	c.cl.Close()
	log.Info("consumer is closed")
}

// A CatalogConsumer consumes product updates of the catalog
// then hands them to the core service.
type CatalogConsumer struct {
	opPrefix string
	consumer consumer
	updater  port.CatalogUpdater
	decoder  Decoder
}

func NewCatalogConsumer(opts ...ConsumerOpt) (cc CatalogConsumer, err error) {
	const op = "NewCatalogConsumer"

	if len(opts) != 3 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options consumerOpts
	if err := options.apply(opts...); err != nil {
		return cc, opErr(err, op)
	}

	opPrefix := "CatalogConsumer"

	cc.opPrefix = opPrefix
	cc.updater = options.updater
	cc.decoder = options.decoder

	cc.consumer = consumer{
		opPrefix:      opPrefix,
		parent:        cc,
		cl:            options.cl,
		slowDownTimer: time.NewTimer(0),
	}

	return cc, nil
}

func (c CatalogConsumer) Run(ctx context.Context) {
	c.consumer.run(ctx)
}

func (c CatalogConsumer) Close() {
	c.consumer.close()
}

func (c CatalogConsumer) processFetches(
	ctx context.Context, fetches kgo.Fetches,
) error {
	const op = "processFetches"

	values := c.toDomain(fetches)
	if len(values) == 0 {
		return nil
	}

	err := c.updater.ApplyProductUpdates(ctx, values)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

// toDomain decodes the fetched products. The topic is compacted by SKU,
// so only the latest record of a SKU counts and a tombstone drops the
// earlier records of the batch.
func (c CatalogConsumer) toDomain(
	fetches kgo.Fetches,
) (vs []domain.Product) {
	const op = "toDomain"
	log := slog.With("op", makeOp(c.opPrefix, op))

	latest := make(map[string]int)
	fetches.EachRecord(func(r *kgo.Record) {
		if r.Value == nil {
			if i, ok := latest[string(r.Key)]; ok {
				vs[i] = domain.Product{}
				delete(latest, string(r.Key))
			}
			return
		}

		v, err := c.decodeRecValue(r)
		if err != nil {
			log.Error(
				"failed to decode value",
				"err", opErr(err, c.opPrefix, op),
			)
			return
		}
		if i, ok := latest[v.SKU]; ok {
			vs[i] = v
			return
		}
		latest[v.SKU] = len(vs)
		vs = append(vs, v)
	})

	return slices.DeleteFunc(vs, func(p domain.Product) bool {
		return p.SKU == ""
	})
}

func (c CatalogConsumer) decodeRecValue(
	r *kgo.Record,
) (domain.Product, error) {
	var s schema.ProductV1
	err := c.decoder.Decode(r.Value, &s)
	if err != nil {
		return domain.Product{}, err
	}
	return schemaV1ToProduct(s), nil
}
