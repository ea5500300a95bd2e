package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/pkg/sigctx"
)

const (
	partitions        = 3
	replicationFactor = 3
	minISR            = "2"
)

type topic struct {
	name    string
	purpose string
	configs map[string]string
}

func topicsOf(cfg config.Config) []topic {
	var ts []topic
	if name := cfg.Broker.Topics.Intents; name != "" {
		ts = append(ts, topic{
			name:    name,
			purpose: "intent journal, keyed by session",
			configs: map[string]string{
				"cleanup.policy": "delete",
				"retention.ms":   "604800000",
			},
		})
	}
	if name := cfg.Broker.Topics.CatalogUpdates; name != "" {
		ts = append(ts, topic{
			name:    name,
			purpose: "latest product state, keyed by sku",
			configs: map[string]string{
				"cleanup.policy":        "compact",
				"min.compaction.lag.ms": "60000",
			},
		})
	}
	return ts
}

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	topics := topicsOf(cfg)
	if len(topics) == 0 {
		fmt.Println("no topics configured")
		return
	}

	cl := createClient(cfg)
	defer cl.Close()

	printStart(topics)
	defer printComplete(time.Now())

	var errs []error
	for _, t := range topics {
		errs = append(errs, makeTopic(sigCtx, cl, t))
	}
	if err := errors.Join(errs...); err != nil {
		printFail(err)
	}
}

func createClient(cfg config.Config) *kadm.Client {
	opts := []kgo.Opt{kgo.SeedBrokers(cfg.Broker.SeedBrokers...)}
	if files := cfg.Broker.TLS; files.Enabled() {
		tlsConfig, err := adapter.MakeTLSConfig(files.CA, files.Cert, files.Key)
		if err != nil {
			panic(err) // develop mistake
		}
		opts = append(opts, kgo.DialTLSConfig(tlsConfig))
	}

	cl, err := kadm.NewOptClient(opts...)
	if err != nil {
		panic(err) // develop mistake
	}
	return cl
}

// makeTopic creates the topic. An existing topic is left as is.
func makeTopic(ctx context.Context, cl *kadm.Client, t topic) error {
	configs := map[string]*string{
		"min.insync.replicas": kadm.StringPtr(minISR),
	}
	for k, v := range t.configs {
		configs[k] = kadm.StringPtr(v)
	}

	res, err := cl.CreateTopic(ctx, partitions, replicationFactor, configs, t.name)
	switch {
	case errors.Is(err, kerr.TopicAlreadyExists):
		fmt.Printf("topic: %q already exists\n", t.name)
		return nil
	case err != nil:
		return fmt.Errorf("topic %q: %w", t.name, err)
	}

	fmt.Printf("topic: %q successfully created (id %s)\n", res.Topic, res.ID)
	return nil
}

func printStart(topics []topic) {
	fmt.Println("initializing topics...")
	for _, t := range topics {
		fmt.Printf("\t- %q (%s, %s)\n", t.name, t.configs["cleanup.policy"], t.purpose)
	}
	fmt.Println()
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}
