package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
)

type api struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
}

type shopping struct {
	ItemsPerPage    int           `mapstructure:"items_per_page"`
	SuggestDebounce time.Duration `mapstructure:"suggest_debounce"`
	NavigationDepth int           `mapstructure:"navigation_depth"`
}

type topics struct {
	Intents        string `mapstructure:"intents"`
	CatalogUpdates string `mapstructure:"catalog_updates"`
}

type consumers struct {
	CatalogGroup string `mapstructure:"catalog_group"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

// Enabled reports whether all three files are set.
func (t tlsFiles) Enabled() bool {
	return t.CA != "" && t.Cert != "" && t.Key != ""
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
	TLS                tlsFiles  `mapstructure:"tls"`
}

type valkey struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	TLS      tlsFiles      `mapstructure:"tls"`
}

type postgres struct {
	DSN string `mapstructure:"dsn"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	HandlerTimeout time.Duration `mapstructure:"handler_timeout"`
	SessionID      string        `mapstructure:"session_id"`
	API            api           `mapstructure:"api"`
	Shopping       shopping      `mapstructure:"shopping"`
	Broker         broker        `mapstructure:"broker"`
	Valkey         valkey        `mapstructure:"valkey"`
	Postgres       postgres      `mapstructure:"postgres"`
}

// JournalEnabled reports whether dispatched intents go to the broker.
func (c Config) JournalEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0 && c.Broker.Topics.Intents != ""
}

// DatabaseJournalEnabled reports whether dispatched intents are stored in
// PostgreSQL.
func (c Config) DatabaseJournalEnabled() bool {
	return c.Postgres.DSN != ""
}

// CatalogFeedEnabled reports whether catalog updates are consumed.
func (c Config) CatalogFeedEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0 &&
		c.Broker.Topics.CatalogUpdates != "" &&
		c.Broker.Consumers.CatalogGroup != ""
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads the config file at path. Values may be overridden with
// STOREFRONT_ prefixed environment variables, e.g. STOREFRONT_API_BASE_URL.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.UnmarshalExact(&cfg, hook); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var ErrInvalidValue = errors.New("invalid config value")

func (c Config) validate() error {
	var errs []error
	if c.API.RetryAttempts < 1 {
		errs = append(errs, fmt.Errorf(
			"%w: api.retry_attempts must be positive, got %d",
			ErrInvalidValue, c.API.RetryAttempts,
		))
	}
	if c.API.RetryDelay <= 0 {
		errs = append(errs, fmt.Errorf(
			"%w: api.retry_delay must be positive, got %s",
			ErrInvalidValue, c.API.RetryDelay,
		))
	}
	if c.Shopping.ItemsPerPage < 1 {
		errs = append(errs, fmt.Errorf(
			"%w: shopping.items_per_page must be positive, got %d",
			ErrInvalidValue, c.Shopping.ItemsPerPage,
		))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("handler_timeout", 5*time.Second)
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.retry_attempts", 3)
	v.SetDefault("api.retry_delay", 100*time.Millisecond)
	v.SetDefault("shopping.items_per_page", 12)
	v.SetDefault("shopping.suggest_debounce", 400*time.Millisecond)
	v.SetDefault("shopping.navigation_depth", 1)
	v.SetDefault("valkey.token_ttl", 30*time.Minute)
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	HandlerTimeout=%s
	SessionID=%q

	API:
	BaseURL=%q
	Timeout=%s
	RetryAttempts=%d
	RetryDelay=%s

	Shopping:
	ItemsPerPage=%d
	SuggestDebounce=%s
	NavigationDepth=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		Intents=%q
		CatalogUpdates=%q
	Consumers:
		CatalogGroup=%q

	Valkey:
	Addr=%q
	DB=%d
	TokenTTL=%s
	TLS=%t

	Postgres:
	Journal=%t

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.HandlerTimeout,
		c.SessionID,
		c.API.BaseURL,
		c.API.Timeout,
		c.API.RetryAttempts,
		c.API.RetryDelay,
		c.Shopping.ItemsPerPage,
		c.Shopping.SuggestDebounce,
		c.Shopping.NavigationDepth,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.Enabled(),
		c.Broker.Topics.Intents,
		c.Broker.Topics.CatalogUpdates,
		c.Broker.Consumers.CatalogGroup,
		c.Valkey.Addr,
		c.Valkey.DB,
		c.Valkey.TokenTTL,
		c.Valkey.TLS.Enabled(),
		c.DatabaseJournalEnabled(),
	)
}
