package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "MARKETPLACE_CONFIG_FILE"

type consumers struct {
	OrdersTableGroup string `mapstructure:"orders_table_group"`
}

type topics struct {
	ProductSaved string `mapstructure:"product_saved"`
	OrderSaved   string `mapstructure:"order_saved"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	Broker         broker     `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
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
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		ProductSaved=%q
		OrderSaved=%q
	Consumers:
		OrdersTableGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.ProductSaved,
		c.Broker.Topics.OrderSaved,
		c.Broker.Consumers.OrdersTableGroup,
	)
}
