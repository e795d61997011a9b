package config

import "time"

type Kafka struct {
	Addresses      []string      `env:"KAFKA_ADDRESSES,required" envSeparator:","`
	Group          string        `env:"KAFKA_GROUP" envDefault:"chicken-vending"`
	ClientID       string        `env:"KAFKA_CLIENT_ID" envDefault:"chicken-vending"`
	ProduceTimeout time.Duration `env:"KAFKA_PRODUCE_TIMEOUT" envDefault:"10s"`
}
