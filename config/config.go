package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string
	MetricsAddr  string
	StorePath    string
	ImagesDir    string
	KafkaBrokers []string
	KafkaTopic   string
	StripeKey    string
	OTLPEndpoint string
	Env          string
}

// Load reads configuration from the environment, with a .env file as an
// optional source for development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		for _, b := range strings.Split(v, ",") {
			brokers = append(brokers, strings.TrimSpace(b))
		}
	}

	return &Config{
		Addr:         getEnv("ADDR", "127.0.0.1:9000"),
		MetricsAddr:  getEnv("METRICS_ADDR", ":9090"),
		StorePath:    getEnv("STORE_PATH", "db.json"),
		ImagesDir:    getEnv("IMAGES_DIR", "public/images"),
		KafkaBrokers: brokers,
		KafkaTopic:   getEnv("KAFKA_TOPIC", "logs"),
		StripeKey:    os.Getenv("STRIPE_SECRET_KEY"),
		OTLPEndpoint: os.Getenv("OTLP_ENDPOINT"),
		Env:          getEnv("APP_ENV", "development"),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
