package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Booking  BookingConfig
	Broker   BrokerConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type CatalogConfig struct {
	Source string // file | postgres
	File   string // empty means the built-in seed
}

type BookingConfig struct {
	SeatRows       int
	SeatCols       int
	PaymentTimeout time.Duration
	ExpirySweep    time.Duration
	Timezone       string
	IDDigestKey    string
}

type BrokerConfig struct {
	URL            string
	Queue          string
	Buffer         int
	PublishTimeout time.Duration
}

// AdminConfig lists the caller ids allowed on the admin reports.
type AdminConfig struct {
	UserIDs []string
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "cinema-ticketing")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("CATALOG_SOURCE", "file")
	v.SetDefault("SEAT_ROWS", 2)
	v.SetDefault("SEAT_COLS", 10)
	v.SetDefault("PAYMENT_TIMEOUT_SECONDS", 90)
	v.SetDefault("EXPIRY_SWEEP_SECONDS", 30)
	v.SetDefault("TIMEZONE", "Asia/Taipei")
	v.SetDefault("AMQP_QUEUE", "booking.events")
	v.SetDefault("AMQP_BUFFER", 256)
	v.SetDefault("AMQP_PUBLISH_TIMEOUT_SECONDS", 5)

	// .env is optional; the environment alone is enough
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Catalog: CatalogConfig{
			Source: v.GetString("CATALOG_SOURCE"),
			File:   v.GetString("CATALOG_FILE"),
		},
		Booking: BookingConfig{
			SeatRows:       v.GetInt("SEAT_ROWS"),
			SeatCols:       v.GetInt("SEAT_COLS"),
			PaymentTimeout: time.Duration(v.GetInt("PAYMENT_TIMEOUT_SECONDS")) * time.Second,
			ExpirySweep:    time.Duration(v.GetInt("EXPIRY_SWEEP_SECONDS")) * time.Second,
			Timezone:       v.GetString("TIMEZONE"),
			IDDigestKey:    v.GetString("ID_DIGEST_KEY"),
		},
		Broker: BrokerConfig{
			URL:            v.GetString("AMQP_URL"),
			Queue:          v.GetString("AMQP_QUEUE"),
			Buffer:         v.GetInt("AMQP_BUFFER"),
			PublishTimeout: time.Duration(v.GetInt("AMQP_PUBLISH_TIMEOUT_SECONDS")) * time.Second,
		},
		Admin: AdminConfig{
			UserIDs: splitList(v.GetString("ADMIN_USER_IDS")),
		},
	}

	return config, nil
}

// splitList reads a comma separated env value, skipping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
