package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers           []string
	KafkaNotificationTopic string

	RedisAddr        string
	RedisActivityKey string

	DefaultBuybackStock      int
	ShippingFee              decimal.Decimal
	FreeShippingThreshold    decimal.Decimal
	ActivityCapacity         int
	ReturnGracePeriod        time.Duration
	ReturnCompletionSchedule string
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads .env when present, then the process environment, which wins.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	c := Config{
		HTTPPort:                 env("HTTP_PORT", "8080"),
		DBHost:                   env("DB_HOST", "localhost"),
		DBPort:                   env("DB_PORT", "5432"),
		DBUser:                   env("DB_USER", "postgres"),
		DBPassword:               env("DB_PASSWORD", "postgres"),
		DBName:                   env("DB_NAME", "marketplace"),
		DBSslMode:                env("DB_SSLMODE", "disable"),
		KafkaBrokers:             list(env("KAFKA_BROKERS", "")),
		KafkaNotificationTopic:   env("KAFKA_NOTIFICATION_TOPIC", "marketplace.notifications"),
		RedisAddr:                env("REDIS_ADDR", ""),
		RedisActivityKey:         env("REDIS_ACTIVITY_KEY", "marketplace:activity"),
		ReturnCompletionSchedule: env("RETURN_COMPLETION_SCHEDULE", "0 * * * * *"),
	}

	var err error
	var errs []error

	c.DefaultBuybackStock, err = strconv.Atoi(env("DEFAULT_BUYBACK_STOCK", "1"))
	errs = append(errs, named("DEFAULT_BUYBACK_STOCK", err))
	c.ActivityCapacity, err = strconv.Atoi(env("ACTIVITY_CAPACITY", "50"))
	errs = append(errs, named("ACTIVITY_CAPACITY", err))
	c.ShippingFee, err = decimal.NewFromString(env("SHIPPING_FEE", "40"))
	errs = append(errs, named("SHIPPING_FEE", err))
	c.FreeShippingThreshold, err = decimal.NewFromString(env("FREE_SHIPPING_THRESHOLD", "500"))
	errs = append(errs, named("FREE_SHIPPING_THRESHOLD", err))
	c.ReturnGracePeriod, err = time.ParseDuration(env("RETURN_GRACE_PERIOD", "72h"))
	errs = append(errs, named("RETURN_GRACE_PERIOD", err))

	if c.DefaultBuybackStock < 1 {
		errs = append(errs, fmt.Errorf("DEFAULT_BUYBACK_STOCK: %d is less than 1", c.DefaultBuybackStock))
	}

	if err = errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return c, nil
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func list(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func named(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", key, err)
}
