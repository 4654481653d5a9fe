package cmd

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.HTTPPort)
	assert.Equal(t, 1, c.DefaultBuybackStock)
	assert.Equal(t, 50, c.ActivityCapacity)
	assert.Equal(t, 72*time.Hour, c.ReturnGracePeriod)
	assert.True(t, decimal.NewFromInt(40).Equal(c.ShippingFee))
	assert.True(t, decimal.NewFromInt(500).Equal(c.FreeShippingThreshold))
	assert.Empty(t, c.KafkaBrokers)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=marketplace sslmode=disable", c.DSN())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("DEFAULT_BUYBACK_STOCK", "3")
	t.Setenv("RETURN_GRACE_PERIOD", "1h30m")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, c.KafkaBrokers)
	assert.Equal(t, 3, c.DefaultBuybackStock)
	assert.Equal(t, 90*time.Minute, c.ReturnGracePeriod)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DEFAULT_BUYBACK_STOCK", "0")
	t.Setenv("SHIPPING_FEE", "forty")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorContains(t, err, "DEFAULT_BUYBACK_STOCK")
	assert.ErrorContains(t, err, "SHIPPING_FEE")
}
