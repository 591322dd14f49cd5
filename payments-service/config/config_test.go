package config

import (
	"testing"

	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var config Config
	require.NoError(t, v.Unmarshal(&config))

	assert.Equal(t, "payments-service", config.ServiceName)
	assert.Equal(t, models.NewMoney(10000, "USD"), config.Payments.Fee())
	assert.NoError(t, config.Validate())
}

func TestValidate_Fee(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var config Config
	require.NoError(t, v.Unmarshal(&config))

	config.Payments.StandardFeeCents = 0
	assert.EqualError(t, config.Validate(), "payments.standard_fee_cents must be positive")

	config.Payments.StandardFeeCents = 500
	config.Payments.Currency = "dollars"
	assert.Error(t, config.Validate())
}
