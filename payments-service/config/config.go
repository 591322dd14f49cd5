package config

import (
	"fmt"
	"path/filepath"
	"runtime"

	sharedconfig "github.com/campusflow/enrollment-system/shared/config"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/spf13/viper"
)

type Config struct {
	sharedconfig.Common `mapstructure:",squash"`
	Payments            Payments `mapstructure:"payments"`
}

type Payments struct {
	StandardFeeCents int64  `mapstructure:"standard_fee_cents"`
	Currency         string `mapstructure:"currency"`
}

// Fee is the amount charged for every enrollment
func (p Payments) Fee() models.Money {
	return models.NewMoney(p.StandardFeeCents, p.Currency)
}

func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to get current file")
	}

	v := viper.New()
	setDefaults(v)

	var config Config
	if err := sharedconfig.Load(v, filepath.Dir(filename), "PAYMENT", &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	sharedconfig.SetCommonDefaults(v, "payments-service", "8082", "payments")

	v.SetDefault("payments.standard_fee_cents", 10000)
	v.SetDefault("payments.currency", "USD")
}

// Validate checks the shared sections and the fee
func (c *Config) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}
	if !c.Payments.Fee().IsPositive() {
		return fmt.Errorf("payments.standard_fee_cents must be positive")
	}
	if len(c.Payments.Currency) != 3 {
		return fmt.Errorf("payments.currency must be a 3 letter code, got %q", c.Payments.Currency)
	}
	return nil
}
