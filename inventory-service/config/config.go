package config

import (
	"fmt"
	"path/filepath"
	"runtime"

	sharedconfig "github.com/campusflow/enrollment-system/shared/config"
	"github.com/spf13/viper"
)

type Config struct {
	sharedconfig.Common `mapstructure:",squash"`
}

func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to get current file")
	}

	v := viper.New()
	sharedconfig.SetCommonDefaults(v, "inventory-service", "8083", "inventory")

	var config Config
	if err := sharedconfig.Load(v, filepath.Dir(filename), "INVENTORY", &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
