package config

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/campusflow/enrollment-system/notification-service/infrastructure"
	sharedconfig "github.com/campusflow/enrollment-system/shared/config"
	"github.com/spf13/viper"
)

// Notifier drivers
const (
	NotifierLog  = "log"
	NotifierSMTP = "smtp"
)

type Config struct {
	sharedconfig.Common `mapstructure:",squash"`
	Notification        Notification              `mapstructure:"notification"`
	SMTP                infrastructure.SMTPConfig `mapstructure:"smtp"`
}

type Notification struct {
	Driver string `mapstructure:"driver"`
}

func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to get current file")
	}

	v := viper.New()
	setDefaults(v)

	var config Config
	if err := sharedconfig.Load(v, filepath.Dir(filename), "NOTIFICATION", &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	sharedconfig.SetCommonDefaults(v, "notification-service", "8084", "")

	// nothing to store
	v.SetDefault("storage", sharedconfig.DriverMemory)

	v.SetDefault("notification.driver", NotifierLog)
	v.SetDefault("smtp.host", "localhost")
	v.SetDefault("smtp.port", 1025)
	v.SetDefault("smtp.from", "no-reply@campusflow.dev")
}

// Validate checks the shared sections and the notifier selection
func (c *Config) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}

	switch c.Notification.Driver {
	case NotifierLog:
	case NotifierSMTP:
		if c.SMTP.Host == "" || c.SMTP.From == "" {
			return fmt.Errorf("smtp.host and smtp.from are required for the smtp notifier")
		}
	default:
		return fmt.Errorf("unknown notification driver %q", c.Notification.Driver)
	}

	return nil
}
