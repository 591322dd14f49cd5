package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	sharedconfig "github.com/campusflow/enrollment-system/shared/config"
	"github.com/spf13/viper"
)

type Config struct {
	sharedconfig.Common `mapstructure:",squash"`
	Directory           Directory `mapstructure:"directory"`
}

// Directory locates the student and course services
type Directory struct {
	StudentsURL string        `mapstructure:"students_url"`
	CoursesURL  string        `mapstructure:"courses_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to get current file")
	}

	v := viper.New()
	setDefaults(v)

	var config Config
	if err := sharedconfig.Load(v, filepath.Dir(filename), "ENROLLMENT", &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	sharedconfig.SetCommonDefaults(v, "enrollment-service", "8081", "enrollments")

	v.SetDefault("directory.students_url", "http://localhost:8090")
	v.SetDefault("directory.courses_url", "http://localhost:8091")
	v.SetDefault("directory.timeout", 3*time.Second)
}

// Validate checks the shared sections and the directory URLs
func (c *Config) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}
	if c.Directory.StudentsURL == "" || c.Directory.CoursesURL == "" {
		return fmt.Errorf("directory.students_url and directory.courses_url are required")
	}
	return nil
}
