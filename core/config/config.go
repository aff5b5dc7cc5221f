package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"rados-compare/core/logger"
	"rados-compare/core/metrics"
	"rados-compare/core/report"
	"rados-compare/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrConfiguration marks missing or invalid settings.
var ErrConfiguration = errors.New("invalid configuration")

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// BackendA holds the connection of the first cluster (CEPH_A_*).
	BackendA storage.Config `mapstructure:"ceph_a"`
	// BackendB holds the connection of the second cluster (CEPH_B_*).
	BackendB storage.Config `mapstructure:"ceph_b"`
	// OutputDir is the existing directory receiving all report files.
	OutputDir string `mapstructure:"path_to_file_output_dir" default:""`
	// Report holds the names and format of the report files.
	Report report.Config `mapstructure:"report"`
	// Metrics holds configuration for the metrics textfile.
	Metrics metrics.Config `mapstructure:"metrics"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := filepath.Join(path, ".env")

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. CEPH_A_ADDRESS -> ceph_a.address)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return &config, nil
}

// Validate checks that both backends are fully specified and the output directory exists.
func (c *Config) Validate() error {
	var errs []error

	backends := []struct {
		env string
		cfg storage.Config
	}{
		{"CEPH_A", c.BackendA},
		{"CEPH_B", c.BackendB},
	}
	for _, b := range backends {
		if strings.TrimSpace(b.cfg.Address) == "" {
			errs = append(errs, fmt.Errorf("%s_ADDRESS is not set", b.env))
		}
		if b.cfg.AccessKeyID == "" {
			errs = append(errs, fmt.Errorf("%s_ACCESS_KEY_ID is not set", b.env))
		}
		if b.cfg.SecretAccessKey == "" {
			errs = append(errs, fmt.Errorf("%s_SECRET_ACCESS_KEY is not set", b.env))
		}
	}

	if err := c.checkOutputDir(); err != nil {
		errs = append(errs, err)
	}

	if !c.Report.IsValidFormat() {
		errs = append(errs, fmt.Errorf("unknown report format %q", c.Report.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfiguration, errors.Join(errs...))
	}
	return nil
}

// ValidateOutputDir checks only the output directory, for commands that never contact a backend.
func (c *Config) ValidateOutputDir() error {
	if err := c.checkOutputDir(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return nil
}

func (c *Config) checkOutputDir() error {
	if c.OutputDir == "" {
		return errors.New("PATH_TO_FILE_OUTPUT_DIR is not set")
	}
	info, err := os.Stat(c.OutputDir)
	if err != nil {
		return fmt.Errorf("%s does not exist", c.OutputDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", c.OutputDir)
	}
	return nil
}

// MetricsPath returns where the metrics textfile is written.
func (c *Config) MetricsPath() string {
	if filepath.IsAbs(c.Metrics.File) {
		return c.Metrics.File
	}
	return filepath.Join(c.OutputDir, c.Metrics.File)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
