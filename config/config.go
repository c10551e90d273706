package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEnvFile    = ".env"
	DefaultConfigFile = "lunchbot.yaml"
	DefaultPostTime   = "07:00"
)

// ErrMissingSetting is returned when a required setting is absent from every source.
var ErrMissingSetting = errors.New("required setting missing")

// Config holds all application configuration.
type Config struct {
	SourceURL  string `yaml:"sodexo_url" validate:"required"`
	WebhookURL string `yaml:"webhook_url" validate:"required"`
	PostTime   string `yaml:"post_time"`
	Timezone   string `yaml:"timezone" validate:"required"`
	LogLevel   string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// PostTimeDefaulted is set when post_time was found in no source.
	PostTimeDefaulted bool `yaml:"-"`
}

// Defaults returns a Config with all default values set.
func Defaults() Config {
	return Config{
		PostTime: DefaultPostTime,
		Timezone: "Local",
		LogLevel: "info",
	}
}

// Source looks up a single setting by key.
type Source func(key string) (string, bool)

// Load resolves every setting from the process environment, then the env
// file, then the YAML settings file, then the built-in defaults.
// LUNCHBOT_ENV_FILE and LUNCHBOT_CONFIG override the two file paths.
func Load(envFile, configFile string) (Config, error) {
	if p := os.Getenv("LUNCHBOT_ENV_FILE"); p != "" {
		envFile = p
	}
	if p := os.Getenv("LUNCHBOT_CONFIG"); p != "" {
		configFile = p
	}

	dotenv, err := readEnvFile(envFile)
	if err != nil {
		return Config{}, err
	}
	file, err := readConfigFile(configFile)
	if err != nil {
		return Config{}, err
	}

	return Resolve(os.LookupEnv, mapSource(dotenv), mapSource(file))
}

// Resolve builds a Config from the given sources, first match wins.
func Resolve(sources ...Source) (Config, error) {
	lookup := func(key string) (string, bool) {
		for _, src := range sources {
			if v, ok := src(key); ok {
				return v, true
			}
		}
		return "", false
	}

	cfg := Defaults()
	if v, ok := lookup("sodexo_url"); ok {
		cfg.SourceURL = v
	}
	if v, ok := lookup("webhook_url"); ok {
		cfg.WebhookURL = v
	}
	if v, ok := lookup("post_time"); ok {
		cfg.PostTime = v
	} else {
		cfg.PostTimeDefaulted = true
	}
	if v, ok := lookup("timezone"); ok && v != "" {
		cfg.Timezone = v
	}
	if v, ok := lookup("log_level"); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that required fields are present and values are valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		var missing []string
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				missing = append(missing, fe.Field())
			case "oneof":
				return fmt.Errorf("invalid %s %q: must be one of %s", fe.Field(), fe.Value(), fe.Param())
			default:
				return fmt.Errorf("invalid %s: %s", fe.Field(), fe.Tag())
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
		}
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return vars, nil
}

func readConfigFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	vars := make(map[string]string)
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return vars, nil
}

func mapSource(m map[string]string) Source {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}
