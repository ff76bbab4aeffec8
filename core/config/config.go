package config

import (
	"reflect"
	"strings"

	"asset-janitor/core/contentstack"
	"asset-janitor/core/logger"
	"asset-janitor/core/storage"
	"asset-janitor/core/telemetry/metrics"
	"asset-janitor/feature/scan"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Contentstack holds the API host, token and branch.
	Contentstack contentstack.Config `mapstructure:"contentstack"`
	// Scan holds report destinations and scan behavior.
	Scan scan.Config `mapstructure:"scan"`
	// Storage holds configuration for s3:// report locations.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Metrics holds configuration for run metrics export.
	Metrics metrics.Config `mapstructure:"metrics"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist; the shell environment is enough
	_ = godotenv.Load(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values and env aliases
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. CONTENTSTACK_TOKEN -> contentstack.token)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		toggleHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&config, hooks); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and register every key in Viper.
// The 'default' tag sets the default value and the optional 'env' tag lists extra
// environment variable names (comma separated) accepted for the key.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))

		if aliases := field.Tag.Get("env"); aliases != "" {
			// The canonical name comes first so it wins over legacy aliases
			names := []string{key, envName(key)}
			for _, alias := range strings.Split(aliases, ",") {
				if alias = strings.TrimSpace(alias); alias != "" {
					names = append(names, alias)
				}
			}
			_ = v.BindEnv(names...)
		}
	}
}

// envName returns the environment variable AutomaticEnv derives for key.
func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// falsy lists the spellings that switch a boolean setting off.
var falsy = map[string]struct{}{
	"":         {},
	"0":        {},
	"f":        {},
	"false":    {},
	"n":        {},
	"no":       {},
	"off":      {},
	"disabled": {},
}

// parseToggle reads a boolean setting. Any value outside falsy enables it.
func parseToggle(v string) bool {
	_, off := falsy[strings.ToLower(strings.TrimSpace(v))]
	return !off
}

// toggleHook decodes string values into bool fields with parseToggle.
func toggleHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	return parseToggle(data.(string)), nil
}
