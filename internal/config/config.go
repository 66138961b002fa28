// Package config resolves command-line settings from defaults, a .sqlcompat.yaml file,
// .env files and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Driver      string
	DatabaseURL string
	Prefetch    int
}

var (
	ErrUnknownDriver   = errors.New("unknown driver")
	ErrInvalidPrefetch = errors.New("prefetch must be positive")
)

const (
	keyDriver      = "driver"
	keyDatabaseURL = "database_url"
	keyPrefetch    = "prefetch"

	envPrefix           = "SQLCOMPAT"
	fallbackDatabaseURL = "DATABASE_URL"

	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var keys = []string{keyDriver, keyDatabaseURL, keyPrefetch}

func Load(options ...option) (Config, error) {
	var config configuration
	Options.apply(options...)(&config)

	settings := viper.New()
	settings.SetFs(config.FileSystem)
	settings.SetDefault(keyDriver, DriverPgx)
	settings.SetDefault(keyPrefetch, 50)

	if err := readConfigFile(settings, config); err != nil {
		return Config{}, err
	}

	dotenv, err := readDotEnv(config)
	if err != nil {
		return Config{}, err
	}

	lookup := func(name string) string {
		if value := config.Getenv(name); value != "" {
			return value
		}
		return dotenv[name]
	}

	for _, key := range keys {
		if value := lookup(envPrefix + "_" + strings.ToUpper(key)); value != "" {
			settings.Set(key, value)
		}
	}

	if settings.GetString(keyDatabaseURL) == "" {
		settings.Set(keyDatabaseURL, lookup(fallbackDatabaseURL))
	}

	return validate(Config{
		Driver:      settings.GetString(keyDriver),
		DatabaseURL: settings.GetString(keyDatabaseURL),
		Prefetch:    settings.GetInt(keyPrefetch),
	})
}

func readConfigFile(settings *viper.Viper, config configuration) error {
	if config.ConfigFile != "" {
		settings.SetConfigFile(config.ConfigFile)
	} else {
		settings.SetConfigName(".sqlcompat")
		settings.SetConfigType("yaml")
		settings.AddConfigPath(config.Directory)
		if config.HomeDir != "" {
			settings.AddConfigPath(config.HomeDir)
			settings.AddConfigPath(filepath.Join(config.HomeDir, ".config", "sqlcompat"))
		}
	}

	err := settings.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || (config.ConfigFile == "" && errors.As(err, &notFound)) {
		return nil
	}

	return fmt.Errorf("reading configuration: %w", err)
}

// readDotEnv merges .env and then .env.local; later files win.
func readDotEnv(config configuration) (map[string]string, error) {
	merged := make(map[string]string)

	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(config.Directory, name)

		file, err := config.FileSystem.Open(path)
		if err != nil {
			continue
		}

		values, err := godotenv.Parse(file)
		_ = file.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}

		for key, value := range values {
			merged[key] = value
		}
	}

	return merged, nil
}

func validate(config Config) (Config, error) {
	switch config.Driver {
	case DriverPgx, DriverPostgres, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownDriver, config.Driver)
	}

	if config.Prefetch <= 0 {
		return Config{}, fmt.Errorf("%w: %d", ErrInvalidPrefetch, config.Prefetch)
	}

	return config, nil
}
