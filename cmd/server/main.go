package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/streamify/server/internal/app"
	"github.com/streamify/server/internal/catalog"
	"github.com/streamify/server/internal/domain"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	port = configVar[int]{
		envKey:       "SERVER_PORT",
		flagKey:      "port",
		defaultValue: 80,
	}
	host = configVar[string]{
		envKey:       "SERVER_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
	}
	logLevel = configVar[string]{
		envKey:       "SERVER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	catalogPath = configVar[string]{
		envKey:       "SERVER_CATALOG_PATH",
		flagKey:      "catalog-path",
		defaultValue: "",
	}
	tickInterval = configVar[time.Duration]{
		envKey:       "SERVER_TICK_INTERVAL",
		flagKey:      "tick-interval",
		defaultValue: time.Second,
	}
	playbackRates = configVar[[]float64]{
		envKey:       "SERVER_PLAYBACK_RATES",
		flagKey:      "playback-rates",
		defaultValue: domain.DefaultPlaybackRates,
	}
	qualities = configVar[[]string]{
		envKey:       "SERVER_QUALITIES",
		flagKey:      "qualities",
		defaultValue: domain.DefaultQualities,
	}
	defaultVolume = configVar[float64]{
		envKey:       "SERVER_DEFAULT_VOLUME",
		flagKey:      "default-volume",
		defaultValue: domain.DefaultVolume,
	}
	searchPageSize = configVar[int]{
		envKey:       "SERVER_SEARCH_PAGE_SIZE",
		flagKey:      "search-page-size",
		defaultValue: catalog.DefaultPageSize,
	}
	corsOrigins = configVar[[]string]{
		envKey:       "SERVER_CORS_ORIGINS",
		flagKey:      "cors-origins",
		defaultValue: []string{"*"},
	}
	shutdownTimeout = configVar[time.Duration]{
		envKey:       "SERVER_SHUTDOWN_TIMEOUT",
		flagKey:      "shutdown-timeout",
		defaultValue: 30 * time.Second,
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.Int(port.flagKey, port.defaultValue, "Server port")
	pflag.String(host.flagKey, host.defaultValue, "Server host")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.String(catalogPath.flagKey, catalogPath.defaultValue, "Catalog yaml file, the embedded sample catalog when empty")
	pflag.Duration(tickInterval.flagKey, tickInterval.defaultValue, "Playback tick interval")
	pflag.Float64Slice(playbackRates.flagKey, playbackRates.defaultValue, "Allowed playback rates")
	pflag.StringSlice(qualities.flagKey, qualities.defaultValue, "Allowed quality labels")
	pflag.Float64(defaultVolume.flagKey, defaultVolume.defaultValue, "Initial player volume")
	pflag.Int(searchPageSize.flagKey, searchPageSize.defaultValue, "Search results per page")
	pflag.StringSlice(corsOrigins.flagKey, corsOrigins.defaultValue, "Allowed CORS origins")
	pflag.Duration(shutdownTimeout.flagKey, shutdownTimeout.defaultValue, "Graceful shutdown timeout")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(port.flagKey, port.envKey)
	viper.BindEnv(host.flagKey, host.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(catalogPath.flagKey, catalogPath.envKey)
	viper.BindEnv(tickInterval.flagKey, tickInterval.envKey)
	viper.BindEnv(playbackRates.flagKey, playbackRates.envKey)
	viper.BindEnv(qualities.flagKey, qualities.envKey)
	viper.BindEnv(defaultVolume.flagKey, defaultVolume.envKey)
	viper.BindEnv(searchPageSize.flagKey, searchPageSize.envKey)
	viper.BindEnv(corsOrigins.flagKey, corsOrigins.envKey)
	viper.BindEnv(shutdownTimeout.flagKey, shutdownTimeout.envKey)

	viper.SetDefault(port.flagKey, port.defaultValue)
	viper.SetDefault(host.flagKey, host.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(catalogPath.flagKey, catalogPath.defaultValue)
	viper.SetDefault(tickInterval.flagKey, tickInterval.defaultValue)
	viper.SetDefault(playbackRates.flagKey, playbackRates.defaultValue)
	viper.SetDefault(qualities.flagKey, qualities.defaultValue)
	viper.SetDefault(defaultVolume.flagKey, defaultVolume.defaultValue)
	viper.SetDefault(searchPageSize.flagKey, searchPageSize.defaultValue)
	viper.SetDefault(corsOrigins.flagKey, corsOrigins.defaultValue)
	viper.SetDefault(shutdownTimeout.flagKey, shutdownTimeout.defaultValue)

	rates, err := getFloat64Slice(playbackRates.flagKey)
	if err != nil {
		log.Fatal(err)
	}

	config := &app.AppConfig{
		Host:            viper.GetString(host.flagKey),
		Port:            viper.GetInt(port.flagKey),
		LogLevel:        viper.GetString(logLevel.flagKey),
		CatalogPath:     viper.GetString(catalogPath.flagKey),
		TickInterval:    viper.GetDuration(tickInterval.flagKey),
		PlaybackRates:   rates,
		Qualities:       viper.GetStringSlice(qualities.flagKey),
		DefaultVolume:   viper.GetFloat64(defaultVolume.flagKey),
		SearchPageSize:  viper.GetInt(searchPageSize.flagKey),
		CORSOrigins:     viper.GetStringSlice(corsOrigins.flagKey),
		ShutdownTimeout: viper.GetDuration(shutdownTimeout.flagKey),
	}

	return config
}

// getFloat64Slice reads a float list that is either the typed default or a
// comma separated string from the environment or a flag.
func getFloat64Slice(key string) ([]float64, error) {
	switch v := viper.Get(key).(type) {
	case []float64:
		return v, nil
	case string:
		var values []float64
		for _, s := range strings.Split(strings.Trim(v, "[]"), ",") {
			value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", key, err)
			}
			values = append(values, value)
		}
		return values, nil
	default:
		return nil, fmt.Errorf("invalid %s: %v", key, v)
	}
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
