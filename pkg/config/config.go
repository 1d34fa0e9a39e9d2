// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"detour/pkg/domain"
)

// Config - главная структура конфигурации
type Config struct {
	App     AppConfig     `koanf:"app"`
	Log     LogConfig     `koanf:"log"`
	Input   InputConfig   `koanf:"input"`
	Query   QueryConfig   `koanf:"query"`
	Output  OutputConfig  `koanf:"output"`
	Cache   CacheConfig   `koanf:"cache"`
	Metrics MetricsConfig `koanf:"metrics"`
	Tracing TracingConfig `koanf:"tracing"`
}

// AppConfig - общие настройки приложения
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`   // путь к файлу логов
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"` // количество бэкапов
	MaxAge     int    `koanf:"max_age"`     // дней
	Compress   bool   `koanf:"compress"`
}

// InputConfig - входные файлы сети
type InputConfig struct {
	EdgesPath     string `koanf:"edges_path"`     // первая строка n, далее "u v w"
	CustomersPath string `koanf:"customers_path"` // по одному id на строку
	MaxVertices   int    `koanf:"max_vertices"`   // верхняя граница n в заголовке
}

// QueryConfig - выполнение запросов
type QueryConfig struct {
	Workers int           `koanf:"workers"` // размер пула для пакетных запросов
	Timeout time.Duration `koanf:"timeout"` // на один запрос, 0 - без ограничения
}

// OutputConfig - формат результата
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, csv, xlsx
	Path   string `koanf:"path"`   // пусто - stdout
}

// CacheConfig - настройки кэширования
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Driver     string        `koanf:"driver"` // redis, memory
	Host       string        `koanf:"host"`
	Port       int           `koanf:"port"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db"`
	DefaultTTL time.Duration `koanf:"default_ttl"`
	MaxEntries int           `koanf:"max_entries"` // для in-memory
}

// Address возвращает адрес кэша
func (c CacheConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MetricsConfig - настройки Prometheus метрик
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Port      int    `koanf:"port"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// TracingConfig - настройки OpenTelemetry
type TracingConfig struct {
	Enabled     bool    `koanf:"enabled"`
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	SampleRate  float64 `koanf:"sample_rate"`
}

var (
	validLevels   = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats  = map[string]bool{"text": true, "json": true, "csv": true, "xlsx": true, "pdf": true}
	binaryFormats = map[string]bool{"xlsx": true, "pdf": true}
	validDrivers  = map[string]bool{"memory": true, "redis": true}
)

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if c.Input.MaxVertices < 1 || c.Input.MaxVertices > domain.MaxVertices {
		errs = append(errs, fmt.Sprintf("input.max_vertices must be in [1, %d], got %d", domain.MaxVertices, c.Input.MaxVertices))
	}

	if c.Query.Workers < 1 {
		errs = append(errs, fmt.Sprintf("query.workers must be positive, got %d", c.Query.Workers))
	}
	if c.Query.Timeout < 0 {
		errs = append(errs, "query.timeout must be non-negative")
	}

	if !validFormats[strings.ToLower(c.Output.Format)] {
		errs = append(errs, fmt.Sprintf("output.format must be one of: text, json, csv, xlsx, pdf, got %s", c.Output.Format))
	}
	if binaryFormats[strings.ToLower(c.Output.Format)] && c.Output.Path == "" {
		errs = append(errs, fmt.Sprintf("output.path is required for %s output", c.Output.Format))
	}

	if c.Cache.Enabled && !validDrivers[c.Cache.Driver] {
		errs = append(errs, fmt.Sprintf("cache.driver must be one of: memory, redis, got %s", c.Cache.Driver))
	}

	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		errs = append(errs, fmt.Sprintf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port))
	}

	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		errs = append(errs, fmt.Sprintf("tracing.sample_rate must be in [0, 1], got %v", c.Tracing.SampleRate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment проверяет режим разработки
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}
