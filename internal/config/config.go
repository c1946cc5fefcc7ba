// internal/config/config.go
package config

import (
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Analysis AnalysisConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type AppConfig struct {
	DataDir     string
	ChargesFile string
	StockFile   string
	SalesFile   string
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

// AnalysisConfig carries the business rules of the aggregation engine. The
// block-lists and the outlier threshold are configuration, not literals, so the
// same engine can run with different rules (see exclusion filter docs).
type AnalysisConfig struct {
	ExcludedExporters  []string
	ExcludedCategories []string
	OutlierStdDevs     float64
	TopVarieties       int
	CategoryGroups     map[string][]string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("APP_DATA_DIR", "./data")
		viper.SetDefault("APP_CHARGES_FILE", "charges.csv")
		viper.SetDefault("APP_STOCK_FILE", "stock.csv")
		viper.SetDefault("APP_SALES_FILE", "sales_by_lot.json")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 60)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "")
		viper.SetDefault("STORAGE_REGION", "us-east-1")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("STORAGE_PREFIX", "exports/")
		viper.SetDefault("ANALYSIS_EXCLUDED_EXPORTERS", []string{"Videxport", "VIDEXPORT", "Del Monte"})
		viper.SetDefault("ANALYSIS_EXCLUDED_CATEGORIES", []string{"GROWER ADVANCES"})
		viper.SetDefault("ANALYSIS_OUTLIER_STDDEVS", 2.0)
		viper.SetDefault("ANALYSIS_TOP_VARIETIES", 10)
		viper.SetDefault("ANALYSIS_CATEGORY_GROUPS", "Repacking=PACKING MATERIALS|REPACKING CHARGES")

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			App: AppConfig{
				DataDir:     viper.GetString("APP_DATA_DIR"),
				ChargesFile: viper.GetString("APP_CHARGES_FILE"),
				StockFile:   viper.GetString("APP_STOCK_FILE"),
				SalesFile:   viper.GetString("APP_SALES_FILE"),
			},
			Cache: CacheConfig{
				Enabled:             viper.GetBool("CACHE_ENABLED"),
				RedisURL:            viper.GetString("REDIS_URL"),
				RedisHost:           viper.GetString("REDIS_HOST"),
				RedisPort:           viper.GetString("REDIS_PORT"),
				RedisPassword:       viper.GetString("REDIS_PASSWORD"),
				RedisDB:             viper.GetInt("REDIS_DB"),
				DashboardTTLSeconds: viper.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Region:    viper.GetString("STORAGE_REGION"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
				Prefix:    viper.GetString("STORAGE_PREFIX"),
			},
			Analysis: AnalysisConfig{
				ExcludedExporters:  viper.GetStringSlice("ANALYSIS_EXCLUDED_EXPORTERS"),
				ExcludedCategories: viper.GetStringSlice("ANALYSIS_EXCLUDED_CATEGORIES"),
				OutlierStdDevs:     viper.GetFloat64("ANALYSIS_OUTLIER_STDDEVS"),
				TopVarieties:       viper.GetInt("ANALYSIS_TOP_VARIETIES"),
				CategoryGroups:     parseCategoryGroups(viper.GetString("ANALYSIS_CATEGORY_GROUPS")),
			},
		}
	})

	return instance
}

// parseCategoryGroups parses "Name=CAT A|CAT B;Other=CAT C" into a group table.
// Malformed entries are skipped.
func parseCategoryGroups(raw string) map[string][]string {
	groups := make(map[string][]string)
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, cats, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		var members []string
		for _, c := range strings.Split(cats, "|") {
			c = strings.TrimSpace(c)
			if c != "" {
				members = append(members, c)
			}
		}
		if len(members) > 0 {
			groups[name] = members
		}
	}
	return groups
}
