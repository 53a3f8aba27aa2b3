package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string
	DBPath      string
	RecentLimit int
	FarmName    string
	LogoPath    string
	FontPath    string
	Export      ExportConfig
}

// ExportConfig selects where generated workbooks and documents are kept.
type ExportConfig struct {
	Driver      string // fs|memory|s3
	Dir         string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3Prefix    string
	S3PathStyle bool
}

func Load() (AppConfig, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}
	return FromLookup(os.Getenv)
}

// FromLookup builds the config from any key lookup; Load uses the process environment.
func FromLookup(lookup func(string) string) (AppConfig, error) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(lookup(k)); v != "" {
			return v
		}
		return def
	}

	limit, err := strconv.Atoi(get("RECENT_LIMIT", "10"))
	if err != nil || limit <= 0 {
		return AppConfig{}, fmt.Errorf("RECENT_LIMIT must be a positive integer, got %q", lookup("RECENT_LIMIT"))
	}

	cfg := AppConfig{
		Port:        get("PORT", "8080"),
		DBPath:      get("DB_PATH", "cattle_farm.db"),
		RecentLimit: limit,
		FarmName:    get("FARM_NAME", "EverGraze Farms"),
		LogoPath:    get("LOGO_PATH", "static/logo.png"),
		FontPath:    get("PDF_FONT_PATH", ""),
		Export: ExportConfig{
			Driver:      strings.ToLower(get("EXPORT_DRIVER", "fs")),
			Dir:         get("EXPORT_DIR", "static"),
			S3Bucket:    get("EXPORT_S3_BUCKET", ""),
			S3Region:    get("EXPORT_S3_REGION", "us-east-1"),
			S3Endpoint:  get("EXPORT_S3_ENDPOINT", ""),
			S3Prefix:    get("EXPORT_S3_PREFIX", "exports/"),
			S3PathStyle: get("EXPORT_S3_PATH_STYLE", "false") == "true",
		},
	}

	switch cfg.Export.Driver {
	case "fs", "memory":
	case "s3":
		if cfg.Export.S3Bucket == "" {
			return AppConfig{}, fmt.Errorf("EXPORT_S3_BUCKET is required for the s3 export driver")
		}
	default:
		return AppConfig{}, fmt.Errorf("unknown EXPORT_DRIVER %q (use fs, memory or s3)", cfg.Export.Driver)
	}

	log.Printf("[cfg] port=%s db=%s export=%s recent=%d", cfg.Port, cfg.DBPath, cfg.Export.Driver, cfg.RecentLimit)
	return cfg, nil
}
