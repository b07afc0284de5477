package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config nilai env yang dipakai aplikasi.
type Config struct {
	Port string

	DBDriver   string // postgres | sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBURL      string // DATABASE_URL, menang atas DB_*
	SQLitePath string

	JWTSecret string
	JWTTTL    time.Duration

	LogLevel  string
	LogFormat string

	AppTimezone string
	CORSOrigins []string
}

var JWTSecret string

// =======================
// ENV LOADER
// =======================
func LoadEnv() Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		}
	}

	ttlHours, err := strconv.Atoi(GetEnv("JWT_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 24
	}

	cfg := Config{
		Port:        GetEnv("PORT", "3000"),
		DBDriver:    strings.ToLower(GetEnv("DB_DRIVER", "postgres")),
		DBHost:      GetEnv("DB_HOST", "localhost"),
		DBPort:      GetEnv("DB_PORT", "5432"),
		DBUser:      GetEnv("DB_USER"),
		DBPassword:  GetEnv("DB_PASSWORD"),
		DBName:      GetEnv("DB_NAME", "sirumah"),
		DBSSLMode:   GetEnv("DB_SSLMODE", "disable"),
		DBURL:       GetEnv("DATABASE_URL"),
		SQLitePath:  GetEnv("SQLITE_PATH", "sirumah.db"),
		JWTSecret:   GetEnv("JWT_SECRET"),
		JWTTTL:      time.Duration(ttlHours) * time.Hour,
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		LogFormat:   GetEnv("LOG_FORMAT", "json"),
		AppTimezone: GetEnv("APP_TIMEZONE", "Asia/Jakarta"),
		CORSOrigins: splitCSV(GetEnv("CORS_ORIGINS", "http://localhost:5173")),
	}
	JWTSecret = cfg.JWTSecret
	return cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
