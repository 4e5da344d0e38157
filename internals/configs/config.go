package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string

	// Rate limit domain (sliding window 60 detik, lihat helpers/ratelimit)
	RateLimitReadPerMinute  int
	RateLimitWritePerMinute int
	RateLimitDisabled       bool

	// Retensi audit log (hari)
	AuditRetentionDays int
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
	if JWTRefreshSecret == "" {
		log.Println("❌ JWT_REFRESH_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_REFRESH_SECRET berhasil dimuat.")
	}

	RateLimitReadPerMinute = GetEnvInt("RATE_LIMIT_READ_PER_MINUTE", 60)
	RateLimitWritePerMinute = GetEnvInt("RATE_LIMIT_WRITE_PER_MINUTE", 30)
	RateLimitDisabled = GetEnvBool("RATE_LIMIT_DISABLED", false)

	AuditRetentionDays = GetEnvInt("AUDIT_RETENTION_DAYS", 365)
}

// GetEnv ambil env var, string kosong kalau tidak ada
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOr ambil env var dengan fallback
func GetEnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func GetEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func GetEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
