package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	JWTSecret               string

	// Single authoritative suspension policy consumed by every suspend path
	SuspensionDuration time.Duration

	// Post creation rate limit: PostRateCount posts per PostRateWindow per user
	PostRateCount  int
	PostRateWindow time.Duration

	// Image storage: "local" or "s3"
	StorageMode     string
	UploadDir       string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3Region        string
	S3PublicURL     string
	S3UseSSL        bool
	WatermarkText   string

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		SuspensionDuration:      getDuration("SUSPENSION_DURATION", 168*time.Hour),
		PostRateCount:           getInt("POST_RATE_COUNT", 3),
		PostRateWindow:          getDuration("POST_RATE_WINDOW", 5*time.Minute),
		StorageMode:             getEnv("STORAGE_MODE", "local"),
		UploadDir:               getEnv("UPLOAD_DIR", "./uploads"),
		S3Endpoint:              getEnv("S3_ENDPOINT", ""),
		S3AccessKey:             getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:             getEnv("S3_SECRET_KEY", ""),
		S3Bucket:                getEnv("S3_BUCKET", "protecture-images"),
		S3Region:                getEnv("S3_REGION", ""),
		S3PublicURL:             getEnv("S3_PUBLIC_URL", ""),
		S3UseSSL:                getBool("S3_USE_SSL", true),
		WatermarkText:           getEnv("WATERMARK_TEXT", "protecture"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogPath:                 getEnv("LOG_PATH", ""),
		LogMaxSizeMB:            getInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:           getInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:           getInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:             getBool("LOG_COMPRESS", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
