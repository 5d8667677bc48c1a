package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile    = ".env"
	defaultListenAddr = "127.0.0.1:8000"
	defaultServerURL  = "http://localhost:8000"
	defaultSessionTTL = 24 * time.Hour
)

type Server struct {
	ListenAddr  string
	JWTSecret   string
	DBDriver    string
	DBDSN       string
	MongoURI    string
	MongoDBName string
	RedisAddr   string
	RedisPass   string
	CORSOrigins []string
	SessionTTL  time.Duration
	LogLevel    string
}

type Client struct {
	ServerURL string
	LogLevel  string
	// CookieFile keeps the session cookie between runs. Empty means the
	// session lives only as long as the process.
	CookieFile string
}

// loadEnv reads the file named by ENV_FILE (or .env) into the environment.
// A missing default file is not an error; a missing explicit one is.
func loadEnv() error {
	file := os.Getenv("ENV_FILE")
	explicit := file != ""
	if !explicit {
		file = defaultEnvFile
	}
	if err := godotenv.Load(file); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("env file %s: %w", file, err)
	}
	return nil
}

func LoadServer() (Server, error) {
	if err := loadEnv(); err != nil {
		return Server{}, err
	}

	cfg := Server{
		ListenAddr:  getenv("LISTEN_ADDR", defaultListenAddr),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		DBDriver:    getenv("DB_DRIVER", "sqlite3"),
		DBDSN:       getenv("DB_DSN", "vehicledb.sqlite"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDBName: getenv("MONGO_DB_NAME", "vehicledb"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:8080,http://127.0.0.1:8080")),
		SessionTTL:  defaultSessionTTL,
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return Server{}, errors.New("JWT_SECRET is not set in environment")
	}
	if cfg.DBDriver != "sqlite3" && cfg.DBDriver != "mysql" {
		return Server{}, fmt.Errorf("DB_DRIVER %q is not supported", cfg.DBDriver)
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return Server{}, fmt.Errorf("SESSION_TTL %q is not a positive duration", ttl)
		}
		cfg.SessionTTL = d
	}

	return cfg, nil
}

func LoadClient() (Client, error) {
	if err := loadEnv(); err != nil {
		return Client{}, err
	}
	return Client{
		ServerURL:  strings.TrimRight(getenv("VEHICLEDB_URL", defaultServerURL), "/"),
		LogLevel:   getenv("LOG_LEVEL", "warn"),
		CookieFile: getenv("VEHICLEDB_COOKIES", defaultCookieFile()),
	}, nil
}

func defaultCookieFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vehicledb", "cookies.json")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
