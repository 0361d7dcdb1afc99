package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port           string
	DatabaseDSN    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	KafkaBrokers   string
	UserServiceURL string
	TokenSecret    string
	// Argon2id parameters for share link lock passwords. Injected into the
	// hasher at construction instead of read from ambient process state.
	HashTime    uint32
	HashMemory  uint32
	HashThreads uint8
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=bookmarks port=5432 sslmode=disable"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		KafkaBrokers:   getEnv("KAFKA_BROKERS", "localhost:9092"),
		UserServiceURL: getEnv("USER_SERVICE_URL", "http://localhost:4000/graphql"),
		TokenSecret:    getEnv("ACCESS_TOKEN_SECRET", ""),
		HashTime:       uint32(getEnvInt("HASH_TIME", 3)),
		HashMemory:     uint32(getEnvInt("HASH_MEMORY_KIB", 64*1024)),
		HashThreads:    uint8(getEnvInt("HASH_THREADS", 4)),
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
