package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver      string
	DBSource      string
	Port          string
	JWTSecret     string
	JWTTTL        time.Duration
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBSource:      getEnv("DB_SOURCE", "grestaurants.db"),
		Port:          getEnv("PORT", "8000"),
		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
		JWTTTL:        time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("bad %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
