package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	BaseURL string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret   string
	JWTTTLHours int

	// Redis is optional; when unset the rate limiter falls back to an
	// in-memory store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	UploadDir string

	// Default per-unit electricity rate used when the admin does not
	// supply one with a meter reading.
	ElectricityUnitRate float64
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	ttl, _ := strconv.Atoi(os.Getenv("JWT_TTL_HOURS"))
	if ttl == 0 {
		ttl = 150 * 24 // tokens last ~150 days by default
	}
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	unitRate, _ := strconv.ParseFloat(os.Getenv("ELECTRICITY_UNIT_RATE"), 64)
	if unitRate == 0 {
		unitRate = 8
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	return &Config{
		Port:    port,
		BaseURL: baseURL,

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTTTLHours: ttl,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		UploadDir: uploadDir,

		ElectricityUnitRate: unitRate,
	}
}
