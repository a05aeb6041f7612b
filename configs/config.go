package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	Env            string
	MongoURI       string
	MongoDBName    string
	MongoDBTest    string
	RedisHost      string
	RedisPort      int
	JWTSecret      string
	JWTExpireHours int
}

func LoadConfig() Config {
	// Muat file .env
	if err := godotenv.Load(); err != nil {
		// Hanya log jika tidak dalam mode test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 3000
	}

	redisPort, err := strconv.Atoi(os.Getenv("REDIS_PORT"))
	if err != nil {
		redisPort = 6379
	}

	// Masa berlaku token JWT dalam jam, default 7 hari
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 168
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	dbName := os.Getenv("MONGO_DB_NAME")
	if dbName == "" {
		dbName = "taskify"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}

	return Config{
		Port:           port,
		Env:            os.Getenv("APP_ENV"),
		MongoURI:       mongoURI,
		MongoDBName:    dbName,
		MongoDBTest:    os.Getenv("MONGO_DB_NAME_TEST"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      redisPort,
		JWTSecret:      secret,
		JWTExpireHours: expireHours,
	}
}

// IsProduction menentukan apakah aplikasi berjalan di production,
// dipakai untuk flag Secure pada cookie.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
