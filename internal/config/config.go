package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MongoURI       string
	MongoDatabase  string
	ConnectTimeout time.Duration
	ServerPort     int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	Bucket         string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	JWTSecret string
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	viper.SetDefault("MONGO_DATABASE", "blog")
	viper.SetDefault("MONGO_CONNECT_TIMEOUT", 10)
	viper.SetDefault("MEDIA_BUCKET", "blog-media")
	viper.SetDefault("CACHE_TTL", 3600)

	if !viper.IsSet("MONGO_URI") {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}
	if !viper.IsSet("MINIO_ENDPOINT") {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required")
	}
	if !viper.IsSet("MINIO_ACCESS_KEY") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY is required")
	}
	if !viper.IsSet("MINIO_SECRET_KEY") {
		return nil, fmt.Errorf("MINIO_SECRET_KEY is required")
	}

	return &Settings{
		MongoURI:       viper.GetString("MONGO_URI"),
		MongoDatabase:  viper.GetString("MONGO_DATABASE"),
		ConnectTimeout: time.Duration(viper.GetInt("MONGO_CONNECT_TIMEOUT")) * time.Second,
		ServerPort:     viper.GetInt("SERVER_PORT"),
		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		Bucket:         viper.GetString("MEDIA_BUCKET"),
		RedisAddr:      viper.GetString("REDIS_ADDR"),
		RedisPassword:  viper.GetString("REDIS_PASSWORD"),
		CacheTTL:       time.Duration(viper.GetInt("CACHE_TTL")) * time.Second,
		JWTSecret:      viper.GetString("JWT_SECRET"),
	}, nil
}
