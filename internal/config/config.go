package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Mongo struct {
	URI            string        `yaml:"MONGODB_URI" env:"MONGODB_URI" env-required:"true"`
	Database       string        `yaml:"MONGODB_DATABASE" env:"MONGODB_DATABASE" env-default:"storefront"`
	ConnectTimeout time.Duration `yaml:"MONGODB_CONNECT_TIMEOUT" env:"MONGODB_CONNECT_TIMEOUT" env-default:"5s"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Cloudinary struct {
	CloudName string `yaml:"CLOUDINARY_CLOUD_NAME" env:"CLOUDINARY_CLOUD_NAME" env-required:"true"`
	APIKey    string `yaml:"CLOUDINARY_API_KEY" env:"CLOUDINARY_API_KEY" env-required:"true"`
	APISecret string `yaml:"CLOUDINARY_API_SECRET" env:"CLOUDINARY_API_SECRET" env-required:"true"`
	Folder    string `yaml:"CLOUDINARY_FOLDER" env:"CLOUDINARY_FOLDER" env-default:"products"`
}

type Upload struct {
	MaxImageBytes int64 `yaml:"MAX_IMAGE_BYTES" env:"MAX_IMAGE_BYTES" env-default:"10485760"`
	MaxImages     int   `yaml:"MAX_IMAGES" env:"MAX_IMAGES" env-default:"3"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"development"`
	HTTPServer   `yaml:"http_server"`
	Mongo        Mongo        `yaml:"mongo"`
	RedisConnect RedisConnect `yaml:"redis"`
	Cloudinary   Cloudinary   `yaml:"cloudinary"`
	Upload       Upload       `yaml:"upload"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		r.Username, r.Password, r.Host, r.Port, r.DB)
}
