package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	App        App
	Database   Database
	JobAPI     JobAPI
	Session    Session
	Redis      Redis
}

type HTTPServer struct {
	Address string
	Port    int
}

// App carries the externally visible identity of this deployment. URL is used
// by the API client to decide whether a configured API base URL points back at
// this same application.
type App struct {
	URL  string
	Seed bool
}

type Database struct {
	Username string
	Password string
	Host     string
	Port     string
	DbName   string
	SSLMode  string
}

// JobAPI points the web layer at the job postings API. An empty BaseURL means
// the API is served by this same process and calls are dispatched in-process.
type JobAPI struct {
	BaseURL string
}

type Session struct {
	CookieName string
	TTLMinutes int
	// Store selects the session backend: "redis" or "memory".
	Store string
}

type Redis struct {
	Address  string
	Port     int
	Password string
	DB       int
}

func MustLoad() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("env", "dev")

	viper.SetDefault("http_server.address", "0.0.0.0")
	viper.SetDefault("http_server.port", 8080)

	viper.SetDefault("app.url", "http://localhost:8080")
	viper.SetDefault("app.seed", false)

	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.db_name", "jobboard")
	viper.SetDefault("database.ssl_mode", "disable")

	viper.SetDefault("job_api.base_url", "")

	viper.SetDefault("session.cookie_name", "jobboard_session")
	viper.SetDefault("session.ttl_minutes", 120)
	viper.SetDefault("session.store", "memory")

	viper.SetDefault("redis.address", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Error reading config file: %s", err)
			os.Exit(1)
		}
	}

	config := &Config{
		Env: viper.GetString("env"),
		HTTPServer: HTTPServer{
			Address: viper.GetString("http_server.address"),
			Port:    viper.GetInt("http_server.port"),
		},
		App: App{
			URL:  viper.GetString("app.url"),
			Seed: viper.GetBool("app.seed"),
		},
		Database: Database{
			Username: viper.GetString("database.username"),
			Password: viper.GetString("database.password"),
			Host:     viper.GetString("database.host"),
			Port:     viper.GetString("database.port"),
			DbName:   viper.GetString("database.db_name"),
			SSLMode:  viper.GetString("database.ssl_mode"),
		},
		JobAPI: JobAPI{
			BaseURL: viper.GetString("job_api.base_url"),
		},
		Session: Session{
			CookieName: viper.GetString("session.cookie_name"),
			TTLMinutes: viper.GetInt("session.ttl_minutes"),
			Store:      viper.GetString("session.store"),
		},
		Redis: Redis{
			Address:  viper.GetString("redis.address"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
	}

	return config
}
