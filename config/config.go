package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	Port    string `envconfig:"PORT" default:"8083"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`
	// DB
	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"host=localhost user=postgres password=postgres dbname=coffeeshop port=5432 sslmode=disable"`
	// CORS, comma separated; http://localhost:3000 is always allowed
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS"`
	// JWT
	JWTSecret       string        `envconfig:"JWT_SECRET" default:"coffeeshop"`
	JWTAccessTTL    time.Duration `envconfig:"JWT_ACCESS_TTL" default:"15m"`
	JWTRefreshTTL   time.Duration `envconfig:"JWT_REFRESH_TTL" default:"12h"`
	ImagesDir       string        `envconfig:"IMAGES_DIR" default:"./uploads/coffee"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (App, error) {
	_ = godotenv.Load()

	var c App
	err := envconfig.Process("", &c)
	return c, err
}

func (c App) Release() bool {
	return c.GinMode == "release"
}

func (c App) Origins() []string {
	origins := []string{"http://localhost:3000"}
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
