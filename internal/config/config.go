package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	DatabaseURL string `envconfig:"DATABASE_URL" default:"sportarea.db"`
	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"1440"`
	// HTTP
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// Sweeper
	SweepIntervalSec int `envconfig:"SWEEP_INTERVAL_SEC" default:"60"`
	// Reports
	UploadsDir       string `envconfig:"UPLOADS_DIR" default:"uploads"`
	RenderTimeoutSec int    `envconfig:"RENDER_TIMEOUT_SEC" default:"15"`
}

func (c App) JWTTTL() time.Duration {
	return time.Duration(c.JWTExpireMin) * time.Minute
}

func (c App) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSec) * time.Second
}

func (c App) RenderTimeout() time.Duration {
	return time.Duration(c.RenderTimeoutSec) * time.Second
}

// Load reads .env if present, then the process environment.
func Load() (App, error) {
	_ = godotenv.Load()

	var c App
	err := envconfig.Process("", &c)
	return c, err
}
