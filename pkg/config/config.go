package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string `env:"SERVER_PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	JWTSecret string        `env:"JWT_SECRET" env-default:"your-secret-key"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" env-default:"24h"`

	// Hosts containing this token are considered on-platform links.
	PlatformDomain string `env:"PLATFORM_DOMAIN" env-default:"gamebazaar"`
	SeedFile       string `env:"SEED_FILE" env-default:""`

	PaymentDelay time.Duration `env:"PAYMENT_DELAY" env-default:"1500ms"`
	BidDelay     time.Duration `env:"BID_DELAY" env-default:"500ms"`

	MessageRatePerMinute int `env:"MESSAGE_RATE_PER_MINUTE" env-default:"10"`
	MessageBurst         int `env:"MESSAGE_BURST" env-default:"10"`

	TextGenURL     string        `env:"TEXTGEN_URL" env-default:""`
	TextGenAPIKey  string        `env:"TEXTGEN_API_KEY" env-default:""`
	TextGenModel   string        `env:"TEXTGEN_MODEL" env-default:"gemini-1.5-flash"`
	TextGenTimeout time.Duration `env:"TEXTGEN_TIMEOUT" env-default:"10s"`

	// OrderStore selects the administrative order mirror: "memory" or "firestore".
	OrderStore                 string `env:"ORDER_STORE" env-default:"memory"`
	FirebaseProject            string `env:"FIREBASE_PROJECT_ID" env-default:""`
	FirebaseServiceAccountPath string `env:"FIREBASE_SERVICE_ACCOUNT_PATH" env-default:""`
	FirebaseServiceAccountJSON string `env:"FIREBASE_SERVICE_ACCOUNT_JSON" env-default:""`
}

func Load() (*Config, error) {
	godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
