package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	// Upstream Tike backend.
	APIBaseURL string
	APIToken   string

	// Guest session tokens handed to the web client.
	SessionSecret string
	SessionTTL    time.Duration

	// Mobile-money gateway callback credentials (optional).
	GatewayUsername  string
	GatewayAccountNo string
	GatewayPassword  string

	// Timer / polling tuning.
	PaymentDeadline time.Duration
	PollAttempts    int
	PollInterval    time.Duration

	RedisAddr string
}

func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	apiBase := strings.TrimSpace(os.Getenv("TIKE_API_URL"))
	if apiBase == "" {
		apiBase = "http://localhost:9000/apis/"
	}

	secret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	return Env{
		AppAddr:          appAddr,
		GinMode:          strings.TrimSpace(os.Getenv("GIN_MODE")),
		APIBaseURL:       apiBase,
		APIToken:         strings.TrimSpace(os.Getenv("TIKE_API_TOKEN")),
		SessionSecret:    secret,
		SessionTTL:       envDuration("SESSION_TTL", 24*time.Hour),
		GatewayUsername:  strings.TrimSpace(os.Getenv("GATEWAY_USERNAME")),
		GatewayAccountNo: strings.TrimSpace(os.Getenv("GATEWAY_ACCOUNT_NO")),
		GatewayPassword:  strings.TrimSpace(os.Getenv("GATEWAY_PASSWORD")),
		PaymentDeadline:  envDuration("PAYMENT_DEADLINE", 60*time.Second),
		PollAttempts:     envInt("PAYMENT_POLL_ATTEMPTS", 50),
		PollInterval:     envDuration("PAYMENT_POLL_INTERVAL", 12*time.Second),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
	}
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
