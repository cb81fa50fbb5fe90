package config

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
)

type GilasAI struct {
	ApiKey          string `env:"GILAS_API_KEY"`
	ApiUrl          string `env:"GILAS_API_URL" envDefault:"https://api.gilas.io/v1/chat/completions"`
	Model           string `env:"GILAS_GPT_MODEL" envDefault:"gpt-3.5-turbo"`
	MaxPromptTokens int    `env:"GILAS_MAX_PROMPT_TOKENS" envDefault:"256"`
}

// Enabled reports whether chat questions may be forwarded to the model.
func (g GilasAI) Enabled() bool {
	return g.ApiKey != ""
}

type Firebase struct {
	Type                    string        `env:"FIREBASE_TYPE,required" json:"type"`
	ProjectId               string        `env:"FIREBASE_PROJECT_ID,required" json:"project_id"`
	PrivateKeyId            string        `env:"FIREBASE_PRIVATE_KEY_ID,required" json:"private_key_id"`
	PrivateKey              string        `env:"FIREBASE_PRIVATE_KEY,required" json:"private_key"`
	ClientEmail             string        `env:"FIREBASE_CLIENT_EMAIL,required" json:"client_email"`
	ClientId                string        `env:"FIREBASE_CLIENT_ID,required" json:"client_id"`
	AuthUri                 string        `env:"FIREBASE_AUTH_URI,required" json:"auth_uri"`
	TokenUri                string        `env:"FIREBASE_TOKEN_URI,required" json:"token_uri"`
	AuthProviderX509CertUrl string        `env:"FIREBASE_AUTH_PROVIDER_X509_CERT_URL,required" json:"auth_provider_x509_cert_url"`
	ClientX509CertUrl       string        `env:"FIREBASE_CLIENT_X509_CERT_URL,required" json:"client_x509_cert_url"`
	WebApiKey               string        `env:"FIREBASE_WEB_API_KEY,required" json:"-"`
	WriteTimeoutSecond      time.Duration `env:"FIREBASE_WRITE_TIMEOUT_SECOND" json:"-"`
}

type Account struct {
	Email    string `env:"SMARTSHOP_EMAIL,required"`
	Password string `env:"SMARTSHOP_PASSWORD,required"`
	Register bool   `env:"SMARTSHOP_REGISTER"`
}

type Export struct {
	Dir string `env:"EXPORT_DIR" envDefault:"SmartShop_Exports"`
}

type Chat struct {
	TypingDelay time.Duration `env:"CHAT_TYPING_DELAY" envDefault:"800ms"`
}

type Log struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"10"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
}

type Metrics struct {
	Addr string `env:"METRICS_ADDR"`
}

type Config struct {
	GilasAI
	Firebase
	Account
	Export
	Chat
	Log
	Metrics
}

func Load() (Config, error) {
	var config *Config = new(Config)
	if err := env.Parse(config); err != nil {
		return Config{}, err
	}

	if err := config.normalize(); err != nil {
		return Config{}, err
	}
	return *config, nil
}

// LoadSection parses a single configuration group, ignoring the variables of the others.
func LoadSection[T any]() (T, error) {
	var section T
	err := env.Parse(&section)
	return section, err
}

func LoadConfigOrPanic() Config {
	config, err := Load()
	if err != nil {
		panic(err)
	}
	return config
}

func (c *Config) normalize() error {

	decodedBytes, err := base64.StdEncoding.DecodeString(c.Firebase.PrivateKey)
	if err != nil {
		return fmt.Errorf("FIREBASE_PRIVATE_KEY: %w", err)
	}
	c.Firebase.PrivateKey = string(decodedBytes)
	c.Firebase.PrivateKey = strings.ReplaceAll(c.Firebase.PrivateKey, "\\n", "\n")

	if c.WriteTimeoutSecond == 0 {
		c.WriteTimeoutSecond = time.Second * 30
	}

	if c.MaxPromptTokens <= 0 {
		c.MaxPromptTokens = 256
	}

	return nil
}
