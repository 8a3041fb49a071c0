package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config agrupa toda la configuración del servicio.
// Capas (precedencia creciente): defaults -> config.yaml opcional -> env vars.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	AI        AIConfig        `koanf:"ai"`
	Reminders RemindersConfig `koanf:"reminders"`
	Logging   LoggingConfig   `koanf:"logging"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type DatabaseConfig struct {
	// DSN de Postgres. Vacío => repos in-memory (modo dev).
	DSN string `koanf:"dsn"`
}

type AuthConfig struct {
	// Secret para firmar tokens HS256. Obligatorio fuera de modo dev.
	Secret string `koanf:"secret"`
	// TokenTTLHours es la vigencia del token de sesión.
	TokenTTLHours int `koanf:"token_ttl_hours"`
}

type AIConfig struct {
	// Claves opcionales; sin ninguna, el gateway queda no-funcional
	// pero el servidor arranca igual.
	OpenAIKey       string `koanf:"openai_key"`
	OpenAIBaseURL   string `koanf:"openai_base_url"`
	OpenAIModel     string `koanf:"openai_model"`
	AnthropicKey    string `koanf:"anthropic_key"`
	AnthropicModel  string `koanf:"anthropic_model"`
	DefaultProvider string `koanf:"default_provider"`
}

type RemindersConfig struct {
	// Hour es la hora local (0-23) del scan diario.
	Hour int `koanf:"hour"`
	// Ventanas de aviso; ver internal/domain/schedule.
	LookaheadScanDays          int `koanf:"lookahead_scan_days"`
	DashboardEventsDays        int `koanf:"dashboard_events_days"`
	DashboardVaccinationMonths int `koanf:"dashboard_vaccination_months"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug|info|warn|error
	Format string `koanf:"format"` // console|json
}

func defaults() Config {
	return Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{DSN: ""},
		Auth:     AuthConfig{TokenTTLHours: 24},
		AI: AIConfig{
			OpenAIModel:     "gpt-4o-mini",
			AnthropicModel:  "claude-3-5-haiku-latest",
			DefaultProvider: "",
		},
		Reminders: RemindersConfig{
			Hour:                       8,
			LookaheadScanDays:          7,
			DashboardEventsDays:        30,
			DashboardVaccinationMonths: 3,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load arma la configuración con koanf.
// Env vars: PAWCARE_<SECCION>_<CAMPO>, p.ej. PAWCARE_DATABASE_DSN,
// PAWCARE_AUTH_SECRET, PAWCARE_AI_OPENAI_KEY, PAWCARE_SERVER_PORT.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("config defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("PAWCARE_", ".", func(s string) string {
		// PAWCARE_AI_OPENAI_KEY -> ai.openai_key
		s = strings.ToLower(strings.TrimPrefix(s, "PAWCARE_"))
		parts := strings.SplitN(s, "_", 2)
		if len(parts) != 2 {
			return s
		}
		return parts[0] + "." + parts[1]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Reminders.Hour < 0 || c.Reminders.Hour > 23 {
		return fmt.Errorf("invalid reminders hour %d", c.Reminders.Hour)
	}
	if c.Reminders.LookaheadScanDays <= 0 ||
		c.Reminders.DashboardEventsDays <= 0 ||
		c.Reminders.DashboardVaccinationMonths <= 0 {
		return fmt.Errorf("reminder windows must be positive")
	}
	// DSN presente exige secret; en modo dev (sin DSN) se tolera vacío.
	if strings.TrimSpace(c.Database.DSN) != "" && strings.TrimSpace(c.Auth.Secret) == "" {
		return fmt.Errorf("auth secret is required when a database dsn is set")
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv("PAWCARE_CONFIG"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range []string{"config.yaml", "/etc/pawcare/config.yaml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
