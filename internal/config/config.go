package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/pkg/errors"
)

// Config captures the full configuration surface for the application.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Voice     VoiceConfig     `mapstructure:"voice"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type HTTPConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// ProviderConfig holds the telephony provider credentials and endpoints.
// Credentials are read once at startup and never mutated afterwards.
type ProviderConfig struct {
	Name            string        `mapstructure:"name"`
	AccountSID      string        `mapstructure:"account_sid"`
	AuthToken       string        `mapstructure:"auth_token"`
	FromNumber      string        `mapstructure:"from_number"`
	CallbackBaseURL string        `mapstructure:"callback_base_url"`
	APIBaseURL      string        `mapstructure:"api_base_url"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// Validate reports the first missing required credential as a configuration error.
// It is called per request, not at startup: a process with incomplete credentials
// still serves its info and webhook endpoints.
func (c ProviderConfig) Validate() error {
	switch {
	case c.AccountSID == "":
		return apperrors.Configurationf("missing TWILIO_ACCOUNT_SID")
	case c.AuthToken == "":
		return apperrors.Configurationf("missing TWILIO_AUTH_TOKEN")
	case c.FromNumber == "":
		return apperrors.Configurationf("missing TWILIO_FROM_NUMBER")
	}
	return nil
}

// VoiceConfig parameterizes the spoken prompt returned to the provider.
type VoiceConfig struct {
	VoiceName    string `mapstructure:"voice_name"`
	Language     string `mapstructure:"language"`
	Greeting     string `mapstructure:"greeting"`
	Farewell     string `mapstructure:"farewell"`
	PauseSeconds int    `mapstructure:"pause_seconds"`
	SMSReply     string `mapstructure:"sms_reply"`
}

type TelemetryConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	SampleRatio     float64       `mapstructure:"sample_ratio"`
	TracingEnabled  bool          `mapstructure:"tracing_enabled"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads configuration from file and environment variables. The file is
// optional: env-only deployments run on defaults plus the TWILIO_* variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvPrefix("GATEWAY")
	v.SetEnvKeyReplacer(NewEnvReplacer())

	setDefaults(v)
	bindProviderEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "telephonieexcel-backend")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.version", "dev")

	v.SetDefault("http.port", 5000)
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.idle_timeout", time.Minute)

	v.SetDefault("provider.name", "twilio")
	v.SetDefault("provider.api_base_url", "https://api.twilio.com")
	v.SetDefault("provider.request_timeout", 15*time.Second)

	v.SetDefault("voice.voice_name", "alice")
	v.SetDefault("voice.language", "fr-CA")
	v.SetDefault("voice.greeting", "Bonjour Michel. Ceci est un appel de test depuis l'application Excel et Twilio.")
	v.SetDefault("voice.farewell", "Tout fonctionne correctement. Au revoir et à bientôt.")
	v.SetDefault("voice.pause_seconds", 1)
	v.SetDefault("voice.sms_reply", "Merci, votre message a bien été reçu.")

	v.SetDefault("telemetry.tracing_enabled", false)
	v.SetDefault("telemetry.sample_ratio", 1.0)
	v.SetDefault("telemetry.shutdown_timeout", 5*time.Second)
}

// bindProviderEnv aliases the deployment's historical env variable names onto the
// config keys, so the process keeps working with the TWILIO_* variables alone.
func bindProviderEnv(v *viper.Viper) {
	_ = v.BindEnv("provider.account_sid", "TWILIO_ACCOUNT_SID")
	_ = v.BindEnv("provider.auth_token", "TWILIO_AUTH_TOKEN")
	_ = v.BindEnv("provider.from_number", "TWILIO_FROM_NUMBER")
	_ = v.BindEnv("provider.callback_base_url", "TWILIO_CALLBACK_BASE_URL")
	_ = v.BindEnv("http.port", "PORT")
}

// NewEnvReplacer standardizes environment variable names.
func NewEnvReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_", "-", "_")
}
