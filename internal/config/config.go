package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	LLM struct {
		Provider string `mapstructure:"provider"`
	} `mapstructure:"llm"`
	Gemini struct {
		APIKey string `mapstructure:"api_key"`
		Model  string `mapstructure:"model"`
	} `mapstructure:"gemini"`
	OpenAI struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
		Model   string `mapstructure:"model"`
	} `mapstructure:"openai"`
	Ollama struct {
		Host  string `mapstructure:"host"`
		Model string `mapstructure:"model"`
	} `mapstructure:"ollama"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
	Cache struct {
		PortfolioTTL time.Duration `mapstructure:"portfolio_ttl"`
	} `mapstructure:"cache"`
}

// LoadConfig reads .env, then config.yaml from the given paths (default "."), then the environment.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, strings.TrimSuffix(p, "/")+"/.env")
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = bindEnv(v); err != nil {
		return cfg, err
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Kafka.Brokers = splitBrokers(cfg.Kafka.Brokers)
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	err = validate(cfg)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("auth.token_lifespan", "24h")
	v.SetDefault("kafka.group_id", "portfolio-cache-invalidator")
	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("ollama.model", "phi3:mini")
	v.SetDefault("cache.portfolio_ttl", "10m")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"app.port":              "APP_PORT",
		"app.env":               "APP_ENV",
		"db.dsn":                "DB_DSN",
		"redis.addr":            "REDIS_ADDR",
		"redis.password":        "REDIS_PASSWORD",
		"kafka.brokers":         "KAFKA_BROKERS",
		"kafka.group_id":        "KAFKA_GROUP_ID",
		"auth.jwt_secret":       "JWT_SECRET",
		"auth.token_lifespan":   "TOKEN_LIFESPAN",
		"cloudinary.cloud_name": "CLOUDINARY_CLOUD_NAME",
		"cloudinary.api_key":    "CLOUDINARY_API_KEY",
		"cloudinary.api_secret": "CLOUDINARY_API_SECRET",
		"llm.provider":          "LLM_PROVIDER",
		"gemini.api_key":        "GEMINI_API_KEY",
		"gemini.model":          "GEMINI_MODEL",
		"openai.api_key":        "OPENAI_API_KEY",
		"openai.base_url":       "OPENAI_BASE_URL",
		"openai.model":          "OPENAI_MODEL",
		"ollama.host":           "OLLAMA_HOST",
		"ollama.model":          "OLLAMA_MODEL",
		"jaeger.otlp_endpoint":  "JAEGER_OTLP_ENDPOINT",
		"cache.portfolio_ttl":   "CACHE_PORTFOLIO_TTL",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}
	return nil
}

// splitBrokers accepts both a YAML list and a comma separated KAFKA_BROKERS value.
func splitBrokers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, b := range strings.Split(item, ",") {
			if b = strings.TrimSpace(b); b != "" {
				out = append(out, b)
			}
		}
	}
	return out
}

func validate(cfg Config) error {
	if cfg.App.Port == "" {
		return errors.New("app port is required")
	}
	switch cfg.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
	if cfg.Cache.PortfolioTTL < 0 {
		return errors.New("cache portfolio ttl must not be negative")
	}
	return nil
}
