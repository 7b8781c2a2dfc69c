package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration. Values come from
// environment variables (DISPO_ prefix) with a YAML file filling in
// anything the environment left at its zero value.
type Config struct {
	Sources  SourcesConfig  `yaml:"sources" envconfig:"SOURCES"`
	Calendar CalendarConfig `yaml:"calendar" envconfig:"CALENDAR"`
	Telegram TelegramConfig `yaml:"telegram" envconfig:"TELEGRAM"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// SourcesConfig locates the two disposal feeds and bounds outbound traffic.
type SourcesConfig struct {
	TWSEURL   string        `yaml:"twse_url" envconfig:"TWSE_URL" default:"https://www.twse.com.tw/rwd/zh/announcement/punish?response=json" validate:"required,url"`
	TPExURL   string        `yaml:"tpex_url" envconfig:"TPEX_URL" default:"https://www.tpex.org.tw/web/stock/margin_trading/disposal/disposal_result.php?l=zh-tw&response=json" validate:"required,url"`
	Timeout   time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"15s" validate:"gt=0"`
	RatePerS  float64       `yaml:"rate_per_s" envconfig:"RATE_PER_S" default:"1"`
	Burst     int           `yaml:"burst" envconfig:"BURST" default:"2"`
	UserAgent string        `yaml:"user_agent" envconfig:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64)"`
}

// CalendarConfig locates the holiday table consumed by the trading calendar.
type CalendarConfig struct {
	HolidayFile string `yaml:"holiday_file" envconfig:"HOLIDAY_FILE" default:"data/holidays.yaml"`
}

// TelegramConfig carries notification credentials. Both fields empty means
// notification is disabled; exactly one empty is a configuration error.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token" envconfig:"BOT_TOKEN"`
	ChatID   string `yaml:"chat_id" envconfig:"CHAT_ID"`
	APIBase  string `yaml:"api_base" envconfig:"API_BASE" default:"https://api.telegram.org"`
}

// Enabled reports whether a notification target is fully configured.
func (c TelegramConfig) Enabled() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// ServerConfig contains HTTP server configuration for the web binary.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/dispocli.log"`
}

// PathsConfig contains file system paths for run artifacts.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
}

// Load builds the configuration from environment variables, overlays the
// config file for anything the environment left unset, then validates.
// The file path comes from DISPO_CONFIG_FILE, defaulting to config.yaml in
// the working directory; a missing file is not an error.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("DISPO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := os.Getenv("DISPO_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = merge(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct tags plus the
// cross-field Telegram rule.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram bot_token and chat_id must be set together")
	}
	return nil
}

// EnsureDirectories creates the artifact directories if needed.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.ReportsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge overlays env values on top of file values; an env field left at
// its zero value falls back to the file.
func merge(file, env Config) Config {
	if env.Sources.TWSEURL == "" {
		env.Sources.TWSEURL = file.Sources.TWSEURL
	}
	if env.Sources.TPExURL == "" {
		env.Sources.TPExURL = file.Sources.TPExURL
	}
	if env.Sources.Timeout == 0 {
		env.Sources.Timeout = file.Sources.Timeout
	}
	if env.Sources.RatePerS == 0 {
		env.Sources.RatePerS = file.Sources.RatePerS
	}
	if env.Sources.Burst == 0 {
		env.Sources.Burst = file.Sources.Burst
	}
	if env.Sources.UserAgent == "" {
		env.Sources.UserAgent = file.Sources.UserAgent
	}
	if env.Calendar.HolidayFile == "" {
		env.Calendar.HolidayFile = file.Calendar.HolidayFile
	}
	if env.Telegram.BotToken == "" {
		env.Telegram.BotToken = file.Telegram.BotToken
	}
	if env.Telegram.ChatID == "" {
		env.Telegram.ChatID = file.Telegram.ChatID
	}
	if env.Telegram.APIBase == "" {
		env.Telegram.APIBase = file.Telegram.APIBase
	}
	if env.Server.Port == 0 {
		env.Server.Port = file.Server.Port
	}
	if env.Server.ReadTimeout == 0 {
		env.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if env.Server.WriteTimeout == 0 {
		env.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if env.Server.IdleTimeout == 0 {
		env.Server.IdleTimeout = file.Server.IdleTimeout
	}
	if env.Server.ShutdownTimeout == 0 {
		env.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if env.Logging.Level == "" {
		env.Logging.Level = file.Logging.Level
	}
	if env.Logging.Format == "" {
		env.Logging.Format = file.Logging.Format
	}
	if env.Logging.Output == "" {
		env.Logging.Output = file.Logging.Output
	}
	if env.Logging.FilePath == "" {
		env.Logging.FilePath = file.Logging.FilePath
	}
	if env.Paths.DataDir == "" {
		env.Paths.DataDir = file.Paths.DataDir
	}
	if env.Paths.ReportsDir == "" {
		env.Paths.ReportsDir = file.Paths.ReportsDir
	}
	return env
}
