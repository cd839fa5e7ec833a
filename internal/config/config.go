package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "DUMPKEEPER"

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Schedule string         `mapstructure:"schedule"`
}

type AppConfig struct {
	Name          string `mapstructure:"name"`
	LogLevel      string `mapstructure:"log_level"`
	LogFormat     string `mapstructure:"log_format"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
	LogMaxAgeDays int    `mapstructure:"log_max_age_days"`
}

type DatabaseConfig struct {
	Type     string   `mapstructure:"type"`
	Binary   string   `mapstructure:"binary"`
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	Database string   `mapstructure:"database"`
	Args     []string `mapstructure:"args"`

	// FailOnError aborts the run when the dump tool exits non-zero.
	FailOnError bool `mapstructure:"fail_on_error"`

	// MongoDB specific
	AuthDatabase string `mapstructure:"auth_database"`
}

type BackupConfig struct {
	Dir       string        `mapstructure:"dir"`
	Prefix    string        `mapstructure:"prefix"`
	Extension string        `mapstructure:"extension"`
	Retention time.Duration `mapstructure:"retention"`
	// AgeSource is "mtime" or "name".
	AgeSource string `mapstructure:"age_source"`
}

type UploadConfig struct {
	Enabled  bool       `mapstructure:"enabled"`
	Type     string     `mapstructure:"type"`
	Compress bool       `mapstructure:"compress"`
	Gate     GateConfig `mapstructure:"gate"`

	// Google Drive
	CredentialsFile string `mapstructure:"credentials_file"`
	FolderID        string `mapstructure:"folder_id"`

	// AWS S3
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
}

type GateConfig struct {
	// Mode is "interval" or "clock".
	Mode string `mapstructure:"mode"`

	// clock
	Hour   int `mapstructure:"hour"`
	Minute int `mapstructure:"minute"`

	// interval
	Interval  time.Duration `mapstructure:"interval"`
	StateFile string        `mapstructure:"state_file"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key, including the empty ones: AutomaticEnv only
// reaches Unmarshal for keys viper already knows about.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "dumpkeeper")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "console")
	v.SetDefault("app.log_file", "")
	v.SetDefault("app.log_max_size_mb", 100)
	v.SetDefault("app.log_max_backups", 3)
	v.SetDefault("app.log_max_age_days", 28)

	v.SetDefault("database.type", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.username", "rsvp")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "rsvp")
	v.SetDefault("database.fail_on_error", true)
	v.SetDefault("database.binary", "")
	v.SetDefault("database.args", []string{})
	v.SetDefault("database.auth_database", "")

	v.SetDefault("backup.dir", ".")
	v.SetDefault("backup.prefix", "rsvp")
	v.SetDefault("backup.extension", ".sql")
	v.SetDefault("backup.retention", "72h")
	v.SetDefault("backup.age_source", "mtime")

	v.SetDefault("upload.enabled", true)
	v.SetDefault("upload.type", "gdrive")
	v.SetDefault("upload.compress", false)
	v.SetDefault("upload.credentials_file", "DataSvr/service-account.json")
	v.SetDefault("upload.folder_id", "")
	v.SetDefault("upload.region", "")
	v.SetDefault("upload.bucket", "")
	v.SetDefault("upload.access_key", "")
	v.SetDefault("upload.secret_key", "")
	v.SetDefault("upload.prefix", "")
	v.SetDefault("upload.endpoint", "")
	v.SetDefault("upload.gate.mode", "interval")
	v.SetDefault("upload.gate.hour", 9)
	v.SetDefault("upload.gate.minute", 0)
	v.SetDefault("upload.gate.interval", "24h")
	v.SetDefault("upload.gate.state_file", ".dumpkeeper-state.json")

	v.SetDefault("notify.telegram.enabled", false)
	v.SetDefault("notify.telegram.bot_token", "")
	v.SetDefault("notify.telegram.chat_id", 0)

	v.SetDefault("schedule", "0 0 9 * * *")
}

func (c *Config) Validate() error {
	switch c.Database.Type {
	case "mysql", "postgresql", "mongodb":
	default:
		return fmt.Errorf("database.type %q is not supported", c.Database.Type)
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}

	if c.Backup.Dir == "" {
		return fmt.Errorf("backup.dir is required")
	}
	if c.Backup.Prefix == "" || strings.ContainsAny(c.Backup.Prefix, `/\`) {
		return fmt.Errorf("backup.prefix must be a non-empty file name prefix")
	}
	if !strings.HasPrefix(c.Backup.Extension, ".") {
		return fmt.Errorf("backup.extension must start with a dot")
	}
	if c.Backup.Retention <= 0 {
		return fmt.Errorf("backup.retention must be positive")
	}
	if c.Backup.AgeSource != "mtime" && c.Backup.AgeSource != "name" {
		return fmt.Errorf("backup.age_source must be mtime or name")
	}

	if c.Upload.Enabled {
		if err := c.Upload.validate(); err != nil {
			return err
		}
	}

	if c.Notify.Telegram.Enabled {
		if c.Notify.Telegram.BotToken == "" || c.Notify.Telegram.ChatID == 0 {
			return fmt.Errorf("notify.telegram: bot_token and chat_id are required")
		}
	}

	return nil
}

func (u *UploadConfig) validate() error {
	switch u.Type {
	case "gdrive":
		if u.CredentialsFile == "" {
			return fmt.Errorf("upload.credentials_file is required for gdrive")
		}
		if u.FolderID == "" {
			return fmt.Errorf("upload.folder_id is required for gdrive")
		}
	case "s3":
		if u.Bucket == "" || u.Region == "" {
			return fmt.Errorf("upload.bucket and upload.region are required for s3")
		}
	default:
		return fmt.Errorf("upload.type %q is not supported", u.Type)
	}

	switch u.Gate.Mode {
	case "clock":
		if u.Gate.Hour < 0 || u.Gate.Hour > 23 {
			return fmt.Errorf("upload.gate.hour must be within 0-23")
		}
		if u.Gate.Minute < 0 || u.Gate.Minute > 59 {
			return fmt.Errorf("upload.gate.minute must be within 0-59")
		}
	case "interval":
		if u.Gate.Interval <= 0 {
			return fmt.Errorf("upload.gate.interval must be positive")
		}
		if u.Gate.StateFile == "" {
			return fmt.Errorf("upload.gate.state_file is required")
		}
	default:
		return fmt.Errorf("upload.gate.mode %q is not supported", u.Gate.Mode)
	}

	return nil
}
