package config

import (
	"strings"

	"github.com/manu-acho/wamngo-sub000/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mailer    MailerConfig    `mapstructure:"mailer"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	App       AppConfig       `mapstructure:"app"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	// URL 非空时优先使用（对应 DATABASE_URL 环境变量）
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 统计缓存配置，Addr 为空时禁用缓存
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // 秒
}

// MailerConfig 管理员通知邮件配置（仅格式化并记录日志，不真正发送）
type MailerConfig struct {
	AdminEmails []string `mapstructure:"admin_emails"`
	FromAddress string   `mapstructure:"from_address"`
	PoolSize    int      `mapstructure:"pool_size"`
}

type SchedulerConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	ProposalInterval int  `mapstructure:"proposal_interval"` // 秒
	SnapshotHour     int  `mapstructure:"snapshot_hour"`     // 每日快照的整点（0-23）
}

// AppConfig 透传给前端的应用配置
type AppConfig struct {
	URL                    string `mapstructure:"url"`
	WalletConnectProjectId string `mapstructure:"walletconnect_project_id"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/wam")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "wam")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.ttl", 60)
	viper.SetDefault("mailer.from_address", "noreply@wearemany.org")
	viper.SetDefault("mailer.pool_size", 4)
	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("scheduler.proposal_interval", 60)
	viper.SetDefault("scheduler.snapshot_hour", 0)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	// 部署环境变量优先
	if v := viper.GetString("DATABASE_URL"); v != "" {
		config.Database.URL = v
	}
	if v := viper.GetString("REDIS_ADDR"); v != "" {
		config.Redis.Addr = v
	}
	if v := viper.GetString("ADMIN_NOTIFICATION_EMAILS"); v != "" {
		config.Mailer.AdminEmails = splitEmails(v)
	}
	if v := viper.GetString("APP_URL"); v != "" {
		config.App.URL = v
	}
	if v := viper.GetString("WALLETCONNECT_PROJECT_ID"); v != "" {
		config.App.WalletConnectProjectId = v
	}

	return &config
}

// splitEmails 解析逗号分隔的邮箱列表
func splitEmails(raw string) []string {
	parts := strings.Split(raw, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			emails = append(emails, p)
		}
	}
	return emails
}
