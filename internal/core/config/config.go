package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_sec"`
	IdleTimeoutSec  int    `mapstructure:"idle_timeout_sec"`
}

type App struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	HTTP HTTP   `mapstructure:"http"`
}

type LogFile struct {
	Enable     bool   `mapstructure:"enable"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type Log struct {
	Level string  `mapstructure:"level"`
	JSON  bool    `mapstructure:"json"`
	File  LogFile `mapstructure:"file"`
}

type JWT struct {
	Secret            string `mapstructure:"secret"`
	Issuer            string `mapstructure:"issuer"`
	AccessTokenTTLMin int    `mapstructure:"access_token_ttl_min"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttl_sec"`
}

type DB struct {
	Driver             string `mapstructure:"driver"`
	DSN                string `mapstructure:"dsn"`
	Username           string `mapstructure:"username"`
	Password           string `mapstructure:"password"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int    `mapstructure:"conn_max_lifetime_min"`
	AutoMigrate        bool   `mapstructure:"auto_migrate"`
	LogLevel           string `mapstructure:"log_level"`
}

// Session 登录会话（cookie 签名）
type Session struct {
	Secret    string `mapstructure:"secret"`
	MaxAgeSec int    `mapstructure:"max_age_sec"`
	Secure    bool   `mapstructure:"secure"`
}

// Mail 联系表单的 SMTP 中继
type Mail struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from"`
	To         string `mapstructure:"to"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// API REST 客户端密钥，逗号分隔：APP_API_KEYS=k1,k2
type API struct {
	Keys []string `mapstructure:"keys"`
}

type Config struct {
	App     App     `mapstructure:"app"`
	Log     Log     `mapstructure:"log"`
	JWT     JWT     `mapstructure:"jwt"`
	DB      DB      `mapstructure:"db"`
	Redis   Redis   `mapstructure:"redis"`
	Session Session `mapstructure:"session"`
	Mail    Mail    `mapstructure:"mail"`
	API     API     `mapstructure:"api"`
}

var ErrMissingSessionSecret = errors.New("config: session.secret is required (APP_SESSION_SECRET)")

// 所有 key 都要有默认值，否则 AutomaticEnv 在 Unmarshal 时取不到
var defaults = map[string]any{
	"app.name":                   "cafe-directory",
	"app.env":                    "local",
	"app.http.host":              "0.0.0.0",
	"app.http.port":              8080,
	"app.http.read_timeout_sec":  5,
	"app.http.write_timeout_sec": 10,
	"app.http.idle_timeout_sec":  60,

	"log.level":             "info",
	"log.json":              false,
	"log.file.enable":       false,
	"log.file.filename":     "logs/app.log",
	"log.file.max_size_mb":  50,
	"log.file.max_backups":  5,
	"log.file.max_age_days": 14,
	"log.file.compress":     true,

	"jwt.secret":               "",
	"jwt.issuer":               "cafe-directory",
	"jwt.access_token_ttl_min": 60,

	"db.driver":                "sqlite",
	"db.dsn":                   "cafes-banff.db",
	"db.username":              "",
	"db.password":              "",
	"db.max_open_conns":        10,
	"db.max_idle_conns":        5,
	"db.conn_max_lifetime_min": 30,
	"db.auto_migrate":          true,
	"db.log_level":             "warn",

	"redis.addr":     "",
	"redis.password": "",
	"redis.db":       0,
	"redis.ttl_sec":  60,

	"session.secret":      "",
	"session.max_age_sec": 86400 * 30,
	"session.secure":      false,

	"mail.host":        "smtp.gmail.com",
	"mail.port":        587,
	"mail.username":    "",
	"mail.password":    "",
	"mail.from":        "",
	"mail.to":          "",
	"mail.max_retries": 3,

	"api.keys": []string{},
}

// Load 读取 yaml（可选）+ APP_ 环境变量。文件不存在时只用默认值和环境变量。
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.API.Keys = compact(c.API.Keys)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return ErrMissingSessionSecret
	}
	return nil
}

// JWTSecret 未单独配置时复用 session secret
func (c *Config) JWTSecret() []byte {
	if c.JWT.Secret != "" {
		return []byte(c.JWT.Secret)
	}
	return []byte(c.Session.Secret)
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
