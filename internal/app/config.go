// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"

	"github.com/keepnotes/keep-note-service/pkg/storage"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Sync     SyncConfig     `yaml:"sync"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，为空时只输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型，sqlite 或 mysql
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time" default:"true"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持 30m、1h
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
}

// SyncConfig 远端同步配置
// Storage 未启用或凭证缺失时，同步功能整体降级为空操作
type SyncConfig struct {
	// Storage 远端存储配置
	Storage storage.Config `yaml:"storage"`
	// AutoSync 是否启动周期同步
	AutoSync bool `yaml:"auto-sync" default:"true"`
	// AutoSyncInterval 周期同步间隔，支持 5m、1h
	AutoSyncInterval string `yaml:"auto-sync-interval" default:"5m"`
}

// LoadConfig 从文件加载配置并应用缺省值
func LoadConfig(path string) (*AppConfig, error) {
	c := &AppConfig{}
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "config: apply defaults")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read file")
	}
	if err := yaml.Unmarshal(content, c); err != nil {
		return nil, errors.Wrap(err, "config: parse yaml")
	}

	c.File = path
	c.applyEnvOverrides()
	return c, nil
}

// applyEnvOverrides 凭证类配置优先从环境变量读取
func (c *AppConfig) applyEnvOverrides() {
	if v := os.Getenv("SYNC_STORAGE_TYPE"); v != "" {
		c.Sync.Storage.Type = v
	}
	if v := os.Getenv("GDRIVE_CREDENTIALS_FILE"); v != "" {
		c.Sync.Storage.CredentialsFile = v
	}
	if v := os.Getenv("GDRIVE_TOKEN_FILE"); v != "" {
		c.Sync.Storage.TokenFile = v
	}
	if v := os.Getenv("S3_ACCESS_KEY_ID"); v != "" {
		c.Sync.Storage.AccessKeyID = v
	}
	if v := os.Getenv("S3_ACCESS_KEY_SECRET"); v != "" {
		c.Sync.Storage.AccessKeySecret = v
	}
	if v := os.Getenv("WEBDAV_USER"); v != "" {
		c.Sync.Storage.User = v
	}
	if v := os.Getenv("WEBDAV_PASSWORD"); v != "" {
		c.Sync.Storage.Password = v
	}
}

// Save 将当前配置写回文件
func (c *AppConfig) Save() error {
	if c.File == "" {
		return errors.New("config: no file path")
	}
	content, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "config: marshal yaml")
	}
	return os.WriteFile(c.File, content, 0644)
}
