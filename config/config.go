package config

import (
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DBConfig Database configuration
type DBConfig struct {
	Type     string `yaml:"type"` // postgres or sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// SysConfig System configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig WEB server configuration
type WebConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	Secret        string `yaml:"secret"`
	SessionExpire int    `yaml:"session_expire"` // seconds
}

// BackendConfig upstream content API
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // seconds, 0 disables
}

// LogConfig Log configuration
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// AdminConfig console operator account
type AdminConfig struct {
	Username       string `yaml:"username"`
	Password       string `yaml:"password"` // plain text or bcrypt hash
	SampleFallback bool   `yaml:"sample_fallback"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system"`
	Web      WebConfig     `yaml:"web"`
	Backend  BackendConfig `yaml:"backend"`
	Database DBConfig      `yaml:"database"`
	Logger   LogConfig     `yaml:"logger"`
	Admin    AdminConfig   `yaml:"admin"`
}

// GetLogDir returns the log directory under the work directory.
func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

// GetDataDir returns the data directory under the work directory.
func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// BackendTimeout returns the upstream timeout as a duration.
func (c *AppConfig) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.Timeout) * time.Second
}

// SessionMaxAge returns the admin session lifetime.
func (c *AppConfig) SessionMaxAge() time.Duration {
	return time.Duration(c.Web.SessionExpire) * time.Second
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.GetLogDir(), 0o755)
	_ = os.MkdirAll(c.GetDataDir(), 0o755)
}

// DefaultAppConfig is used when no configuration file is found.
var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "AvocadoWeb",
		Location: "Asia/Taipei",
		Workdir:  "/var/avocado",
		Debug:    false,
	},
	Web: WebConfig{
		Host:          "0.0.0.0",
		Port:          3000,
		Secret:        "",
		SessionExpire: 8 * 3600,
	},
	Backend: BackendConfig{
		BaseURL: "http://backend:8000",
		Timeout: 15,
	},
	Database: DBConfig{
		Type:     "sqlite",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "avocado.db",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  20,
		IdleConn: 5,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/avocado/logs/avocado-web.log",
	},
	Admin: AdminConfig{
		Username: "",
		Password: "",
	},
}

// LoadConfig reads cfile (or the first existing default location) and applies
// environment overrides. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := *DefaultAppConfig
	if cfile == "" {
		cfile = "avocado-web.yml"
	}
	candidates := []string{cfile, "/etc/avocado-web.yml"}
	for _, name := range candidates {
		data, err := os.ReadFile(name)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			panic(err)
		}
		break
	}
	cfg.applyEnv()
	cfg.initDirs()
	return &cfg
}

func setEnvValue(name string, val *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = cast.ToBool(v)
	}
}

func setEnvIntValue(name string, val *int) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if i, err := cast.ToIntE(v); err == nil {
			*val = i
		}
	}
}

func (c *AppConfig) applyEnv() {
	setEnvValue("AVOCADO_SYSTEM_WORKER_DIR", &c.System.Workdir)
	setEnvValue("AVOCADO_SYSTEM_LOCATION", &c.System.Location)
	setEnvBoolValue("AVOCADO_SYSTEM_DEBUG", &c.System.Debug)

	setEnvValue("AVOCADO_WEB_HOST", &c.Web.Host)
	setEnvIntValue("AVOCADO_WEB_PORT", &c.Web.Port)
	setEnvValue("AVOCADO_WEB_SECRET", &c.Web.Secret)
	setEnvIntValue("AVOCADO_WEB_SESSION_EXPIRE", &c.Web.SessionExpire)

	setEnvValue("AVOCADO_BACKEND_URL", &c.Backend.BaseURL)
	setEnvIntValue("AVOCADO_BACKEND_TIMEOUT", &c.Backend.Timeout)

	setEnvValue("AVOCADO_DB_TYPE", &c.Database.Type)
	setEnvValue("AVOCADO_DB_HOST", &c.Database.Host)
	setEnvIntValue("AVOCADO_DB_PORT", &c.Database.Port)
	setEnvValue("AVOCADO_DB_NAME", &c.Database.Name)
	setEnvValue("AVOCADO_DB_USER", &c.Database.User)
	setEnvValue("AVOCADO_DB_PWD", &c.Database.Passwd)
	setEnvBoolValue("AVOCADO_DB_DEBUG", &c.Database.Debug)

	setEnvValue("AVOCADO_LOGGER_MODE", &c.Logger.Mode)
	setEnvBoolValue("AVOCADO_LOGGER_FILE_ENABLE", &c.Logger.FileEnable)

	setEnvValue("AVOCADO_ADMIN_USERNAME", &c.Admin.Username)
	setEnvValue("AVOCADO_ADMIN_PASSWORD", &c.Admin.Password)
	setEnvBoolValue("AVOCADO_ADMIN_SAMPLE_FALLBACK", &c.Admin.SampleFallback)

	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
}
