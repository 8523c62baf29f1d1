package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StoreConfig struct {
	GroupID string `yaml:"groupId" validate:"required"`
	Dir     string `yaml:"dir" validate:"required|unixPath"`
}

type SyncConfig struct {
	PollInterval  time.Duration `yaml:"pollInterval" validate:"required|min:1"`
	RecencyWindow time.Duration `yaml:"recencyWindow" validate:"required|min:1"`
	WatchStore    bool          `yaml:"watchStore"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Store     StoreConfig   `yaml:"store"`
	Sync      SyncConfig    `yaml:"sync"`
	WebServer Server        `yaml:"webServer"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
