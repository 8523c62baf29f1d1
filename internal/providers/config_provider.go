package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"onlyone/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "ONLYONE_LOG_LEVEL")
	viper.BindEnv("store.dir", "ONLYONE_STORE_DIR")
	viper.BindEnv("store.groupId", "ONLYONE_STORE_GROUP")
	viper.BindEnv("sync.pollInterval", "ONLYONE_POLL_INTERVAL")
	viper.BindEnv("sync.recencyWindow", "ONLYONE_RECENCY_WINDOW")
	viper.BindEnv("cache.enabled", "ONLYONE_CACHE_ENABLED")
	viper.BindEnv("cache.size", "ONLYONE_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "OnlyOneDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
