package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig    `mapstructure:"app"`
	Log     LogConfig    `mapstructure:"log"`
	Network string       `mapstructure:"network"`
	Derive  DeriveConfig `mapstructure:"derive"`
	Range   RangeConfig  `mapstructure:"range"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DeriveConfig struct {
	// Workers 批量派生的并发数, 0 表示 runtime.NumCPU()
	Workers int `mapstructure:"workers"`
}

type RangeConfig struct {
	MaxCount uint32 `mapstructure:"max_count"`
}

var Global Config

// Init 依次读取默认值、配置文件、XPADDR_ 前缀的环境变量以及已绑定的命令行参数
func Init() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// XPADDR_DERIVE_WORKERS -> derive.workers
	viper.SetEnvPrefix("xpaddr")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %v", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		return fmt.Errorf("unable to decode config: %v", err)
	}
	if Global.Derive.Workers < 0 {
		return fmt.Errorf("derive.workers must not be negative, got %d", Global.Derive.Workers)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("app.env", "production")
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("network", "mainnet")
	viper.SetDefault("derive.workers", 0)
	viper.SetDefault("range.max_count", 1000)
}
