package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type SettlementConfig struct {
	Env              string `yaml:"env" env-default:"local"`
	HTTPServer       `yaml:"http_server"`
	SettlementDB     `yaml:"settlement_db"`
	LogConfig        `yaml:"log_config"`
	KafkaService     `yaml:"kafka-service"`
	CatalogService   `yaml:"catalog-service"`
	UserService      `yaml:"user-service"`
	TelephonyService `yaml:"telephony-service"`
	Settlement       `yaml:"settlement"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type SettlementDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"order-events"`
}

type CatalogService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type UserService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type TelephonyService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Settlement struct {
	CommissionRateBps int64         `yaml:"commission_rate_bps" env-default:"1000"`
	CancelThreshold   int64         `yaml:"cancel_threshold" env-default:"3"`
	PlatformUserID    string        `yaml:"platform_user_id"`
	OverdueGrace      time.Duration `yaml:"overdue_grace" env-default:"24h"`
	SweepInterval     time.Duration `yaml:"sweep_interval" env-default:"1m"`
}

func MustLoad() *SettlementConfig {
	configPath := os.Getenv("SETTLEMENT_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("SETTLEMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg SettlementConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
