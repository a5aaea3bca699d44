package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	APIKey struct {
		Header string `env:"HEADER" envDefault:"X-API-KEY"`
		Value  string `env:"VALUE,required,notEmpty"`
	} `envPrefix:"API_KEY_"`
	RabbitMQ struct {
		DSN                 string `env:"DSN,required"`
		PublishTimeout      int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
		EmployeeEventsTopic string `env:"EMPLOYEE_EVENTS_TOPIC" envDefault:"employee-events"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host               string `env:"HOST" envDefault:"localhost"`
		Port               int    `env:"PORT" envDefault:"6379"`
		Password           string `env:"PASSWORD"`
		DB                 int    `env:"DB" envDefault:"0"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		CacheExpiration    int    `env:"CACHE_EXPIRATION" envDefault:"300"`   // 5 分钟
		InvalidationWindow int    `env:"INVALIDATION_WINDOW" envDefault:"30"` // 需要大于 DATABASE_QUERY_TIMEOUT
	} `envPrefix:"REDIS_"`
	Email struct {
		NotifyQueue string `env:"NOTIFY_QUEUE" envDefault:"employee_mail_queue"`
		SMTP        struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	Seed struct {
		EmailDomain string `env:"EMAIL_DOMAIN" envDefault:"example.com"`
	} `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
