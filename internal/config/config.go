package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	APIAddr     string `env:"API_ADDR" envDefault:":8080"`
	PostgresDSN string `env:"POSTGRES_DSN,notEmpty"`

	RedisAddr     string `env:"REDIS_ADDR,notEmpty"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	QueueName     string `env:"QUEUE_NAME" envDefault:"orders"`

	JobTimeoutSec    int  `env:"JOB_TIMEOUT_SEC" envDefault:"60"`
	JobResultTTLSec  int  `env:"JOB_RESULT_TTL_SEC" envDefault:"300"`
	JobFailureTTLSec int  `env:"JOB_FAILURE_TTL_SEC" envDefault:"3600"`
	JobRetry         bool `env:"JOB_RETRY" envDefault:"false"`
	JobRetryCount    int  `env:"JOB_RETRY_COUNT" envDefault:"3"`

	WorkerCount int `env:"WORKER_COUNT" envDefault:"1"`

	DefaultAdminUsername string `env:"DEFAULT_ADMIN_USERNAME" envDefault:"admin"`
	DefaultAdminPassword string `env:"DEFAULT_ADMIN_PASSWORD"`
	DefaultUserUsername  string `env:"DEFAULT_USER_USERNAME" envDefault:"user"`
	DefaultUserPassword  string `env:"DEFAULT_USER_PASSWORD"`

	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) JobTimeout() time.Duration    { return time.Duration(c.JobTimeoutSec) * time.Second }
func (c Config) JobResultTTL() time.Duration  { return time.Duration(c.JobResultTTLSec) * time.Second }
func (c Config) JobFailureTTL() time.Duration { return time.Duration(c.JobFailureTTLSec) * time.Second }
