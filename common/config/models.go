package config

type GeneralConfig struct {
	BindAddress  string `yaml:"bindAddress"`
	Port         int    `yaml:"port"`
	LogDirectory string `yaml:"logDirectory"`
	LogColors    bool   `yaml:"logColors"`
	JsonLogs     bool   `yaml:"jsonLogs"`
	LogLevel     string `yaml:"logLevel"`
}

type SharedSecretConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

type CatalogConfig struct {
	Endpoint         string `yaml:"endpoint"`
	Bucket           string `yaml:"bucketName"`
	AccessKeyId      string `yaml:"accessKeyId"`
	AccessSecret     string `yaml:"accessSecret"`
	Region           string `yaml:"region"`
	Ssl              bool   `yaml:"ssl"`
	Prefix           string `yaml:"prefix"`
	UrlExpirySeconds int    `yaml:"urlExpirySeconds"`
	ListCacheSeconds int    `yaml:"listCacheSeconds"`
}

type DbPoolConfig struct {
	MaxConnections int `yaml:"maxConnections"`
	MaxIdle        int `yaml:"maxIdle"`
}

type DatabaseConfig struct {
	Postgres string        `yaml:"postgres"`
	Pool     *DbPoolConfig `yaml:"pool"`
}

// PoolOrDefault guards against an explicit `pool: null` in user config.
func (c DatabaseConfig) PoolOrDefault() *DbPoolConfig {
	if c.Pool == nil {
		return NewDefaultServiceConfig().Database.Pool
	}
	return c.Pool
}

type ExportsConfig struct {
	BatchSize       int    `yaml:"batchSize"`
	MaxItemBytes    int64  `yaml:"maxItemBytes"`
	MaxArchiveBytes int64  `yaml:"maxArchiveBytes"`
	DownloadsPath   string `yaml:"downloadsPath"`
}

type MetricsConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BindAddress string `yaml:"bindAddress"`
	Port        int    `yaml:"port"`
}

type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	BurstCount        int     `yaml:"burst"`
}

type SentryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Dsn         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}

type ServiceConfig struct {
	General      GeneralConfig      `yaml:"service"`
	Admins       []string           `yaml:"admins,flow"`
	SharedSecret SharedSecretConfig `yaml:"sharedSecretAuth"`
	Catalog      CatalogConfig      `yaml:"catalog"`
	Database     DatabaseConfig     `yaml:"database"`
	Exports      ExportsConfig      `yaml:"exports"`
	Metrics      MetricsConfig      `yaml:"metrics"`
	RateLimit    RateLimitConfig    `yaml:"rateLimit"`
	Sentry       SentryConfig       `yaml:"sentry"`
}
