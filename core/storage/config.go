package storage

// Config holds connection settings for one S3-compatible backend.
type Config struct {
	// Address is the endpoint of the backend, with or without scheme.
	// An "https://" scheme enables TLS regardless of UseSSL.
	Address string `mapstructure:"address" default:""`
	// AccessKeyID is the access key ID for authentication.
	AccessKeyID string `mapstructure:"access_key_id" default:""`
	// SecretAccessKey is the secret access key for authentication.
	SecretAccessKey string `mapstructure:"secret_access_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Region is the location of the buckets. RADOS gateways usually leave it empty.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds every network wait of a single listing request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"900"`
	// MaxRetries is the number of attempts per request. 1 disables retries.
	MaxRetries int `mapstructure:"max_retries" default:"1"`
}
