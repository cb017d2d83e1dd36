package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	replicaEnvPrefix          = "POSTGRES_REPLICAS_"
	defaultMaxRequestBodySize = "2MB"

	defaultSigningAlgorithm     = "HS256"
	defaultAccessTokenTTL       = 30 * time.Minute
	defaultConfirmationTokenTTL = 1440 * time.Minute
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
		// PublicBaseURL is used to build absolute confirmation links.
		PublicBaseURL      string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *PostgresConfig `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	CORS *CORSConfig `json:"cors" yaml:"cors"`

	// Storage configuration for uploaded post images
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// PubSub configuration for account event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// PostgresConfig describes the primary connection, optional read replicas and pool sizing.
type PostgresConfig struct {
	// DSN, when set, is used verbatim for the primary and Master is ignored.
	DSN             string             `json:"dsn" yaml:"dsn"`
	Master          ConnectionConfig   `json:"master" yaml:"master"`
	Replicas        []ConnectionConfig `json:"replicas" yaml:"replicas"`
	Database        string             `json:"database" yaml:"database"`
	SSLMode         string             `json:"sslMode" yaml:"sslMode"`
	TimeZone        string             `json:"timeZone" yaml:"timeZone"`
	MaxIdleConns    int                `json:"maxIdleConns" yaml:"maxIdleConns"`
	MaxOpenConns    int                `json:"maxOpenConns" yaml:"maxOpenConns"`
	ConnMaxLifetime time.Duration      `json:"connMaxLifetime" yaml:"connMaxLifetime"`
	AutoMigrate     bool               `json:"autoMigrate" yaml:"autoMigrate"`
}

// ConnectionConfig is a single PostgreSQL endpoint.
type ConnectionConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     string `json:"port" yaml:"port"`
	UserName string `json:"userName" yaml:"userName"`
	Password string `json:"password" yaml:"password"`
}

// MasterDSN returns the connection string of the primary.
func (c *PostgresConfig) MasterDSN() string {
	if c.DSN != "" {
		return c.DSN
	}

	return c.BuildDSN(c.Master)
}

// BuildDSN renders a postgres:// URL for conn using the shared database settings.
func (c *PostgresConfig) BuildDSN(conn ConnectionConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(conn.UserName, conn.Password),
		Host:   net.JoinHostPort(conn.Host, conn.Port),
		Path:   c.Database,
	}

	query := url.Values{}
	if c.SSLMode != "" {
		query.Set("sslmode", c.SSLMode)
	}
	if c.TimeZone != "" {
		query.Set("TimeZone", c.TimeZone)
	}
	u.RawQuery = query.Encode()

	return u.String()
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	// SecretKey signs every token. Read-only after startup.
	SecretKey string `json:"secretKey" yaml:"secretKey"`
	// Algorithm is the HMAC signing algorithm: HS256, HS384 or HS512.
	Algorithm            string        `json:"algorithm" yaml:"algorithm"`
	AccessTokenTTL       time.Duration `json:"accessTokenTtl" yaml:"accessTokenTtl"`
	ConfirmationTokenTTL time.Duration `json:"confirmationTokenTtl" yaml:"confirmationTokenTtl"`
	BcryptCost           int           `json:"bcryptCost" yaml:"bcryptCost"`
	// AutoConfirm registers users as already confirmed.
	AutoConfirm bool `json:"autoConfirm" yaml:"autoConfirm"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string `json:"allowOrigins" yaml:"allowOrigins"`
}

// StorageConfig defines where uploaded images are written.
type StorageConfig struct {
	// BucketURL is a gocloud.dev blob URL, e.g. file:///var/uploads, s3://bucket, gs://bucket, mem://.
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
	// PublicBaseURL is prefixed to object keys to build the returned file URL.
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
	// KeyPrefix is prepended to every object key.
	KeyPrefix string `json:"keyPrefix" yaml:"keyPrefix"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Replicas are indexed env vars assembled by buildReplicasFromEnv.
			if strings.HasPrefix(k, replicaEnvPrefix) {
				return "", nil
			}

			// AUTH_SECRETKEY -> auth.secretKey, aligned with the casing already in the YAML.
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
	if replicas := buildReplicasFromEnv(); len(replicas) > 0 {
		cfg.Postgres.Replicas = replicas
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Postgres == nil {
		return errors.New("postgres config is required")
	}
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.Algorithm == "" {
		cfg.Auth.Algorithm = defaultSigningAlgorithm
	}
	if cfg.Auth.AccessTokenTTL <= 0 {
		cfg.Auth.AccessTokenTTL = defaultAccessTokenTTL
	}
	if cfg.Auth.ConfirmationTokenTTL <= 0 {
		cfg.Auth.ConfirmationTokenTTL = defaultConfirmationTokenTTL
	}
	if cfg.HTTP.PublicBaseURL == "" {
		cfg.HTTP.PublicBaseURL = fmt.Sprintf("http://localhost:%d", cfg.HTTP.Port)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []ConnectionConfig {
	var replicas []ConnectionConfig

	for i := 0; ; i++ {
		prefix := replicaEnvPrefix + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
