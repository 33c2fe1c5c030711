package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr    = ":3000"
	defaultDataDir       = "./uploads"
	defaultGCTTL         = 24 * time.Hour
	defaultGCInterval    = 30 * time.Minute
	defaultMaxChunkBytes = 64 << 20
)

type Config struct {
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"`
	DataDir    string `yaml:"data_dir" json:"data_dir"`
	LogLevel   string `yaml:"log_level" json:"log_level"`

	// GC незавершённых загрузок; нулевые значения выключают фоновый проход.
	GCTTL      time.Duration `yaml:"gc_ttl" json:"gc_ttl"`
	GCInterval time.Duration `yaml:"gc_interval" json:"gc_interval"`

	// MaxChunkBytes ограничивает тело одного запроса; 0: без ограничения.
	MaxChunkBytes int64 `yaml:"max_chunk_bytes" json:"max_chunk_bytes"`

	StrictPaths      bool `yaml:"strict_paths" json:"strict_paths"`
	SerializeUploads bool `yaml:"serialize_uploads" json:"serialize_uploads"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	return &Config{
		ListenAddr:    defaultListenAddr,
		DataDir:       defaultDataDir,
		GCTTL:         defaultGCTTL,
		GCInterval:    defaultGCInterval,
		MaxChunkBytes: defaultMaxChunkBytes,
	}
}

// Load читает YAML-конфигурацию из CONFIG_PATH, применяет ENV-переопределения и возвращает актуальную структуру.
func Load() (*Config, error) {
	return LoadFile(getenv("CONFIG_PATH", "./config.yaml"))
}

// LoadFile читает конфигурацию из path. Отсутствие файла не ошибка: берутся дефолты.
func LoadFile(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err = yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err = c.applyEnv(); err != nil {
		return nil, err
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// ENV override
func (c *Config) applyEnv() error {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	var err error
	if c.GCTTL, err = envDuration("GC_TTL", c.GCTTL); err != nil {
		return err
	}
	if c.GCInterval, err = envDuration("GC_INTERVAL", c.GCInterval); err != nil {
		return err
	}
	if c.MaxChunkBytes, err = envInt64("MAX_CHUNK_BYTES", c.MaxChunkBytes); err != nil {
		return err
	}
	if c.StrictPaths, err = envBool("STRICT_PATHS", c.StrictPaths); err != nil {
		return err
	}
	if c.SerializeUploads, err = envBool("SERIALIZE_UPLOADS", c.SerializeUploads); err != nil {
		return err
	}

	return nil
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is empty")
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("listen_addr is empty")
	}
	if c.MaxChunkBytes < 0 {
		return fmt.Errorf("max_chunk_bytes must be >= 0")
	}
	if c.GCTTL < 0 || c.GCInterval < 0 {
		return fmt.Errorf("gc_ttl and gc_interval must be >= 0")
	}
	return nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func envInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
