package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/scopekit/errors"
	"github.com/kbukum/scopekit/logger"
)

// Source abstracts the filesystem access of the loader.
type Source interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSSource reads files from the local filesystem.
type OSSource struct{}

func (OSSource) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadEnv adds the variables of a .env file to the process environment.
// Variables that are already set win.
func (OSSource) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Files names the inputs of one load. Empty fields are skipped.
type Files struct {
	Config string
	Env    string
}

// Loader reads configuration for one service.
type Loader struct {
	source    Source
	explicit  Files
	envPrefix string
	log       *logger.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithSource replaces the filesystem access, mostly for tests.
func WithSource(s Source) Option {
	return func(l *Loader) { l.source = s }
}

// WithConfigFile uses path instead of searching for config.yml.
func WithConfigFile(path string) Option {
	return func(l *Loader) { l.explicit.Config = path }
}

// WithEnvFile uses path instead of searching for a .env file.
func WithEnvFile(path string) Option {
	return func(l *Loader) { l.explicit.Env = path }
}

// WithEnvPrefix overrides the environment prefix derived from the service
// name. An empty prefix binds every variable.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) { l.envPrefix = prefix }
}

// NewLoader creates a loader for serviceName.
func NewLoader(serviceName string, opts ...Option) *Loader {
	l := &Loader{
		source:    OSSource{},
		envPrefix: EnvPrefix(serviceName),
		log:       logger.Get("config"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads configuration for serviceName into cfg.
func Load(serviceName string, cfg any, opts ...Option) error {
	return NewLoader(serviceName, opts...).Load(serviceName, cfg)
}

// Resolve picks the files to read, preferring explicit paths.
func (l *Loader) Resolve(serviceName string) Files {
	files := l.explicit
	if files.Config == "" {
		files.Config = l.first(configCandidates(serviceName))
	}
	if files.Env == "" {
		files.Env = l.first(envCandidates(serviceName))
	}
	return files
}

// Load reads the resolved files and the environment into cfg.
func (l *Loader) Load(serviceName string, cfg any) error {
	files := l.Resolve(serviceName)
	v := viper.New()

	if files.Env != "" && l.source.Exists(files.Env) {
		if err := l.source.LoadEnv(files.Env); err != nil {
			l.log.Warn("failed to load env file", logger.Fields("path", files.Env, logger.FieldError, err.Error()))
		}
	}

	if files.Config != "" && l.source.Exists(files.Config) {
		v.SetConfigFile(files.Config)
		if err := v.ReadInConfig(); err != nil {
			return errors.InvalidConfig("", fmt.Sprintf("reading %s", files.Config)).WithCause(err)
		}
		l.log.Debug("config file loaded", logger.Fields("path", files.Config))
	}

	bindEnv(v, l.envPrefix)

	if err := v.Unmarshal(cfg); err != nil {
		return errors.InvalidConfig("", fmt.Sprintf("decoding config for %s", serviceName)).WithCause(err)
	}
	return nil
}

func (l *Loader) first(paths []string) string {
	for _, p := range paths {
		if l.source.Exists(p) {
			return p
		}
	}
	return ""
}

// EnvPrefix derives the environment prefix of a service:
// "order-api" -> "ORDER_API_".
func EnvPrefix(serviceName string) string {
	if serviceName == "" {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_")) + "_"
}

func configCandidates(serviceName string) []string {
	var paths []string
	for _, dir := range []string{".", "..", "../.."} {
		paths = append(paths, fmt.Sprintf("%s/cmd/%s/config.yml", dir, serviceName))
	}
	return append(paths, "./config/config.yml", "../config/config.yml", "./config.yml")
}

func envCandidates(serviceName string) []string {
	var paths []string
	for _, name := range []string{".env." + serviceName, ".env"} {
		for _, dir := range []string{"./cmd/" + serviceName, "./config", ".", ".."} {
			paths = append(paths, dir+"/"+name)
		}
	}
	return paths
}

// bindEnv sets every prefixed environment variable under each config key
// it may stand for. Set values take precedence over the config file.
func bindEnv(v *viper.Viper, prefix string) {
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		name = strings.TrimPrefix(name, prefix)
		if name == "" {
			continue
		}
		for _, key := range envKeyVariants(name) {
			v.Set(key, value)
		}
	}
}

// envKeyVariants lists the config keys an underscore-separated variable
// can address, since underscores mean both nesting and word breaks:
//
//	REGISTRY_QUIET_FAILURES -> registry_quiet_failures, registry.quiet_failures, registry_quiet.failures
func envKeyVariants(name string) []string {
	parts := strings.Split(strings.ToLower(name), "_")
	variants := []string{strings.Join(parts, "_")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], "_")+"."+strings.Join(parts[i:], "_"))
	}
	return variants
}
