// Package config loads sgdesign settings from a YAML file, SGDESIGN_*
// environment variables and command-line flags, in increasing priority, and
// validates the result against an embedded CUE schema.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// EnvPrefix prefixes every environment override, e.g. SGDESIGN_MAX_POINTS
// or SGDESIGN_PUBLISH_BUCKET.
const EnvPrefix = "SGDESIGN"

// DefaultFileName is looked up in the working directory when no file is given.
const DefaultFileName = "sgdesign"

// Config is the effective configuration.
type Config struct {
	MinPoints   int    `mapstructure:"min_points" yaml:"min_points" json:"min_points"`
	MaxPoints   int    `mapstructure:"max_points" yaml:"max_points" json:"max_points"`
	MaxLineLen  int    `mapstructure:"max_line_len" yaml:"max_line_len" json:"max_line_len"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir" json:"output_dir"`
	Compression string `mapstructure:"compression" yaml:"compression" json:"compression"`
	Database    string `mapstructure:"database" yaml:"database" json:"database"`
	MaxSteps    int    `mapstructure:"max_steps" yaml:"max_steps" json:"max_steps"`
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file" json:"metrics_file"`
	CacheSize   int    `mapstructure:"cache_size" yaml:"cache_size" json:"cache_size"`

	Publish Publish `mapstructure:"publish" yaml:"publish" json:"publish"`
}

// Publish configures where result files are copied after a run.
type Publish struct {
	Kind      string `mapstructure:"kind" yaml:"kind" json:"kind"`
	Bucket    string `mapstructure:"bucket" yaml:"bucket" json:"bucket"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix" json:"prefix"`
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key" json:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key" json:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl" yaml:"use_ssl" json:"use_ssl"`
	Region    string `mapstructure:"region" yaml:"region" json:"region"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		MinPoints:   3,
		MaxPoints:   9,
		OutputDir:   ".",
		Compression: "none",
		Database:    "sgdesign.db",
		CacheSize:   1 << 16,
		Publish: Publish{
			Kind:   "none",
			UseSSL: true,
		},
	}
}

// FlagKeys maps configuration keys to the command-line flags that override
// them. Flags missing from the set passed to Load are skipped.
var FlagKeys = map[string]string{
	"min_points":   "min-points",
	"max_points":   "max-points",
	"max_line_len": "max-line-len",
	"output_dir":   "output-dir",
	"compression":  "compression",
	"database":     "db",
	"max_steps":    "max-steps",
	"metrics_file": "metrics-file",
}

// Load reads the configuration. An empty file looks for ./sgdesign.yaml and
// tolerates its absence; a named file must exist. flags may be nil.
func Load(file string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(DefaultFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for key, name := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("min_points", d.MinPoints)
	v.SetDefault("max_points", d.MaxPoints)
	v.SetDefault("max_line_len", d.MaxLineLen)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("compression", d.Compression)
	v.SetDefault("database", d.Database)
	v.SetDefault("max_steps", d.MaxSteps)
	v.SetDefault("metrics_file", d.MetricsFile)
	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("publish.kind", d.Publish.Kind)
	v.SetDefault("publish.bucket", d.Publish.Bucket)
	v.SetDefault("publish.prefix", d.Publish.Prefix)
	v.SetDefault("publish.endpoint", d.Publish.Endpoint)
	v.SetDefault("publish.access_key", d.Publish.AccessKey)
	v.SetDefault("publish.secret_key", d.Publish.SecretKey)
	v.SetDefault("publish.use_ssl", d.Publish.UseSSL)
	v.SetDefault("publish.region", d.Publish.Region)
}

// FieldError is one schema violation.
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// ValidationError lists every schema violation found.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Validate checks c against the embedded schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	value := schema.LookupPath(cue.ParsePath("#Config")).Unify(ctx.Encode(c))
	err := value.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	verr := &ValidationError{}
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		verr.Fields = append(verr.Fields, FieldError{
			Path:    fieldPath(e.Path()),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return verr
}

func fieldPath(p []string) string {
	if len(p) > 0 && p[0] == "#Config" {
		p = p[1:]
	}
	return strings.Join(p, ".")
}

// Dump renders c as YAML.
func Dump(c Config) ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("dump config: %w", err)
	}
	return out, nil
}
