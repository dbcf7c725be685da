// Package config loads generator settings from a config file, STREAMOP_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"streamop-generator/internal/gen"
	"streamop-generator/options"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "STREAMOP"

// DefaultConfigName is the config file looked up in the working directory
// when no file is given; any extension viper supports is accepted.
const DefaultConfigName = "streamop"

// Config keys. Flags use the same names with '-' instead of '_'.
const (
	KeyInput            = "input"
	KeyOutput           = "output"
	KeyOptions          = "options"
	KeyTemplateStreamOp = "template_streamop"
	KeyPrivateOptional  = "private_optional"
	KeyPureEnums        = "pure_enums"
	KeySinkType         = "sink_type"
	KeySinkParam        = "sink_param"
	KeySinkInclude      = "sink_include"
	KeyRuntimeInclude   = "runtime_include"
	KeyComments         = "comments"
	KeyLogJSON          = "log_json"
	KeyVerbose          = "verbose"
)

// Config is the merged generator configuration.
type Config struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`

	// Options is a thrift-style option string; the dedicated keys below are
	// applied on top of it.
	Options          string `mapstructure:"options"`
	TemplateStreamOp bool   `mapstructure:"template_streamop"`
	PrivateOptional  bool   `mapstructure:"private_optional"`
	PureEnums        string `mapstructure:"pure_enums"`
	SinkType         string `mapstructure:"sink_type"`
	SinkParam        string `mapstructure:"sink_param"`
	SinkInclude      string `mapstructure:"sink_include"`

	RuntimeInclude string `mapstructure:"runtime_include"`
	Comments       bool   `mapstructure:"comments"`

	LogJSON bool `mapstructure:"log_json"`
	Verbose bool `mapstructure:"verbose"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	defaults := gen.DefaultGeneratorConfig()

	v.SetDefault(KeyInput, "")
	v.SetDefault(KeyOutput, defaults.OutputDir)
	v.SetDefault(KeyOptions, "")
	v.SetDefault(KeyTemplateStreamOp, false)
	v.SetDefault(KeyPrivateOptional, false)
	v.SetDefault(KeyPureEnums, "")
	v.SetDefault(KeySinkType, "")
	v.SetDefault(KeySinkParam, "")
	v.SetDefault(KeySinkInclude, "")
	v.SetDefault(KeyRuntimeInclude, defaults.RuntimeInclude)
	v.SetDefault(KeyComments, defaults.GenerateComments)
	v.SetDefault(KeyLogJSON, false)
	v.SetDefault(KeyVerbose, false)
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	return v
}

// BindFlags binds every flag of fs whose name matches a config key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error

	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}

		key := strings.ReplaceAll(f.Name, "-", "_")
		if !isKey(key) {
			return
		}

		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = errors.Wrapf(bindErr, "failed to bind flag --%s", f.Name)
		}
	})

	return err
}

func isKey(key string) bool {
	switch key {
	case KeyInput, KeyOutput, KeyOptions, KeyTemplateStreamOp, KeyPrivateOptional,
		KeyPureEnums, KeySinkType, KeySinkParam, KeySinkInclude, KeyRuntimeInclude,
		KeyComments, KeyLogJSON, KeyVerbose:
		return true
	default:
		return false
	}
}

// Load reads configFile, or streamop.* in the working directory when
// configFile is empty, and unmarshals the merged settings of v. A missing
// default config file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "failed to read config file %s", v.ConfigFileUsed())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.File = v.ConfigFileUsed()

	return &cfg, nil
}

// GenerationOptions converts the configuration into generator options. The
// option string is parsed first and the dedicated keys are applied on top.
func (c *Config) GenerationOptions() (options.Options, error) {
	opts, err := options.Parse(c.Options)
	if err != nil {
		return options.Options{}, errors.Wrap(err, "invalid options")
	}

	if c.TemplateStreamOp {
		opts = opts.With(options.FlagTemplateStreamOp)
	}

	if c.PrivateOptional {
		opts = opts.With(options.FlagPrivateOptional)
	}

	switch strings.ToLower(c.PureEnums) {
	case "", "false":
	case "true", "plain":
		_ = opts.SetPureEnums("")
	default:
		if err := opts.SetPureEnums(c.PureEnums); err != nil {
			return options.Options{}, errors.WithHint(err, `use "plain" or "enum_class"`)
		}
	}

	if c.SinkType != "" {
		opts.SinkType = c.SinkType
	}

	if c.SinkParam != "" {
		opts.SinkParam = c.SinkParam
	}

	if c.SinkInclude != "" {
		opts.SinkInclude = c.SinkInclude
	}

	return opts, nil
}

// GeneratorConfig returns the emitter settings.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	return gen.GeneratorConfig{
		OutputDir:        c.Output,
		GenerateComments: c.Comments,
		RuntimeInclude:   c.RuntimeInclude,
	}
}
