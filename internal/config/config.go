package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AttributeKeys maps semantic event fields to the attribute keys used in the log.
type AttributeKeys struct {
	Timestamp string
	Activity  string
	User      string
	Status    string
	Gas       string
	GasLimit  string
}

// Features toggles the individual detectors.
type Features struct {
	Merge       bool
	Redundancy  bool
	Sequence    bool
	TraceLength bool
	OutOfGas    bool
}

// AnalyzeConfig holds configuration for the analyze command.
type AnalyzeConfig struct {
	LogPath    string
	Out        string
	ReportPath string
	PGDSN      string
	LogLevel   string

	TimeThresholdSeconds    float64
	MaxSequenceLength       int
	MaxSeqSuggestions       int
	Percentile              float64
	MaxLongTraceSuggestions int
	MaxOutOfGasSuggestions  int
	SeverityMedium          int
	SeverityHigh            int

	FallbackUserFromTrace bool
	TraceUserAttr         string
	LongTraceIdentifier   string
	FailureStatuses       []string

	Keys     AttributeKeys
	Features Features
}

// LoadAnalyze merges config file, environment variables, and flags into AnalyzeConfig.
func LoadAnalyze(cfgFile string, flags *pflag.FlagSet) (AnalyzeConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return AnalyzeConfig{}, err
	}

	v.SetDefault("time_threshold_seconds", 60)
	v.SetDefault("max_sequence_length", 5)
	v.SetDefault("max_seq_suggestions", 10)
	v.SetDefault("percentile", 99)
	v.SetDefault("max_long_trace_suggestions", 5)
	v.SetDefault("max_out_of_gas_suggestions", 10)
	v.SetDefault("severity_limits.medium", 2)
	v.SetDefault("severity_limits.high", 3)
	v.SetDefault("fallback_user_from_trace", true)
	v.SetDefault("trace_user_attr", "concept:name")
	v.SetDefault("long_trace_identifier", "blockNumber")
	v.SetDefault("failure_statuses", []string{"0x0", "false"})
	v.SetDefault("timestamp_key", "time:timestamp")
	v.SetDefault("activity_key", "concept:name")
	v.SetDefault("user_key", "org:resource")
	v.SetDefault("status_key", "status")
	v.SetDefault("gas_key", "gas")
	v.SetDefault("gas_limit_key", "gasLimit")
	v.SetDefault("features.merge", true)
	v.SetDefault("features.redundancy", true)
	v.SetDefault("features.sequence", true)
	v.SetDefault("features.trace_length", true)
	v.SetDefault("features.out_of_gas", true)
	v.SetDefault("log-level", "info")

	cfg := AnalyzeConfig{
		LogPath:    v.GetString("log"),
		Out:        v.GetString("out"),
		ReportPath: v.GetString("report"),
		PGDSN:      v.GetString("pg-dsn"),
		LogLevel:   v.GetString("log-level"),

		TimeThresholdSeconds:    v.GetFloat64("time_threshold_seconds"),
		MaxSequenceLength:       v.GetInt("max_sequence_length"),
		MaxSeqSuggestions:       v.GetInt("max_seq_suggestions"),
		Percentile:              v.GetFloat64("percentile"),
		MaxLongTraceSuggestions: longTraceCap(v),
		MaxOutOfGasSuggestions:  v.GetInt("max_out_of_gas_suggestions"),
		SeverityMedium:          v.GetInt("severity_limits.medium"),
		SeverityHigh:            v.GetInt("severity_limits.high"),

		FallbackUserFromTrace: v.GetBool("fallback_user_from_trace"),
		TraceUserAttr:         v.GetString("trace_user_attr"),
		LongTraceIdentifier:   v.GetString("long_trace_identifier"),
		FailureStatuses:       v.GetStringSlice("failure_statuses"),

		Keys: AttributeKeys{
			Timestamp: v.GetString("timestamp_key"),
			Activity:  v.GetString("activity_key"),
			User:      v.GetString("user_key"),
			Status:    v.GetString("status_key"),
			Gas:       v.GetString("gas_key"),
			GasLimit:  v.GetString("gas_limit_key"),
		},
		Features: Features{
			Merge:       v.GetBool("features.merge"),
			Redundancy:  v.GetBool("features.redundancy"),
			Sequence:    v.GetBool("features.sequence"),
			TraceLength: v.GetBool("features.trace_length"),
			OutOfGas:    v.GetBool("features.out_of_gas"),
		},
	}

	return cfg, nil
}

// longTraceCap honors num_longest_traces as an alias for
// max_long_trace_suggestions, whichever is configured.
func longTraceCap(v *viper.Viper) int {
	if v.IsSet("num_longest_traces") {
		return v.GetInt("num_longest_traces")
	}
	return v.GetInt("max_long_trace_suggestions")
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("GASSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}
