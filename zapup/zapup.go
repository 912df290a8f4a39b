// Package zapup sets up zap loggers from explicit configuration or environment variables.
package zapup

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// KeyLogLevel sets log level. Valid values: "info", "debug", "warn", "error", "dpanic", "panic", "fatal".
	KeyLogLevel string = "ZAP_LEVEL"
	// KeyLogEncoding sets log output encoding. Valid values: "console", "json".
	KeyLogEncoding string = "ZAP_ENCODING"
	// KeyFieldApp sets meta information for a field "app" to use within log analytics.
	KeyFieldApp string = "ZAP_APP"
	// KeyFieldStage sets meta information for a field "stage" to use within log analytics.
	KeyFieldStage string = "ZAP_STAGE"
	// KeyOutput sets the output path for zap. Valid values: "stdout", "stderr", "<file path>".
	KeyOutput string = "ZAP_OUT"
)

// Config describes a logger. Empty values fall back to warn level, json encoding and stderr.
type Config struct {
	Level    string
	Encoding string
	Output   string
	// Fields are added to every log line, empty values are omitted.
	Fields map[string]string
}

var (
	once   = new(sync.Once)
	logger *zap.Logger
)

// ConfigFromEnv reads the logger configuration from ZAP_LEVEL, ZAP_ENCODING, ZAP_OUT, ZAP_APP and ZAP_STAGE.
func ConfigFromEnv() Config {
	return Config{
		Level:    os.Getenv(KeyLogLevel),
		Encoding: os.Getenv(KeyLogEncoding),
		Output:   os.Getenv(KeyOutput),
		Fields: map[string]string{
			"app":   os.Getenv(KeyFieldApp),
			"stage": os.Getenv(KeyFieldStage),
		},
	}
}

// MustRootLogger returns the root logger or panics.
func MustRootLogger() *zap.Logger {
	l, err := RootLogger()
	if err != nil {
		panic(fmt.Sprintf("root logger failed: %v", err))
	}
	return l
}

// RootLogger creates the root logger from the environment on first use and returns it afterwards.
// init() is explicitly not used to avoid races with logging of other init() functions.
func RootLogger() (*zap.Logger, error) {
	var err error
	once.Do(func() {
		logger, err = New(ConfigFromEnv())
	})
	if logger == nil && err == nil {
		err = fmt.Errorf("root logger was not initialized")
	}
	return logger, err
}

// Reset allows creating the root logger again, e.g. on a changed environment.
func Reset() {
	once = new(sync.Once)
	logger = nil
}

// New builds a logger from the given configuration.
func New(c Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	err := level.UnmarshalText([]byte(orDefault(c.Level, "warn")))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	config := &zap.Config{
		Level:             level,
		Development:       false,
		Encoding:          orDefault(c.Encoding, "json"),
		EncoderConfig:     zap.NewProductionEncoderConfig(),
		OutputPaths:       []string{outputOrDefault(c.Output)},
		ErrorOutputPaths:  []string{outputOrDefault(c.Output)},
		InitialFields:     map[string]any{},
		DisableStacktrace: true,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.CallerKey = "caller"
	config.EncoderConfig.StacktraceKey = ""

	for k, v := range c.Fields {
		v = purify(v)
		if v == "" {
			// we agreed on having no fields for empty values
			continue
		}
		config.InitialFields[k] = v
	}

	return config.Build(zap.AddCaller())
}

func orDefault(value, fallback string) string {
	value = purify(value)
	if value == "" {
		return fallback
	}
	return value
}

// outputOrDefault keeps the case of the output, file paths are case sensitive.
func outputOrDefault(output string) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return "stderr"
	}
	return output
}

func purify(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

type key int

const logkey = key(0)

// FromContext returns the logger stored in the context or the root logger.
func FromContext(ctx context.Context) *zap.Logger {
	l, ok := ctx.Value(logkey).(*zap.Logger)
	if ok {
		return l
	}
	return MustRootLogger()
}

func PutLogger(ctx context.Context, lg *zap.Logger) context.Context {
	return context.WithValue(ctx, logkey, lg)
}
