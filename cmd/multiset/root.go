package main

import (
	"errors"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/navelplace/navel-lib/pkg/printers"
	"github.com/navelplace/navel-lib/zapup"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	keyOutput   = "output"
	keyFail     = "fail"
	keyNoColor  = "no-color"
	keyLogLevel = "log-level"

	envPrefix = "MULTISET"
)

// ErrDifferent is returned when --fail is set and the compared inputs differ.
var ErrDifferent = errors.New("inputs are different")

type config struct {
	fs  afero.Fs
	v   *viper.Viper
	log *zap.Logger
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	c := &config{
		fs: fs,
		v:  viper.New(),
	}

	rootCmd := &cobra.Command{
		Use:           "multiset",
		Short:         "compares lists and urls regardless of the order of their elements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			lc := zapup.ConfigFromEnv()
			if level := c.v.GetString(keyLogLevel); level != "" {
				lc.Level = level
			}

			log, err := zapup.New(lc)
			if err != nil {
				return err
			}
			c.log = log

			color.NoColor = color.NoColor || c.v.GetBool(keyNoColor)

			return nil
		},
	}

	rootCmd.PersistentFlags().StringP(keyOutput, "o", "yaml", `output format, one of "json", "yaml" or "template=<go template>"`)
	rootCmd.PersistentFlags().Bool(keyFail, false, "return an error if the inputs differ")
	rootCmd.PersistentFlags().Bool(keyNoColor, false, "disable colored summary")
	rootCmd.PersistentFlags().String(keyLogLevel, "", "log level, overrides "+zapup.KeyLogLevel)

	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	rootCmd.AddCommand(newCompareCmd(c), newQueryCmd(c))

	return rootCmd
}

// report prints the result, a colored summary line and returns ErrDifferent if requested.
func (c *config) report(cmd *cobra.Command, equal bool, result any) error {
	p, err := printers.New(c.v.GetString(keyOutput), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	err = p.Print(result)
	if err != nil {
		return err
	}

	summary(cmd.ErrOrStderr(), equal)

	c.log.Debug("compared inputs", zap.Bool("equal", equal))

	if !equal && c.v.GetBool(keyFail) {
		return ErrDifferent
	}

	return nil
}

func summary(w io.Writer, equal bool) {
	if equal {
		_, _ = color.New(color.FgGreen).Fprintln(w, "✔ equal")
		return
	}
	_, _ = color.New(color.FgRed).Fprintf(w, "✘ %s\n", ErrDifferent)
}
