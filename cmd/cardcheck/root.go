package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"ccentry/internal/config"
	"ccentry/internal/observability"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time.
var Version = "dev"

// now is replaced in tests.
var now = time.Now

type cli struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "cardcheck",
		Short:         "Classify, validate and simulate credit card entry.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.initializeConfig(); err != nil {
				return err
			}
			observability.Initialize(c.loggerConfig(), zapcore.Lock(os.Stderr))
			observability.GetLogger().Debug("cardcheck starting", zap.String("command", cmd.Name()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "", "config file (default is ./cardcheck.yaml)")
	root.PersistentFlags().String("log-level", "warn", "log level")
	_ = c.v.BindPFlag("logger.level", root.PersistentFlags().Lookup("log-level"))
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(
		c.newClassifyCmd(),
		c.newValidateCmd(),
		c.newSimulateCmd(),
		c.newTokenCmd(),
	)
	return root
}

// initializeConfig reads in config file and ENV variables if set.
func (c *cli) initializeConfig() error {
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else {
		c.v.AddConfigPath(".")
		c.v.SetConfigName("cardcheck")
		c.v.SetConfigType("yaml")
	}

	c.v.SetDefault("form.include_zip", true)
	c.v.SetDefault("form.include_helper", true)
	c.v.SetDefault("jwt.issuer", "ccentry-api")
	c.v.SetDefault("jwt.ttl", "24h")
	c.v.SetDefault("logger.format", "console")

	c.v.SetEnvPrefix("CARDCHECK")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()
	// share the server's secret without a prefix
	_ = c.v.BindEnv("jwt.secret", "CARDCHECK_JWT_SECRET", "JWT_SECRET")
	_ = c.v.BindEnv("jwt.issuer", "CARDCHECK_JWT_ISSUER", "JWT_ISSUER")

	if err := c.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func (c *cli) loggerConfig() config.LoggerConfig {
	return config.LoggerConfig{
		Level:       c.v.GetString("logger.level"),
		Format:      c.v.GetString("logger.format"),
		ServiceName: "cardcheck",
		LogFile:     c.v.GetString("logger.file"),
	}
}
