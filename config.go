package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const configName = ".debuggen"

// readConfig layers DEBUGGEN_* environment variables and an optional
// .debuggen.{toml,yaml} file in dir under the flags already bound to v.
func readConfig(v *viper.Viper, dir string) error {
	v.SetEnvPrefix("DEBUGGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrapf(err, "reading %s config in %s", configName, dir)
	}
	logger.Debugw("loaded config", "file", v.ConfigFileUsed())
	return nil
}
