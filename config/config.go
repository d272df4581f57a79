package config

import (
	"errors"
	"sort"
	"strings"

	"github.com/coursecast/coursecast/constant"
	"github.com/coursecast/coursecast/filesystem"
	"github.com/coursecast/coursecast/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps configuration keys to environment variable suffixes.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

var rejected []error

// Setup loads coursecast.toml from the config directory on top of the
// defaults and binds every key to its COURSECAST_ environment variable.
// A missing file is not an error. Values breaking their field rule are
// replaced by the default and reported by Rejected.
func Setup() error {
	viper.SetConfigName(constant.Coursecast)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Coursecast)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return err
	}

	rejected = rejected[:0]
	keys := make([]string, 0, len(Default))
	for name := range Default {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	for _, name := range keys {
		field := Default[name]
		if err := field.Check(viper.Get(name)); err != nil {
			rejected = append(rejected, err)
			viper.Set(name, field.Value)
		}
	}

	return nil
}

// Rejected returns the violations found by the last Setup, sorted by key.
func Rejected() []error {
	return rejected
}
