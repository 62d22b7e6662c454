// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package viper

import (
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyAnnotation = "key"
)

type viperHelper struct {
	viper  *viper.Viper
	pflags map[string]*flag.Flag

	customConfigPath string
}

// NewViperHelper creates a new ViperHelper instance that searches the named config file in the config paths.
func NewViperHelper(v *viper.Viper, name string, configPaths ...string) *viperHelper {
	if v == nil {
		v = viper.New()
	}
	v.SetConfigName(name)

	vh := &viperHelper{
		viper:  v,
		pflags: map[string]*flag.Flag{},
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	return vh
}

// InitFlags adds the custom config flag to the flagset.
func (h *viperHelper) InitFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	fs.StringVar(&h.customConfigPath, "custom-config", "", "Specify a custom config to the configuration file")
}

// BindPFlag binds a pflag to viper and stores a internal reference
func (h *viperHelper) BindPFlag(key string, f *flag.Flag) {
	AddCustomConfigForFlag(f, key)
	h.pflags[key] = f
	_ = h.viper.BindPFlag(key, f)
}

// BindPFlagFromFlagSet binds the flag with the given name to the configuration key.
func (h *viperHelper) BindPFlagFromFlagSet(fs *flag.FlagSet, name, key string) {
	if f := fs.Lookup(name); f != nil {
		h.BindPFlag(key, f)
	}
}

// BindEnv binds the configuration key to the given environment variables.
// Flags that are explicitly set on the command line still take precedence.
func (h *viperHelper) BindEnv(key string, envs ...string) error {
	args := append([]string{key}, envs...)
	if err := h.viper.BindEnv(args...); err != nil {
		return errors.Wrapf(err, "unable to bind environment variables %v to %s", envs, key)
	}
	return nil
}

// ReadInConfig reads the custom config file or searches the config file in the configured paths.
// A missing config file is not an error if no custom config is defined.
// The resulting configuration is written back to the bound flags.
func (h *viperHelper) ReadInConfig() error {
	if h.customConfigPath != "" {
		h.viper.SetConfigFile(h.customConfigPath)
		if err := h.viper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "unable to read config from %s", h.customConfigPath)
		}
	} else if err := h.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "unable to read config")
		}
	}
	return h.ApplyConfig()
}

// ApplyConfig writes viper flags back to the originated pflag variable pointer.
func (h *viperHelper) ApplyConfig() error {
	for key, f := range h.pflags {
		if err := f.Value.Set(h.viper.GetString(key)); err != nil {
			return errors.Wrapf(err, "invalid value for %s", key)
		}
	}
	return nil
}
