/*
 * loader.go, part of mdbin.
 *
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package config

import (
	"strings"

	"github.com/spf13/viper"

	chem "github.com/rmera/mdbin"
)

// EnvPrefix is the prefix of the environment variables that override the file, as in
// MDBIN_LOG_LEVEL for log.level.
const EnvPrefix = "MDBIN"

// newViper returns a viper reading the MDBIN_ environment. The scalar keys get
// defaults so that they can be set from the environment alone.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, d := range map[string]interface{}{
		"trajectory": "", "skip": 1, "workers": 1, "output": "", "plot": "", "store": "",
		"label": "", "pdf": false, "raise_outside": false, "log.level": "", "log.format": "",
		"waters.oxygen": "", "waters.hydrogen": "", "waters.max_oh": 0.0,
	} {
		v.SetDefault(k, d)
	}
	return v
}

// Load reads the file at path (YAML, TOML or JSON, by extension), applies the
// environment overrides and the defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, chem.NewConfigError("config.Load", "failed to read %s: %v", path, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadString is Load for a configuration held in memory, in the given format ("yaml",
// "toml" or "json").
func LoadString(s, format string) (*Config, error) {
	v := newViper()
	v.SetConfigType(format)
	if err := v.ReadConfig(strings.NewReader(s)); err != nil {
		return nil, chem.NewConfigError("config.LoadString", "failed to parse %s configuration: %v", format, err)
	}
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, chem.NewConfigError("config.unmarshalAndFinalize", "failed to unmarshal configuration: %v", err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, chem.ErrDecorate(err, "config.unmarshalAndFinalize")
	}
	return cfg, nil
}
