// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package config loads the tool settings. Values are resolved, from lowest
// to highest priority, from defaults, an optional settings file, CARVER_
// environment variables and command line flags.
package config

import (
	"strings"

	"github.com/ostafen/carver/internal/errs"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "CARVER"

const (
	KeyOutputDir    = "output_dir"
	KeyMatchMode    = "match_mode"
	KeyHash         = "hash"
	KeyDecode       = "decode"
	KeyMaxInputSize = "max_input_size"
	KeyReport       = "report"
	KeyPadding      = "padding"
	KeyLogLevel     = "log_level"
	KeyLogFile      = "log_file"
	KeyNoColor      = "no_color"
)

type Settings struct {
	OutputDir    string   `mapstructure:"output_dir"`
	MatchMode    string   `mapstructure:"match_mode"`
	Hash         []string `mapstructure:"hash"`
	Decode       string   `mapstructure:"decode"`
	MaxInputSize string   `mapstructure:"max_input_size"`
	Report       string   `mapstructure:"report"`
	Padding      int64    `mapstructure:"padding"`
	LogLevel     string   `mapstructure:"log_level"`
	LogFile      string   `mapstructure:"log_file"`
	NoColor      bool     `mapstructure:"no_color"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutputDir, ".")
	v.SetDefault(KeyMatchMode, "aligned")
	v.SetDefault(KeyHash, []string{})
	v.SetDefault(KeyDecode, "raw")
	v.SetDefault(KeyMaxInputSize, "")
	v.SetDefault(KeyReport, "")
	v.SetDefault(KeyPadding, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyNoColor, false)
}

// FlagName returns the command line flag bound to key: underscores become
// dashes.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Load resolves the settings. path is an optional settings file whose
// format follows its extension (yaml, toml, json...). Every known key is
// bound to the flag of the same name in flags, when flags defines it; a
// flag only takes precedence when set explicitly.
func Load(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errs.Config("reading settings file %s: %w", path, err)
		}
	}

	if flags != nil {
		for _, key := range v.AllKeys() {
			f := flags.Lookup(FlagName(key))
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errs.Config("binding flag --%s: %w", f.Name, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errs.Config("decoding settings: %w", err)
	}
	return &s, nil
}
