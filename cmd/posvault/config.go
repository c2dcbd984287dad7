// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// config holds defaults for the global flags. Flags given on the command line win.
type config struct {
	DataDir   *string `yaml:"data-dir"`
	Verbosity *int    `yaml:"verbosity"`
	JSONLogs  *bool   `yaml:"json-logs"`
	CacheSize *int    `yaml:"cache-size"`
	Metrics   *bool   `yaml:"metrics"`
}

type settings struct {
	DataDir   string
	Verbosity int
	JSONLogs  bool
	CacheSize int
	Metrics   bool
}

func loadConfig(path string) (*config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	var cfg config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return &cfg, nil
}

// apply overrides the settings whose flag was not set explicitly.
func (c *config) apply(s *settings, isSet func(name string) bool) {
	if c.DataDir != nil && !isSet(dataDirFlag.Name) {
		s.DataDir = *c.DataDir
	}
	if c.Verbosity != nil && !isSet(verbosityFlag.Name) {
		s.Verbosity = *c.Verbosity
	}
	if c.JSONLogs != nil && !isSet(jsonLogsFlag.Name) {
		s.JSONLogs = *c.JSONLogs
	}
	if c.CacheSize != nil && !isSet(cacheSizeFlag.Name) {
		s.CacheSize = *c.CacheSize
	}
	if c.Metrics != nil && !isSet(enableMetricsFlag.Name) {
		s.Metrics = *c.Metrics
	}
}
