// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/SladkyCitron/slogcolor"
	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"

	"github.com/dsc-community/apt-adapter/internal/cmdrunner"
	iu "github.com/dsc-community/apt-adapter/internal/util"
	"github.com/dsc-community/apt-adapter/logging"
	"github.com/dsc-community/apt-adapter/model"
)

// settings are optional site defaults, flags and DSC_TRACE_LEVEL always win
type settings struct {
	TraceLevel string `yaml:"trace_level"`
	Profiling  bool   `yaml:"profiling"`
	AptTimeout string `yaml:"apt_timeout"`
}

func loadSettings() (*settings, error) {
	cfg := &settings{}

	var path string
	userFile := filepath.Join(xdg.ConfigHome, "dsc-apt", "adapter.yaml")
	systemFile := "/etc/dsc-apt/adapter.yaml"

	if xdg.ConfigHome != "" && iu.FileExists(userFile) {
		path = userFile
	} else if iu.FileExists(systemFile) {
		path = systemFile
	}

	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(raw, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// effectiveTraceLevel resolves the diagnostic level, flag and environment
// take precedence over the settings file
func effectiveTraceLevel(cfg *settings) string {
	if traceLevel != "" {
		return traceLevel
	}

	if cfg.TraceLevel != "" {
		return cfg.TraceLevel
	}

	return logging.DefaultTraceLevel
}

func newRunner(cfg *settings, log model.Logger) (*cmdrunner.CommandRunner, error) {
	runner, err := cmdrunner.NewCommandRunner(log)
	if err != nil {
		return nil, err
	}

	if cfg.AptTimeout != "" {
		d, err := time.ParseDuration(cfg.AptTimeout)
		if err != nil {
			return nil, err
		}
		runner.SetDefaultTimeout(d)
	}

	return runner, nil
}

// newLogger is the stderr diagnostic logger, its lines follow the host
// engine's {"<level>":"<message>"} contract
func newLogger(cfg *settings) model.Logger {
	return logging.NewStderr(effectiveTraceLevel(cfg))
}

// newOutputLogger is the colored stdout logger for human commands
func newOutputLogger() model.Logger {
	var level slog.Level

	switch {
	case debug:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	return logging.NewSlogLogger(slog.New(slogcolor.NewHandler(os.Stdout, &slogcolor.Options{Level: level})))
}
