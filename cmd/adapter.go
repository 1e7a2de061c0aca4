// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/choria-io/fisk"

	"github.com/dsc-community/apt-adapter/adapter"
	iu "github.com/dsc-community/apt-adapter/internal/util"
	"github.com/dsc-community/apt-adapter/resources/apt"
)

type adapterCommand struct {
	operation    string
	input        string
	resourceType string
}

func registerAdapterCommand(app *fisk.Application) {
	cmd := &adapterCommand{}

	ac := app.Command("adapter", "Runs one host engine operation and prints its JSON result").Action(cmd.adapterAction)
	ac.Flag("operation", "Operation to perform").Required().EnumVar(&cmd.operation, adapter.Operations()...)
	ac.Flag("input", "Instance or document JSON, read from stdin when not given").StringVar(&cmd.input)
	ac.Flag("resource-type", "Resource type token").Default(apt.ResourceTypeName).StringVar(&cmd.resourceType)
}

func (c *adapterCommand) adapterAction(_ *fisk.ParseContext) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	runner, err := newRunner(cfg, log)
	if err != nil {
		return err
	}

	input := []byte(c.input)
	if c.emptyInput() && c.operation != adapter.OperationList {
		input, err = readStdin()
		if err != nil {
			return err
		}
	}

	var opts []adapter.Option
	if cfg.Profiling || effectiveTraceLevel(cfg) == "trace" {
		opts = append(opts, adapter.WithProfiling())
	}

	code, body := adapter.New(log, runner, opts...).RunOperation(ctx, c.operation, input, c.resourceType)

	fmt.Println(string(iu.DumpCompactJson(body)))

	if code != 0 {
		os.Exit(code)
	}

	return nil
}

func (c *adapterCommand) emptyInput() bool {
	trimmed := strings.TrimSpace(c.input)
	return trimmed == "" || trimmed == "{}"
}

// readStdin reads piped or redirected input, interactive terminals are
// never read so the command does not hang
func readStdin() ([]byte, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Mode()&os.ModeCharDevice != 0 {
		return nil, nil
	}

	return io.ReadAll(os.Stdin)
}
