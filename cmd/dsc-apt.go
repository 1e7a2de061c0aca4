// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/choria-io/fisk"

	"github.com/dsc-community/apt-adapter/resources"
)

var (
	ctx        context.Context
	traceLevel string
	debug      bool
	Version    = "development"
)

func main() {
	app := fisk.New("dsc-apt", "DSC resource adapter for APT packages")
	app.Version(Version)
	app.Author("https://github.com/dsc-community")

	app.Flag("trace-level", "Diagnostic log level (trace, debug, info, warning, error, critical)").Envar("DSC_TRACE_LEVEL").StringVar(&traceLevel)
	app.Flag("debug", "Enable debug logging for human commands").UnNegatableBoolVar(&debug)

	resources.Register()

	registerAdapterCommand(app)
	registerPackageCommand(app)

	ctx, _ = signal.NotifyContext(context.Background(), os.Interrupt)

	app.MustParseWithUsage(os.Args[1:])
}
