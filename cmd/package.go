// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/choria-io/fisk"

	iu "github.com/dsc-community/apt-adapter/internal/util"
	"github.com/dsc-community/apt-adapter/model"
	"github.com/dsc-community/apt-adapter/resources/apt"
)

type packageCommand struct {
	name    string
	version string
	absent  bool
}

func registerPackageCommand(app *fisk.Application) {
	cmd := &packageCommand{}

	pkg := app.Command("package", "Local package management").Alias("pkg")

	infoCmd := pkg.Command("info", "Show the current state of a package").Alias("show").Alias("i").Action(cmd.infoAction)
	infoCmd.Arg("name", "Package name to show").Required().StringVar(&cmd.name)

	ensureCmd := pkg.Command("ensure", "Ensure a package is installed or removed").Action(cmd.ensureAction)
	ensureCmd.Arg("name", "Package name to manage").Required().StringVar(&cmd.name)
	ensureCmd.Flag("version", "Specific version to require").StringVar(&cmd.version)
	ensureCmd.Flag("absent", "Remove the package instead of installing it").UnNegatableBoolVar(&cmd.absent)
}

func (c *packageCommand) newPackage() (*apt.Package, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}

	out := newOutputLogger()

	runner, err := newRunner(cfg, out)
	if err != nil {
		return nil, err
	}

	exist := !c.absent

	return apt.NewPackage(&model.PackageSpec{
		Name:    c.name,
		Version: c.version,
		Exist:   &exist,
	}, out, runner)
}

func (c *packageCommand) infoAction(_ *fisk.ParseContext) error {
	pkg, err := c.newPackage()
	if err != nil {
		return err
	}

	state, err := pkg.Get(ctx)
	if err != nil {
		return err
	}

	fmt.Println(string(iu.DumpJson(state)))

	return nil
}

func (c *packageCommand) ensureAction(_ *fisk.ParseContext) error {
	pkg, err := c.newPackage()
	if err != nil {
		return err
	}

	res, err := pkg.Set(ctx)
	if err != nil {
		return err
	}

	fmt.Println(string(iu.DumpJson(res)))

	return nil
}
