// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package apt

import (
	"context"

	"github.com/dsc-community/apt-adapter/model"
)

const (
	// ResourceTypeName is the canonical DSC type token for this resource
	ResourceTypeName = "Microsoft.Linux.Apt/Package"

	// ResourceVersion is reported in the resource descriptor
	ResourceVersion = "0.1.0"
)

var _ model.Resource = (*Package)(nil)

// Package manages one APT package instance bound to a desired configuration
type Package struct {
	spec   *model.PackageSpec
	log    model.Logger
	runner model.CommandRunner
}

// NewPackage creates a package resource for the given spec. Specs without a
// name are accepted so export can enumerate without a filter, the name is
// validated for safety whenever one is present
func NewPackage(spec *model.PackageSpec, log model.Logger, runner model.CommandRunner) (*Package, error) {
	if spec == nil {
		spec = &model.PackageSpec{}
	}

	if spec.Name != "" {
		err := spec.Validate()
		if err != nil {
			return nil, err
		}
	}

	return &Package{
		spec:   spec,
		log:    log.With("resource", ResourceTypeName, "package", spec.Name),
		runner: runner,
	}, nil
}

// We ensure that any user of this resource in the same process will not call apt multiple times
func (p *Package) execute(ctx context.Context, cmd string, args ...string) (stdout []byte, stderr []byte, exitCode int, err error) {
	model.PackageGlobalLock.Lock()
	defer model.PackageGlobalLock.Unlock()

	return p.runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{
		Command: cmd,
		Args:    args,
		Environment: []string{
			"DEBIAN_FRONTEND=noninteractive",
			"APT_LISTBUGS_FRONTEND=none",
			"APT_LISTCHANGES_FRONTEND=none",
		},
	})
}

// Get resolves the observed state of the package. Source and dependencies
// are echoed from the spec, they are not verified against the system
func (p *Package) Get(ctx context.Context) (*model.PackageState, error) {
	if p.spec.Name == "" {
		return nil, model.ErrResourceNameRequired
	}

	installed := p.isInstalled(ctx)

	version := p.spec.Version
	if installed && version == "" {
		version = p.latestInstalledVersion(ctx, p.spec.Name)
	}

	p.log.Trace("Resolved package state", "installed", installed, "version", version)

	return &model.PackageState{
		Name:         p.spec.Name,
		Version:      version,
		Exist:        installed,
		Source:       p.spec.Source,
		Dependencies: p.spec.Dependencies,
	}, nil
}

// Test compares the desired existence against the observed state, _exist is
// the only property ever compared
func (p *Package) Test(ctx context.Context) (*model.TestResult, error) {
	state, err := p.Get(ctx)
	if err != nil {
		return nil, err
	}

	diffs := []string{}
	if p.spec.DesiredExist() != state.Exist {
		diffs = append(diffs, model.PropertyExist)
	}

	return &model.TestResult{
		ActualState:         state,
		DifferingProperties: diffs,
		InDesiredState:      len(diffs) == 0,
	}, nil
}

// Set converges the package to the desired existence, it re-checks the
// installed state afterwards so repeated calls with an unchanged spec
// report no further differences
func (p *Package) Set(ctx context.Context) (*model.SetResult, error) {
	if p.spec.Name == "" {
		return nil, model.ErrResourceNameRequired
	}

	before := p.isInstalled(ctx)
	desired := p.spec.DesiredExist()

	switch {
	case desired && !before:
		p.install(ctx)
	case !desired && before:
		p.remove(ctx)
	}

	after := p.isInstalled(ctx)

	diffs := []string{}
	if before != after {
		diffs = append(diffs, model.PropertyExist)
	}

	return &model.SetResult{
		State:               model.SetState{Exist: after},
		DifferingProperties: diffs,
	}, nil
}
