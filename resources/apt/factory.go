// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package apt

import (
	"github.com/dsc-community/apt-adapter/internal/registry"
	iu "github.com/dsc-community/apt-adapter/internal/util"
	"github.com/dsc-community/apt-adapter/model"
)

// Register registers this resource with the registry
func Register() {
	registry.MustRegister(&factory{})
}

type factory struct{}

func (f *factory) TypeName() string { return ResourceTypeName }
func (f *factory) Aliases() []string {
	return []string{"apt", "aptpackage"}
}
func (f *factory) Descriptor() *model.ResourceDescriptor { return Descriptor() }
func (f *factory) New(spec *model.PackageSpec, log model.Logger, runner model.CommandRunner) (model.Resource, error) {
	return NewPackage(spec, log, runner)
}
func (f *factory) IsManageable() (bool, error) {
	for _, path := range []string{"apt-get", "apt-cache", "dpkg", "dpkg-query"} {
		_, found, _ := iu.ExecutableInPath(path)
		if !found {
			return false, nil
		}
	}

	return true, nil
}
