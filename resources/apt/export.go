// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package apt

import (
	"context"
	"fmt"
	"slices"

	"github.com/dsc-community/apt-adapter/model"
)

// Export enumerates every package in the local dpkg database with its
// repository metadata. When the spec constrains the export it acts as a
// filter, all non-empty filter fields must match.
//
// A filter naming a package unknown to the repository metadata, or one
// matching nothing, terminates with exit code 1 rather than returning an
// empty list, host tooling distinguishes that from a successful query
// with zero matches
func (p *Package) Export(ctx context.Context) (*model.ExportResult, error) {
	var filter *model.PackageSpec
	if p.spec.IsFilter() {
		filter = p.spec
	}

	if filter != nil && filter.Name != "" {
		_, err := p.show(ctx, filter.Name)
		if err != nil {
			p.log.Error("Package provided in the config cannot be installed", "err", err)
			return nil, &model.ExitError{Code: 1, Message: fmt.Sprintf("package %q is not known to the repository metadata", filter.Name)}
		}
	}

	names, err := p.installedPackageNames(ctx)
	if err != nil {
		return nil, err
	}

	packages := []*model.PackageState{}
	for _, name := range names {
		info, err := p.show(ctx, name)
		if err != nil {
			// locally installed packages can be absent from the repositories
			p.log.Debug("Skipping package without repository metadata", "name", name)
			continue
		}

		urls := p.sourceRepositories(ctx, info.Name)
		if len(urls) > 0 {
			info.Source = urls[0]
			info.SourceRepos = urls
		} else {
			info.Source = "unknown"
		}

		info.Exist = true

		if filter != nil && !matchesFilter(info, filter) {
			continue
		}

		packages = append(packages, info)
	}

	if filter != nil && len(packages) == 0 {
		p.log.Error("Package provided in the config is not currently installed")
		return nil, &model.ExitError{Code: 1, Message: "no installed package matches the export filter"}
	}

	return &model.ExportResult{Packages: packages}, nil
}

// matchesFilter requires every non-absent filter field to match the observed state
func matchesFilter(info *model.PackageState, filter *model.PackageSpec) bool {
	if filter.Name != "" && filter.Name != info.Name {
		return false
	}
	if filter.Version != "" && filter.Version != info.Version {
		return false
	}
	if filter.Source != "" && filter.Source != info.Source {
		return false
	}
	if len(filter.Dependencies) > 0 && !slices.Equal(filter.Dependencies, info.Dependencies) {
		return false
	}

	return true
}
