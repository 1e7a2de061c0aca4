// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package apt

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/dsc-community/apt-adapter/model"
)

// installedVersions lists the installed versions of a package by scraping
// dpkg -l for fully installed (ii) entries. Probe failures degrade to an
// empty list, they are logged and never propagated
func (p *Package) installedVersions(ctx context.Context, name string) []string {
	stdout, _, _, err := p.execute(ctx, "dpkg", "-l", name)
	if err != nil {
		p.log.Error("Could not list installed versions", "package", name, "err", err)
		return nil
	}

	var versions []string

	s := bufio.NewScanner(bytes.NewReader(stdout))
	for s.Scan() {
		line := s.Text()
		if !strings.HasPrefix(line, "ii") || !strings.Contains(line, name) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) >= 3 {
			versions = append(versions, fields[2])
		}
	}

	return versions
}

// latestInstalledVersion returns the maximal installed version string,
// versions sort as plain strings here, not in Debian version order
func (p *Package) latestInstalledVersion(ctx context.Context, name string) string {
	versions := p.installedVersions(ctx, name)
	if len(versions) == 0 {
		return ""
	}

	sort.Strings(versions)

	return versions[len(versions)-1]
}

// isInstalled checks the installed versions list, with a version in the
// spec the exact version string must be installed
func (p *Package) isInstalled(ctx context.Context) bool {
	versions := p.installedVersions(ctx, p.spec.Name)

	if p.spec.Version != "" {
		return slices.Contains(versions, p.spec.Version)
	}

	return len(versions) > 0
}

// availableVersions lists every version the repositories offer for a
// package, parsed from the pipe delimited apt-cache madison output
func (p *Package) availableVersions(ctx context.Context, name string) []string {
	stdout, _, exitcode, err := p.execute(ctx, "apt-cache", "madison", name)
	if err != nil || exitcode != 0 {
		p.log.Error("Could not list available versions", "package", name, "exitcode", exitcode, "err", err)
		return nil
	}

	var versions []string

	s := bufio.NewScanner(bytes.NewReader(stdout))
	for s.Scan() {
		parts := strings.Split(s.Text(), "|")
		if len(parts) >= 2 {
			versions = append(versions, strings.TrimSpace(parts[1]))
		}
	}

	return versions
}

// sourceRepositories extracts the repository URLs for the installed version
// of a package from apt-cache policy output. The scan is positional: it
// collects http(s) URL tokens from the indented block following the ***
// marker line and stops at the first line that leaves that block
func (p *Package) sourceRepositories(ctx context.Context, name string) []string {
	stdout, _, _, err := p.execute(ctx, "apt-cache", "policy", name)
	if err != nil {
		p.log.Error("Could not determine source repository", "package", name, "err", err)
		return nil
	}

	return parseSourceRepositories(string(stdout))
}

func parseSourceRepositories(output string) []string {
	var urls []string
	inInstalled := false

	s := bufio.NewScanner(strings.NewReader(output))
	for s.Scan() {
		line := s.Text()
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(stripped, "***") {
			inInstalled = true
			continue
		}
		if !inInstalled {
			continue
		}
		if stripped == "" {
			break
		}

		isStatusFile := strings.Contains(stripped, "/var/lib/dpkg/status")
		if !strings.HasPrefix(line, " ") && !isStatusFile && !strings.HasPrefix(stripped, "500 ") && !startsWithDigit(stripped) {
			break
		}
		if isStatusFile {
			continue
		}

		for _, token := range strings.Fields(stripped) {
			if strings.HasPrefix(token, "http://") || strings.HasPrefix(token, "https://") {
				url := strings.TrimRight(token, "/")
				if !slices.Contains(urls, url) {
					urls = append(urls, url)
				}
				break
			}
		}
	}

	return urls
}

func startsWithDigit(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

// installedPackageNames enumerates every package in the local dpkg database.
// Unlike the soft probes, export cannot proceed without this list so
// failures propagate
func (p *Package) installedPackageNames(ctx context.Context) ([]string, error) {
	stdout, stderr, exitcode, err := p.execute(ctx, "dpkg-query", "-W", "-f=${Package}\n")
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate installed packages: %w", err)
	}
	if exitcode != 0 {
		return nil, fmt.Errorf("failed to enumerate installed packages: dpkg-query exited %d: %s", exitcode, strings.TrimSpace(string(stderr)))
	}

	var names []string
	s := bufio.NewScanner(bytes.NewReader(stdout))
	for s.Scan() {
		name := strings.TrimSpace(s.Text())
		if name != "" {
			names = append(names, name)
		}
	}

	return names, nil
}

// show resolves extended package metadata from apt-cache show headers,
// packages unknown to the repository metadata yield an error
func (p *Package) show(ctx context.Context, name string) (*model.PackageState, error) {
	stdout, _, exitcode, err := p.execute(ctx, "apt-cache", "show", name)
	if err != nil {
		return nil, fmt.Errorf("failed to query package metadata for %s: %w", name, err)
	}
	if exitcode != 0 {
		return nil, fmt.Errorf("no repository metadata for package %s, apt-cache exited %d", name, exitcode)
	}

	info := &model.PackageState{Name: name, Exist: true}

	// show emits one stanza per known version, later stanzas win
	s := bufio.NewScanner(bytes.NewReader(stdout))
	for s.Scan() {
		line := s.Text()
		switch {
		case strings.HasPrefix(line, "Package:"):
			info.Name = headerValue(line)
		case strings.HasPrefix(line, "Version:"):
			info.Version = headerValue(line)
		case strings.HasPrefix(line, "Depends:"):
			info.Dependencies = nil
			for _, d := range strings.Split(headerValue(line), ",") {
				if dep := strings.TrimSpace(d); dep != "" {
					info.Dependencies = append(info.Dependencies, dep)
				}
			}
		case strings.HasPrefix(line, "Description:"):
			info.Description = headerValue(line)
		}
	}

	return info, nil
}

func headerValue(line string) string {
	_, v, _ := strings.Cut(line, ":")
	return strings.TrimSpace(v)
}
