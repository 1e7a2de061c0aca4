// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const (
	// PackageTypeName is the type name for package resources
	PackageTypeName = "package"

	// PropertyExist is the DSC property holding the desired/observed existence of an instance
	PropertyExist = "_exist"
)

var (
	// commonNameRegex allows alphanumeric, hyphens, underscores, dots, plus signs, colons, and tildes
	// which are common in package names across different package managers
	commonNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._+:~-]+$`)

	// dangerousCharsRegex detects shell metacharacters that could be used for injection
	dangerousCharsRegex = regexp.MustCompile(`[;&|$` + "`" + `()\[\]{}<>*?'"\\!\n\t\r]`)
)

// PackageSpec is the desired configuration for one package instance as
// declared by the caller, parsed once per invocation from the input JSON
type PackageSpec struct {
	Name         string   `json:"name"`
	Version      string   `json:"version,omitempty"`
	Exist        *bool    `json:"_exist,omitempty"`
	Source       string   `json:"source,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// PackageState is the observed state of a package on the system
type PackageState struct {
	Name         string   `json:"name"`
	Version      string   `json:"version,omitempty"`
	Exist        bool     `json:"_exist"`
	Source       string   `json:"source,omitempty"`
	SourceRepos  []string `json:"sourceRepos,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// SetState is the subset of state reported after a set operation
type SetState struct {
	Exist bool `json:"_exist"`
}

// SetResult is the outcome of a set operation
type SetResult struct {
	State               SetState `json:"state"`
	DifferingProperties []string `json:"differingProperties"`
}

// TestResult is the outcome of a test operation
type TestResult struct {
	ActualState         *PackageState `json:"actualState"`
	DifferingProperties []string      `json:"differingProperties"`
	InDesiredState      bool          `json:"inDesiredState"`
}

// ExportResult is the outcome of an export operation
type ExportResult struct {
	Packages []*PackageState `json:"packages"`
}

// NewPackageSpecFromJSON parses a package spec from input JSON, it does not validate
func NewPackageSpecFromJSON(raw []byte) (*PackageSpec, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	spec := &PackageSpec{}
	err := json.Unmarshal(raw, spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return spec, nil
}

// DesiredExist resolves the _exist property, absent means true
func (s *PackageSpec) DesiredExist() bool {
	if s.Exist == nil {
		return true
	}

	return *s.Exist
}

// IsFilter determines if the spec constrains an export to matching packages only
func (s *PackageSpec) IsFilter() bool {
	return s.Name != "" || s.Version != "" || s.Source != "" || len(s.Dependencies) > 0
}

// Validate validates the package spec
func (s *PackageSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrResourceNameRequired
	}

	if dangerousCharsRegex.MatchString(s.Name) {
		return fmt.Errorf("package name contains dangerous characters: %q", s.Name)
	}

	if !commonNameRegex.MatchString(s.Name) {
		return fmt.Errorf("package name contains invalid characters: %q (allowed: alphanumeric, ._+:~-)", s.Name)
	}

	if s.Version != "" && dangerousCharsRegex.MatchString(s.Version) {
		return fmt.Errorf("package version contains dangerous characters: %q", s.Version)
	}

	return nil
}
