// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"encoding/json"
)

// AdapterTypeName is the DSC type token of this adapter, document mode get
// results are wrapped in an instance of this type
const AdapterTypeName = "DSC.Community/Go"

// Resource is one package instance bound to a desired configuration,
// exposing the DSC operation set
type Resource interface {
	Get(ctx context.Context) (*PackageState, error)
	Set(ctx context.Context) (*SetResult, error)
	Test(ctx context.Context) (*TestResult, error)
	Export(ctx context.Context) (*ExportResult, error)
}

// ResourceFactory creates resource instances for a DSC resource type
type ResourceFactory interface {
	// TypeName is the canonical DSC type token, for example Microsoft.Linux.Apt/Package
	TypeName() string
	// Aliases are additional tokens the type resolves from, matched case-insensitively
	Aliases() []string
	// Descriptor is the static metadata returned by the list operation
	Descriptor() *ResourceDescriptor
	// IsManageable determines if the resource can operate on this system
	IsManageable() (bool, error)
	// New creates a resource instance bound to the given spec
	New(spec *PackageSpec, log Logger, runner CommandRunner) (Resource, error)
}

// ResourceDescriptor is the discovery metadata the host engine consumes
// from the list operation
type ResourceDescriptor struct {
	Type           string            `json:"type"`
	Kind           string            `json:"kind"`
	Version        string            `json:"version"`
	Capabilities   []string          `json:"capabilities"`
	Path           string            `json:"path"`
	Directory      string            `json:"directory"`
	ImplementedAs  string            `json:"implementedAs"`
	Author         string            `json:"author"`
	Properties     []string          `json:"properties"`
	RequireAdapter string            `json:"requireAdapter"`
	Description    string            `json:"description"`
	Manifest       *ResourceManifest `json:"manifest"`
}

// ResourceManifest is the embedded resource manifest, it must include
// type and version for the host engine to accept it
type ResourceManifest struct {
	SchemaURL   string         `json:"$schema"`
	Type        string         `json:"type"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Schema      ManifestSchema `json:"schema"`
}

// ManifestSchema holds the JSON schema describing valid instance properties
type ManifestSchema struct {
	Embedded json.RawMessage `json:"embedded"`
}
