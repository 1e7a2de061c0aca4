// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package adapter routes host engine operations to resource handlers and
// normalizes their results into the response envelopes the engine expects
package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/segmentio/ksuid"
	"github.com/tidwall/gjson"

	"github.com/dsc-community/apt-adapter/internal/registry"
	"github.com/dsc-community/apt-adapter/model"
)

// process exit codes, part of the host engine contract
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitUnsupported  = 2
	ExitInvalidInput = 3
)

const (
	OperationList     = "list"
	OperationGet      = "get"
	OperationSet      = "set"
	OperationTest     = "test"
	OperationExport   = "export"
	OperationValidate = "validate"
)

// Operations lists every operation the adapter accepts
func Operations() []string {
	return []string{OperationList, OperationGet, OperationSet, OperationTest, OperationExport, OperationValidate}
}

// Adapter resolves resource types, dispatches operations and reshapes
// results, one instance serves one process invocation
type Adapter struct {
	log       model.Logger
	runner    model.CommandRunner
	profiling bool
	schemas   map[string]*compiledSchema
}

// Option configures the adapter
type Option func(*Adapter)

// WithProfiling enables lightweight timing of operation blocks
func WithProfiling() Option {
	return func(a *Adapter) { a.profiling = true }
}

// New creates an adapter, every log line carries a unique invocation id
func New(log model.Logger, runner model.CommandRunner, opts ...Option) *Adapter {
	a := &Adapter{
		log:     log.With("invocation", ksuid.New().String()),
		runner:  runner,
		schemas: make(map[string]*compiledSchema),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// errorBody is the stdout payload for every failed invocation
type errorBody struct {
	Error string `json:"error"`
}

type validBody struct {
	Valid bool `json:"valid"`
}

type getEnvelope struct {
	Result getResult `json:"result"`
}

type getResult struct {
	ActualState *model.PackageState `json:"actualState"`
}

// RunOperation executes one adapter operation and returns the process exit
// code together with the document to print on stdout. It never prints, the
// caller decides how to serialize
func (a *Adapter) RunOperation(ctx context.Context, operation string, input []byte, resourceType string) (int, any) {
	op := strings.ToLower(strings.TrimSpace(operation))

	switch op {
	case OperationList:
		stop := a.profile("Adapter List")
		defer stop()

		return ExitOK, a.list()
	case OperationValidate:
		return ExitOK, &validBody{Valid: true}
	case OperationGet, OperationSet, OperationTest, OperationExport:
	default:
		msg := fmt.Sprintf("%s %q, expected one of: %s", model.ErrUnsupportedOperation, operation, strings.Join(Operations(), ", "))
		a.log.Error(msg, "operation", op)
		return ExitUnsupported, &errorBody{Error: msg}
	}

	// document shaped input is preferred over the legacy single resource form
	if gjson.GetBytes(input, "resources").IsArray() {
		return a.runDocumentOperation(ctx, op, input)
	}

	factory, err := registry.Resolve(resourceType)
	if err != nil {
		a.log.Error("Could not resolve resource type", "type", resourceType, "err", err)
		return ExitUnsupported, &errorBody{Error: err.Error()}
	}

	resource, code, body := a.newResource(op, factory, input)
	if resource == nil {
		return code, body
	}

	return a.invoke(ctx, op, resource)
}

// newResource validates the raw input for the operation and binds a
// resource instance to the parsed spec, on failure it returns the exit
// code and error body instead
func (a *Adapter) newResource(op string, factory model.ResourceFactory, input []byte) (model.Resource, int, any) {
	manageable, err := factory.IsManageable()
	if err != nil || !manageable {
		a.log.Error("Resource is not manageable on this system", "type", factory.TypeName(), "err", err)
		return nil, ExitFailure, &errorBody{Error: model.ErrResourceNotManageable.Error()}
	}

	err = a.validateInput(op, factory, input)
	if err != nil {
		a.log.Error("Input validation failed", "operation", op, "err", err)
		return nil, ExitInvalidInput, &errorBody{Error: err.Error()}
	}

	spec, err := model.NewPackageSpecFromJSON(input)
	if err != nil {
		a.log.Error("Could not parse input", "operation", op, "err", err)
		return nil, ExitInvalidInput, &errorBody{Error: err.Error()}
	}

	resource, err := factory.New(spec, a.log, a.runner)
	if err != nil {
		a.log.Error("Could not create resource", "operation", op, "err", err)
		return nil, ExitInvalidInput, &errorBody{Error: err.Error()}
	}

	return resource, ExitOK, nil
}

// invoke runs a single resource operation and wraps the result in the
// canonical response envelope
func (a *Adapter) invoke(ctx context.Context, op string, resource model.Resource) (int, any) {
	stop := a.profile(fmt.Sprintf("DSC %s Operation", opLabel(op)))
	defer stop()

	var body any
	var err error

	switch op {
	case OperationGet:
		var state *model.PackageState
		state, err = resource.Get(ctx)
		if err == nil {
			body = &getEnvelope{Result: getResult{ActualState: state}}
		}
	case OperationSet:
		body, err = resource.Set(ctx)
	case OperationTest:
		body, err = resource.Test(ctx)
	case OperationExport:
		body, err = resource.Export(ctx)
	}

	if err != nil {
		return a.failure(op, err)
	}

	return ExitOK, body
}

// failure classifies an operation error into an exit code, resources can
// signal a specific code through model.ExitError
func (a *Adapter) failure(op string, err error) (int, any) {
	var exitErr *model.ExitError
	if errors.As(err, &exitErr) {
		a.log.Error("Resource terminated", "operation", op, "exitcode", exitErr.Code, "err", err)
		return exitErr.Code, &errorBody{Error: exitErr.Error()}
	}

	a.log.Error("Operation failed", "operation", op, "err", err)
	return ExitFailure, &errorBody{Error: err.Error()}
}

func opLabel(op string) string {
	if op == "" {
		return op
	}

	return strings.ToUpper(op[:1]) + op[1:]
}

// list returns the resource descriptors for discovery, a single registered
// resource yields its descriptor directly
func (a *Adapter) list() any {
	factories := registry.Factories()

	if len(factories) == 1 {
		return factories[0].Descriptor()
	}

	descriptors := make([]*model.ResourceDescriptor, 0, len(factories))
	for _, f := range factories {
		descriptors = append(descriptors, f.Descriptor())
	}

	return descriptors
}
