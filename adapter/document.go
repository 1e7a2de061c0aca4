// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dsc-community/apt-adapter/internal/registry"
	"github.com/dsc-community/apt-adapter/model"
)

// documentPayload is the batch input shape, a list of named and typed
// resource entries
type documentPayload struct {
	Resources []documentEntry `json:"resources"`
}

type documentEntry struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Properties json.RawMessage `json:"properties"`
}

// documentResult is one processed entry in the aggregated output
type documentResult struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Properties any    `json:"properties"`
}

// documentGetEnvelope wraps aggregated get results in an adapter instance
type documentGetEnvelope struct {
	Name   string           `json:"name"`
	Type   string           `json:"type"`
	Result []documentResult `json:"result"`
}

// documentSetProperties mirrors the per entry set output of the host
// engine contract
type documentSetProperties struct {
	Exist               bool     `json:"_exist"`
	DifferingProperties []string `json:"differingProperties"`
}

// documentTestProperties mirrors the per entry test output, the engine
// expects the InDesiredState casing in document mode
type documentTestProperties struct {
	InDesiredState      bool                `json:"InDesiredState"`
	ActualState         *model.PackageState `json:"actualState"`
	DifferingProperties []string            `json:"differingProperties"`
}

// runDocumentOperation processes every entry of a document payload in
// order with the same per entry logic as the single resource path. Any
// entry failure aborts the whole invocation, no partial output is emitted
func (a *Adapter) runDocumentOperation(ctx context.Context, op string, input []byte) (int, any) {
	switch op {
	case OperationGet, OperationSet, OperationTest, OperationExport:
	default:
		msg := fmt.Sprintf("%s %q in document mode", model.ErrUnsupportedOperation, op)
		a.log.Error(msg)
		return ExitUnsupported, &errorBody{Error: msg}
	}

	payload := &documentPayload{}
	err := json.Unmarshal(input, payload)
	if err != nil {
		a.log.Error("Could not parse document payload", "err", err)
		return ExitInvalidInput, &errorBody{Error: fmt.Sprintf("%s: %s", model.ErrInvalidDocument, err)}
	}

	results := []documentResult{}

	for _, entry := range payload.Resources {
		factory, err := registry.Resolve(entry.Type)
		if err != nil {
			a.log.Error("Could not resolve resource type", "type", entry.Type, "operation", op, "err", err)
			return ExitUnsupported, &errorBody{Error: err.Error()}
		}

		resource, code, body := a.newResource(op, factory, entry.Properties)
		if resource == nil {
			return code, body
		}

		properties, code, body := a.invokeEntry(ctx, op, resource)
		if body != nil {
			return code, body
		}

		results = append(results, documentResult{
			Name:       entry.Name,
			Type:       entry.Type,
			Properties: properties,
		})
	}

	if op == OperationGet {
		name := ""
		if len(payload.Resources) > 0 {
			name = payload.Resources[0].Name
			if name == "" {
				name = payload.Resources[0].Type
			}
		}

		return ExitOK, &documentGetEnvelope{
			Name:   name,
			Type:   model.AdapterTypeName,
			Result: results,
		}
	}

	return ExitOK, results
}

// invokeEntry runs one document entry, returning either the entry
// properties or an exit code and error body
func (a *Adapter) invokeEntry(ctx context.Context, op string, resource model.Resource) (any, int, any) {
	switch op {
	case OperationGet:
		state, err := resource.Get(ctx)
		if err != nil {
			code, body := a.failure(op, err)
			return nil, code, body
		}
		return state, ExitOK, nil

	case OperationSet:
		res, err := resource.Set(ctx)
		if err != nil {
			code, body := a.failure(op, err)
			return nil, code, body
		}
		return &documentSetProperties{
			Exist:               res.State.Exist,
			DifferingProperties: res.DifferingProperties,
		}, ExitOK, nil

	case OperationTest:
		res, err := resource.Test(ctx)
		if err != nil {
			code, body := a.failure(op, err)
			return nil, code, body
		}
		return &documentTestProperties{
			InDesiredState:      res.InDesiredState,
			ActualState:         res.ActualState,
			DifferingProperties: res.DifferingProperties,
		}, ExitOK, nil

	default: // export
		res, err := resource.Export(ctx)
		if err != nil {
			code, body := a.failure(op, err)
			return nil, code, body
		}
		return res, ExitOK, nil
	}
}
