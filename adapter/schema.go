// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/dsc-community/apt-adapter/model"
)

type compiledSchema struct {
	schema *jsonschema.Schema
}

// validateInput checks the raw instance JSON against the schema the
// resource embeds in its descriptor. Export skips schema validation since
// a filter may legitimately omit the otherwise required name, its fields
// are still type checked during spec parsing
func (a *Adapter) validateInput(op string, factory model.ResourceFactory, input []byte) error {
	if op == OperationExport {
		return nil
	}

	cs, err := a.schemaFor(factory)
	if err != nil {
		return err
	}

	if len(input) == 0 {
		input = []byte("{}")
	}

	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(input))
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidInput, err)
	}

	err = cs.schema.Validate(value)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidInput, err)
	}

	return nil
}

// schemaFor compiles and caches the embedded schema of a resource type
func (a *Adapter) schemaFor(factory model.ResourceFactory) (*compiledSchema, error) {
	cs, ok := a.schemas[factory.TypeName()]
	if ok {
		return cs, nil
	}

	descriptor := factory.Descriptor()
	if descriptor == nil || descriptor.Manifest == nil || len(descriptor.Manifest.Schema.Embedded) == 0 {
		return nil, fmt.Errorf("resource %s does not embed a schema", factory.TypeName())
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(descriptor.Manifest.Schema.Embedded))
	if err != nil {
		return nil, fmt.Errorf("invalid embedded schema for %s: %w", factory.TypeName(), err)
	}

	compiler := jsonschema.NewCompiler()
	err = compiler.AddResource("instance.schema.json", doc)
	if err != nil {
		return nil, fmt.Errorf("invalid embedded schema for %s: %w", factory.TypeName(), err)
	}

	schema, err := compiler.Compile("instance.schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid embedded schema for %s: %w", factory.TypeName(), err)
	}

	cs = &compiledSchema{schema: schema}
	a.schemas[factory.TypeName()] = cs

	return cs, nil
}
