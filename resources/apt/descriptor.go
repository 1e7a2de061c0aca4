// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package apt

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/dsc-community/apt-adapter/model"
)

// embeddedSchema describes valid instance properties to the host engine,
// the dsc_exist definition is inlined as external $ref resolution is not
// available to embedded schemas
const embeddedSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "APT Packages Management",
  "description": "Manages APT Packages on Linux",
  "type": "object",
  "required": ["name"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "version": {"type": "string"},
    "source": {"type": "string"},
    "dependencies": {
      "type": "array",
      "items": {"type": "string"},
      "readOnly": true
    },
    "_exist": {"$ref": "#/$defs/dsc_exist"}
  },
  "$defs": {
    "dsc_exist": {
      "title": "Instance should exist",
      "description": "Indicates whether the DSC resource instance should exist.",
      "type": "boolean",
      "default": true,
      "enum": [false, true]
    }
  }
}`

// Descriptor builds the discovery metadata for the list operation
func Descriptor() *model.ResourceDescriptor {
	path, err := os.Executable()
	if err != nil {
		path = ""
	}

	return &model.ResourceDescriptor{
		Type:           ResourceTypeName,
		Kind:           "resource",
		Version:        ResourceVersion,
		Capabilities:   []string{"get", "set", "test", "export"},
		Path:           path,
		Directory:      filepath.Dir(path),
		ImplementedAs:  "Go",
		Author:         "DSC Community",
		Properties:     []string{"name", "version", "source", "_exist", "dependencies"},
		RequireAdapter: model.AdapterTypeName,
		Description:    "Manages APT packages on Linux",
		Manifest: &model.ResourceManifest{
			SchemaURL:   "https://aka.ms/dsc/schemas/v3/resource/manifest.json",
			Type:        ResourceTypeName,
			Version:     ResourceVersion,
			Description: "Manages APT packages on Linux",
			Schema: model.ManifestSchema{
				Embedded: json.RawMessage(embeddedSchema),
			},
		},
	}
}
