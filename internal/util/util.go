// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"encoding/json"
	"os"
	"os/exec"
)

// ExecutableInPath finds command name in path
func ExecutableInPath(file string) (string, bool, error) {
	f, err := exec.LookPath(file)

	return f, err == nil, err
}

// FileExists determines if a path exist
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DumpJson renders v as indented JSON for human facing output, errors yield nil
func DumpJson(v any) []byte {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil
	}

	return raw
}

// DumpCompactJson renders v as a single line JSON document, errors yield nil
func DumpCompactJson(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	return raw
}
