// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package resources wires every resource type this adapter ships with
package resources

import (
	"github.com/dsc-community/apt-adapter/resources/apt"
)

// Register registers all shipped resource types with the registry
func Register() {
	apt.Register()
}
