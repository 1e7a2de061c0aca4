// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"sync"
)

// PackageGlobalLock is used to ensure only one package operation is running
// at a time even when multiple resources are driven from the same process.
// This avoids issues with concurrent access to the dpkg/apt databases
var PackageGlobalLock = sync.Mutex{}
