// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"fmt"
	"time"
)

// profile times a block of work when profiling is enabled, use as
// defer a.profile("label")()
func (a *Adapter) profile(label string) func() {
	if !a.profiling {
		return func() {}
	}

	start := time.Now()

	return func() {
		a.log.Info(fmt.Sprintf("[PROFILE] %s took %.4fs", label, time.Since(start).Seconds()))
	}
}
