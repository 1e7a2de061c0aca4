// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package apt

import (
	"context"
	"strings"
)

// install converges towards presence with a non-interactive apt-get install.
// Failures are logged and swallowed, set re-checks the installed state
// afterwards and reports the package as still absent
func (p *Package) install(ctx context.Context) {
	_, stderr, exitcode, err := p.execute(ctx, "apt-get", "install", "-y", p.spec.Name)
	if err != nil {
		p.log.Error("Failed to install package", "err", err)
		return
	}

	if exitcode != 0 {
		p.log.Error("Failed to install package", "exitcode", exitcode, "stderr", strings.TrimSpace(string(stderr)))
	}
}

// remove converges towards absence, same best-effort policy as install
func (p *Package) remove(ctx context.Context) {
	_, stderr, exitcode, err := p.execute(ctx, "apt-get", "remove", "-y", p.spec.Name)
	if err != nil {
		p.log.Error("Failed to remove package", "err", err)
		return
	}

	if exitcode != 0 {
		p.log.Error("Failed to remove package", "exitcode", exitcode, "stderr", strings.TrimSpace(string(stderr)))
	}
}
