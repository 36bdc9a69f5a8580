// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package adapters

import "github.com/davetashner/seen/internal/adapter"

// builtins lists the built-in adapters in the order ForSite tries them.
// Twitter comes before Reddit so a host naming both resolves to Twitter.
func builtins() []adapter.Adapter {
	return []adapter.Adapter{
		&Twitter{},
		&Reddit{},
		&Generic{},
		&Feed{},
	}
}

func init() {
	for _, a := range builtins() {
		adapter.Register(a)
	}
}
