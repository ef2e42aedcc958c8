// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	_ "embed"
	"sync"
)

//go:embed fallback.json
var fallbackDocument []byte

// FallbackSource is the provenance label for the embedded catalogue.
const FallbackSource = "built-in catalogue"

var (
	fallbackCatalogue *Catalogue
	fallbackOnce      sync.Once
)

// Fallback returns the built-in catalogue substituted when the
// configured one cannot be loaded. It is parsed once and shared; like
// every catalogue it is never mutated.
func Fallback() *Catalogue {
	fallbackOnce.Do(func() {
		parsed, err := Parse(fallbackDocument)
		if err != nil {
			panic("catalogue: embedded fallback catalogue is invalid: " + err.Error())
		}
		fallbackCatalogue = parsed
	})
	return fallbackCatalogue
}
