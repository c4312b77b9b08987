// Package assets bundles the static files the service ships with.
package assets

import _ "embed"

// LogoName is the file name of the bundled logo.
const LogoName = "logo.png"

//go:embed logo.png
var logo []byte

// Logo returns the bundled logo bytes. Callers must not modify the slice.
func Logo() []byte { return logo }
