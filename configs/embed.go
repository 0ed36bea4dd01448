// Package configs embeds the sample files the installer copies into the runtime directory.
package configs

import "embed"

//go:embed trends.csv
var FS embed.FS
