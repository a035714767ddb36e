// Package file provides the TOML file implementation of driven.ConfigStore.
// The default location is ~/.docdecode/config.toml:
//
//	[decode]
//	max_bytes = 104857600
//	workers = 4
//
//	[decoders]
//	disabled = ["pdf"]
//
//	[logging]
//	verbose = false
package file
