// Package decoders provides the decoder registry and the helpers shared by
// the format implementations in its sub-packages. Each sub-package knows
// how to turn one binary format into paginated plain text.
//
// Decoders are registered with the Registry at startup.
package decoders
