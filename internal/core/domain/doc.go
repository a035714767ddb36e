// Package domain defines the core types of the document decoder.
//
// This package is the innermost layer of the hexagon. It has NO external
// dependencies and defines:
//
//   - FileContent: the decode result for one document
//   - Chunk: a page-scoped unit of extracted text
//   - DecodeSettings: tunables loaded from configuration
//   - the error taxonomy shared by every decoder
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
