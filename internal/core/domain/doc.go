// Package domain defines the core business entities for the UIS data client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - IndicatorRecord: One entry of the indicator dictionary
//   - Catalog: The immutable, indexed set of indicator records
//   - Dataflow: The dimension layout of a provider dataflow
//   - Message: A raw SDMX-JSON response payload
//   - Nested: The indicator → area → period → value arrangement
//   - Table: The flat, row-oriented projection of a response
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
