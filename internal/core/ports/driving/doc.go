// Package driving defines the interfaces through which external actors
// use the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI depends on these interfaces; core services implement them.
//
//   - ResolverService: Resolves user queries to indicator records
//   - QueryService: Builds provider wire parameters
//   - TranslateService: Arranges raw payloads into nested and tabular form
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
