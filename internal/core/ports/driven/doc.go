// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - DictionarySource: Loads indicator dictionary records
//   - DictionaryStore: Persists indicator dictionary records
//   - Provider: Performs the actual network calls to the statistics API
//   - ConfigStore: Application configuration
//
// The core never performs I/O itself: it resolves indicators, builds wire
// parameters and arranges payloads. The Provider port hands parameters out
// and raw payloads back in; retries, authentication and timeouts live
// behind it, not in the core.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
