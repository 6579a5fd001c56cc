// Package services implements the core use cases behind the driving ports.
//
//   - Resolver: fuzzy and exact indicator resolution over a catalog
//   - QueryBuilder: wire parameter construction for a dataflow
//   - Translator: arrangement of raw payloads into nested and tabular form
//
// Services are pure in-memory transformations over an immutable catalog;
// they hold no mutable state across calls and are safe for concurrent use.
package services
