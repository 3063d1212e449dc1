// Package acl is the anti-corruption layer between the quotable.io API and
// the domain. Provider DTOs never leave this package: callers see only
// domain.Quote values and domain.DependencyError failures.
//
// # Failure mapping
//
// Every failure is a [domain.DependencyError] whose kind drives logging and
// the failure counter:
//
//   - transport error or open circuit ([clients.ErrCircuitOpen],
//     [clients.ErrRequestFailed]) -> [domain.FailureNetwork]
//   - non-2xx response -> [domain.FailureUpstreamStatus]
//   - undecodable body, or an item without _id, content or author
//     -> [domain.FailureMalformedUpstream]
//
// A single malformed item fails the whole call; there are no partial
// results.
package acl
