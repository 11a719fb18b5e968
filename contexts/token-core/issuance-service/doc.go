// Package issuance implements the stablecoin issuance and compliance
// control plane inside the token-core context.
//
// Layering:
// - domain: core entities, invariants, errors
// - application: commands/queries/workers using explicit ports
// - ports: stable boundaries for persistence/ledger/events
// - adapters: concrete HTTP, memory, postgres, and event publisher implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
//   - Keep this module self-contained under the token-core context.
//   - Do not import other context adapters into domain/application.
//   - Record addresses are always re-derived through internal/shared/addressing;
//     caller-supplied addresses are asserted, never trusted.
package issuance
