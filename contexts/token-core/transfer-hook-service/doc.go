// Package transferhook implements the transfer validation guard inside the
// token-core context.
//
// The service keeps its own registration record per asset and answers one
// question: may this transfer proceed. It never mutates balances. Blacklist
// lookups re-derive entry addresses from the controlling config so the
// guard and the registry can never disagree on where an entry lives.
//
// Layering follows the issuance service: domain, application, ports,
// adapters, transport, with module.go as the composition root.
package transferhook
