// Package models defines the core domain types for FinLedger.
//
//   - User: a registered account holder
//   - Statement: one immutable ledger entry (deposit, withdraw, or one
//     side of a transfer pair)
//
// Amounts are decimal.Decimal throughout. Binary floats are never used for
// money: repeated sums over float64 drift, and the balance invariant needs
// exact comparison.
//
// Relationships are expressed as ID strings rather than pointers to avoid
// circular references between models.
package models
