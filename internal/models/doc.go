// Package models defines the core domain models for eatnsplit.
//
// # Models
//
//   - Friend: a person the user splits bills with, carrying a running balance
//   - Payer: which party fronted the money for a bill
//   - Settlement: one applied bill split and the delta it produced
//
// # Balance Sign Convention
//
// A Friend's Balance is always expressed from the user's point of view:
//
//	Balance < 0   the user owes the friend
//	Balance > 0   the friend owes the user
//	Balance == 0  the two are even
//
// Friends are created with a zero balance and are only ever mutated by
// applying a Settlement. They are never deleted.
package models
