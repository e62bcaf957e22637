// Package domain contains the core business entities of the library: authors
// and the books they own. Entities validate their own invariants and are
// independent of any storage or delivery mechanism.
package domain
