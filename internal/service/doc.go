// Package service contains the application use cases for authors and books.
// It orchestrates the stores defined in internal/store, applies transactional
// boundaries around every write, and translates store failures into
// ServiceErrors that carry a client-safe message.
//
// The service layer depends on domain entities and store interfaces, never on
// a specific database implementation.
package service
