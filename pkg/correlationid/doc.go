// Package correlationid generates and validates correlation identifiers.
//
// Generator and Validator are single-method interfaces so the request
// middleware can be configured with custom implementations or plain functions
// (GeneratorFunc, ValidatorFunc).
//
// The default generator, NewUUIDv7Generator, produces time-ordered UUIDv7
// values rendered as 32 lowercase hex characters:
//
//	gen := correlationid.NewUUIDv7Generator()
//	id := gen.Generate() // "0190b6f5e4c87a3d9f1e2b3c4d5e6f70"
//
// Identifiers created later tend to sort after earlier ones because the first
// 48 bits hold the millisecond timestamp. If the system entropy source fails
// the generator falls back to a ULID-based path with the same layout instead
// of returning an error.
//
// UUIDValidator checks shape only: hyphenated or 32-hex UUIDs of any version.
// Anything empty or longer than MaxLength is rejected before parsing, which
// bounds the work done on attacker-supplied header values.
package correlationid
