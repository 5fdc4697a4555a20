// Package trustednet holds the set of network peers allowed to supply their
// own correlation identifiers.
//
// Entries are parsed once with New; single addresses become full-length
// prefixes and CIDR ranges must be given in canonical form:
//
//	store, err := trustednet.New("127.0.0.1", "10.0.0.0/8", "fd00::/8")
//	if err != nil {
//		// misconfiguration: fail at startup
//	}
//	store.IsTrusted("10.1.2.3") // true
//
// "10.0.0.5/24" is rejected with ErrHostBitsSet because it is not the network
// address of its range.
//
// # Error Handling
//
// Construction errors wrap ErrEmptySource, ErrInvalidSource or ErrHostBitsSet
// and can be matched with errors.Is. IsTrusted never fails: anything it cannot
// parse is treated as untrusted.
//
// A Store is immutable and safe for concurrent use without locking.
package trustednet
