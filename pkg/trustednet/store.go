package trustednet

import (
	"fmt"
	"net/netip"
	"slices"
	"strings"
)

// Store is an immutable set of trusted networks. The zero value and a nil
// *Store trust nothing.
type Store struct {
	prefixes []netip.Prefix
}

// New parses every source eagerly. Each entry is either a single IPv4/IPv6
// address or a canonical CIDR range such as "10.0.0.0/8". The whole
// construction fails on the first malformed entry, so a misconfigured store
// never reaches request handling. An empty list is valid and trusts nothing.
func New(sources ...string) (*Store, error) {
	prefixes := make([]netip.Prefix, 0, len(sources))
	for _, src := range sources {
		p, err := parseSource(src)
		if err != nil {
			return nil, err
		}
		prefixes = append(prefixes, p)
	}
	return &Store{prefixes: prefixes}, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew(sources ...string) *Store {
	s, err := New(sources...)
	if err != nil {
		panic(err)
	}
	return s
}

func parseSource(src string) (netip.Prefix, error) {
	entry := strings.TrimSpace(src)
	if entry == "" {
		return netip.Prefix{}, ErrEmptySource
	}

	if strings.Contains(entry, "/") {
		p, err := netip.ParsePrefix(entry)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("%w: %q", ErrInvalidSource, src)
		}
		if p.Masked() != p {
			return netip.Prefix{}, fmt.Errorf("%w: %q (network address is %s)", ErrHostBitsSet, src, p.Masked())
		}
		// Peers are unmapped before matching, so mapped ranges are stored as IPv4.
		if p.Addr().Is4In6() && p.Bits() >= 96 {
			return netip.PrefixFrom(p.Addr().Unmap(), p.Bits()-96), nil
		}
		return p, nil
	}

	addr, err := netip.ParseAddr(entry)
	if err != nil || addr.Zone() != "" {
		return netip.Prefix{}, fmt.Errorf("%w: %q", ErrInvalidSource, src)
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// IsTrusted reports whether peer falls inside any configured network.
// Empty, unparseable or zoned addresses are never trusted. IPv4-mapped IPv6
// peers are matched as plain IPv4.
func (s *Store) IsTrusted(peer string) bool {
	if s == nil || len(s.prefixes) == 0 || peer == "" {
		return false
	}

	addr, err := netip.ParseAddr(peer)
	if err != nil || addr.Zone() != "" {
		return false
	}
	addr = addr.Unmap()

	for _, p := range s.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// Len returns the number of configured networks.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.prefixes)
}

// Prefixes returns a copy of the configured networks in configuration order.
func (s *Store) Prefixes() []netip.Prefix {
	if s == nil {
		return nil
	}
	return slices.Clone(s.prefixes)
}

// String renders the configured networks for logging.
func (s *Store) String() string {
	if s.Len() == 0 {
		return "[]"
	}
	parts := make([]string, len(s.prefixes))
	for i, p := range s.prefixes {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
