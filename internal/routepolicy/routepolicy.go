// Package routepolicy classifies request paths into public,
// user-protected and admin-protected via static prefix lists.
package routepolicy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Classification is the protection level derived from a request path
type Classification struct {
	NeedsUser  bool
	NeedsAdmin bool
}

// Policy holds the protected path prefix lists. The two lists must be
// disjoint: no prefix of one may itself be prefixed by an entry of the
// other, so classification is order-insensitive.
type Policy struct {
	UserPrefixes  []string `yaml:"user_prefixes"`
	AdminPrefixes []string `yaml:"admin_prefixes"`
}

// Default returns the storefront's built-in protection policy
func Default() *Policy {
	return &Policy{
		UserPrefixes:  []string{"/cart", "/checkout", "/orders", "/api/cart", "/api/checkout"},
		AdminPrefixes: []string{"/admin", "/api/admin"},
	}
}

// LoadFile reads a policy override from a YAML file
func LoadFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route policy: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse route policy: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate rejects empty prefixes and overlapping user/admin entries
func (p *Policy) Validate() error {
	for _, prefix := range append(append([]string{}, p.UserPrefixes...), p.AdminPrefixes...) {
		if prefix == "" || !strings.HasPrefix(prefix, "/") {
			return fmt.Errorf("route policy prefix %q must start with /", prefix)
		}
	}

	for _, user := range p.UserPrefixes {
		for _, admin := range p.AdminPrefixes {
			if strings.HasPrefix(user, admin) || strings.HasPrefix(admin, user) {
				return fmt.Errorf("route policy prefixes %q and %q overlap", user, admin)
			}
		}
	}

	return nil
}

// Classify derives the protection level of a request path. A path matching
// neither list is public regardless of session state.
func (p *Policy) Classify(path string) Classification {
	return Classification{
		NeedsUser:  matchesAny(path, p.UserPrefixes),
		NeedsAdmin: matchesAny(path, p.AdminPrefixes),
	}
}

func matchesAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
