// Package session derives stable conversation thread identities from
// external user identifiers. The derivation is pure: no lookup table is
// kept, the hash function is the mapping. The hosted service owns any
// durable per-thread state.
package session

import "github.com/google/uuid"

// DeriveThreadID maps an external user identifier (typically a phone
// number) to a deterministic thread id using version-5 UUID semantics over
// the DNS namespace. Repeated calls with the same identifier yield the
// identical id; distinct identifiers collide only with negligible
// probability.
func DeriveThreadID(id string) string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(id)).String()
}
