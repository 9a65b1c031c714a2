// Package fingerprint computes stable xxhash-based fingerprints for the
// hash-consing lookups used by the logical-DAG Builder's And/Or structural
// interning and the SDD unique tables, the way the teacher's
// internal/ir.Primitive.Hash() fingerprints a Primitive for map lookup
// instead of hashing the struct by value.
package fingerprint

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Digest is a 64-bit fingerprint. Two values that fingerprint equal are
// assumed (not proven) equal by callers; all hash-consing tables still
// store the canonical owning handle, never rely on Digest alone for
// equality of the payload itself when the payload is cheap to compare
// directly (integers), and fall back to Digest only for the composite
// XY-partition keys where a full structural comparison would be as
// expensive as the hash.
type Digest uint64

// OfLiteral fingerprints a signed literal value.
func OfLiteral(l int64) Digest {
	h := xxhash.New()
	h.WriteString("L")
	writeInt(h, l)
	return Digest(h.Sum64())
}

// OfConstant fingerprints a Boolean constant.
func OfConstant(v bool) Digest {
	h := xxhash.New()
	if v {
		h.WriteString("T")
	} else {
		h.WriteString("F")
	}
	return Digest(h.Sum64())
}

// Element is one (prime id, sub id) pair of an XY-partition, identified by
// the ids the owning vtree node's decision nodes are tracked under.
type Element struct {
	Prime uint64
	Sub   uint64
}

// OfPartition fingerprints an ordered sequence of (prime, sub) id pairs,
// exactly the "hash of the ordered (prime, sub) id sequence" the
// specification's design notes call for as the SDD unique-table key.
func OfPartition(elements []Element) Digest {
	h := xxhash.New()
	for _, e := range elements {
		h.WriteString("(")
		writeUint(h, e.Prime)
		h.WriteString(",")
		writeUint(h, e.Sub)
		h.WriteString(")")
	}
	return Digest(h.Sum64())
}

func writeInt(h *xxhash.Digest, v int64) {
	h.WriteString(strconv.FormatInt(v, 10))
}

func writeUint(h *xxhash.Digest, v uint64) {
	h.WriteString(strconv.FormatUint(v, 10))
}
