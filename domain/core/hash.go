package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Hasher accumulates length-prefixed fields so that ("ab","c") and ("a","bc")
// never collide.
type Hasher struct {
	h hash.Hash
}

// NewHasher starts a new SHA-256 content hash.
func NewHasher() *Hasher {
	return &Hasher{h: sha256.New()}
}

// WriteString adds one length-prefixed field.
func (hs *Hasher) WriteString(s string) {
	var prefix [8]byte
	binary.BigEndian.PutUint64(prefix[:], uint64(len(s)))
	hs.h.Write(prefix[:])
	hs.h.Write([]byte(s))
}

// WriteInt adds an integer field.
func (hs *Hasher) WriteInt(n int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	hs.h.Write(buf[:])
}

// Sum returns the accumulated hash.
func (hs *Hasher) Sum() Hash {
	return Hash(hex.EncodeToString(hs.h.Sum(nil)))
}
