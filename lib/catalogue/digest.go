// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 keyed hash identifying a catalogue
// document. The watcher compares digests of raw file bytes to skip
// rewrites that change nothing; exports carry a short digest as
// provenance.
type Digest [32]byte

// digestKey separates catalogue digests from any other BLAKE3 use. The
// bytes are the ASCII domain name, zero-padded to 32 bytes.
var digestKey = [32]byte{
	'p', 'l', 'a', 'y', 'b', 'o', 'o', 'k', '.', 'c', 'a', 't', 'a', 'l', 'o', 'g',
	'u', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// DigestOf computes the digest of raw document bytes.
func DigestOf(data []byte) Digest {
	// NewKeyed only fails for a key that is not 32 bytes long.
	hasher, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		panic("catalogue: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// ContentDigest computes the digest of the catalogue's canonical export,
// so two documents that differ only in whitespace, comments or
// duplicate keys share a digest.
func ContentDigest(catalogue *Catalogue) (Digest, error) {
	canonical, err := ExportJSON(catalogue)
	if err != nil {
		return Digest{}, err
	}
	return DigestOf(canonical), nil
}

// String returns the full lowercase hex form.
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// Short returns the first 12 hex characters, enough to tell catalogue
// versions apart in status lines and provenance.
func (digest Digest) Short() string {
	return digest.String()[:12]
}

// IsZero reports whether the digest is unset.
func (digest Digest) IsZero() bool {
	return digest == Digest{}
}
