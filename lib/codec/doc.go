// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides playbook's CBOR encoding configuration and
// the CBOR form of a catalogue.
//
// JSON is the catalogue's authoring and exchange format. CBOR is the
// compact export format selected with `playbook export --format cbor`:
// a [Document] holding categories and tasks as ordered arrays, so the
// document order JSON object keys carry survives encoding with sorted
// map keys.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same catalogue always produces identical bytes, which keeps
// exported files diffable by digest.
//
//	data, err := codec.EncodeCatalogue(loaded)
//	loaded, err = codec.DecodeCatalogue(data)
//
// Types in this package carry `cbor` struct tags only; they are never
// serialized as JSON.
package codec
