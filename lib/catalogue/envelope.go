// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the compression applied to a catalogue file or
// an export. File names carry it as an extension (".zst", ".lz4").
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

// String returns the name accepted by [ParseCompression].
func (compression Compression) String() string {
	switch compression {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", compression)
	}
}

// Extension returns the file extension for the compression, including
// the leading dot, or "" for CompressionNone.
func (compression Compression) Extension() string {
	switch compression {
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompression parses a compression name. The empty string means
// CompressionNone.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, zstd or lz4)", name)
	}
}

// ageExtension marks an age-encrypted file, binary or armored.
const ageExtension = ".age"

// ErrNoIdentity is returned when an encrypted document is read without
// any age identity configured.
var ErrNoIdentity = errors.New("catalogue is age-encrypted but no identity file is configured")

// zstdEncoder and zstdDecoder are shared across calls; both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("catalogue: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("catalogue: zstd decoder initialization failed: " + err.Error())
	}
}

// Unwrap peels the layers named by the extensions of name, outermost
// (rightmost) first: ".age" decrypts with identities, ".zst" and ".lz4"
// decompress. Peeling stops at the first extension that is not one of
// these, so "tasks.json.zst.age" is decrypted, then decompressed, and
// the JSON is returned. Data with no recognised extension is returned
// unchanged.
func Unwrap(name string, data []byte, identities []age.Identity) ([]byte, error) {
	current := path.Base(name)
	for {
		extension := strings.ToLower(path.Ext(current))
		var err error
		switch extension {
		case ageExtension:
			data, err = decrypt(data, identities)
		case CompressionZstd.Extension():
			data, err = decompress(data, CompressionZstd)
		case CompressionLZ4.Extension():
			data, err = decompress(data, CompressionLZ4)
		default:
			return data, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", current, err)
		}
		current = current[:len(current)-len(extension)]
	}
}

// Wrap applies compression and then, when recipients are given, armored
// age encryption. It returns the wrapped bytes and the extension suffix
// a file holding them should carry (for example ".zst.age").
func Wrap(data []byte, compression Compression, recipients []age.Recipient) ([]byte, string, error) {
	wrapped, err := compress(data, compression)
	if err != nil {
		return nil, "", err
	}
	suffix := compression.Extension()
	if len(recipients) > 0 {
		wrapped, err = encrypt(wrapped, recipients)
		if err != nil {
			return nil, "", err
		}
		suffix += ageExtension
	}
	return wrapped, suffix, nil
}

func compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	case CompressionLZ4:
		// Frame format, so the output is readable by the lz4 command.
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}

func decompress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		result, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return result, nil
	case CompressionLZ4:
		result, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}

func encrypt(plaintext []byte, recipients []age.Recipient) ([]byte, error) {
	var ciphertext bytes.Buffer
	armorWriter := armor.NewWriter(&ciphertext)
	writer, err := age.Encrypt(armorWriter, recipients...)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing plaintext to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing age encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing age armor: %w", err)
	}
	return ciphertext.Bytes(), nil
}

func decrypt(ciphertext []byte, identities []age.Identity) ([]byte, error) {
	if len(identities) == 0 {
		return nil, ErrNoIdentity
	}
	var source io.Reader = bytes.NewReader(ciphertext)
	if bytes.HasPrefix(bytes.TrimLeft(ciphertext, " \t\r\n"), []byte(armor.Header)) {
		source = armor.NewReader(bytes.NewReader(bytes.TrimLeft(ciphertext, " \t\r\n")))
	}
	reader, err := age.Decrypt(source, identities...)
	if err != nil {
		return nil, fmt.Errorf("age decrypt: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("age decrypt: %w", err)
	}
	return plaintext, nil
}

// ReadIdentities loads age identities from an identity file in the
// format written by age-keygen.
func ReadIdentities(identityPath string) ([]age.Identity, error) {
	file, err := os.Open(identityPath)
	if err != nil {
		return nil, fmt.Errorf("opening identity file: %w", err)
	}
	defer file.Close()

	identities, err := age.ParseIdentities(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("parsing identity file %s: %w", identityPath, err)
	}
	return identities, nil
}

// ParseRecipients parses age X25519 public keys (age1...).
func ParseRecipients(keys []string) ([]age.Recipient, error) {
	recipients := make([]age.Recipient, 0, len(keys))
	for _, key := range keys {
		recipient, err := age.ParseX25519Recipient(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("parsing recipient key %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}
	return recipients, nil
}
