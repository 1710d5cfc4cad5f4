package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// IVSize is the GCM nonce length in bytes.
	IVSize = 16
	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16

	// associatedData binds every sealed payload to this service.
	associatedData = "contract-analysis-data"
)

// KeyMaterial is one record's symmetric key and IV, base64 encoded.
type KeyMaterial struct {
	Key string
	IV  string
}

// Sealed is an encrypted payload with its detached authentication tag, hex encoded.
type Sealed struct {
	Ciphertext string
	Tag        string
}

// GenerateKey returns a fresh random 256-bit key.
func GenerateKey() (string, error) {
	return randomBase64("generate key", KeySize)
}

// GenerateIV returns a fresh random 128-bit IV.
func GenerateIV() (string, error) {
	return randomBase64("generate iv", IVSize)
}

// NewKeyMaterial mints the key and IV for a single record.
func NewKeyMaterial() (KeyMaterial, error) {
	key, err := GenerateKey()
	if err != nil {
		return KeyMaterial{}, err
	}
	iv, err := GenerateIV()
	if err != nil {
		return KeyMaterial{}, err
	}
	return KeyMaterial{Key: key, IV: iv}, nil
}

func randomBase64(op string, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", &EncryptionError{Op: op, Err: err}
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Seal serialises payload to JSON and encrypts it under key and iv.
// Output is deterministic for identical inputs, so a key/iv pair must not be
// reused for unrelated payloads.
func Seal(payload any, key, iv string) (Sealed, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return Sealed{}, &EncryptionError{Op: "marshal payload", Err: err}
	}

	aead, nonce, err := newAEAD(key, iv)
	if err != nil {
		return Sealed{}, &EncryptionError{Op: "init cipher", Err: err}
	}

	out := aead.Seal(nil, nonce, plaintext, []byte(associatedData))
	split := len(out) - TagSize

	return Sealed{
		Ciphertext: hex.EncodeToString(out[:split]),
		Tag:        hex.EncodeToString(out[split:]),
	}, nil
}

// Unseal authenticates and decrypts sealed, then decodes the JSON payload into out.
// Any failure is a *DecryptionError.
func Unseal(sealed Sealed, key, iv string, out any) error {
	ciphertext, err := hex.DecodeString(sealed.Ciphertext)
	if err != nil {
		return &DecryptionError{Op: "decode ciphertext", Err: err}
	}
	tag, err := hex.DecodeString(sealed.Tag)
	if err != nil {
		return &DecryptionError{Op: "decode tag", Err: err}
	}
	if len(tag) != TagSize {
		return &DecryptionError{Op: "decode tag", Err: fmt.Errorf("tag is %d bytes, want %d", len(tag), TagSize)}
	}

	aead, nonce, err := newAEAD(key, iv)
	if err != nil {
		return &DecryptionError{Op: "init cipher", Err: err}
	}

	plaintext, err := aead.Open(nil, nonce, append(ciphertext, tag...), []byte(associatedData))
	if err != nil {
		return &DecryptionError{Op: "open", Err: err}
	}

	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return &DecryptionError{Op: "unmarshal payload", Err: fmt.Errorf("target %T is not a non-nil pointer", out)}
	}

	// Decode into a scratch value so out is untouched on failure.
	scratch := reflect.New(target.Type().Elem())
	dec := json.NewDecoder(bytes.NewReader(plaintext))
	dec.UseNumber()
	if err := dec.Decode(scratch.Interface()); err != nil {
		return &DecryptionError{Op: "unmarshal payload", Err: err}
	}
	target.Elem().Set(scratch.Elem())
	return nil
}

func newAEAD(key, iv string) (cipher.AEAD, []byte, error) {
	rawKey, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, nil, fmt.Errorf("decode key: %w", err)
	}
	if len(rawKey) != KeySize {
		return nil, nil, fmt.Errorf("key is %d bytes, want %d", len(rawKey), KeySize)
	}
	nonce, err := base64.StdEncoding.DecodeString(iv)
	if err != nil {
		return nil, nil, fmt.Errorf("decode iv: %w", err)
	}
	if len(nonce) != IVSize {
		return nil, nil, fmt.Errorf("iv is %d bytes, want %d", len(nonce), IVSize)
	}

	block, err := aes.NewCipher(rawKey)
	if err != nil {
		return nil, nil, err
	}
	aead, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, nil, err
	}
	return aead, nonce, nil
}
