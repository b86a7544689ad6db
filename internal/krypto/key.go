package krypto

import (
	"errors"
	"fmt"
)

const (
	keyBytes = 32

	// SecretMarker is a string we can look for in logs to see if the app
	// is accidentally exposing secrets.
	SecretMarker = "<!SECRET_REDACTED!>"
)

var ErrInvalidKey = errors.New("invalid key")

// Key is a secret key used to sign or encrypt data.
type Key struct {
	value []byte
}

// GenerateKey creates a new random 32 byte key. Keys generated this way
// live for the duration of the process, anything signed with them is
// invalidated by a restart.
func GenerateKey() (Key, error) {
	b, err := genRandomBytes(keyBytes)
	if err != nil {
		return Key{}, err
	}

	return Key{value: b}, nil
}

func (k Key) Format(f fmt.State, verb rune) {
	f.Write([]byte(SecretMarker))
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(SecretMarker), nil
}

// SecretValue returns the key as a byte slice. This is provided as an
// escape hatch for cases where the key needs to be handed to third party
// packages.
func (k Key) SecretValue() []byte {
	return k.value
}
