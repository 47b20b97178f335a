// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fernet/fernet-go"
)

// SealedSuffix is appended to a file's name when it is sealed.
const SealedSuffix = ".enc"

// noExpiry disables the token age check on open.
const noExpiry = -1

// ErrBadSeal is returned when sealed data cannot be decrypted.
var ErrBadSeal = errors.New("sealed data is corrupt or the key does not match")

// SealBytes encrypts plain with a freshly generated Fernet key. The result
// is the encoded key, a newline, then the token. Keeping the key beside the
// token protects against casual disclosure only, not against anyone who can
// read the sealed file.
func SealBytes(plain []byte) ([]byte, error) {
	if len(plain) == 0 {
		return nil, errors.New("nothing to seal")
	}

	var key fernet.Key
	if err := key.Generate(); err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}
	tok, err := fernet.EncryptAndSign(plain, &key)
	if err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}

	var out bytes.Buffer
	out.WriteString(key.Encode())
	out.WriteByte('\n')
	out.Write(tok)
	return out.Bytes(), nil
}

// OpenBytes reverses SealBytes.
func OpenBytes(sealed []byte) ([]byte, error) {
	encKey, tok, ok := bytes.Cut(sealed, []byte("\n"))
	if !ok {
		return nil, fmt.Errorf("%w: missing key separator", ErrBadSeal)
	}
	key, err := fernet.DecodeKey(string(encKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSeal, err)
	}

	plain := fernet.VerifyAndDecrypt(bytes.TrimSpace(tok), noExpiry, []*fernet.Key{key})
	if plain == nil {
		return nil, ErrBadSeal
	}
	return plain, nil
}

// Seal encrypts the file at path and writes path+".enc". The original file
// is left in place. It returns the sealed file's path.
func Seal(path string) (string, error) {
	plain, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	sealed, err := SealBytes(plain)
	if err != nil {
		return "", fmt.Errorf("sealing %s: %w", path, err)
	}

	out := path + SealedSuffix
	if err := os.WriteFile(out, sealed, 0o600); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	return out, nil
}

// Open decrypts the sealed file at path without writing anything.
func Open(path string) ([]byte, error) {
	sealed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	plain, err := OpenBytes(sealed)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return plain, nil
}

// Unseal decrypts the sealed file at path and writes the plaintext to path
// without its ".enc" suffix. It returns the written path.
func Unseal(path string) (string, error) {
	if !strings.HasSuffix(path, SealedSuffix) || len(path) == len(SealedSuffix) {
		return "", fmt.Errorf("%s: sealed files must end in %s", path, SealedSuffix)
	}
	plain, err := Open(path)
	if err != nil {
		return "", err
	}

	out := strings.TrimSuffix(path, SealedSuffix)
	if err := os.WriteFile(out, plain, 0o600); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	return out, nil
}
