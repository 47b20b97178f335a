// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files and
// seals credential files at rest.
//
// Each file in the secrets directory is one secret: the filename is the key
// and the trimmed contents are the value. Recognised keys are listed below;
// other files are loaded but unused.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Recognised secret keys.
const (
	// KeyServiceAccountFile names the service-account JSON key file.
	KeyServiceAccountFile = "service-account-file"
	// KeySealedServiceAccountFile names a sealed copy of the key file.
	KeySealedServiceAccountFile = "sealed-service-account-file"
	// KeyShareEmail is the default address new documents are shared with.
	KeyShareEmail = "share-email"
)

// Set is a loaded secrets directory.
type Set map[string]string

// Get returns explicit when it is non-empty, otherwise the secret for key.
// Flags and config take precedence over the secrets directory this way.
func (s Set) Get(key, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return s[key]
}

// Keys returns the loaded key names in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads all files in dir and returns a Set of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty Set.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Set)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
