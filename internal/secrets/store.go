// Package secrets keeps assistant provider API keys in a per-user file
// (mode 0600), sealed with AES-GCM under a machine-local key. It keeps keys
// out of config.toml; it is not a substitute for an OS keychain.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const fileName = "keys.json"

var (
	ErrNoProvider = errors.New("provider required")
	ErrNotFound   = errors.New("no key stored for provider")
)

type keyFile struct {
	Keys map[string]string `json:"keys"` // provider -> base64(nonce|ciphertext)
}

// Store reads and writes the key file in Dir.
type Store struct {
	Dir string
}

// Default returns the store under the user config dir.
func Default() (Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Store{}, err
	}
	return Store{Dir: filepath.Join(dir, "wedplan")}, nil
}

func (s Store) path() (string, error) {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir secrets dir: %w", err)
	}
	return filepath.Join(s.Dir, fileName), nil
}

// Put stores key for provider, replacing any previous one.
func (s Store) Put(provider, key string) error {
	if provider = norm(provider); provider == "" {
		return ErrNoProvider
	}
	path, err := s.path()
	if err != nil {
		return err
	}
	kf, err := load(path)
	if err != nil {
		return err
	}
	sealed, err := seal([]byte(strings.TrimSpace(key)))
	if err != nil {
		return err
	}
	kf.Keys[provider] = base64.StdEncoding.EncodeToString(sealed)
	return save(path, kf)
}

// Get returns the key stored for provider, or ErrNotFound.
func (s Store) Get(provider string) (string, error) {
	if provider = norm(provider); provider == "" {
		return "", ErrNoProvider
	}
	path, err := s.path()
	if err != nil {
		return "", err
	}
	kf, err := load(path)
	if err != nil {
		return "", err
	}
	enc, ok := kf.Keys[provider]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, provider)
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("decode key: %w", err)
	}
	plain, err := open(raw)
	if err != nil {
		return "", fmt.Errorf("open key: %w", err)
	}
	return string(plain), nil
}

// Delete removes provider's key. Deleting a missing key is not an error.
func (s Store) Delete(provider string) error {
	if provider = norm(provider); provider == "" {
		return ErrNoProvider
	}
	path, err := s.path()
	if err != nil {
		return err
	}
	kf, err := load(path)
	if err != nil {
		return err
	}
	delete(kf.Keys, provider)
	return save(path, kf)
}

func load(path string) (keyFile, error) {
	kf := keyFile{Keys: map[string]string{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return kf, nil
		}
		return kf, err
	}
	if err := json.Unmarshal(data, &kf); err != nil {
		return kf, fmt.Errorf("parse %s: %w", path, err)
	}
	if kf.Keys == nil {
		kf.Keys = map[string]string{}
	}
	return kf, nil
}

func save(path string, kf keyFile) error {
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func gcm() (cipher.AEAD, error) {
	sum := sha256.Sum256([]byte("wedplan-" + runtime.GOOS + "-" + os.Getenv("USER")))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func seal(plain []byte) ([]byte, error) {
	aead, err := gcm()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plain, nil), nil
}

func open(sealed []byte) ([]byte, error) {
	aead, err := gcm()
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, body := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, body, nil)
}
