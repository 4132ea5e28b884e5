package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"

	apierrors "github.com/diogo/captionthis/internal/errors"
)

const (
	// EnvAPIKey is the environment variable, and .env entry, holding the key
	EnvAPIKey = "API_KEY"

	dotEnvFile     = ".env"
	keyringService = "captionthis"
	keyringUser    = "api_key"
)

// KeySource tells where an API key was found
type KeySource int

const (
	KeySourceNone KeySource = iota
	KeySourceEnv
	KeySourceDotEnv
	KeySourceKeyring
)

func (s KeySource) String() string {
	switch s {
	case KeySourceEnv:
		return "environment"
	case KeySourceDotEnv:
		return ".env file"
	case KeySourceKeyring:
		return "system keyring"
	default:
		return "none"
	}
}

// KeyLoader resolves the API key from the environment, a .env file found
// by walking up from Dir, then the system keyring
type KeyLoader struct {
	Fs  afero.Fs
	Dir string
}

// NewKeyLoader returns a loader on the OS filesystem starting at the working directory
func NewKeyLoader() *KeyLoader {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return &KeyLoader{Fs: afero.NewOsFs(), Dir: dir}
}

// LoadAPIKey resolves the API key with the default loader
func LoadAPIKey() (string, KeySource, error) {
	return NewKeyLoader().Load()
}

// Load returns the first non-empty key, or ErrMissingAPIKey
func (l *KeyLoader) Load() (string, KeySource, error) {
	env := viper.New()
	env.AutomaticEnv()
	if key := strings.TrimSpace(env.GetString(EnvAPIKey)); key != "" {
		return key, KeySourceEnv, nil
	}

	if path, ok := FindDotEnv(l.Fs, l.Dir); ok {
		key, err := readDotEnvKey(l.Fs, path)
		if err != nil {
			return "", KeySourceNone, err
		}
		if key != "" {
			return key, KeySourceDotEnv, nil
		}
	}

	key, err := keyring.Get(keyringService, keyringUser)
	if err == nil && strings.TrimSpace(key) != "" {
		return strings.TrimSpace(key), KeySourceKeyring, nil
	}

	return "", KeySourceNone, apierrors.ErrMissingAPIKey
}

// FindDotEnv walks up from dir looking for a .env file
func FindDotEnv(fs afero.Fs, dir string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		path := filepath.Join(dir, dotEnvFile)
		if info, err := fs.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func readDotEnvKey(fs afero.Fs, path string) (string, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		return "", apierrors.NewConfigError(EnvAPIKey, "failed to read "+path, err)
	}
	return strings.TrimSpace(v.GetString(EnvAPIKey)), nil
}

// SetAPIKey stores key in the system keyring
func SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apierrors.NewConfigError(EnvAPIKey, "key cannot be empty", nil)
	}
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return apierrors.NewConfigError(EnvAPIKey, "failed to store key in keyring", err)
	}
	return nil
}

// ClearAPIKey removes the stored key. A missing entry is not an error.
func ClearAPIKey() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return apierrors.NewConfigError(EnvAPIKey, "failed to remove key from keyring", err)
	}
	return nil
}

// MaskKey hides all but the last four characters of key
func MaskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
