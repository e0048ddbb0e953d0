package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutGetDelete(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	_, err := s.Get("openai")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(" OpenAI ", "sk-test-123\n"))
	got, err := s.Get("openai")
	require.NoError(t, err)
	require.Equal(t, "sk-test-123", got)

	raw, err := os.ReadFile(filepath.Join(s.Dir, fileName))
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), "sk-test-123"), "key must not be stored in clear text")

	info, err := os.Stat(filepath.Join(s.Dir, fileName))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Delete("openai"))
	_, err = s.Get("openai")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Delete("openai"))
}

func TestProviderRequired(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	require.ErrorIs(t, s.Put("  ", "k"), ErrNoProvider)
	_, err := s.Get("")
	require.ErrorIs(t, err, ErrNoProvider)
}
