package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeTLSConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("MissingCA", func(t *testing.T) {
		_, err := MakeTLSConfig(filepath.Join(dir, "ca.pem"), "", "")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("InvalidCA", func(t *testing.T) {
		ca := filepath.Join(dir, "broken.pem")
		require.NoError(t, os.WriteFile(ca, []byte("not a certificate"), 0o600))

		_, err := MakeTLSConfig(ca, "", "")
		assert.ErrorIs(t, err, ErrInvalidCA)
	})
}
