package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePaymentProof(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := store.SavePaymentProof("order-1", ".jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	assert.Regexp(t, `^http://localhost:8080/uploads/payment-proofs/payment-proof-order-1-\d+\.jpg$`, url)

	fileName := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, "payment-proofs", fileName))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestSavePaymentProofDefaultsExtension(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	url, err := store.SavePaymentProof("order-1", "", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"), url)
}
