package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore keeps uploaded payment proofs on local disk and hands back
// publicly resolvable URLs served from under /uploads.
type FileStore struct {
	Dir           string
	PublicBaseURL string
}

func NewFileStore(dir string, publicBaseURL string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "payment-proofs"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	return &FileStore{
		Dir:           dir,
		PublicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *FileStore) SavePaymentProof(orderID string, ext string, r io.Reader) (string, error) {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "png"
	}

	fileName := fmt.Sprintf("payment-proof-%s-%d.%s", orderID, time.Now().UnixMilli(), ext)
	fullPath := filepath.Join(s.Dir, "payment-proofs", fileName)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create proof file: %w", err)
	}
	defer f.Close()

	if _, err = io.Copy(f, r); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write proof file: %w", err)
	}

	return s.PublicBaseURL + "/uploads/payment-proofs/" + fileName, nil
}
