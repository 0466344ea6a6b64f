package storage // import "github.com/Risriddle/Librarize/internal/storage"

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/log"
)

// BlobStore holds the PDF originals. Keys are opaque to callers; Delete of
// an absent key succeeds so cascade retries stay idempotent.
type BlobStore interface {
	Put(key string, r io.Reader, contentType string) (string, error)
	Open(key string) (io.ReadSeekCloser, error)
	Path(key string) string
	Delete(key string) error
}

// NewKey builds a collision-free blob key, folder-prefixed like
// "pdfs/<uuid>-<name>".
func NewKey(folder, fileName string) string {
	return folder + "/" + uuid.New().String() + "-" + filepath.Base(fileName)
}

// LocalStorage keeps blobs under <root>/blobs.
type LocalStorage struct {
	Root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{Root: root}
}

func (s *LocalStorage) blobPath(key string) string {
	return filepath.Join(s.Root, "blobs", filepath.FromSlash(key))
}

func (s *LocalStorage) Put(key string, r io.Reader, contentType string) (string, error) {
	filePath := s.blobPath(key)
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return "", errors.Wrap(err, "failed to create blob directories")
	}

	outFile, err := os.Create(filePath)
	if err != nil {
		return "", errors.Wrap(err, "failed to create blob file")
	}
	defer outFile.Close()

	// Copy data to the file and calculate the hash
	hash := sha256.New()
	if _, err := io.Copy(io.MultiWriter(outFile, hash), r); err != nil {
		return "", errors.Wrap(err, "failed to write blob file")
	}

	fileHash := hex.EncodeToString(hash.Sum(nil))
	log.Debug("Stored blob",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.String("hash", fileHash))

	return filePath, nil
}

func (s *LocalStorage) Open(key string) (io.ReadSeekCloser, error) {
	f, err := os.Open(s.blobPath(key))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the on-disk location for a key, for handing to the HTTP
// file server.
func (s *LocalStorage) Path(key string) string {
	return s.blobPath(key)
}

func (s *LocalStorage) Delete(key string) error {
	err := os.Remove(s.blobPath(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete blob %s", key)
	}
	return nil
}
