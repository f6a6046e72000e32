package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/HariStrange/drive-Vault/domain"
)

// Upload sub-directories under the storage root
const (
	PassportDir = domain.PassportUploadDir
	QuestionDir = domain.QuestionUploadDir
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// sniffLen covers every signature mimetype needs for the allowed image types
const sniffLen = 3072

// DiskStorage implements domain.FileStorage on the local filesystem
type DiskStorage struct {
	root     string
	maxBytes int64
	now      func() time.Time
}

var _ domain.FileStorage = (*DiskStorage)(nil)

// NewDiskStorage creates the upload directories below root
func NewDiskStorage(root string, maxBytes int64) (*DiskStorage, error) {
	for _, dir := range []string{PassportDir, QuestionDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
		}
	}
	return &DiskStorage{root: root, maxBytes: maxBytes, now: time.Now}, nil
}

// Root returns the directory holding the upload trees
func (s *DiskStorage) Root() string { return s.root }

// MaxBytes returns the per-file size limit
func (s *DiskStorage) MaxBytes() int64 { return s.maxBytes }

// Save checks type and size, then writes src as <field>-<yyyymmdd>-<uuid><ext>
func (s *DiskStorage) Save(dir, field, originalName string, src io.Reader) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	ext, ok := allowedTypes[mtype.String()]
	if !ok {
		return "", domain.ErrUnsupportedFileType
	}
	if orig := strings.ToLower(filepath.Ext(originalName)); orig == ".jpeg" && ext == ".jpg" {
		ext = orig
	}

	name := fmt.Sprintf("%s-%s-%s%s", field, s.now().Format("20060102"), uuid.NewString(), ext)
	path := filepath.Join(s.root, dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	// One byte past the limit tells an oversized file from an exact fit
	body := io.MultiReader(bytes.NewReader(head), src)
	written, err := io.Copy(f, io.LimitReader(body, s.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = domain.ErrFileTooLarge
	}
	if err != nil {
		os.Remove(path)
		if errors.Is(err, domain.ErrFileTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return name, nil
}

// Remove deletes a stored file; missing files are ignored
func (s *DiskStorage) Remove(dir, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, dir, filepath.Base(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
