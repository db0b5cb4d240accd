package proof

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("payment proof too large")
	ErrUnsupportedType = errors.New("unsupported payment proof type")
	ErrNotFound        = errors.New("payment proof not found")
	ErrRemote          = errors.New("payment proof stored remotely")
)

const memPrefix = "mem://"

var allowedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Blob struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Store keeps uploaded payment proofs and returns a reference for the order.
type Store interface {
	Put(ctx context.Context, u Upload) (string, error)
	Open(ctx context.Context, ref string) (*Blob, error)
	// Delete removes a proof no order refers to. Unknown refs are not an error.
	Delete(ctx context.Context, ref string) error
}

// Validate checks the declared type and size before anything is stored.
func Validate(u Upload, maxBytes int64) error {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(u.ContentType, ";")[0]))
	if !allowedTypes[ct] {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, u.ContentType)
	}
	if maxBytes > 0 && u.Size > maxBytes {
		return ErrTooLarge
	}
	return nil
}

func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://")
}

// MemoryStore holds proofs in process memory; they are gone after a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	blobs    map[string]Blob
	maxBytes int64
}

func NewMemoryStore(maxBytes int64) *MemoryStore {
	return &MemoryStore{blobs: make(map[string]Blob), maxBytes: maxBytes}
}

func (s *MemoryStore) Put(_ context.Context, u Upload) (string, error) {
	if err := Validate(u, s.maxBytes); err != nil {
		return "", err
	}
	r := u.Body
	if s.maxBytes > 0 {
		r = io.LimitReader(u.Body, s.maxBytes+1)
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return "", fmt.Errorf("read proof: %w", err)
	}
	if s.maxBytes > 0 && n > s.maxBytes {
		return "", ErrTooLarge
	}

	ref := memPrefix + uuid.NewString()
	s.mu.Lock()
	s.blobs[ref] = Blob{FileName: u.FileName, ContentType: u.ContentType, Data: buf.Bytes()}
	s.mu.Unlock()
	return ref, nil
}

func (s *MemoryStore) Open(_ context.Context, ref string) (*Blob, error) {
	if IsRemote(ref) {
		return nil, ErrRemote
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[ref]
	if !ok {
		return nil, ErrNotFound
	}
	out := b
	out.Data = append([]byte(nil), b.Data...)
	return &out, nil
}

func (s *MemoryStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	delete(s.blobs, ref)
	s.mu.Unlock()
	return nil
}
