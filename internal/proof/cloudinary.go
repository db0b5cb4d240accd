package proof

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const cloudinaryFolder = "payment-proofs"

// CloudinaryStore uploads proofs to Cloudinary; the reference is the secure URL.
type CloudinaryStore struct {
	cld      *cloudinary.Cloudinary
	maxBytes int64
}

func NewCloudinaryStore(url string, maxBytes int64) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld, maxBytes: maxBytes}, nil
}

func (s *CloudinaryStore) Put(ctx context.Context, u Upload) (string, error) {
	if err := Validate(u, s.maxBytes); err != nil {
		return "", err
	}
	res, err := s.cld.Upload.Upload(ctx, u.Body, uploader.UploadParams{
		Folder:       cloudinaryFolder,
		PublicID:     uuid.NewString(),
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("upload proof: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("upload proof: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("upload proof: empty url")
	}
	return res.SecureURL, nil
}

// Open is not supported; clients follow the URL instead.
func (s *CloudinaryStore) Open(context.Context, string) (*Blob, error) {
	return nil, ErrRemote
}

func (s *CloudinaryStore) Delete(ctx context.Context, ref string) error {
	publicID, resourceType, ok := cloudinaryAsset(ref)
	if !ok {
		return nil
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: resourceType})
	if err != nil {
		return fmt.Errorf("destroy proof: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("destroy proof: %s", res.Error.Message)
	}
	return nil
}

// cloudinaryAsset parses a delivery URL like
// https://res.cloudinary.com/<cloud>/<resource_type>/upload/v1/payment-proofs/<id>.<ext>.
func cloudinaryAsset(ref string) (publicID, resourceType string, ok bool) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	idx := -1
	for i, p := range parts {
		if p == cloudinaryFolder {
			idx = i
			break
		}
	}
	if len(parts) < 4 || idx < 3 || idx == len(parts)-1 || parts[2] != "upload" {
		return "", "", false
	}
	file := strings.Join(parts[idx+1:], "/")
	// raw-файлы хранят расширение в public_id
	if parts[1] != "raw" {
		file = strings.TrimSuffix(file, path.Ext(file))
	}
	return cloudinaryFolder + "/" + file, parts[1], true
}
