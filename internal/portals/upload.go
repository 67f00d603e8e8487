package portals

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
	pkgerrors "github.com/advanceapparels/tradeshow-portal/pkg/errors"
	"github.com/advanceapparels/tradeshow-portal/pkg/storage/gcs"
)

const (
	sniffLen        = 3072
	objectSuffixLen = 6
	genericMime     = "application/octet-stream"
)

// ObjectStore is the attachment bucket. An empty bucket means the default.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, name, contentType string, body io.Reader) (*gcs.Object, error)
	Delete(ctx context.Context, bucket, name string) error
}

type UploadInput struct {
	PortalID    uuid.UUID
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload stores a file under {portalId}/{unixMillis}-{rand}.{ext} and records
// it as a photo when the sniffed type is an image, otherwise a document.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*AttachmentDTO, error) {
	if s.storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "file storage is not configured")
	}
	if in.PortalID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "portalId is required")
	}
	if in.Body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is required")
	}
	if s.maxUpload > 0 && in.Size > s.maxUpload {
		return nil, pkgerrors.New(pkgerrors.CodeTooLarge, "file exceeds the upload limit").
			WithDetails(map[string]any{"max_bytes": s.maxUpload, "size": in.Size})
	}
	if _, err := s.repo.FindByID(ctx, in.PortalID); err != nil {
		return nil, notFoundOr(err, "portal not found")
	}

	header := make([]byte, sniffLen)
	n, err := io.ReadFull(in.Body, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "failed to read upload")
	}
	if n == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}
	header = header[:n]

	detected := mimetype.Detect(header)
	contentType := mediaType(detected.String())
	if contentType == genericMime {
		if declared := mediaType(in.ContentType); declared != "" {
			contentType = declared
		}
	}
	fileType := enums.FileTypeDocument
	if strings.HasPrefix(contentType, "image/") {
		fileType = enums.FileTypePhoto
	}

	suffix, err := randomString(s.random, objectSuffixLen)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to name upload")
	}
	fileName := displayName(in.FileName)
	key := fmt.Sprintf("%s/%d-%s.%s", in.PortalID, s.now().UnixMilli(), suffix, extension(fileName, detected))

	obj, err := s.storage.Upload(ctx, "", key, contentType, io.MultiReader(bytes.NewReader(header), in.Body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to store file")
	}

	size := in.Size
	if obj.Size > 0 {
		size = obj.Size
	}
	row := &models.PortalAttachment{
		PortalID:  in.PortalID,
		FileName:  fileName,
		FileURL:   obj.URL,
		ObjectKey: key,
		FileType:  fileType,
		MimeType:  contentType,
		FileSize:  size,
	}
	logCtx := s.logg.WithFields(s.logg.WithPortalID(ctx, in.PortalID.String()), map[string]any{
		"object_key": key,
		"file_type":  fileType.String(),
		"size":       size,
	})
	if err := s.repo.CreateAttachment(ctx, row); err != nil {
		if delErr := s.storage.Delete(ctx, "", key); delErr != nil {
			s.logg.Warn(logCtx, "failed to remove orphaned upload")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to record file")
	}
	s.logg.Info(logCtx, "portal file uploaded")

	dto := newAttachmentDTO(*row)
	return &dto, nil
}

func mediaType(v string) string {
	base, _, _ := strings.Cut(v, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

func displayName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "upload"
	}
	return name
}

// extension prefers the uploaded name's extension and falls back to the
// sniffed type. Only [a-z0-9] survive so the object key stays URL-safe.
func extension(fileName string, detected *mimetype.MIME) string {
	for _, candidate := range []string{filepath.Ext(fileName), detected.Extension()} {
		var b strings.Builder
		for _, r := range strings.ToLower(strings.TrimPrefix(candidate, ".")) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return "bin"
}
