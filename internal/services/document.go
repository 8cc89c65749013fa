package services

import (
	"context"
	"errors"
	"io"

	"github.com/car-service/apiserver/internal/store"
	"github.com/car-service/apiserver/types"
	"go.uber.org/zap"
)

// DocumentRepository defines persistence operations for document metadata.
type DocumentRepository interface {
	List(ctx context.Context) ([]types.Document, error)
	Get(ctx context.Context, id int) (types.Document, error)
	ExistsByMechanicAndType(ctx context.Context, mechanicID int, docType string, excludeID int) (bool, error)
	ExistsByFileKey(ctx context.Context, fileKey string, excludeID int) (bool, error)
	Create(ctx context.Context, document types.Document) (types.Document, error)
	Update(ctx context.Context, document types.Document) (types.Document, error)
	Delete(ctx context.Context, id int) error
}

// BlobStore defines the object operations the document pathway needs.
// *storage.Storage satisfies it.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

// DocumentUpload carries an incoming file for a document create or update.
type DocumentUpload struct {
	MechanicID  int
	Type        string
	FileKey     string
	Content     io.Reader
	Size        int64
	ContentType string
}

// DocumentService encapsulates document use-cases. A document is a row
// plus a blob; the two are written as a saga: blob first, row second,
// with a compensating blob delete when the row write fails.
type DocumentService struct {
	repo      DocumentRepository
	mechanics MechanicRepository
	blobs     BlobStore
	logger    *zap.Logger
}

func NewDocumentService(repo DocumentRepository, mechanics MechanicRepository, blobs BlobStore, logger *zap.Logger) *DocumentService {
	return &DocumentService{repo: repo, mechanics: mechanics, blobs: blobs, logger: logger}
}

func (s *DocumentService) List(ctx context.Context) ([]types.Document, error) {
	return s.repo.List(ctx)
}

func (s *DocumentService) Get(ctx context.Context, id int) (types.Document, error) {
	document, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Document{}, ErrDocumentNotFound
		}
		return types.Document{}, err
	}
	return document, nil
}

// Download opens the stored file of a document.
func (s *DocumentService) Download(ctx context.Context, id int) (io.ReadCloser, types.Document, error) {
	document, err := s.Get(ctx, id)
	if err != nil {
		return nil, types.Document{}, err
	}
	reader, err := s.blobs.Get(ctx, document.FileKey)
	if err != nil {
		return nil, types.Document{}, errors.Join(ErrStorage, err)
	}
	return reader, document, nil
}

// Create validates everything first, then writes the blob, then the row.
// A row-write failure triggers a best-effort compensating blob delete;
// if that also fails the orphaned blob is logged, not retried.
func (s *DocumentService) Create(ctx context.Context, upload DocumentUpload) (types.Document, error) {
	if _, err := s.mechanics.Get(ctx, upload.MechanicID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Document{}, ErrMechanicNotFound
		}
		return types.Document{}, err
	}

	if exists, err := s.repo.ExistsByMechanicAndType(ctx, upload.MechanicID, upload.Type, 0); err != nil {
		return types.Document{}, err
	} else if exists {
		return types.Document{}, store.ErrDuplicateDocumentType
	}
	if err := s.ensureKeyFree(ctx, upload.FileKey, 0); err != nil {
		return types.Document{}, err
	}

	if err := s.blobs.Put(ctx, upload.FileKey, upload.Content, upload.Size, upload.ContentType); err != nil {
		return types.Document{}, errors.Join(ErrStorage, err)
	}

	document, err := s.repo.Create(ctx, types.Document{
		MechanicID: upload.MechanicID,
		Type:       upload.Type,
		FileKey:    upload.FileKey,
	})
	if err != nil {
		s.compensateBlob(upload.FileKey)
		return types.Document{}, err
	}
	return document, nil
}

// Update replaces the document's metadata and file. When the file key
// changes the old blob is removed best-effort after the row commits.
func (s *DocumentService) Update(ctx context.Context, id int, upload DocumentUpload) (types.Document, error) {
	document, err := s.Get(ctx, id)
	if err != nil {
		return types.Document{}, err
	}

	if _, err := s.mechanics.Get(ctx, upload.MechanicID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Document{}, ErrMechanicNotFound
		}
		return types.Document{}, err
	}

	if exists, err := s.repo.ExistsByMechanicAndType(ctx, upload.MechanicID, upload.Type, id); err != nil {
		return types.Document{}, err
	} else if exists {
		return types.Document{}, store.ErrDuplicateDocumentType
	}

	previousKey := document.FileKey
	keyChanged := upload.FileKey != previousKey
	if keyChanged {
		if err := s.ensureKeyFree(ctx, upload.FileKey, id); err != nil {
			return types.Document{}, err
		}
	}

	if err := s.blobs.Put(ctx, upload.FileKey, upload.Content, upload.Size, upload.ContentType); err != nil {
		return types.Document{}, errors.Join(ErrStorage, err)
	}

	document.MechanicID = upload.MechanicID
	document.Type = upload.Type
	document.FileKey = upload.FileKey

	updated, err := s.repo.Update(ctx, document)
	if err != nil {
		if keyChanged {
			s.compensateBlob(upload.FileKey)
		}
		if errors.Is(err, store.ErrNotFound) {
			return types.Document{}, ErrDocumentNotFound
		}
		return types.Document{}, err
	}

	if keyChanged {
		if err := s.blobs.Delete(context.WithoutCancel(ctx), previousKey); err != nil {
			s.logger.Warn("failed to remove replaced document file",
				zap.String("file_key", previousKey),
				zap.Error(err))
		}
	}
	return updated, nil
}

// Delete removes the metadata row and then the blob. The two are not
// atomic: a blob-delete failure surfaces as ErrStorage while the row
// stays deleted.
func (s *DocumentService) Delete(ctx context.Context, id int) error {
	document, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	if err := s.blobs.Delete(context.WithoutCancel(ctx), document.FileKey); err != nil {
		s.logger.Error("document row deleted but blob removal failed",
			zap.Int("document_id", id),
			zap.String("file_key", document.FileKey),
			zap.Error(err))
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// ensureKeyFree checks both the metadata rows and the blob store so an
// existing file is never overwritten.
func (s *DocumentService) ensureKeyFree(ctx context.Context, fileKey string, excludeID int) error {
	if exists, err := s.repo.ExistsByFileKey(ctx, fileKey, excludeID); err != nil {
		return err
	} else if exists {
		return store.ErrDuplicateFileKey
	}
	exists, err := s.blobs.Exists(ctx, fileKey)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if exists {
		return store.ErrDuplicateFileKey
	}
	return nil
}

// compensateBlob removes a blob written by a saga whose row write failed.
func (s *DocumentService) compensateBlob(fileKey string) {
	if err := s.blobs.Delete(context.Background(), fileKey); err != nil {
		s.logger.Error("orphaned blob after failed document write",
			zap.String("file_key", fileKey),
			zap.Error(err))
	}
}
