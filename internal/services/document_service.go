package services

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/buena/portfolio-service/internal/models"
	"github.com/buena/portfolio-service/internal/repositories"
	"github.com/buena/portfolio-service/internal/utils"
)

// DocumentService stores uploaded files and their metadata rows. The storage
// key it returns is what clients later pass to the extraction endpoint.
type DocumentService struct {
	db    repositories.DB
	files *FileStore
}

func NewDocumentService(db repositories.DB, files *FileStore) *DocumentService {
	return &DocumentService{db: db, files: files}
}

func (s *DocumentService) Upload(ctx context.Context, fileName string, propertyID *uuid.UUID, r io.Reader) (*models.Document, error) {
	key, err := s.files.Save(fileName, r)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusInternalServerError,
			Code:       utils.ErrCodeInternal,
			Message:    "Could not store uploaded file",
			Err:        err,
		}
	}

	doc := &models.Document{
		ID:         uuid.New(),
		PropertyID: propertyID,
		FileName:   fileName,
		StorageKey: key,
	}
	if err := repositories.NewDocumentRepository(s.db).Create(ctx, doc); err != nil {
		return nil, txFailed("insert document", err)
	}

	utils.Logger.Infof("Stored document %s as %s", fileName, key)
	return doc, nil
}

func (s *DocumentService) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Document, error) {
	docs, err := repositories.NewDocumentRepository(s.db).ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, txFailed("list documents", err)
	}
	if docs == nil {
		docs = []*models.Document{}
	}
	return docs, nil
}
