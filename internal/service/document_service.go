package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"house-admin/internal/model"
)

type documentStore interface {
	List(ctx context.Context) ([]model.Document, error)
	FindByID(ctx context.Context, id string) (model.Document, error)
	Create(ctx context.Context, d model.Document) error
	Update(ctx context.Context, d model.Document) error
	Delete(ctx context.Context, id string) error
}

// DocumentService manages document metadata; the file blobs themselves live
// in an external storage collaborator.
type DocumentService struct {
	documents documentStore
}

func NewDocumentService(documents documentStore) *DocumentService {
	return &DocumentService{documents: documents}
}

func (s *DocumentService) List(ctx context.Context) ([]model.Document, error) {
	return s.documents.List(ctx)
}

func (s *DocumentService) Get(ctx context.Context, id string) (model.Document, error) {
	return s.documents.FindByID(ctx, id)
}

func (s *DocumentService) Create(ctx context.Context, req model.DocumentRequest, uploadedBy string) (model.Document, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Filename) == "" {
		return model.Document{}, fmt.Errorf("%w: title and filename are required", model.ErrInvalidInput)
	}

	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now().UTC()
	doc := model.Document{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Filename:    strings.TrimSpace(req.Filename),
		ContentType: contentType,
		UploadedBy:  uploadedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

func (s *DocumentService) Update(ctx context.Context, id string, req model.DocumentRequest) (model.Document, error) {
	doc, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return model.Document{}, err
	}

	if strings.TrimSpace(req.Title) != "" {
		doc.Title = strings.TrimSpace(req.Title)
	}
	if strings.TrimSpace(req.Filename) != "" {
		doc.Filename = strings.TrimSpace(req.Filename)
	}
	if strings.TrimSpace(req.ContentType) != "" {
		doc.ContentType = strings.TrimSpace(req.ContentType)
	}
	doc.UpdatedAt = time.Now().UTC()

	if err := s.documents.Update(ctx, doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.documents.Delete(ctx, id)
}
