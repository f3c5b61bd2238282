package service

import (
	"context"

	"github.com/jengzang/evjourney-backend-go/internal/annotation"
	"github.com/jengzang/evjourney-backend-go/internal/metrics"
	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// AnnotationService handles business logic for trip annotations
type AnnotationService struct {
	store   *annotation.Store
	metrics *metrics.Metrics
}

// NewAnnotationService creates a new annotation service
func NewAnnotationService(store *annotation.Store, m *metrics.Metrics) *AnnotationService {
	return &AnnotationService{store: store, metrics: m}
}

// Get retrieves the annotation of a trip fingerprint
func (s *AnnotationService) Get(fingerprint string) models.TripAnnotation {
	return s.store.Get(fingerprint)
}

// Save replaces the annotation of a trip fingerprint
func (s *AnnotationService) Save(ctx context.Context, fingerprint string, req models.AnnotationRequest) (models.TripAnnotation, error) {
	saved, err := s.store.Set(ctx, fingerprint, models.TripAnnotation{Notes: req.Notes, Tags: req.Tags})
	if err != nil {
		return models.TripAnnotation{}, err
	}
	if s.metrics != nil {
		s.metrics.AnnotationWrites.Inc()
	}
	return saved, nil
}

// Tags lists every tag in use
func (s *AnnotationService) Tags() []string {
	return s.store.AllTags()
}
