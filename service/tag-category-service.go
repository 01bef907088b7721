package service

import (
	"context"
	"fmt"
	"time"

	"tagcat/app_error"
	"tagcat/metrics"
	"tagcat/parser"
	"tagcat/repository"

	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

type TagCategoryService struct {
	store     repository.TagCategoryStore
	publisher ChangePublisher
	logger    *zap.Logger
}

func NewTagCategoryService(store repository.TagCategoryStore, publisher ChangePublisher, logger *zap.Logger) *TagCategoryService {
	if publisher == nil {
		publisher = NoopChangePublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagCategoryService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *TagCategoryService) GetTagCategories(filter repository.TagCategoryFilter) ([]*repository.TagCategory, error) {
	return s.store.GetTagCategories(filter)
}

// GetTagCategoryById also returns soft-deleted categories.
func (s *TagCategoryService) GetTagCategoryById(id string) (*repository.TagCategory, error) {
	return s.store.GetTagCategoryById(id)
}

func (s *TagCategoryService) CreateTagCategory(input *parser.TagCategoryInput) (*repository.TagCategory, error) {
	category, err := parser.ValidateTagCategory(input)
	if err != nil {
		metrics.ValidationFailureCounter.WithLabelValues("create").Inc()
		return nil, err
	}
	category, err = s.store.CreateTagCategory(category)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag category: %w", err)
	}
	metrics.TagCategoryMutationCounter.WithLabelValues("create").Inc()
	s.reportIssues(category)
	s.publish(ChangeCreated, category)
	return category, nil
}

func (s *TagCategoryService) UpdateTagCategory(id string, input *parser.TagCategoryInput) (*repository.TagCategory, error) {
	patch, err := parser.ValidateTagCategoryUpdate(input)
	if err != nil {
		metrics.ValidationFailureCounter.WithLabelValues("update").Inc()
		return nil, err
	}
	category, err := s.store.UpdateTagCategory(id, patch)
	if err != nil {
		return nil, err
	}
	metrics.TagCategoryMutationCounter.WithLabelValues("update").Inc()
	s.reportIssues(category)
	s.publish(ChangeUpdated, category)
	return category, nil
}

// DeleteTagCategory soft-deletes; the record stays readable by id.
func (s *TagCategoryService) DeleteTagCategory(id string) error {
	category, err := s.store.DeleteTagCategory(id)
	if err != nil {
		return err
	}
	metrics.TagCategoryMutationCounter.WithLabelValues("delete").Inc()
	s.publish(ChangeDeleted, category)
	return nil
}

func (s *TagCategoryService) GetIssues(id string) ([]parser.Issue, error) {
	category, err := s.store.GetTagCategoryById(id)
	if err != nil {
		return nil, err
	}
	return parser.Diagnose(category), nil
}

func (s *TagCategoryService) ComposeName(id string, values map[string]string) (string, error) {
	category, err := s.store.GetTagCategoryById(id)
	if err != nil {
		return "", err
	}
	if len(category.NameStructure) == 0 {
		return "", app_error.NewValidationError("nameStructure", "category defines no name structure")
	}
	return parser.ComposeName(category, values), nil
}

// SeedSampleData fills an empty store with the sample categories.
func (s *TagCategoryService) SeedSampleData() error {
	seeded, err := repository.SeedSampleData(s.store)
	if err != nil {
		return err
	}
	s.logger.Info("seeded sample tag categories", zap.Int("count", seeded))
	return nil
}

func (s *TagCategoryService) Close() error {
	return s.publisher.Close()
}

func (s *TagCategoryService) reportIssues(category *repository.TagCategory) {
	for _, issue := range parser.Diagnose(category) {
		metrics.SchemaIssueCounter.WithLabelValues(string(issue.Code)).Inc()
		s.logger.Warn("tag category schema issue",
			zap.String("id", category.Id),
			zap.String("code", string(issue.Code)),
			zap.String("field", issue.Field),
			zap.String("message", issue.Message),
		)
	}
}

// publish never fails the calling request; the store write already happened.
func (s *TagCategoryService) publish(changeType ChangeType, category *repository.TagCategory) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	err := s.publisher.Publish(ctx, TagCategoryChange{
		Type:      changeType,
		Id:        category.Id,
		Timestamp: category.LastUpdatedAt,
		Category:  category,
	})
	if err != nil {
		metrics.ChangeEventCounter.WithLabelValues("failed").Inc()
		s.logger.Error("failed to publish tag category change",
			zap.String("id", category.Id),
			zap.String("type", string(changeType)),
			zap.Error(err),
		)
		return
	}
	metrics.ChangeEventCounter.WithLabelValues("published").Inc()
}
