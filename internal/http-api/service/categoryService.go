package service

import (
	"context"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/repository"
)

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.CategoryResponse], error)
	Create(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.CategoryResponse], error) {
	categories, total, err := s.categoryRepo.GetAll(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *dto.FromModelToCategoryResponse(&categories[i]))
	}
	return dto.NewPaginated(responses, total, page, pageSize), nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	category := req.ToModel()
	if err := s.categoryRepo.Create(ctx, &category); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return dto.FromModelToCategoryResponse(&category), nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	err := s.categoryRepo.DeleteBySlug(ctx, slug)
	if err != nil && repository.IsNotFound(err) {
		return ErrCategoryNotFound
	}
	return err
}
