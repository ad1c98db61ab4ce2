package service

import (
	"context"
	"time"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Paginated[dto.TitleResponse], error)
	Get(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	// now is swappable in tests; the year bound is checked at write time
	now func() time.Time
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		now:          time.Now,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Paginated[dto.TitleResponse], error) {
	titles, total, err := s.titleRepo.GetAll(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		responses = append(responses, *dto.FromModelToTitleResponse(&titles[i]))
	}
	return dto.NewPaginated(responses, total, page, pageSize), nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	if err := s.validateYear(req.Year); err != nil {
		return nil, err
	}

	var categoryID *int64
	if req.Category != nil {
		category, err := s.categoryRepo.GetBySlug(ctx, *req.Category)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		categoryID = &category.ID
	}

	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	exists, err := s.titleRepo.ExistsWithIdentity(ctx, req.Name, categoryID, req.Year, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTitleExists
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
		Genres:      genres,
	}
	if err := s.titleRepo.Create(ctx, title); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.categoryRepo.GetBySlug(ctx, *req.Category)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	// the year bound is re-validated on every write, not only on create
	if err := s.validateYear(title.Year); err != nil {
		return nil, err
	}

	exists, err := s.titleRepo.ExistsWithIdentity(ctx, title.Name, title.CategoryID, title.Year, title.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTitleExists
	}

	if err := s.titleRepo.Save(ctx, title); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	err := s.titleRepo.Delete(ctx, id)
	if err != nil && repository.IsNotFound(err) {
		return ErrTitleNotFound
	}
	return err
}

func (s *titleService) validateYear(year int) error {
	if year < 0 {
		return ErrYearNegative
	}
	if year > s.now().Year() {
		return ErrYearInFuture
	}
	return nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genreRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}
