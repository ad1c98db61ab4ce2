package service

import (
	"context"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/repository"
)

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.GenreResponse], error)
	Create(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.GenreResponse], error) {
	genres, total, err := s.genreRepo.GetAll(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		responses = append(responses, *dto.FromModelToGenreResponse(&genres[i]))
	}
	return dto.NewPaginated(responses, total, page, pageSize), nil
}

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	genre := req.ToModel()
	if err := s.genreRepo.Create(ctx, &genre); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return dto.FromModelToGenreResponse(&genre), nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	err := s.genreRepo.DeleteBySlug(ctx, slug)
	if err != nil && repository.IsNotFound(err) {
		return ErrGenreNotFound
	}
	return err
}
