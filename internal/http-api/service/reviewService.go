package service

import (
	"context"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/permissions"
	"reviewhub/internal/http-api/repository"
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	// Create attaches the review to the path title and the authenticated
	// caller; the payload can never name a different author.
	Create(ctx context.Context, titleID int64, authorID string, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(ctx context.Context, caller permissions.Caller, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, caller permissions.Caller, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return dto.NewPaginated(responses, total, page, pageSize), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.getForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Create(ctx context.Context, titleID int64, authorID string, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	if _, err := s.reviewRepo.GetByAuthorAndTitle(ctx, authorID, titleID); err == nil {
		return nil, ErrReviewExists
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     req.Text,
		Score:    *req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// the unique (author, title) constraint decides under concurrency
		if repository.IsDuplicateKey(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	return s.Get(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, caller permissions.Caller, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.getForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !permissions.CanModify(caller, permissions.KindFeedback, review.AuthorID) {
		return nil, ErrForbidden
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	return s.Get(ctx, titleID, reviewID)
}

func (s *reviewService) Delete(ctx context.Context, caller permissions.Caller, titleID, reviewID int64) error {
	review, err := s.getForTitle(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !permissions.CanModify(caller, permissions.KindFeedback, review.AuthorID) {
		return ErrForbidden
	}

	return s.reviewRepo.Delete(ctx, review.ID)
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if repository.IsNotFound(err) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) getForTitle(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetForTitle(ctx, titleID, reviewID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}
