package service

import (
	"context"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/permissions"
	"reviewhub/internal/http-api/repository"
)

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Create(ctx context.Context, titleID, reviewID int64, authorID string, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Update(ctx context.Context, caller permissions.Caller, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(ctx context.Context, caller permissions.Caller, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByReview(ctx, reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginated(responses, total, page, pageSize), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.getForReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Create(ctx context.Context, titleID, reviewID int64, authorID string, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.Get(ctx, titleID, reviewID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, caller permissions.Caller, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.getForReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !permissions.CanModify(caller, permissions.KindFeedback, comment.AuthorID) {
		return nil, ErrForbidden
	}

	comment.Text = req.Text
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	return s.Get(ctx, titleID, reviewID, commentID)
}

func (s *commentService) Delete(ctx context.Context, caller permissions.Caller, titleID, reviewID, commentID int64) error {
	comment, err := s.getForReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !permissions.CanModify(caller, permissions.KindFeedback, comment.AuthorID) {
		return ErrForbidden
	}

	return s.commentRepo.Delete(ctx, comment.ID)
}

// requireReview checks that the review exists and belongs to the path title,
// so comments are never reachable across reviews.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviewRepo.GetForTitle(ctx, titleID, reviewID); err != nil {
		if repository.IsNotFound(err) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) getForReview(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetForReview(ctx, reviewID, commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
