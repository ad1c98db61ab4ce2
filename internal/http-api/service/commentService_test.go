package service

import (
	"context"
	"testing"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCreateComment_Success(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	svc := NewCommentService(mockCommentRepo, mockReviewRepo)

	mockReviewRepo.On("GetForTitle", mock.Anything, int64(7), int64(11)).
		Return(&models.Review{ID: 11, TitleID: 7}, nil)
	mockCommentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Comment).ID = 21 }).
		Return(nil)
	mockCommentRepo.On("GetForReview", mock.Anything, int64(11), int64(21)).Return(&models.Comment{
		ID:       21,
		ReviewID: 11,
		AuthorID: "author-id",
		Text:     "agreed",
		Author:   models.User{ID: "author-id", Username: "testuser"},
	}, nil)

	comment, err := svc.Create(context.Background(), 7, 11, "author-id", dto.CreateCommentDTO{Text: "agreed"})

	assert.NoError(t, err)
	assert.NotNil(t, comment)
	assert.Equal(t, "agreed", comment.Text)
	mockCommentRepo.AssertExpectations(t)
}

func TestCreateComment_ReviewNotUnderTitle(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	svc := NewCommentService(mockCommentRepo, mockReviewRepo)

	// review 11 exists but belongs to another title
	mockReviewRepo.On("GetForTitle", mock.Anything, int64(8), int64(11)).Return(nil, gorm.ErrRecordNotFound)

	comment, err := svc.Create(context.Background(), 8, 11, "author-id", dto.CreateCommentDTO{Text: "agreed"})

	assert.Error(t, err)
	assert.Equal(t, ErrReviewNotFound, err)
	assert.Nil(t, comment)
	mockCommentRepo.AssertNotCalled(t, "Create")
}

func TestUpdateComment_OtherUserForbidden(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	svc := NewCommentService(mockCommentRepo, mockReviewRepo)

	mockReviewRepo.On("GetForTitle", mock.Anything, int64(7), int64(11)).
		Return(&models.Review{ID: 11, TitleID: 7}, nil)
	mockCommentRepo.On("GetForReview", mock.Anything, int64(11), int64(21)).
		Return(&models.Comment{ID: 21, ReviewID: 11, AuthorID: "owner-id"}, nil)

	caller := permissions.Caller{Authenticated: true, UserID: "someone-else", Role: permissions.RoleUser}
	comment, err := svc.Update(context.Background(), caller, 7, 11, 21, dto.UpdateCommentDTO{Text: "edited"})

	assert.Error(t, err)
	assert.Equal(t, ErrForbidden, err)
	assert.Nil(t, comment)
	mockCommentRepo.AssertNotCalled(t, "Save")
}

func TestDeleteComment_SuperuserAllowed(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	svc := NewCommentService(mockCommentRepo, mockReviewRepo)

	mockReviewRepo.On("GetForTitle", mock.Anything, int64(7), int64(11)).
		Return(&models.Review{ID: 11, TitleID: 7}, nil)
	mockCommentRepo.On("GetForReview", mock.Anything, int64(11), int64(21)).
		Return(&models.Comment{ID: 21, ReviewID: 11, AuthorID: "owner-id"}, nil)
	mockCommentRepo.On("Delete", mock.Anything, int64(21)).Return(nil)

	// superuser acts with full rights even while the role claim says "user"
	caller := permissions.Caller{Authenticated: true, UserID: "super-id", Role: permissions.RoleUser, IsSuperuser: true}
	err := svc.Delete(context.Background(), caller, 7, 11, 21)

	assert.NoError(t, err)
	mockCommentRepo.AssertExpectations(t)
}

func TestGetComment_NotFound(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	svc := NewCommentService(mockCommentRepo, mockReviewRepo)

	mockReviewRepo.On("GetForTitle", mock.Anything, int64(7), int64(11)).
		Return(&models.Review{ID: 11, TitleID: 7}, nil)
	mockCommentRepo.On("GetForReview", mock.Anything, int64(11), int64(404)).Return(nil, gorm.ErrRecordNotFound)

	comment, err := svc.Get(context.Background(), 7, 11, 404)

	assert.Error(t, err)
	assert.Equal(t, ErrCommentNotFound, err)
	assert.Nil(t, comment)
}
