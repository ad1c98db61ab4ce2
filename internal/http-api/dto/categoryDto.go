package dto

import "reviewhub/internal/http-api/models"

// CreateCategoryDTO for POST /categories
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

// CategoryResponse is the {name, slug} shape used standalone and nested
// inside titles.
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (d CreateCategoryDTO) ToModel() models.Category {
	return models.Category{Name: d.Name, Slug: d.Slug}
}

func FromModelToCategoryResponse(c *models.Category) *CategoryResponse {
	return &CategoryResponse{Name: c.Name, Slug: c.Slug}
}
