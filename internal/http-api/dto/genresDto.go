package dto

import "reviewhub/internal/http-api/models"

// CreateGenreDTO for POST /genres
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=50"`
	Slug string `json:"slug" binding:"required,max=50"`
}

// GenreResponse is the {name, slug} shape used standalone and nested
// inside titles.
type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (d CreateGenreDTO) ToModel() models.Genre {
	return models.Genre{Name: d.Name, Slug: d.Slug}
}

func FromModelToGenreResponse(g *models.Genre) *GenreResponse {
	return &GenreResponse{Name: g.Name, Slug: g.Slug}
}
