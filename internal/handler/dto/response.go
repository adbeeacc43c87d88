package dto

import (
	"github.com/samber/lo"

	"github.com/mtlprog/catpage/internal/content"
	"github.com/mtlprog/catpage/internal/page"
)

// StateResponse is the page state returned by every API call.
type StateResponse struct {
	ActiveTab string          `json:"active_tab"`
	FunFact   string          `json:"fun_fact"`
	Breeds    []BreedResponse `json:"breeds"`
	Images    []ImageResponse `json:"images"`
}

// BreedResponse represents one breed with its rating.
type BreedResponse struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
}

// ImageResponse represents a carousel slide.
type ImageResponse struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// ToStateResponse converts a page.View to StateResponse.
func ToStateResponse(v page.View) StateResponse {
	return StateResponse{
		ActiveTab: string(v.ActiveTab),
		FunFact:   v.FunFact,
		Breeds: lo.Map(v.Breeds, func(b page.BreedView, _ int) BreedResponse {
			return BreedResponse{
				Index:       b.Index,
				Name:        b.Name,
				Description: b.Description,
				Rating:      b.Rating,
			}
		}),
		Images: lo.Map(v.Images, func(img content.Image, _ int) ImageResponse {
			return ImageResponse{URL: img.URL, Alt: img.Alt}
		}),
	}
}
