package page

import (
	"github.com/samber/lo"

	"github.com/mtlprog/catpage/internal/content"
	"github.com/mtlprog/catpage/internal/domain"
)

// View is everything the presentation layer needs to draw the page.
type View struct {
	Title      string
	Images     []content.Image
	FunFact    string
	ActiveTab  domain.Tab
	Tabs       []TabView
	PanelTitle string
	About      string
	Breeds     []BreedView
	CareTips   []string
}

// TabView is one tab trigger.
type TabView struct {
	Tab    domain.Tab
	Label  string
	Active bool
}

// BreedView is one breed card with its star row.
type BreedView struct {
	Index       int
	Name        string
	Description string
	Rating      int
	Stars       []Star
}

// Star is a single clickable star; Filled when Value <= Rating.
type Star struct {
	Value  int
	Filled bool
}

// buildView must be called with mu held.
func (c *Controller) buildView() View {
	return View{
		Title:      content.Title,
		Images:     content.Images(),
		FunFact:    c.funFact,
		ActiveTab:  c.activeTab,
		Tabs:       tabViews(c.activeTab),
		PanelTitle: content.PanelTitle(c.activeTab),
		About:      content.About,
		Breeds:     lo.Map(c.breeds, breedView),
		CareTips:   content.CareTips(),
	}
}

func tabViews(active domain.Tab) []TabView {
	return lo.Map(domain.Tabs, func(t domain.Tab, _ int) TabView {
		return TabView{Tab: t, Label: t.Label(), Active: t == active}
	})
}

func breedView(b domain.BreedRating, index int) BreedView {
	return BreedView{
		Index:       index,
		Name:        b.Name,
		Description: b.Description,
		Rating:      b.Rating,
		Stars:       stars(b.Rating),
	}
}

func stars(rating int) []Star {
	out := make([]Star, domain.MaxRating)
	for i := range out {
		value := i + 1
		out[i] = Star{Value: value, Filled: value <= rating}
	}
	return out
}
