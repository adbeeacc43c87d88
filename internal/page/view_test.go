package page_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/catpage/internal/domain"
	"github.com/mtlprog/catpage/internal/page"
)

func TestView_StarsFollowRating(t *testing.T) {
	ctrl := page.New()
	require.NoError(t, ctrl.SetRating(1, 3))

	v := ctrl.View()
	require.Len(t, v.Breeds, 5)

	stars := v.Breeds[1].Stars
	require.Len(t, stars, 5)
	for i, star := range stars {
		assert.Equal(t, i+1, star.Value)
		assert.Equal(t, i < 3, star.Filled, "star %d", star.Value)
	}
	for _, star := range v.Breeds[0].Stars {
		assert.False(t, star.Filled)
	}
}

func TestView_TabsAndPanel(t *testing.T) {
	ctrl := page.New()
	require.NoError(t, ctrl.SetActiveTab(domain.TabCare))

	v := ctrl.View()
	assert.Equal(t, "All About Cats", v.Title)
	assert.Equal(t, domain.TabCare, v.ActiveTab)
	assert.Equal(t, "Cat Care Tips", v.PanelTitle)
	require.Len(t, v.Tabs, 3)
	assert.Equal(t, "About Cats", v.Tabs[0].Label)
	assert.False(t, v.Tabs[0].Active)
	assert.True(t, v.Tabs[2].Active)
	assert.Len(t, v.CareTips, 5)
	assert.Len(t, v.Images, 3)
	assert.Equal(t, ctrl.FunFact(), v.FunFact)
}

func TestView_IndexMatchesPosition(t *testing.T) {
	v := page.New().View()
	for i, b := range v.Breeds {
		assert.Equal(t, i, b.Index)
	}
}
