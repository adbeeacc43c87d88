package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/catpage/internal/content"
	"github.com/mtlprog/catpage/internal/domain"
)

func TestCatalogShape(t *testing.T) {
	breeds := content.Breeds()
	require.Len(t, breeds, 5)
	assert.Equal(t, content.BreedCount(), len(breeds))
	assert.Equal(t, "Siamese", breeds[0].Name)
	assert.Equal(t, "Sphynx", breeds[4].Name)

	assert.Len(t, content.FunFacts(), 5)
	assert.Len(t, content.CareTips(), 5)
}

func TestBreedsReturnsCopy(t *testing.T) {
	b := content.Breeds()
	b[0].Name = "Tabby"

	assert.Equal(t, "Siamese", content.Breeds()[0].Name)
}

func TestImagesAltText(t *testing.T) {
	images := content.Images()
	require.Len(t, images, 3)
	assert.Equal(t, "Cat 1", images[0].Alt)
	assert.Equal(t, "Cat 3", images[2].Alt)
	assert.Contains(t, images[1].URL, "Cat_November_2010-1a.jpg")
}

func TestIsFunFact(t *testing.T) {
	for _, fact := range content.FunFacts() {
		assert.True(t, content.IsFunFact(fact))
	}
	assert.False(t, content.IsFunFact(""))
	assert.False(t, content.IsFunFact("Dogs are great."))
}

func TestPanelTitle(t *testing.T) {
	assert.Equal(t, "About Cats", content.PanelTitle(domain.TabAbout))
	assert.Equal(t, "Popular Cat Breeds", content.PanelTitle(domain.TabBreeds))
	assert.Equal(t, "Cat Care Tips", content.PanelTitle(domain.TabCare))
}
