// Package content holds the literal copy rendered on the page: the breed
// catalog, the fun-fact pool, carousel images, the About paragraph and the
// care tips. Nothing here is loaded at runtime.
package content

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/mtlprog/catpage/internal/domain"
)

// Title is the page heading.
const Title = "All About Cats"

// About is the body of the About panel.
const About = "Cats are fascinating creatures that have been domesticated for thousands of years. " +
	"They are known for their independence, agility, and affectionate nature. " +
	"Cats come in various breeds, each with its unique characteristics and personalities."

// Image is a single carousel slide.
type Image struct {
	URL string
	Alt string
}

var breeds = []domain.Breed{
	{Name: "Siamese", Description: "Known for their distinctive color points and blue eyes."},
	{Name: "Maine Coon", Description: "One of the largest domestic cat breeds, known for their intelligence and playful personality."},
	{Name: "Persian", Description: "Recognized for their long fur and flat faces."},
	{Name: "Bengal", Description: "Known for their wild appearance and energetic personality."},
	{Name: "Sphynx", Description: "Distinctive for their lack of fur and wrinkled skin."},
}

var funFacts = []string{
	"Cats sleep for about 70% of their lives.",
	"A group of cats is called a clowder.",
	"Cats have over 20 vocalizations, including the meow.",
	"A cat's sense of smell is 14 times stronger than a human's.",
	"Cats can jump up to six times their length.",
}

var imageURLs = []string{
	"https://upload.wikimedia.org/wikipedia/commons/thumb/3/3a/Cat03.jpg/1200px-Cat03.jpg",
	"https://upload.wikimedia.org/wikipedia/commons/thumb/4/4d/Cat_November_2010-1a.jpg/1200px-Cat_November_2010-1a.jpg",
	"https://upload.wikimedia.org/wikipedia/commons/thumb/b/bb/Kittyply_edit1.jpg/1200px-Kittyply_edit1.jpg",
}

var careTips = []string{
	"Provide a balanced diet suitable for your cat's age and health condition",
	"Ensure fresh water is always available",
	"Regular grooming to keep their coat healthy",
	"Schedule regular check-ups with a veterinarian",
	"Provide mental stimulation with toys and play sessions",
}

// Breeds returns a copy of the breed catalog in display order.
func Breeds() []domain.Breed {
	return append([]domain.Breed(nil), breeds...)
}

// BreedCount is the fixed length of the breed catalog.
func BreedCount() int {
	return len(breeds)
}

// FunFacts returns a copy of the fun-fact pool.
func FunFacts() []string {
	return append([]string(nil), funFacts...)
}

// IsFunFact reports whether fact belongs to the pool.
func IsFunFact(fact string) bool {
	return lo.Contains(funFacts, fact)
}

// Images returns the carousel slides with their alt text.
func Images() []Image {
	return lo.Map(imageURLs, func(url string, i int) Image {
		return Image{URL: url, Alt: "Cat " + strconv.Itoa(i+1)}
	})
}

// CareTips returns the bullet list on the Care panel.
func CareTips() []string {
	return append([]string(nil), careTips...)
}

// PanelTitle returns the card heading for a tab's panel.
func PanelTitle(t domain.Tab) string {
	switch t {
	case domain.TabBreeds:
		return "Popular Cat Breeds"
	case domain.TabCare:
		return "Cat Care Tips"
	default:
		return "About Cats"
	}
}

