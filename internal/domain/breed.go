package domain

const (
	// MinRating is the rating every breed starts with before a visitor votes.
	MinRating = 0
	// MaxRating is the number of stars in the rating widget.
	MaxRating = 5
)

// Breed is a fixed catalog entry shown on the Breeds tab.
type Breed struct {
	Name        string
	Description string
}

// BreedRating is a breed together with the visitor's current star rating.
type BreedRating struct {
	Name        string
	Description string
	Rating      int
}

// IsValidRating reports whether value can be chosen from the star widget.
// Zero is only a display value and cannot be selected.
func IsValidRating(value int) bool {
	return value > MinRating && value <= MaxRating
}

// IsStoredRating reports whether value may appear in persisted state.
func IsStoredRating(value int) bool {
	return value >= MinRating && value <= MaxRating
}
