package dto

// SelectTabRequest represents the request body for PUT /tab.
type SelectTabRequest struct {
	Tab string `json:"tab"`
}

// RateBreedRequest represents the request body for PUT /breeds/{index}/rating.
type RateBreedRequest struct {
	Rating int `json:"rating"`
}
