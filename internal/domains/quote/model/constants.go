package model

const (
	// Rating
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 1

	// Content limits
	MaxTextLength = 255

	// Date layout of the "created" field
	DateLayout = "02.01.2006"
)
