package band

import "strings"

// Rating is an ordinal skill proficiency level. The zero value means the
// skill has never been rated and ranks below every real level.
type Rating string

const (
	RatingBeginner     Rating = "Beginner"
	RatingDeveloping   Rating = "Developing"
	RatingIntermediate Rating = "Intermediate"
	RatingAdvanced     Rating = "Advanced"
	RatingExpert       Rating = "Expert"
)

// LevelAbsent is the rank of a missing or null rating. Keeping absence at 0
// lets an unrated skill compare strictly below every requirement without a
// separate branch in the gap math.
const LevelAbsent = 0

var ratingLevels = map[Rating]int{
	RatingBeginner:     1,
	RatingDeveloping:   2,
	RatingIntermediate: 3,
	RatingAdvanced:     4,
	RatingExpert:       5,
}

var levelRatings = map[int]Rating{
	1: RatingBeginner,
	2: RatingDeveloping,
	3: RatingIntermediate,
	4: RatingAdvanced,
	5: RatingExpert,
}

// Level returns the rank 1..5 of a rating, or LevelAbsent for the zero value
// or an unknown label.
func (r Rating) Level() int {
	return ratingLevels[r]
}

func (r Rating) IsValid() bool {
	_, ok := ratingLevels[r]
	return ok
}

func RatingFromLevel(level int) (Rating, bool) {
	r, ok := levelRatings[level]
	return r, ok
}

func ParseRating(s string) (Rating, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return RatingBeginner, true
	case "developing":
		return RatingDeveloping, true
	case "intermediate":
		return RatingIntermediate, true
	case "advanced":
		return RatingAdvanced, true
	case "expert":
		return RatingExpert, true
	default:
		return "", false
	}
}
