package event

import (
	"strings"
	"unicode"
)

// Category names
const (
	CategoryMusic      = "music"
	CategorySports     = "sports"
	CategoryArts       = "arts"
	CategoryTechnology = "technology"
	CategoryFood       = "food"
	CategoryEducation  = "education"
	CategoryNetworking = "networking"
	CategoryOutdoors   = "outdoors"
	CategoryOther      = "other"
)

// categoryKeywords is checked in order; the first category with a hit wins.
var categoryKeywords = []struct {
	name     string
	keywords []string
}{
	{CategoryMusic, []string{"concert", "band", "dj", "music", "live music", "festival", "acoustic", "jazz", "rock", "pop"}},
	{CategorySports, []string{"game", "match", "tournament", "league", "sports", "football", "basketball", "soccer", "tennis", "golf"}},
	{CategoryArts, []string{"art", "arts", "museum", "gallery", "exhibition", "theater", "performance", "dance", "ballet", "opera", "sculpture"}},
	{CategoryTechnology, []string{"tech", "coding", "hackathon", "conference", "workshop", "ai", "startup", "programming", "software", "digital"}},
	{CategoryFood, []string{"food", "cooking", "tasting", "restaurant", "culinary", "wine", "beer", "chef", "dining", "cuisine"}},
	{CategoryEducation, []string{"seminar", "lecture", "course", "training", "webinar", "class", "learning", "tutorial"}},
	{CategoryNetworking, []string{"networking", "meetup", "professional", "business", "career", "entrepreneur", "corporate"}},
	{CategoryOutdoors, []string{"hike", "hiking", "trail", "park", "outdoor", "outdoors", "kayak", "camping", "garden", "bike"}},
}

// Categories returns every category name, "other" last
func Categories() []string {
	names := make([]string, 0, len(categoryKeywords)+1)
	for _, c := range categoryKeywords {
		names = append(names, c.name)
	}
	return append(names, CategoryOther)
}

// Categorize classifies an event from its title and description.
// Keywords match whole words (or whole phrases), so "ai" does not hit "fair".
func Categorize(title, description string) string {
	text := " " + strings.Join(words(title+" "+description), " ") + " "
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(text, " "+kw+" ") {
				return c.name
			}
		}
	}
	return CategoryOther
}

// words lower-cases s and splits it on anything that is not a letter or digit
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
