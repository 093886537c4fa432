package source

import (
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/city-events/internal/event"
)

// whenLayout matches one of the layouts event.ParseWhen understands
const whenLayout = "Monday, January 2, 2006 at 3:04 PM"

type demoEvent struct {
	title       string
	days        int
	hour, min   int
	location    string // %s is replaced by the city
	description string
	category    string
	url         string // %s is replaced by the city slug
}

var demoEvents = []demoEvent{
	{
		title:       "Community Art Festival",
		days:        1,
		hour:        14,
		location:    "Downtown %s",
		description: "Join us for a vibrant community art festival featuring local artists, live music, and food vendors. Interactive exhibits, workshops, and performances all afternoon.",
		category:    event.CategoryArts,
		url:         "https://www.eventbrite.com/d/%s/events/",
	},
	{
		title:       "Weekend Farmers Market",
		days:        2,
		hour:        8,
		location:    "%s City Square",
		description: "Fresh produce, local crafts, and delicious food from local vendors every weekend. Support local farmers and artisans while enjoying family-friendly activities.",
		category:    event.CategoryFood,
		url:         "https://www.eventbrite.com/d/%s/food--and--drink--events/",
	},
	{
		title:       "Live Jazz Night",
		days:        2,
		hour:        20,
		location:    "Blue Note Cafe, %s",
		description: "An evening of smooth jazz featuring local musicians and guest performers. Enjoy craft cocktails and appetizers with the best jazz in the city.",
		category:    event.CategoryMusic,
		url:         "https://www.eventbrite.com/d/%s/music--events/",
	},
	{
		title:       "Riverside Sunrise Hike",
		days:        3,
		hour:        6,
		min:         30,
		location:    "%s Riverfront Trailhead",
		description: "A guided five mile walk along the river trail at sunrise. Comfortable shoes recommended, coffee provided at the finish.",
		category:    event.CategoryOutdoors,
		url:         "https://www.eventbrite.com/d/%s/outdoor--events/",
	},
	{
		title:       "Tech Innovation Meetup",
		days:        4,
		hour:        18,
		location:    "%s Convention Center",
		description: "Network with local tech professionals and learn about the latest trends in software development. Featuring keynote speakers and lightning talks.",
		category:    event.CategoryTechnology,
		url:         "https://www.meetup.com/find/?keywords=tech&location=%s",
	},
}

// Fallback returns the demo listing for city.
//
// The sequence depends only on city and the calendar date of now: dates are
// computed from the day after now at fixed hours, so two calls on the same day
// return identical events.
func Fallback(city string, now time.Time) []event.Event {
	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	slug := strings.Join(strings.Fields(strings.ToLower(city)), "-")

	events := make([]event.Event, 0, len(demoEvents))
	for _, d := range demoEvents {
		startsAt := base.AddDate(0, 0, d.days).Add(time.Duration(d.hour)*time.Hour + time.Duration(d.min)*time.Minute)

		link := strings.Replace(d.url, "%s", url.PathEscape(slug), 1)
		if strings.Contains(d.url, "location=") {
			link = strings.Replace(d.url, "%s", url.QueryEscape(city), 1)
		}

		events = append(events, event.Event{
			Title:       d.title + " - " + city,
			When:        startsAt.Format(whenLayout),
			Location:    strings.Replace(d.location, "%s", city, 1),
			Description: d.description,
			Category:    d.category,
			URL:         link,
			Source:      Name,
			StartsAt:    &startsAt,
		})
	}
	return events
}
