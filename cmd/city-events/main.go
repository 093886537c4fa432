// Command city-events looks up local events for a city, serves them over HTTP
// and exports PDF reports or iCalendar files.
package main

import "github.com/pfrederiksen/city-events/internal/cli"

func main() {
	cli.Execute()
}
