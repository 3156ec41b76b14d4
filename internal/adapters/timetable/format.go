package timetable

import (
	"bufio"
	"flight-itinerary-service/internal/domain"
	"fmt"
	"io"
)

// Format writes an itinerary in the text output format: the total cost on
// the first line, then "date from to departure cost" per flight using city
// names. Anything but an optimal itinerary is written as a single "0".
func Format(w io.Writer, cities []domain.City, it domain.Itinerary) error {
	bw := bufio.NewWriter(w)

	if !it.Feasible() {
		fmt.Fprintln(bw, 0)
		return bw.Flush()
	}

	names := make(map[int]string, len(cities))
	for _, c := range cities {
		names[c.ID] = c.Name
	}

	fmt.Fprintln(bw, it.TotalCost)
	for _, f := range it.Flights {
		fmt.Fprintf(bw, "%s %s %s %s %d\n", f.Date, names[f.Origin], names[f.Destination], f.DepartureTime, f.Cost)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("format itinerary: %w", err)
	}
	return nil
}
