// Package timetable reads and writes the plain-text trip format:
//
//	4
//	Lisboa LIS
//	Madrid MAD 2 3
//	Paris CDG 1 2
//	Roma FCO 2 4
//	5
//	01/06 LIS MAD 08:00 10:05 60
//	...
//
// The first line is the number of cities including the base, then the base
// ("name code"), then one "name code kmin kmax" line per waypoint, then the
// number of flights and one "dd/mm FROM TO departure arrival cost" line per flight.
package timetable

import (
	"bufio"
	"flight-itinerary-service/internal/domain"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DefaultYear is the calendar year "dd/mm" dates are read in.
const DefaultYear = 2023

type lineReader struct {
	sc   *bufio.Scanner
	line int
}

// next returns the fields of the next non-blank line.
func (r *lineReader) next(what string) ([]string, error) {
	for r.sc.Scan() {
		r.line++
		fields := strings.Fields(r.sc.Text())
		if len(fields) > 0 {
			return fields, nil
		}
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("parse timetable: read line %d: %w", r.line+1, err)
	}
	return nil, r.invalid(what, "unexpected end of input")
}

func (r *lineReader) invalid(field, format string, args ...any) error {
	return &domain.InvalidInputError{
		Field:  field,
		Reason: fmt.Sprintf("line %d: ", r.line) + fmt.Sprintf(format, args...),
	}
}

func (r *lineReader) count(what string) (int, error) {
	fields, err := r.next(what)
	if err != nil {
		return 0, err
	}
	if len(fields) != 1 {
		return 0, r.invalid(what, "expected a single count, got %d fields", len(fields))
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, r.invalid(what, "%q is not a valid count", fields[0])
	}
	return n, nil
}

type rawFlight struct {
	date time.Time
	f    domain.Flight
}

// Parse reads a timetable in the text format. Dates are interpreted in year
// (DefaultYear when year <= 0) and converted to day offsets from the earliest
// flight date. The base is city 0; waypoints follow in input order.
func Parse(r io.Reader, year int) (domain.Timetable, error) {
	if year <= 0 {
		year = DefaultYear
	}
	lr := &lineReader{sc: bufio.NewScanner(r)}

	n, err := lr.count("cities")
	if err != nil {
		return domain.Timetable{}, err
	}
	if n < 1 {
		return domain.Timetable{}, lr.invalid("cities", "at least the base city is required")
	}

	cities := make([]domain.City, 0, n)
	ids := make(map[string]int, n)

	fields, err := lr.next("base")
	if err != nil {
		return domain.Timetable{}, err
	}
	if len(fields) != 2 {
		return domain.Timetable{}, lr.invalid("base", "expected \"name code\", got %d fields", len(fields))
	}
	cities = append(cities, domain.City{ID: domain.BaseID, Name: fields[0], Code: fields[1], IsBase: true})
	ids[fields[1]] = domain.BaseID

	for i := 1; i < n; i++ {
		fields, err := lr.next("cities")
		if err != nil {
			return domain.Timetable{}, err
		}
		if len(fields) != 4 {
			return domain.Timetable{}, lr.invalid("cities", "expected \"name code kmin kmax\", got %d fields", len(fields))
		}
		if _, dup := ids[fields[1]]; dup {
			return domain.Timetable{}, lr.invalid("cities", "duplicate airport code %q", fields[1])
		}
		kmin, err1 := strconv.Atoi(fields[2])
		kmax, err2 := strconv.Atoi(fields[3])
		if err1 != nil || err2 != nil {
			return domain.Timetable{}, lr.invalid("cities", "layover bounds %q %q must be integers", fields[2], fields[3])
		}
		ids[fields[1]] = i
		cities = append(cities, domain.City{
			ID:      i,
			Name:    fields[0],
			Code:    fields[1],
			Layover: &domain.Window{Min: kmin, Max: kmax},
		})
	}

	m, err := lr.count("flights")
	if err != nil {
		return domain.Timetable{}, err
	}

	raw := make([]rawFlight, 0, m)
	var earliest time.Time
	for i := 0; i < m; i++ {
		fl, err := lr.flight(ids, year)
		if err != nil {
			return domain.Timetable{}, err
		}
		if i == 0 || fl.date.Before(earliest) {
			earliest = fl.date
		}
		raw = append(raw, fl)
	}

	flights := make([]domain.Flight, 0, len(raw))
	for i, rf := range raw {
		rf.f.ID = i
		rf.f.Day = int(rf.date.Sub(earliest).Hours() / 24)
		flights = append(flights, rf.f)
	}

	return domain.Timetable{Cities: cities, Flights: flights}, nil
}

func (r *lineReader) flight(ids map[string]int, year int) (rawFlight, error) {
	fields, err := r.next("flights")
	if err != nil {
		return rawFlight{}, err
	}
	if len(fields) != 6 {
		return rawFlight{}, r.invalid("flights", "expected \"dd/mm FROM TO dep arr cost\", got %d fields", len(fields))
	}

	date, err := time.Parse("2/1/2006", fmt.Sprintf("%s/%d", fields[0], year))
	if err != nil {
		return rawFlight{}, r.invalid("flights", "bad date %q", fields[0])
	}
	origin, ok := ids[fields[1]]
	if !ok {
		return rawFlight{}, r.invalid("flights", "unknown airport code %q", fields[1])
	}
	dest, ok := ids[fields[2]]
	if !ok {
		return rawFlight{}, r.invalid("flights", "unknown airport code %q", fields[2])
	}
	cost, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return rawFlight{}, r.invalid("flights", "bad cost %q", fields[5])
	}

	return rawFlight{
		date: date,
		f: domain.Flight{
			Origin:        origin,
			Destination:   dest,
			Cost:          cost,
			Date:          fields[0],
			DepartureTime: fields[3],
			ArrivalTime:   fields[4],
		},
	}, nil
}
