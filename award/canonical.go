package award

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedRoute = errors.New("malformed route")

const legSeparator = "-"

var separatorReplacer = strings.NewReplacer("->", legSeparator, "→", legSeparator)

// Canonicalize turns route text like "JFK -> HND -> BKK, HND -> JFK" into the
// ordered list of concrete airport legs. Clauses with fewer than two stops and
// empty stop codes are ignored.
func (e *Expander) Canonicalize(routeText string, expandCountry, expandCity bool) []Leg {
	clauses, _ := parseRoute(routeText, false)
	return e.expandClauses(clauses, expandCountry, expandCity)
}

// CanonicalizeStrict behaves like Canonicalize but rejects clauses that are
// empty, contain an empty stop code or consist of a single stop.
func (e *Expander) CanonicalizeStrict(routeText string, expandCountry, expandCity bool) ([]Leg, error) {
	clauses, err := parseRoute(routeText, true)
	if err != nil {
		return nil, err
	}

	return e.expandClauses(clauses, expandCountry, expandCity), nil
}

func (e *Expander) expandClauses(clauses [][]string, expandCountry, expandCity bool) []Leg {
	legs := make([]Leg, 0)
	for _, stops := range clauses {
		for i := 1; i < len(stops); i++ {
			origins := e.Expand(stops[i-1], expandCountry, expandCity)
			destinations := e.Expand(stops[i], expandCountry, expandCity)

			for _, org := range origins {
				for _, dest := range destinations {
					legs = append(legs, Leg{Origin: org, Destination: dest})
				}
			}
		}
	}

	return legs
}

func normalizeRoute(routeText string) string {
	return separatorReplacer.Replace(strings.Join(strings.Fields(routeText), ""))
}

func parseRoute(routeText string, strict bool) ([][]string, error) {
	normalized := normalizeRoute(routeText)
	if normalized == "" {
		return nil, nil
	}

	clauses := make([][]string, 0)
	for _, clause := range strings.Split(normalized, ",") {
		rawStops := strings.Split(clause, legSeparator)
		stops := make([]string, 0, len(rawStops))

		for _, stop := range rawStops {
			if stop != "" {
				stops = append(stops, stop)
			} else if strict {
				return nil, fmt.Errorf("%w: empty stop in %q", ErrMalformedRoute, clause)
			}
		}

		if len(stops) < 2 {
			if strict {
				return nil, fmt.Errorf("%w: %q needs at least two stops", ErrMalformedRoute, clause)
			}

			continue
		}

		clauses = append(clauses, stops)
	}

	return clauses, nil
}
