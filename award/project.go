package award

import (
	"github.com/explore-flights/awards/common"
	"slices"
)

// Project explodes the availabilities of every leg into one row per available
// fare class. Rows follow legs order, then fetch order, then Y, W, F, J.
// Non-empty filters drop rows that match none of their values.
func Project(idx Index, legs []Leg, airlineFilter common.Set[string], fareFilter common.Set[FareClass]) []Row {
	rows := make([]Row, 0)
	for _, leg := range legs {
		label := leg.String()

		for _, a := range idx.Lookup(leg) {
			for _, fc := range projectionOrder {
				fare := a.Fare(fc)
				if !fare.Available {
					continue
				}

				rows = append(rows, Row{
					Date:      a.ParsedDate,
					Route:     label,
					Airlines:  fare.Airlines,
					Fare:      fc,
					Freshness: a.ComputedLastSeen,
					Direct:    fare.Direct,
				})
			}
		}
	}

	if len(airlineFilter) > 0 {
		rows = slices.DeleteFunc(rows, func(r Row) bool {
			return !airlineFilter.ContainsAny(slices.Values(splitAirlines(r.Airlines)))
		})
	}

	if len(fareFilter) > 0 {
		rows = slices.DeleteFunc(rows, func(r Row) bool {
			return !fareFilter.Contains(r.Fare)
		})
	}

	return rows
}
