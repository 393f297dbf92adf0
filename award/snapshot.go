package award

import (
	"github.com/explore-flights/awards/common"
	"github.com/explore-flights/awards/common/seatsaero"
	"time"
)

const maxMissingLegs = 1000

// Snapshot is the immutable result of one fetch cycle for one partner.
type Snapshot struct {
	Partner        string
	Routes         map[string]*Route
	Availabilities []Availability
	Index          Index
	FetchedAt      time.Time
}

func NewSnapshot(partner string, routes []seatsaero.Route, raw []seatsaero.Availability, fetchedAt time.Time) (*Snapshot, error) {
	routeMap := RoutesFromUpstream(routes)
	avails, err := NewAvailabilities(routeMap, raw)
	if err != nil {
		return nil, err
	}

	idx, err := IndexByLeg(avails)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Partner:        partner,
		Routes:         routeMap,
		Availabilities: avails,
		Index:          idx,
		FetchedAt:      fetchedAt,
	}, nil
}

// Airlines returns every airline code offered by any fare of the snapshot.
func (s *Snapshot) Airlines() []string {
	airlines := make(common.Set[string])
	for _, a := range s.Availabilities {
		for _, fc := range FareClasses {
			for _, code := range a.Fare(fc).AirlineCodes() {
				airlines.Add(code)
			}
		}
	}

	return common.SortedSet(airlines)
}

// Legs returns every leg present in the snapshot.
func (s *Snapshot) Legs() common.Set[Leg] {
	legs := make(common.Set[Leg], len(s.Index))
	for leg := range s.Index {
		legs.Add(leg)
	}

	return legs
}

type Query struct {
	Route         string
	ExpandCountry bool
	ExpandCity    bool
	Strict        bool
	Airlines      common.Set[string]
	Fares         common.Set[FareClass]
}

type Result struct {
	Rows []Row
	// Legs are the canonical legs present in the snapshot, in route order.
	Legs []Leg
	// MissingLegs are canonical legs without any row, capped at 1000.
	MissingLegs      []Leg
	MissingLegsTotal int
	CanonicalLegs    int
}

func (s *Snapshot) Query(e *Expander, q Query) (Result, error) {
	var canonical []Leg
	if q.Strict {
		var err error
		if canonical, err = e.CanonicalizeStrict(q.Route, q.ExpandCountry, q.ExpandCity); err != nil {
			return Result{}, err
		}
	} else {
		canonical = e.Canonicalize(q.Route, q.ExpandCountry, q.ExpandCity)
	}

	legs := make([]Leg, 0, len(canonical))
	for _, leg := range canonical {
		if s.Index.Has(leg) {
			legs = append(legs, leg)
		}
	}

	rows := Project(s.Index, legs, q.Airlines, q.Fares)

	displayed := make(common.Set[string], len(legs))
	for _, r := range rows {
		displayed.Add(r.Route)
	}

	missing := make([]Leg, 0)
	missingTotal := 0
	for _, leg := range canonical {
		if displayed.Contains(leg.String()) {
			continue
		}

		missingTotal++
		if len(missing) < maxMissingLegs {
			missing = append(missing, leg)
		}
	}

	return Result{
		Rows:             rows,
		Legs:             legs,
		MissingLegs:      missing,
		MissingLegsTotal: missingTotal,
		CanonicalLegs:    len(canonical),
	}, nil
}
