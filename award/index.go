package award

import "fmt"

// Index groups availabilities by leg. Groups keep fetch order.
type Index map[Leg][]Availability

func IndexByLeg(records []Availability) (Index, error) {
	idx := make(Index)
	for _, a := range records {
		if a.Route == nil {
			return nil, fmt.Errorf("%w: availability %q references route %q", ErrUnresolvedRoute, a.Id, a.RouteId)
		}

		leg := a.Route.Leg()
		idx[leg] = append(idx[leg], a)
	}

	return idx, nil
}

// Lookup returns the availabilities of leg; legs without records yield nil.
func (idx Index) Lookup(leg Leg) []Availability {
	return idx[leg]
}

func (idx Index) Has(leg Leg) bool {
	return len(idx[leg]) > 0
}
