package award

import (
	"errors"
	"fmt"
)

var ErrUnknownPartner = errors.New("unknown partner")

type Partner struct {
	Id   string
	Name string
}

const DefaultPartner = "aeroplan"

var Partners = []Partner{
	{"aeroplan", "Aeroplan"},
	{"aeromexico", "Aeromexico"},
	{"american", "American Airlines"},
	{"united", "United Airlines"},
	{"delta", "Delta Airlines"},
	{"emirates", "Emirates"},
	{"etihad", "Etihad"},
	{"virginatlantic", "Virgin Atlantic"},
}

func LookupPartner(id string) (Partner, error) {
	for _, p := range Partners {
		if p.Id == id {
			return p, nil
		}
	}

	return Partner{}, fmt.Errorf("%w: %q", ErrUnknownPartner, id)
}
