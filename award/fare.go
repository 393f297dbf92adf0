package award

import (
	"fmt"
	"strings"
)

type FareClass string

const (
	FareEconomy        = FareClass("Y")
	FarePremiumEconomy = FareClass("W")
	FareBusiness       = FareClass("J")
	FareFirst          = FareClass("F")
)

// FareClasses lists every fare class, cabin order.
var FareClasses = [...]FareClass{FareEconomy, FarePremiumEconomy, FareBusiness, FareFirst}

// projectionOrder is the order rows are emitted in per availability.
var projectionOrder = [...]FareClass{FareEconomy, FarePremiumEconomy, FareFirst, FareBusiness}

func ParseFareClass(v string) (FareClass, error) {
	fc := FareClass(strings.ToUpper(strings.TrimSpace(v)))
	if !fc.Valid() {
		return "", fmt.Errorf("unknown fare class %q", v)
	}

	return fc, nil
}

func (fc FareClass) Valid() bool {
	switch fc {
	case FareEconomy, FarePremiumEconomy, FareBusiness, FareFirst:
		return true
	}

	return false
}

func (fc FareClass) Name() string {
	switch fc {
	case FareEconomy:
		return "Economy"
	case FarePremiumEconomy:
		return "Premium Economy"
	case FareBusiness:
		return "Business"
	case FareFirst:
		return "First"
	}

	return string(fc)
}

type Fare struct {
	Available      bool
	MileageCost    string
	RemainingSeats uint32
	Airlines       string
	Direct         bool
}

// AirlineCodes returns the trimmed, non-empty airline codes of the fare.
func (f Fare) AirlineCodes() []string {
	return splitAirlines(f.Airlines)
}

func splitAirlines(v string) []string {
	parts := strings.Split(v, ",")
	codes := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			codes = append(codes, part)
		}
	}

	return codes
}
