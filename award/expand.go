package award

import (
	"embed"
	"encoding/json"
	"maps"
	"slices"
	"sync"
)

//go:embed data/*.json
var tablesFS embed.FS

// Tables maps location shorthand to the airports it stands for.
type Tables struct {
	Countries map[string][]string `json:"countries"`
	Cities    map[string][]string `json:"cities"`
}

var DefaultTables = sync.OnceValues(func() (Tables, error) {
	var t Tables
	if err := readTable("data/countries.json", &t.Countries); err != nil {
		return Tables{}, err
	}

	if err := readTable("data/cities.json", &t.Cities); err != nil {
		return Tables{}, err
	}

	return t, nil
})

func readTable(name string, dst *map[string][]string) error {
	b, err := tablesFS.ReadFile(name)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, dst)
}

// Expander resolves location codes through a fixed set of tables. It is safe
// for concurrent use; the tables are never mutated after construction.
type Expander struct {
	countries map[string][]string
	cities    map[string][]string
}

func NewExpander(t Tables) *Expander {
	return &Expander{
		countries: cloneTable(t.Countries),
		cities:    cloneTable(t.Cities),
	}
}

func (e *Expander) Expand(code string, expandCountry, expandCity bool) []string {
	if expandCountry {
		if airports, ok := e.countries[code]; ok {
			return slices.Clone(airports)
		}
	}

	if expandCity {
		if airports, ok := e.cities[code]; ok {
			return slices.Clone(airports)
		}
	}

	return []string{code}
}

// Cities returns the supported city shorthands, sorted.
func (e *Expander) Cities() []string {
	return slices.Sorted(maps.Keys(e.cities))
}

func cloneTable(t map[string][]string) map[string][]string {
	r := make(map[string][]string, len(t))
	for k, v := range t {
		r[k] = slices.Clone(v)
	}

	return r
}
