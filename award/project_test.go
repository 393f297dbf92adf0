package award

import (
	"github.com/explore-flights/awards/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestProject_SingleRecordWithFilters(t *testing.T) {
	s, err := NewSnapshot("aeroplan", testRoutes(), testAvailabilities()[:1], testDate(20))
	require.NoError(t, err)

	rows := Project(s.Index, []Leg{{"JFK", "HND"}}, common.NewSet("UA"), common.NewSet(FareBusiness))
	assert.Equal(t, []Row{
		{
			Date:      testDate(24),
			Route:     "JFK -> HND",
			Airlines:  "NH, UA",
			Fare:      FareBusiness,
			Freshness: "2023-05-20T10:00:00Z",
			Direct:    true,
		},
	}, rows)
}

func TestProject_Order(t *testing.T) {
	s := mustSnapshot()

	rows := Project(s.Index, []Leg{{"HND", "BKK"}, {"JFK", "HND"}}, nil, nil)

	type key struct {
		route string
		fare  FareClass
	}

	got := make([]key, 0, len(rows))
	for _, r := range rows {
		got = append(got, key{r.Route, r.Fare})
	}

	assert.Equal(t, []key{
		{"HND -> BKK", FareEconomy},
		{"HND -> BKK", FarePremiumEconomy},
		{"HND -> BKK", FareFirst},
		{"HND -> BKK", FareBusiness},
		{"JFK -> HND", FareBusiness},
		{"JFK -> HND", FareEconomy},
	}, got)
}

func TestProject_NeverEmitsUnavailableFares(t *testing.T) {
	s := mustSnapshot()
	legs := []Leg{{"JFK", "HND"}, {"HND", "BKK"}, {"LAX", "LHR"}}

	rows := Project(s.Index, legs, nil, nil)
	for _, r := range rows {
		assert.NotEqual(t, "LAX -> LHR", r.Route)
	}

	assert.Len(t, rows, 6)
}

func TestProject_FiltersOnlyRemove(t *testing.T) {
	s := mustSnapshot()
	legs := []Leg{{"JFK", "HND"}, {"HND", "BKK"}}

	all := Project(s.Index, legs, common.NewSet[string](), common.NewSet[FareClass]())
	assert.Equal(t, Project(s.Index, legs, nil, nil), all)

	for _, tc := range []struct {
		airlines common.Set[string]
		fares    common.Set[FareClass]
		expected int
	}{
		{common.NewSet("TG"), nil, 3},
		{common.NewSet("NH"), nil, 3},
		{nil, common.NewSet(FareBusiness, FareFirst), 3},
		{common.NewSet("NH"), common.NewSet(FareBusiness), 2},
		{common.NewSet("XX"), nil, 0},
	} {
		filtered := Project(s.Index, legs, tc.airlines, tc.fares)
		assert.Len(t, filtered, tc.expected)

		// surviving rows keep their relative order
		i := 0
		for _, r := range all {
			if i < len(filtered) && r == filtered[i] {
				i++
			}
		}
		assert.Equal(t, len(filtered), i)
	}
}

func TestProject_Degenerate(t *testing.T) {
	s := mustSnapshot()

	assert.Empty(t, Project(s.Index, nil, nil, nil))
	assert.Empty(t, Project(s.Index, []Leg{{"XXX", "YYY"}}, nil, nil))
	assert.Empty(t, Project(Index{}, []Leg{{"JFK", "HND"}}, common.NewSet("UA"), nil))
}

func TestProject_Idempotent(t *testing.T) {
	s := mustSnapshot()
	legs := []Leg{{"JFK", "HND"}, {"HND", "BKK"}}
	airlines := common.NewSet("NH", "JL")

	first := Project(s.Index, legs, airlines, nil)
	second := Project(s.Index, legs, airlines, nil)
	assert.Equal(t, first, second)
}
