package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/explore-flights/awards/award"
	"github.com/explore-flights/awards/common/seatsaero"
	"github.com/explore-flights/awards/web/model"
	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var fetchedAt = time.Date(2023, time.May, 20, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	snapshot *award.Snapshot
	err      error
}

func (s fakeStore) Snapshot(ctx context.Context, partner string) (*award.Snapshot, error) {
	if _, err := award.LookupPartner(partner); err != nil {
		return nil, err
	}

	return s.snapshot, s.err
}

type fakeNames map[string]string

func (n fakeNames) AirlineNames(ctx context.Context) (map[string]string, error) {
	return n, nil
}

type countingObserver struct {
	rows int
}

func (o *countingObserver) RowsProjected(partner string, rows int) {
	o.rows += rows
}

func testSnapshot(t *testing.T) *award.Snapshot {
	t.Helper()

	date := func(day int) time.Time {
		return time.Date(2023, time.May, day, 0, 0, 0, 0, time.UTC)
	}

	s, err := award.NewSnapshot(
		"aeroplan",
		[]seatsaero.Route{
			{ID: "r1", OriginAirport: "JFK", DestinationAirport: "HND"},
			{ID: "r2", OriginAirport: "HND", DestinationAirport: "BKK"},
		},
		[]seatsaero.Availability{
			{
				ID: "a1", RouteID: "r1", Date: "2023-05-24", ParsedDate: date(24),
				JAvailable: true, JAirlines: "NH, UA", JDirect: true,
				YAvailable: true, YAirlines: "NH",
				ComputedLastSeen: "2023-05-20T10:00:00Z",
			},
			{
				ID: "a2", RouteID: "r2", Date: "2023-05-25", ParsedDate: date(25),
				FAvailable: true, FAirlines: "TG",
				ComputedLastSeen: "2023-05-21T10:00:00Z",
			},
		},
		fetchedAt,
	)
	require.NoError(t, err)

	return s
}

func testExpander(ctx context.Context) (*award.Expander, error) {
	return award.NewExpander(award.Tables{
		Countries: map[string][]string{"US": {"JFK", "LAX"}},
		Cities:    map[string][]string{"TYO": {"HND", "NRT"}},
	}), nil
}

func newTestServer(h *AwardsHandler) *echo.Echo {
	e := echo.New()
	e.Use(
		ErrorLogAndMaskMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))),
		NoCacheOnErrorMiddleware(),
	)

	group := e.Group("/api")
	group.GET("/partners", h.Partners)
	group.GET("/cities", h.Cities)
	group.POST("/awards/share", h.ShareCreate)
	group.GET("/awards/share/:payload", h.ShareRedirect)
	group.GET("/awards/:partner", h.Awards)
	group.GET("/awards/:partner/airlines", h.Airlines)
	group.GET("/awards/:partner/graph.png", h.Graph)
	group.GET("/awards/:partner/feed.rss", h.NewAwardsFeedEndpoint("application/rss+xml", (*feeds.Feed).WriteRss))
	group.GET("/awards/:partner/feed.atom", h.NewAwardsFeedEndpoint("application/atom+xml", (*feeds.Feed).WriteAtom))

	return e
}

func serve(e *echo.Echo, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	return v
}

func TestPartners(t *testing.T) {
	e := newTestServer(NewAwardsHandler(fakeStore{}, testExpander))

	rec := serve(e, http.MethodGet, "/api/partners", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[model.PartnersResponse](t, rec)
	assert.Equal(t, "aeroplan", res.Default)
	assert.Len(t, res.Partners, len(award.Partners))
	assert.Contains(t, res.Partners, model.Partner{Id: "virginatlantic", Name: "Virgin Atlantic"})
}

func TestAwards(t *testing.T) {
	observer := &countingObserver{}
	h := NewAwardsHandler(fakeStore{snapshot: testSnapshot(t)}, testExpander, WithRowsObserver(observer))
	h.now = func() time.Time { return fetchedAt.Add(5 * time.Minute) }
	e := newTestServer(h)

	rec := serve(e, http.MethodGet, "/api/awards/aeroplan?route=us-tyo-bkk", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderCacheControl), "public")

	res := decode[model.AwardsResponse](t, rec)
	assert.Equal(t, "US-TYO-BKK", res.Query.Route)
	assert.True(t, res.Query.ExpandCountry)
	assert.True(t, res.Query.ExpandCity)
	assert.Equal(t, []string{"JFK -> HND", "HND -> BKK"}, res.SortOrder)
	assert.Equal(t, []string{"JFK -> NRT", "LAX -> HND", "LAX -> NRT", "NRT -> BKK"}, res.MissingLegs)
	assert.Equal(t, 4, res.MissingLegsTotal)
	assert.Equal(t, 6, res.CanonicalLegs)
	assert.Equal(t, 2, res.Records)
	assert.Equal(t, 300, res.CacheAgeSeconds)
	assert.False(t, res.NotFound)

	require.Len(t, res.Rows, 3)
	assert.Equal(t, "Y", res.Rows[0].Fare)
	assert.Equal(t, "J", res.Rows[1].Fare)
	assert.Equal(t, "F", res.Rows[2].Fare)
	assert.Equal(t, "2023-05-25", res.Rows[2].Date.String())
	assert.Equal(t, 3, observer.rows)
}

func TestAwards_Filters(t *testing.T) {
	e := newTestServer(NewAwardsHandler(fakeStore{snapshot: testSnapshot(t)}, testExpander))

	rec := serve(e, http.MethodGet, "/api/awards/aeroplan?route=US-TYO&airline=ua&fare=J,Y", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[model.AwardsResponse](t, rec)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "JFK -> HND", res.Rows[0].Route)
	assert.Equal(t, "J", res.Rows[0].Fare)
	assert.Equal(t, "NH, UA", res.Rows[0].Airlines)
}

func TestAwards_ExpansionDisabled(t *testing.T) {
	e := newTestServer(NewAwardsHandler(fakeStore{snapshot: testSnapshot(t)}, testExpander))

	rec := serve(e, http.MethodGet, "/api/awards/aeroplan?route=US-TYO&expandCountry=false&expandCity=false", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[model.AwardsResponse](t, rec)
	assert.True(t, res.NotFound)
	assert.Empty(t, res.Rows)
	assert.Equal(t, []string{"US -> TYO"}, res.MissingLegs)
}

func TestAwards_Errors(t *testing.T) {
	unresolved := fmt.Errorf("refresh failed: %w", award.ErrUnresolvedRoute)

	tests := []struct {
		name    string
		store   fakeStore
		target  string
		status  int
		message string
	}{
		{
			name:   "unknown partner",
			target: "/api/awards/lufthansa?route=JFK-HND",
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown fare",
			target: "/api/awards/aeroplan?route=JFK-HND&fare=X",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid bool",
			target: "/api/awards/aeroplan?route=JFK-HND&expandCity=maybe",
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed strict route",
			target: "/api/awards/aeroplan?route=JFK--HND&strict=true",
			status: http.StatusBadRequest,
		},
		{
			name:    "upstream failure",
			store:   fakeStore{err: seatsaero.ResponseStatusErr{StatusCode: 503, Status: "503 Service Unavailable"}},
			target:  "/api/awards/aeroplan?route=JFK-HND",
			status:  http.StatusBadGateway,
			message: "failed to fetch availability",
		},
		{
			name:    "unresolved route",
			store:   fakeStore{err: unresolved},
			target:  "/api/awards/aeroplan?route=JFK-HND",
			status:  http.StatusInternalServerError,
			message: http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := tt.store
			if store.snapshot == nil && store.err == nil {
				store.snapshot = testSnapshot(t)
			}

			e := newTestServer(NewAwardsHandler(store, testExpander))
			rec := serve(e, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Header().Get(echo.HeaderCacheControl), "no-store")
			if tt.message != "" {
				res := decode[map[string]string](t, rec)
				assert.Equal(t, tt.message, res["message"])
			}
		})
	}
}

func TestAirlines(t *testing.T) {
	h := NewAwardsHandler(
		fakeStore{snapshot: testSnapshot(t)},
		testExpander,
		WithAirlineNames(fakeNames{"NH": "All Nippon Airways", "UA": "United Airlines"}),
	)
	e := newTestServer(h)

	rec := serve(e, http.MethodGet, "/api/awards/aeroplan/airlines", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[model.AirlinesResponse](t, rec)
	assert.Equal(t, []model.Airline{
		{IataCode: "NH", Name: "All Nippon Airways"},
		{IataCode: "TG"},
		{IataCode: "UA", Name: "United Airlines"},
	}, res.Airlines)
}

func TestShare(t *testing.T) {
	e := newTestServer(NewAwardsHandler(fakeStore{snapshot: testSnapshot(t)}, testExpander))

	body := `{"partner":"united","route":"jfk-hnd","airlines":["ua"],"fares":["J"],"expandCountry":true,"expandCity":true}`
	rec := serve(e, http.MethodPost, "/api/awards/share", strings.NewReader(body))
	require.Equal(t, http.StatusOK, rec.Code)

	share := decode[ShareResponse](t, rec)
	require.NotEmpty(t, share.Payload)
	assert.True(t, strings.HasSuffix(share.Url, "/api/awards/share/"+share.Payload))

	rec = serve(e, http.MethodGet, "/api/awards/share/"+share.Payload, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/api/awards/united?airline=UA&expandCity=true&expandCountry=true&fare=J&route=JFK-HND", rec.Header().Get(echo.HeaderLocation))
}

func TestShare_Invalid(t *testing.T) {
	e := newTestServer(NewAwardsHandler(fakeStore{}, testExpander))

	rec := serve(e, http.MethodPost, "/api/awards/share", strings.NewReader(`{"partner":"nope","route":"JFK-HND"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodPost, "/api/awards/share", strings.NewReader(`{"partner":"united","route":"JFK-HND","fares":["Q"]}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodGet, "/api/awards/share/%21%21", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeed(t *testing.T) {
	e := newTestServer(NewAwardsHandler(fakeStore{snapshot: testSnapshot(t)}, testExpander))

	rec := serve(e, http.MethodGet, "/api/awards/aeroplan/feed.rss?route=JFK-HND-BKK", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/rss+xml", rec.Header().Get(echo.HeaderContentType))

	body := rec.Body.String()
	assert.Contains(t, body, "Aeroplan award availability for JFK-HND-BKK")
	assert.Contains(t, body, "JFK -&gt; HND: 2 award seats")
	assert.Contains(t, body, "HND -&gt; BKK: 1 award seats")

	rec = serve(e, http.MethodGet, "/api/awards/aeroplan/feed.atom?route=JFK-HND", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<feed")
}

func TestGraph(t *testing.T) {
	e := newTestServer(NewAwardsHandler(fakeStore{snapshot: testSnapshot(t)}, testExpander))

	rec := serve(e, http.MethodGet, "/api/awards/aeroplan/graph.png?route=US-HND", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestCities(t *testing.T) {
	e := newTestServer(NewAwardsHandler(fakeStore{}, testExpander))

	rec := serve(e, http.MethodGet, "/api/cities", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"TYO"}, decode[[]string](t, rec))
}

func TestShare_DefaultsExpansion(t *testing.T) {
	e := newTestServer(NewAwardsHandler(fakeStore{snapshot: testSnapshot(t)}, testExpander))

	rec := serve(e, http.MethodPost, "/api/awards/share", strings.NewReader(`{"partner":"aeroplan","route":"US-LHR"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	q, err := model.DecodeShare(decode[ShareResponse](t, rec).Payload)
	require.NoError(t, err)
	assert.True(t, q.ExpandCountry)
	assert.True(t, q.ExpandCity)

	rec = serve(e, http.MethodPost, "/api/awards/share", strings.NewReader(`{"partner":"aeroplan","route":"US-LHR","expandCountry":false}`))
	require.Equal(t, http.StatusOK, rec.Code)

	q, err = model.DecodeShare(decode[ShareResponse](t, rec).Payload)
	require.NoError(t, err)
	assert.False(t, q.ExpandCountry)
	assert.True(t, q.ExpandCity)
}

func TestShareRedirect_UnknownPartner(t *testing.T) {
	e := newTestServer(NewAwardsHandler(fakeStore{}, testExpander))

	for _, partner := range []string{"lufthansa", "../partners", "aeroplan?route=X"} {
		payload, err := model.EncodeShare(model.AwardQuery{Partner: partner, Route: "JFK-HND"})
		require.NoError(t, err)

		rec := serve(e, http.MethodGet, "/api/awards/share/"+payload, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, partner)
		assert.Empty(t, rec.Header().Get(echo.HeaderLocation), partner)
	}
}
