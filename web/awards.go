package web

import (
	"context"
	"errors"
	"github.com/explore-flights/awards/award"
	"github.com/explore-flights/awards/common"
	"github.com/explore-flights/awards/web/model"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type snapshotProvider interface {
	Snapshot(ctx context.Context, partner string) (*award.Snapshot, error)
}

type airlineNamer interface {
	AirlineNames(ctx context.Context) (map[string]string, error)
}

type rowsObserver interface {
	RowsProjected(partner string, rows int)
}

type AwardsHandlerOption func(h *AwardsHandler)

// WithAirlineNames enriches the airline listing with names.
func WithAirlineNames(names airlineNamer) AwardsHandlerOption {
	return func(h *AwardsHandler) {
		h.names = names
	}
}

func WithRowsObserver(observer rowsObserver) AwardsHandlerOption {
	return func(h *AwardsHandler) {
		h.observer = observer
	}
}

type AwardsHandler struct {
	store    snapshotProvider
	expander func(ctx context.Context) (*award.Expander, error)
	names    airlineNamer
	observer rowsObserver
	now      func() time.Time
}

func NewAwardsHandler(store snapshotProvider, expander func(ctx context.Context) (*award.Expander, error), opts ...AwardsHandlerOption) *AwardsHandler {
	h := &AwardsHandler{
		store:    store,
		expander: expander,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *AwardsHandler) Partners(c echo.Context) error {
	addExpirationHeaders(c, h.now(), time.Hour)
	return c.JSON(http.StatusOK, model.PartnersResponse{
		Partners: model.PartnersFromAward(award.Partners),
		Default:  award.DefaultPartner,
	})
}

func (h *AwardsHandler) Awards(c echo.Context) error {
	q, err := parseAwardQuery(c)
	if err != nil {
		return err
	}

	return h.respondAwards(c, q)
}

func (h *AwardsHandler) respondAwards(c echo.Context, q model.AwardQuery) error {
	s, res, err := h.query(c.Request().Context(), q)
	if err != nil {
		return err
	}

	now := h.now()
	if h.observer != nil {
		h.observer.RowsProjected(q.Partner, len(res.Rows))
	}

	addExpirationHeaders(c, now, time.Minute)
	return c.JSON(http.StatusOK, model.AwardsResponseFromResult(q.Partner, q, s, res, now))
}

func (h *AwardsHandler) Airlines(c echo.Context) error {
	ctx := c.Request().Context()
	partner := c.Param("partner")

	var s *award.Snapshot
	var names map[string]string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		s, err = h.store.Snapshot(gctx, partner)
		return err
	})

	if h.names != nil {
		g.Go(func() error {
			var err error
			if names, err = h.names.AirlineNames(gctx); err != nil {
				return NewHTTPError(http.StatusInternalServerError, WithCause(err))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return snapshotError(err)
	}

	codes := s.Airlines()
	airlines := make([]model.Airline, 0, len(codes))
	for _, code := range codes {
		airlines = append(airlines, model.Airline{
			IataCode: code,
			Name:     names[code],
		})
	}

	addExpirationHeaders(c, h.now(), time.Minute)
	return c.JSON(http.StatusOK, model.AirlinesResponse{
		Partner:  partner,
		Airlines: airlines,
	})
}

func (h *AwardsHandler) query(ctx context.Context, q model.AwardQuery) (*award.Snapshot, award.Result, error) {
	aq, err := toAwardQuery(q)
	if err != nil {
		return nil, award.Result{}, err
	}

	var s *award.Snapshot
	var e *award.Expander

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		s, err = h.store.Snapshot(gctx, q.Partner)
		return err
	})

	g.Go(func() error {
		var err error
		if e, err = h.expander(gctx); err != nil {
			return NewHTTPError(http.StatusInternalServerError, WithCause(err))
		}

		return nil
	})

	if err = g.Wait(); err != nil {
		return nil, award.Result{}, snapshotError(err)
	}

	res, err := s.Query(e, aq)
	if err != nil {
		if errors.Is(err, award.ErrMalformedRoute) {
			return nil, award.Result{}, NewHTTPError(http.StatusBadRequest, WithCause(err), WithUnmaskedCause())
		}

		return nil, award.Result{}, err
	}

	return s, res, nil
}

func snapshotError(err error) error {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return err
	case errors.Is(err, award.ErrUnknownPartner):
		return NewHTTPError(http.StatusBadRequest, WithCause(err), WithUnmaskedCause())
	case errors.Is(err, award.ErrUnresolvedRoute):
		return NewHTTPError(http.StatusInternalServerError, WithCause(err))
	case errors.Is(err, context.DeadlineExceeded):
		return NewHTTPError(http.StatusRequestTimeout, WithCause(err))
	case errors.Is(err, context.Canceled):
		return err
	}

	return NewHTTPError(http.StatusBadGateway, WithMessage("failed to fetch availability"), WithCause(err))
}

func parseAwardQuery(c echo.Context) (model.AwardQuery, error) {
	params := c.QueryParams()
	q := model.AwardQuery{
		Partner:  c.Param("partner"),
		Route:    strings.ToUpper(strings.TrimSpace(params.Get("route"))),
		Airlines: splitParam(params["airline"]),
		Fares:    splitParam(params["fare"]),
	}

	var err error
	if q.ExpandCountry, err = boolParam(params.Get("expandCountry"), true); err != nil {
		return q, NewHTTPError(http.StatusBadRequest, WithMessage("invalid expandCountry"), WithCause(err), WithUnmaskedCause())
	}

	if q.ExpandCity, err = boolParam(params.Get("expandCity"), true); err != nil {
		return q, NewHTTPError(http.StatusBadRequest, WithMessage("invalid expandCity"), WithCause(err), WithUnmaskedCause())
	}

	if q.Strict, err = boolParam(params.Get("strict"), false); err != nil {
		return q, NewHTTPError(http.StatusBadRequest, WithMessage("invalid strict"), WithCause(err), WithUnmaskedCause())
	}

	return q, nil
}

func toAwardQuery(q model.AwardQuery) (award.Query, error) {
	aq := award.Query{
		Route:         q.Route,
		ExpandCountry: q.ExpandCountry,
		ExpandCity:    q.ExpandCity,
		Strict:        q.Strict,
		Airlines:      common.NewSet(q.Airlines...),
		Fares:         make(common.Set[award.FareClass], len(q.Fares)),
	}

	for _, raw := range q.Fares {
		fc, err := award.ParseFareClass(raw)
		if err != nil {
			return award.Query{}, NewHTTPError(http.StatusBadRequest, WithCause(err), WithUnmaskedCause())
		}

		aq.Fares.Add(fc)
	}

	return aq, nil
}

// splitParam accepts both repeated and comma separated values.
func splitParam(values []string) []string {
	var r []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
				r = append(r, part)
			}
		}
	}

	return r
}

func boolParam(v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}

	return strconv.ParseBool(v)
}

// Cities lists the city shorthands the route input understands.
func (h *AwardsHandler) Cities(c echo.Context) error {
	e, err := h.expander(c.Request().Context())
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, WithCause(err))
	}

	addExpirationHeaders(c, h.now(), time.Hour)
	return c.JSON(http.StatusOK, e.Cities())
}
