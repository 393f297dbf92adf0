package web

import (
	"fmt"
	"github.com/explore-flights/awards/award"
	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"io"
	"strings"
	"time"
)

// NewAwardsFeedEndpoint serves one feed item per leg with availability.
func (h *AwardsHandler) NewAwardsFeedEndpoint(contentType string, writer func(*feeds.Feed, io.Writer) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		q, err := parseAwardQuery(c)
		if err != nil {
			return err
		}

		s, res, err := h.query(c.Request().Context(), q)
		if err != nil {
			return err
		}

		feedId := baseUrl(c) + "/api/awards/" + q.Partner + "?" + q.Values().Encode()
		link := &feeds.Link{Href: feedId}
		feed := &feeds.Feed{
			Id:      feedId,
			Title:   fmt.Sprintf("%s award availability for %s", partnerName(q.Partner), q.Route),
			Link:    link,
			Created: s.FetchedAt,
			Updated: s.FetchedAt,
		}

		rowsByLeg := make(map[string][]award.Row, len(res.Legs))
		for _, r := range res.Rows {
			rowsByLeg[r.Route] = append(rowsByLeg[r.Route], r)
		}

		for _, leg := range res.Legs {
			rows := rowsByLeg[leg.String()]
			if len(rows) == 0 {
				continue
			}

			feed.Items = append(feed.Items, &feeds.Item{
				Id:      feedId + "#" + leg.Origin + "-" + leg.Destination,
				Title:   fmt.Sprintf("%s: %d award seats", leg.String(), len(rows)),
				Link:    link,
				Created: s.FetchedAt,
				Updated: s.FetchedAt,
				Content: feedContent(rows),
			})
		}

		c.Response().Header().Add(echo.HeaderContentType, contentType)
		addExpirationHeaders(c, h.now(), time.Minute)

		_ = writer(feed, c.Response())
		return nil
	}
}

func feedContent(rows []award.Row) string {
	var sb strings.Builder
	for _, r := range rows {
		direct := ""
		if r.Direct {
			direct = " (direct)"
		}

		_, _ = fmt.Fprintf(&sb, "%s %s %s%s, last seen %s\n", r.Date.Format(time.DateOnly), r.Fare.Name(), r.Airlines, direct, r.Freshness)
	}

	return strings.TrimSpace(sb.String())
}

func partnerName(id string) string {
	p, err := award.LookupPartner(id)
	if err != nil {
		return id
	}

	return p.Name
}
