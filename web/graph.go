package web

import (
	"bytes"
	"context"
	"fmt"
	"github.com/explore-flights/awards/award"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/labstack/echo/v4"
	"io"
	"net/http"
	"time"
)

// Graph renders every canonical leg of the query as a PNG. Edges are labeled
// with the number of rows found for the leg.
func (h *AwardsHandler) Graph(c echo.Context) error {
	q, err := parseAwardQuery(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	_, res, err := h.query(ctx, q)
	if err != nil {
		return err
	}

	e, err := h.expander(ctx)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, WithCause(err))
	}

	// canonical legs without any row are not part of res.Legs
	legs := e.Canonicalize(q.Route, q.ExpandCountry, q.ExpandCity)
	counts := make(map[string]int, len(legs))
	for _, r := range res.Rows {
		counts[r.Route]++
	}

	var buf bytes.Buffer
	if err = renderLegGraph(ctx, &buf, legs, counts); err != nil {
		return NewHTTPError(http.StatusInternalServerError, WithCause(err))
	}

	addExpirationHeaders(c, h.now(), time.Minute)
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func renderLegGraph(ctx context.Context, w io.Writer, legs []award.Leg, counts map[string]int) error {
	g, err := graphviz.New(ctx)
	if err != nil {
		return err
	}

	defer g.Close()

	graph, err := g.Graph()
	if err != nil {
		return err
	}

	if err = buildLegGraph(graph, legs, counts); err != nil {
		return err
	}

	return g.Render(ctx, graph, graphviz.PNG, w)
}

func buildLegGraph(graph *cgraph.Graph, legs []award.Leg, counts map[string]int) error {
	nodes := make(map[string]*cgraph.Node)
	node := func(airport string) (*cgraph.Node, error) {
		if n, ok := nodes[airport]; ok {
			return n, nil
		}

		n, err := graph.CreateNodeByName(airport)
		if err != nil {
			return nil, err
		}

		n.SetLabel(airport)
		nodes[airport] = n

		return n, nil
	}

	seen := make(map[award.Leg]struct{}, len(legs))
	for _, leg := range legs {
		if _, ok := seen[leg]; ok {
			continue
		}

		seen[leg] = struct{}{}

		from, err := node(leg.Origin)
		if err != nil {
			return err
		}

		to, err := node(leg.Destination)
		if err != nil {
			return err
		}

		edge, err := graph.CreateEdgeByName(leg.String(), from, to)
		if err != nil {
			return err
		}

		edge.SetLabel(fmt.Sprintf("%d", counts[leg.String()]))
	}

	return nil
}
