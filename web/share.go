package web

import (
	"github.com/explore-flights/awards/award"
	"github.com/explore-flights/awards/web/model"
	"github.com/labstack/echo/v4"
	"net/http"
	"net/url"
	"strings"
)

type ShareResponse struct {
	Payload string `json:"payload"`
	Url     string `json:"url"`
}

func (h *AwardsHandler) ShareCreate(c echo.Context) error {
	// same defaults as the awards query
	q := model.AwardQuery{
		ExpandCountry: true,
		ExpandCity:    true,
	}

	if err := c.Bind(&q); err != nil {
		return NewHTTPError(http.StatusBadRequest, WithCause(err))
	}

	q.Route = strings.ToUpper(strings.TrimSpace(q.Route))
	q.Airlines = splitParam(q.Airlines)
	q.Fares = splitParam(q.Fares)

	if _, err := award.LookupPartner(q.Partner); err != nil {
		return NewHTTPError(http.StatusBadRequest, WithCause(err), WithUnmaskedCause())
	}

	if _, err := toAwardQuery(q); err != nil {
		return err
	}

	payload, err := model.EncodeShare(q)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, WithCause(err))
	}

	noCache(c)
	return c.JSON(http.StatusOK, ShareResponse{
		Payload: payload,
		Url:     baseUrl(c) + "/api/awards/share/" + payload,
	})
}

// ShareRedirect resolves a share payload to the awards query it stands for.
func (h *AwardsHandler) ShareRedirect(c echo.Context) error {
	q, err := model.DecodeShare(c.Param("payload"))
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, WithCause(err), WithUnmaskedCause())
	}

	if _, err = award.LookupPartner(q.Partner); err != nil {
		return NewHTTPError(http.StatusBadRequest, WithCause(err), WithUnmaskedCause())
	}

	return c.Redirect(http.StatusFound, "/api/awards/"+url.PathEscape(q.Partner)+"?"+q.Values().Encode())
}
