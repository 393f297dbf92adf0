package model

import (
	"errors"
	"fmt"
	"github.com/jxskiss/base62"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"net/url"
	"strconv"
	"strings"
)

var ErrInvalidSharePayload = errors.New("invalid share payload")

type AwardQuery struct {
	Partner       string   `json:"partner"`
	Route         string   `json:"route"`
	Airlines      []string `json:"airlines,omitempty"`
	Fares         []string `json:"fares,omitempty"`
	ExpandCountry bool     `json:"expandCountry"`
	ExpandCity    bool     `json:"expandCity"`
	Strict        bool     `json:"strict,omitempty"`
}

// Values encodes the query as url query parameters, partner excluded.
func (q AwardQuery) Values() url.Values {
	v := make(url.Values)
	v.Set("route", q.Route)
	v.Set("expandCountry", strconv.FormatBool(q.ExpandCountry))
	v.Set("expandCity", strconv.FormatBool(q.ExpandCity))

	if q.Strict {
		v.Set("strict", "true")
	}

	for _, airline := range q.Airlines {
		v.Add("airline", airline)
	}

	for _, fare := range q.Fares {
		v.Add("fare", fare)
	}

	return v
}

func (q AwardQuery) ToPb() (proto.Message, error) {
	return structpb.NewStruct(map[string]any{
		"partner":       q.Partner,
		"route":         q.Route,
		"airlines":      toAnySlice(q.Airlines),
		"fares":         toAnySlice(q.Fares),
		"expandCountry": q.ExpandCountry,
		"expandCity":    q.ExpandCity,
		"strict":        q.Strict,
	})
}

func AwardQueryFromPb(s *structpb.Struct) (AwardQuery, error) {
	fields := s.GetFields()
	q := AwardQuery{
		Partner:       fields["partner"].GetStringValue(),
		Route:         fields["route"].GetStringValue(),
		ExpandCountry: fields["expandCountry"].GetBoolValue(),
		ExpandCity:    fields["expandCity"].GetBoolValue(),
		Strict:        fields["strict"].GetBoolValue(),
	}

	var err error
	if q.Airlines, err = stringList(fields["airlines"]); err != nil {
		return AwardQuery{}, err
	}

	if q.Fares, err = stringList(fields["fares"]); err != nil {
		return AwardQuery{}, err
	}

	if q.Partner == "" {
		return AwardQuery{}, fmt.Errorf("%w: missing partner", ErrInvalidSharePayload)
	}

	return q, nil
}

// EncodeShare returns the url safe share payload of q.
func EncodeShare(q AwardQuery) (string, error) {
	msg, err := q.ToPb()
	if err != nil {
		return "", err
	}

	b, err := proto.Marshal(msg)
	if err != nil {
		return "", err
	}

	return base62.EncodeToString(b), nil
}

func DecodeShare(payload string) (AwardQuery, error) {
	b, err := base62.DecodeString(payload)
	if err != nil {
		return AwardQuery{}, fmt.Errorf("%w: %w", ErrInvalidSharePayload, err)
	}

	var s structpb.Struct
	if err = proto.Unmarshal(b, &s); err != nil {
		return AwardQuery{}, fmt.Errorf("%w: %w", ErrInvalidSharePayload, err)
	}

	return AwardQueryFromPb(&s)
}

func toAnySlice(values []string) []any {
	r := make([]any, 0, len(values))
	for _, v := range values {
		r = append(r, v)
	}

	return r
}

func stringList(v *structpb.Value) ([]string, error) {
	if v == nil {
		return nil, nil
	}

	if _, ok := v.GetKind().(*structpb.Value_ListValue); !ok {
		return nil, fmt.Errorf("%w: expected list", ErrInvalidSharePayload)
	}

	values := v.GetListValue().GetValues()
	if len(values) == 0 {
		return nil, nil
	}

	r := make([]string, 0, len(values))
	for _, item := range values {
		s := strings.TrimSpace(item.GetStringValue())
		if s != "" {
			r = append(r, s)
		}
	}

	return r, nil
}
