package common

import (
	"encoding/json"
	"iter"
	"slices"
)

type Set[T comparable] map[T]struct{}

func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}

	return s
}

func (s *Set[T]) UnmarshalJSON(bytes []byte) error {
	var values []T
	if err := json.Unmarshal(bytes, &values); err != nil {
		return err
	}

	*s = NewSet(values...)

	return nil
}

func (s Set[T]) MarshalJSON() ([]byte, error) {
	values := make([]T, 0, len(s))
	for value := range s {
		values = append(values, value)
	}

	return json.Marshal(values)
}

func (s Set[T]) Add(value T) bool {
	_, ok := s[value]
	s[value] = struct{}{}
	return !ok
}

func (s Set[T]) Contains(value T) bool {
	_, ok := s[value]
	return ok
}

// ContainsAny reports whether at least one of the values is a member of s.
func (s Set[T]) ContainsAny(values iter.Seq[T]) bool {
	for v := range values {
		if s.Contains(v) {
			return true
		}
	}

	return false
}

func (s Set[T]) Remove(value T) bool {
	_, ok := s[value]
	delete(s, value)
	return ok
}

func SortedSet[T interface {
	comparable
	~string
}](s Set[T]) []T {
	values := make([]T, 0, len(s))
	for v := range s {
		values = append(values, v)
	}

	slices.Sort(values)
	return values
}
