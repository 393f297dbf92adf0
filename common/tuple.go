package common

type Tuple[T1 any, T2 any] struct {
	V1 T1
	V2 T2
}
