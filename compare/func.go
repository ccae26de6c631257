package compare

// Func is a three-way comparison. It returns a negative number when a sorts
// before b, zero when they are equal, and a positive number when a sorts after b.
// The standard library's cmp.Compare has this shape, so cmp.Compare[int] can be
// used wherever a Func[int] is expected.
type Func[T any] func(a, b T) int

// FromLess builds a Func out of a strict "less than" predicate. Two values are
// considered equal when neither is less than the other.
func FromLess[T any](less func(a, b T) bool) Func[T] {
	return func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	}
}

// Reverse returns a Func that orders values in the opposite direction.
func Reverse[T any](f Func[T]) Func[T] {
	return func(a, b T) int {
		return f(b, a)
	}
}

// Less reports whether a sorts strictly before b.
func (f Func[T]) Less(a, b T) bool {
	return f(a, b) < 0
}

// Equal reports whether a and b compare equal.
func (f Func[T]) Equal(a, b T) bool {
	return f(a, b) == 0
}
