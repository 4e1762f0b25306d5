package try

// something have method `Fatal`.
//
// For example in standard libraries: *testing.T, log.Logger
type Fataler interface {
	Fatal(...any)
}

// Wrapper of a pair of (T, error) .
//
// When error is nil, such Either is "ok", and T value is handled as valid.
//
// Otherwise, it is "no good", and T value is not valid.
type Either[T any] interface {

	// get value & error pair
	//
	// If the Either has value, return (value, nil).
	// Otherwize, return (zero-value, error).
	Get() (T, error)

	// When Either is "ok", it just return the T value.
	//
	// Otherwise, it calls ftl.Fatal(err) .
	// If ftl has "Helper()" method (like *testing.T), also that is called before `Fatal`.
	OrFatal(ftl Fataler) T

	OrDefault(T) T
}

// Convert value if the either has value.
func Map[T any, R any](try Either[T], mapper func(T) R) Either[R] {
	val, err := try.Get()
	if err != nil {
		return ng[R]{err}
	}
	return ok[R]{mapper(val)}
}

func To[T any](value T, err error) Either[T] {
	if err == nil {
		return ok[T]{value}
	}
	return ng[T]{err}
}

type ok[T any] struct {
	value T
}

type ng[T any] struct {
	err error
}

func (o ok[T]) Get() (T, error) {
	return o.value, nil
}

func (n ng[T]) Get() (T, error) {
	return *new(T), n.err
}

func (o ok[T]) OrDefault(T) T {
	return o.value
}

func (n ng[T]) OrDefault(d T) T {
	return d
}

func (o ok[T]) OrFatal(Fataler) T {
	return o.value
}

func (n ng[T]) OrFatal(ftl Fataler) T {
	if hlp, ok := ftl.(interface{ Helper() }); ok {
		hlp.Helper() // think *testing.T
	}
	ftl.Fatal(n.err)

	return *new(T)
}
