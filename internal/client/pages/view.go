package pages

// Phase is where a page is in its mount/fetch lifecycle.
type Phase int

const (
	Unmounted Phase = iota
	CheckingSession
	Redirecting
	Fetching
	Rendering
	ErrorShown
)

func (p Phase) String() string {
	switch p {
	case Unmounted:
		return "unmounted"
	case CheckingSession:
		return "checking-session"
	case Redirecting:
		return "redirecting"
	case Fetching:
		return "fetching"
	case Rendering:
		return "rendering"
	case ErrorShown:
		return "error"
	default:
		return "unknown"
	}
}

// View is the loading/data/error state of one page operation. Data is only
// meaningful in Rendering and Err only in ErrorShown.
type View[T any] struct {
	Phase Phase
	Data  T
	Err   string
}

func (v View[T]) Loading() bool {
	return v.Phase == CheckingSession || v.Phase == Fetching
}

func (v View[T]) Ready() bool {
	return v.Phase == Rendering
}

func (v *View[T]) Reset() {
	*v = View[T]{}
}

func (v *View[T]) show(data T) {
	*v = View[T]{Phase: Rendering, Data: data}
}

func (v *View[T]) fail(msg string) {
	*v = View[T]{Phase: ErrorShown, Err: msg}
}
