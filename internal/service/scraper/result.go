package scraper

// Result holds either a scraped value or the reason scraping failed. Callers
// collapse it into a degraded value at the boundary with OrElse.
type Result[T any] struct {
	value T
	err   error
}

func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Failure[T any](err error) Result[T] {
	return Result[T]{err: err}
}

func (r Result[T]) Ok() bool {
	return r.err == nil
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

func (r Result[T]) OrElse(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// FailureRecorder is notified when an extractor falls back to its degraded
// value. *metrics.Metrics satisfies it.
type FailureRecorder interface {
	ScrapeFailed(extractor string)
}
