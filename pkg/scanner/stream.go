package scanner

import (
	"context"
	"io"
)

// Stream reads entries from r on a background goroutine.
//
// The record channel is closed when the input is exhausted, when reading
// fails, or when ctx is cancelled. At most one error is delivered on the
// error channel, which is closed afterwards.
func Stream(ctx context.Context, r io.Reader, opts ...Option) (<-chan Record, <-chan error) {
	out := make(chan Record, 16)
	errc := make(chan error, 1)

	go func() {
		defer close(errc)
		defer close(out)

		s := New(r, opts...)
		for {
			rec, err := s.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				errc <- err
				return
			}
			select {
			case out <- rec:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()

	return out, errc
}
