package ssr

import (
	"context"
	"fmt"
	"io"
)

// defaultChunkSize is how many bytes RenderResultReadable coalesces before
// handing a Read call back to its caller. Text fragments are concatenated
// up to this size rather than flushed one fragment at a time, trading a
// small amount of latency for far fewer, larger writes downstream — the
// same tradeoff an http.ResponseWriter wrapped in bufio.Writer makes.
const defaultChunkSize = 8192

// StreamOption customizes a single NewRenderResultReadable call (Collect
// does not take one), mirroring the CompileOption/RenderOption functional-option shape
// used elsewhere in this package.
type StreamOption func(*streamOptions)

type streamOptions struct {
	chunkSize int
}

// WithChunkSize overrides the default 8192-byte coalescing threshold (the
// chunkSize parameter from §6/§8). A size of 1 flushes on essentially
// every fragment; math.MaxInt64 (or any size at least as large as the
// total output) coalesces the whole render into a single chunk. size <= 0
// is treated as the default.
func WithChunkSize(size int) StreamOption {
	return func(o *streamOptions) {
		if size > 0 {
			o.chunkSize = size
		}
	}
}

// RenderResultReadable adapts a Fragment tree to io.Reader, driving a
// FragmentIterator and blocking on any Promise it encounters. Call Collect
// or CollectSync for the common case of wanting the whole result as a
// string; use RenderResultReadable directly to stream a large or
// long-running render to an http.ResponseWriter without buffering it all
// in memory first.
type RenderResultReadable struct {
	ctx       context.Context
	it        *FragmentIterator
	chunkSize int

	buf  []byte
	done bool
	err  error
}

// NewRenderResultReadable starts streaming root. ctx governs cancellation
// while waiting on an in-flight Promise; a nil ctx is treated as
// context.Background(). opts configures the chunk-coalescing threshold
// (WithChunkSize); it defaults to 8192 bytes.
func NewRenderResultReadable(ctx context.Context, root Fragment, opts ...StreamOption) *RenderResultReadable {
	if ctx == nil {
		ctx = context.Background()
	}
	o := streamOptions{chunkSize: defaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &RenderResultReadable{
		ctx:       ctx,
		it:        NewFragmentIterator(root),
		chunkSize: o.chunkSize,
	}
}

// Read implements io.Reader. The final bytes of the render are returned
// with a nil error; the call after that returns (0, io.EOF), matching the
// contract most io.Reader callers (io.Copy, bufio) rely on.
func (r *RenderResultReadable) Read(p []byte) (n int, err error) {
	if r.err != nil {
		return 0, r.err
	}

	for len(r.buf) < r.chunkSize && !r.done {
		if stepErr := r.fill(); stepErr != nil {
			r.err = stepErr
			break
		}
	}

	n = copy(p, r.buf)
	r.buf = r.buf[n:]

	if n == 0 && r.done && r.err == nil {
		return 0, io.EOF
	}
	if n == 0 && r.err != nil {
		return 0, r.err
	}
	return n, nil
}

// fill advances the iterator by exactly one step, appending any text it
// produces to buf and recovering an internal panic into a terminal error —
// a corrupted opcode/fragment tree is a bug, not something a streaming
// caller should see as a raw panic propagating out of Read.
func (r *RenderResultReadable) fill() (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if ie, ok := rec.(*internalError); ok {
				err = ie
				return
			}
			err = fmt.Errorf("ssr: panic during render: %v", rec)
		}
	}()

	res, stepErr := r.it.Next()
	if stepErr != nil {
		return stepErr
	}

	switch res.Kind {
	case IterDone:
		r.done = true
		return nil
	case IterText:
		r.buf = append(r.buf, res.Text...)
		return nil
	case IterAwait:
		select {
		case <-r.ctx.Done():
			return r.ctx.Err()
		case pr := <-res.Await:
			if pr.Err != nil {
				return pr.Err
			}
			r.it.Resolve(pr.Value)
			return nil
		}
	default:
		panicInternal("UNKNOWN_ITER_KIND", fmt.Sprintf("%d", res.Kind))
		return nil
	}
}

// Collect renders tr to completion and returns it as a single string,
// blocking on any Promise it contains until ctx is done or every
// suspension resolves. Prefer RenderResultReadable directly when the
// output should be streamed rather than buffered whole.
func Collect(ctx context.Context, tr TemplateResult, opts ...RenderOption) (string, error) {
	root, err := Render(tr, nil, opts...)
	if err != nil {
		return "", err
	}
	r := NewRenderResultReadable(ctx, root)
	out, err := io.ReadAll(r)
	return string(out), err
}

// CollectSync renders tr to completion synchronously, failing with an
// error rather than blocking if it ever encounters a Promise — the
// synchronous counterpart to Collect for callers that have no event loop
// to suspend into and want a hard guarantee that the template tree
// contains no asynchronous content.
func CollectSync(tr TemplateResult, opts ...RenderOption) (string, error) {
	root, err := Render(tr, nil, opts...)
	if err != nil {
		return "", err
	}
	it := NewFragmentIterator(root)
	var out []byte
	for {
		res, err := it.Next()
		if err != nil {
			return "", err
		}
		switch res.Kind {
		case IterDone:
			return string(out), nil
		case IterText:
			out = append(out, res.Text...)
		case IterAwait:
			return "", fmt.Errorf("ssr: CollectSync encountered a Promise; use Collect instead")
		}
	}
}
