package relay

import (
	"context"
	"feedcore/domain"
	"feedcore/utils/errors"
	"feedcore/utils/metrics"
	"io"
	"net/http"
)

const defaultChunkSize = 32 * 1024

// Result describes what reached the client.
type Result struct {
	Written int64
	// Committed is true once a status line has been sent. After that the only
	// safe way to report a failure is to abort the connection.
	Committed bool
}

// StreamRelay copies an upstream body to the client under a byte ceiling.
type StreamRelay struct {
	route     string
	maxBytes  int64
	chunkSize int
}

func NewStreamRelay(route string, maxBytes int64, chunkSize int) *StreamRelay {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &StreamRelay{route: route, maxBytes: maxBytes, chunkSize: chunkSize}
}

// Relay streams resp.Body to w and always closes it. prepare runs once, just
// before the status is committed, so callers can add cache headers.
//
// The declared Content-Length is checked first, then the running total is
// checked before every chunk is written. Written never exceeds maxBytes.
func (r *StreamRelay) Relay(ctx context.Context, w http.ResponseWriter, resp *domain.UpstreamResponse, prepare func(http.Header)) (Result, error) {
	defer resp.Body.Close()

	var res Result
	errCtx := map[string]interface{}{
		"route":     r.route,
		"max_bytes": r.maxBytes,
	}

	if resp.ContentLength > r.maxBytes {
		errCtx["declared_length"] = resp.ContentLength
		metrics.RecordRelay(r.route, 0, "declared_length")
		return res, errors.NewSizeLimitExceededError("utils", "StreamRelay", "check_declared_length", errCtx)
	}

	commit := func() {
		h := w.Header()
		if prepare != nil {
			prepare(h)
		}
		if resp.ContentType != "" {
			h.Set("Content-Type", resp.ContentType)
		}
		h.Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		res.Committed = true
	}

	buf := make([]byte, r.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			metrics.RecordRelay(r.route, res.Written, "cancelled")
			return res, err
		}

		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if res.Written+int64(n) > r.maxBytes {
				errCtx["written"] = res.Written
				metrics.RecordRelay(r.route, res.Written, "size_limit")
				return res, errors.NewSizeLimitExceededError("utils", "StreamRelay", "stream", errCtx)
			}
			if !res.Committed {
				commit()
			}
			written, writeErr := w.Write(buf[:n])
			res.Written += int64(written)
			if writeErr != nil {
				metrics.RecordRelay(r.route, res.Written, "downstream")
				return res, writeErr
			}
		}

		if readErr == io.EOF {
			if !res.Committed {
				commit()
			}
			metrics.RecordRelay(r.route, res.Written, "")
			return res, nil
		}
		if readErr != nil {
			metrics.RecordRelay(r.route, res.Written, "upstream")
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			return res, errors.NewFetchError("failed to read upstream body", "utils", "StreamRelay", "stream", readErr, errCtx)
		}
	}
}
