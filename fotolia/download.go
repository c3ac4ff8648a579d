package fotolia

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
)

// maxEnvelopeSize caps how much of a JSON download is buffered for the error
// envelope check.
const maxEnvelopeSize = 1 << 20

// Download streams downloadURL, as returned by getMedia or getMediaComp, into
// sink. With requireAuth set a session token must be held; comp downloads
// pass false. The body is written as it arrives and classified afterwards, so
// sink may hold a partial or error body when an error is returned.
func (c *Client) Download(ctx context.Context, downloadURL string, sink io.Writer, requireAuth bool) error {
	if sink == nil {
		return &IOError{Err: errors.New("nil sink")}
	}

	credential, err := c.session.credentialFor(ctx, true, requireAuth)
	if err != nil {
		return err
	}

	return c.stream(ctx, downloadURL, credential, sink)
}

// DownloadFile is Download into the file at path, which is created or
// truncated. The file is removed again when the download fails.
func (c *Client) DownloadFile(ctx context.Context, downloadURL, path string, requireAuth bool) error {
	credential, err := c.session.credentialFor(ctx, true, requireAuth)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}

	err = c.stream(ctx, downloadURL, credential, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = &IOError{Path: path, Err: closeErr}
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			c.logger.Warn().Err(rmErr).Str("path", path).Msg("Failed to remove partial download")
		}
		return err
	}

	c.logger.Debug().Str("path", path).Msg("Saved download")
	return nil
}

func (c *Client) stream(ctx context.Context, downloadURL, credential string, sink io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return &TransportError{Reason: "invalid download URL", Err: err}
	}
	c.authorize(req, credential)

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	out := &sinkWriter{w: sink}
	var head *headBuffer
	var w io.Writer = out
	if isJSON(contentType) {
		head = &headBuffer{max: maxEnvelopeSize}
		w = io.MultiWriter(out, head)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		if out.err != nil {
			return &IOError{Err: out.err}
		}
		return &TransportError{URL: req.URL.Redacted(), Err: err}
	}

	c.logger.Debug().
		Str("url", req.URL.Redacted()).
		Int("status", resp.StatusCode).
		Str("content_type", contentType).
		Int64("bytes", n).
		Msg("Fotolia download finished")

	var buffered []byte
	if head != nil {
		buffered = head.buf
	}
	return classifyDownload(resp.StatusCode, contentType, buffered)
}

// sinkWriter remembers the sink's write error so that it can be told apart
// from a failure reading the response body.
type sinkWriter struct {
	w   io.Writer
	err error
}

func (s *sinkWriter) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		s.err = err
	}
	return n, err
}

// headBuffer keeps the first max bytes written to it and discards the rest.
type headBuffer struct {
	buf []byte
	max int
}

func (h *headBuffer) Write(p []byte) (int, error) {
	if room := h.max - len(h.buf); room > 0 {
		h.buf = append(h.buf, p[:min(room, len(p))]...)
	}
	return len(p), nil
}
