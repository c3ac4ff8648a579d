package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/s0up4200/fotoctl/fotolia"
)

// sniffLen is how much of a download is inspected to pick a Content-Type.
const sniffLen = 512

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Code  int    `json:"code,omitempty"`
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	method := strings.Trim(ps.ByName("method"), "/")

	hr := fotolia.NewHeaderRecorder(w)
	ctx := fotolia.ContextWithRecorder(r.Context(), hr)

	params, err := requestParams(r)
	if err != nil {
		writeJSON(hr, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	resp, err := s.api.Call(ctx, method, params)
	if err != nil {
		s.logger.Debug().Err(err).Str("method", method).Msg("Gateway call failed")
		writeError(hr, err)
		return
	}

	hr.Header().Set("Content-Type", "application/json")
	hr.WriteHeader(http.StatusOK)
	// An empty or non-JSON body has no Value and is passed on as null.
	if resp.Value == nil {
		_, _ = hr.Write([]byte("null"))
		return
	}
	_, _ = hr.Write(resp.Raw)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	downloadURL := q.Get("url")
	if downloadURL == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "url is required"})
		return
	}
	if err := checkDownloadURL(downloadURL, s.cfg.DownloadHosts); err != nil {
		s.logger.Warn().Err(err).Msg("Refused gateway download")
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	comp := q.Get("comp") == "1" || q.Get("comp") == "true"
	kind := "media"
	if comp {
		kind = "comp"
	}

	// The body is only classified once fully received, so it is spooled to
	// disk before anything is sent to the caller.
	spool, err := os.CreateTemp("", "fotoctl-download-*")
	if err != nil {
		writeError(w, &fotolia.IOError{Err: err})
		return
	}
	defer func() {
		spool.Close()
		os.Remove(spool.Name())
	}()

	err = s.api.Download(r.Context(), downloadURL, spool, !comp)
	if s.metrics != nil {
		s.metrics.ObserveDownload(kind, err)
	}
	if err != nil {
		s.logger.Debug().Err(err).Str("kind", kind).Msg("Gateway download failed")
		writeError(w, err)
		return
	}

	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		writeError(w, &fotolia.IOError{Path: spool.Name(), Err: err})
		return
	}
	head := make([]byte, sniffLen)
	n, _ := io.ReadFull(spool, head)
	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		writeError(w, &fotolia.IOError{Path: spool.Name(), Err: err})
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(head[:n]))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, spool); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to send download to client")
	}
}

// checkDownloadURL accepts absolute http(s) URLs whose host is in allowed.
func checkDownloadURL(rawURL string, allowed []string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https")
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("url has no host")
	}
	if !allowedHost(host, allowed) {
		return fmt.Errorf("downloads from %s are not allowed", host)
	}
	return nil
}

func allowedHost(host string, allowed []string) bool {
	for _, a := range allowed {
		a = strings.ToLower(strings.TrimSpace(a))
		suffix := strings.TrimPrefix(a, "*")
		switch {
		case strings.HasPrefix(suffix, "."):
			if strings.HasSuffix(host, suffix) {
				return true
			}
		case a == host:
			return true
		}
	}
	return false
}

func (s *Server) handleMethods(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, fotolia.Methods())
}

// requestParams turns query and form values into call arguments, sorted by
// key. A key given more than once becomes a list.
func requestParams(r *http.Request) (fotolia.Params, error) {
	values := r.URL.Query()
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		values = r.Form
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make(fotolia.Params, 0, len(keys))
	for _, k := range keys {
		params = append(params, fotolia.Param{Key: k, Value: paramValue(values, k)})
	}
	return params, nil
}

func paramValue(values url.Values, key string) any {
	v := values[key]
	if len(v) == 1 {
		return v[0]
	}
	return v
}

// statusFor maps a client error to the gateway's response status.
// statusFor maps a client error to the gateway's response status. An upstream
// 401 or 403 means the configured credentials were refused.
func statusFor(err error) int {
	var statusErr *fotolia.HTTPStatusError
	if errors.As(err, &statusErr) && statusErr.IsUnauthorized() {
		return http.StatusUnauthorized
	}

	switch fotolia.KindOf(err) {
	case fotolia.KindUnknownMethod:
		return http.StatusNotFound
	case fotolia.KindAuthRequired:
		return http.StatusUnauthorized
	case fotolia.KindAPI:
		return http.StatusUnprocessableEntity
	case fotolia.KindHTTPStatus, fotolia.KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error()}
	if k := fotolia.KindOf(err); k != 0 {
		body.Kind = k.String()
	}
	var apiErr *fotolia.APIError
	if errors.As(err, &apiErr) {
		body.Error = apiErr.Message
		body.Code = apiErr.Code
	}
	writeJSON(w, statusFor(err), body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
