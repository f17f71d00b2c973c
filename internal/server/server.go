package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
	"github.com/tartampluch/go-saju/internal/ics"
)

// envelope is the JSON shape of every /api/profile answer.
type envelope struct {
	Status  string  `json:"status"`
	Message *string `json:"message"`
	Field   string  `json:"field,omitempty"`
	Data    any     `json:"data,omitempty"`
}

// profileRequest is the POST body: the birth input plus request options.
type profileRequest struct {
	engine.BirthInput
	AsOfYear int    `json:"asOfYear"`
	Lang     string `json:"lang"`
}

// ProfileServer exposes the profile engine over HTTP.
type ProfileServer struct {
	Port      string
	Assembler *engine.Assembler
	Content   engine.Content
	// Language is the last-resort narrative language after the request's own preferences.
	Language string
	// ReminderTrigger is passed to the iCalendar export; empty disables alarms.
	ReminderTrigger string
}

// NewProfileServer creates a new instance of the server.
func NewProfileServer(port string, asm *engine.Assembler, content engine.Content) *ProfileServer {
	return &ProfileServer{
		Port:      port,
		Assembler: asm,
		Content:   content,
		Language:  config.DefaultLanguage,
	}
}

// Handler returns the routed handler with request tracing.
func (s *ProfileServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteProfile, s.handleProfile)
	mux.HandleFunc(config.RouteProfileICS, s.handleCalendar)
	mux.HandleFunc(config.RouteHealth, s.handleHealth)
	return withRequestID(mux)
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *ProfileServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// handleProfile computes a profile from query parameters (GET/HEAD) or a JSON body (POST).
func (s *ProfileServer) handleProfile(w http.ResponseWriter, r *http.Request) {
	// 1. Method Validation
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		w.Header().Set(config.HeaderAllow, config.AllowedMethodsProfile)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	// 2. Decode Request
	req, err := decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// 3. Assemble
	p, err := s.Assembler.Assemble(r.Context(), req.BirthInput, s.options(r, req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// 4. Serialize
	body, err := json.Marshal(envelope{Status: config.StatusSuccess, Data: p})
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", engine.ErrInvariant, err))
		return
	}
	w.Header().Set(config.HeaderContentLanguage, p.Meta.Locale)
	s.writeBody(w, r, http.StatusOK, config.MimeJSON, body)
}

// handleCalendar serves the luck cycles of a profile as an iCalendar feed.
func (s *ProfileServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethodsRead)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	req, err := decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.options(r, req)
	p, err := s.Assembler.Assemble(r.Context(), req.BirthInput, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := ics.Encode(p, s.Content.Localize(opts.Languages...), ics.Options{
		Now:             s.now(),
		ReminderTrigger: s.ReminderTrigger,
	})
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", engine.ErrInvariant, err))
		return
	}
	w.Header().Set(config.HeaderContentLanguage, p.Meta.Locale)
	s.writeBody(w, r, http.StatusOK, config.MimeTextCalendar, data)
}

func (s *ProfileServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethodsRead)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
	if r.Method == http.MethodGet {
		_, _ = w.Write([]byte(config.HealthBody))
	}
}

// options merges the explicit lang, the Accept-Language header and the server default.
func (s *ProfileServer) options(r *http.Request, req profileRequest) engine.Options {
	var langs []string
	for _, l := range []string{req.Lang, r.Header.Get(config.HeaderAcceptLanguage), s.Language} {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return engine.Options{AsOfYear: req.AsOfYear, Languages: langs}
}

func (s *ProfileServer) now() time.Time {
	if s.Assembler != nil && s.Assembler.Clock != nil {
		return s.Assembler.Clock.Now()
	}
	return time.Now()
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (profileRequest, error) {
	var req profileRequest

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodySize)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, &engine.ValidationError{Field: config.FieldBody, Reason: config.ReasonMalformed}
		}
		return req, nil
	}

	q := r.URL.Query()
	req.Name = q.Get(config.FieldName)
	req.Gender = engine.Gender(q.Get(config.FieldGender))
	req.Calendar = engine.CalendarSystem(q.Get(config.FieldCalendar))
	req.BirthDate = q.Get(config.FieldBirthDate)
	req.BirthTime = q.Get(config.FieldBirthTime)
	req.BirthPlace = q.Get(config.FieldPlace)
	req.Lang = q.Get(config.QueryLang)

	if v := q.Get(config.FieldLeapMonth); v != "" {
		leap, err := strconv.ParseBool(v)
		if err != nil {
			return req, &engine.ValidationError{Field: config.FieldLeapMonth, Reason: config.ReasonNotBoolean}
		}
		req.LeapMonth = leap
	}
	if v := q.Get(config.QueryAsOfYear); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return req, &engine.ValidationError{Field: config.FieldAsOfYear, Reason: config.ReasonNotInteger}
		}
		req.AsOfYear = year
	}
	return req, nil
}

// classify maps an assembly error to a status, a client message and the offending field.
func classify(err error) (int, string, string) {
	var verr *engine.ValidationError
	switch {
	case errors.Is(err, context.Canceled):
		return config.StatusClientClosed, config.HTTPMsgCanceled, ""
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, config.HTTPMsgTimeout, ""
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error(), verr.Field
	case errors.Is(err, engine.ErrConversion):
		return http.StatusUnprocessableEntity, err.Error(), ""
	case errors.Is(err, engine.ErrInvariant):
		return http.StatusInternalServerError, config.HTTPMsgInternalErr, ""
	default:
		return http.StatusBadGateway, config.HTTPMsgUpstream, ""
	}
}

func (s *ProfileServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg, field := classify(err)
	if status == config.StatusClientClosed {
		slog.Debug(config.MsgRequestAborted,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	} else {
		slog.Warn(config.MsgProfileFailed,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyStatus, status,
			config.LogKeyError, err,
		)
	}
	body, _ := json.Marshal(envelope{Status: config.StatusError, Message: &msg, Field: field})
	s.writeBody(w, r, status, config.MimeJSON, body)
}

// writeBody sets the caching headers and honours If-None-Match on successful reads.
func (s *ProfileServer) writeBody(w http.ResponseWriter, r *http.Request, status int, contentType string, body []byte) {
	h := w.Header()
	h.Set(config.HeaderContentType, contentType)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)

	if status == http.StatusOK {
		etag := etagOf(body)
		h.Set(config.HeaderETag, etag)
		if r.Method != http.MethodPost && etagMatches(r.Header.Get(config.HeaderIfNoneMatch), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

func etagOf(body []byte) string {
	hash := sha256.Sum256(body)
	return fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == etag || candidate == "*" {
			return true
		}
	}
	return false
}

// statusRecorder captures the response code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// withRequestID tags every response with a request ID, reusing the caller's when given.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(config.HeaderRequestID)
		if id == "" {
			id = ulid.Make().String()
		}
		w.Header().Set(config.HeaderRequestID, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		slog.Debug(config.MsgRequestServed,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyMethod, r.Method,
			config.LogKeyPath, r.URL.Path,
			config.LogKeyStatus, rec.status,
			config.LogKeyRequestID, id,
			config.LogKeyDuration, time.Since(start).Milliseconds(),
		)
	})
}
