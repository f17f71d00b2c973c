package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
)

// HTTPConverter delegates conversion to a remote calendar service that knows
// the real solar terms and the lunar calendar.
type HTTPConverter struct {
	Client  *http.Client
	base    *url.URL
	token   string
	safeURL string
}

var _ engine.Converter = (*HTTPConverter)(nil)

// NewHTTPConverter validates the base URL. The token is sent as a bearer
// credential when non-empty.
func NewHTTPConverter(baseURL, token string) (*HTTPConverter, error) {
	if baseURL == "" {
		return nil, errors.New(config.ErrConverterNotSet)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	return &HTTPConverter{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
		base:  u.JoinPath(config.RouteConvert),
		token: token,
		// Query strings never reach the logs.
		safeURL: u.Scheme + "://" + u.Host + u.JoinPath(config.RouteConvert).Path,
	}, nil
}

// Convert implements engine.Converter. A 404 or 422 answer means the service
// has no resolution for the date and yields an error wrapping
// engine.ErrConversion.
func (c *HTTPConverter) Convert(ctx context.Context, m engine.Moment) (engine.Resolution, error) {
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompConverter),
		slog.String(config.LogKeyURL, c.safeURL),
	)

	target := *c.base
	target.RawQuery = query(m).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return engine.Resolution{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSON)
	if c.token != "" {
		req.Header.Set(config.HeaderAuthorization, config.BearerPrefix+c.token)
	}

	log.Debug(config.MsgConverterCall, config.LogKeyCalendar, string(m.Calendar))

	resp, err := c.Client.Do(req)
	if err != nil {
		return engine.Resolution{}, fmt.Errorf("network error during conversion: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusUnprocessableEntity:
		return engine.Resolution{}, fmt.Errorf("%s (%d): %w", config.ErrConverterRejected, resp.StatusCode, engine.ErrConversion)
	default:
		log.Warn("Converter returned error status", slog.Int(config.LogKeyStatus, resp.StatusCode))
		return engine.Resolution{}, fmt.Errorf("%s: %d %s", config.ErrConverterStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var res engine.Resolution
	if err := json.NewDecoder(io.LimitReader(resp.Body, config.MaxConverterResponseSize)).Decode(&res); err != nil {
		return engine.Resolution{}, fmt.Errorf("%s: %w", config.ErrConverterDecode, err)
	}
	if res.Year == "" || res.Month == "" || res.Day == "" || (m.HourKnown && res.Hour == "") {
		return engine.Resolution{}, fmt.Errorf("%s: %w", config.ErrConverterIncomp, engine.ErrInvariant)
	}
	if !m.HourKnown {
		res.Hour = ""
	}
	return res, nil
}

func query(m engine.Moment) url.Values {
	q := url.Values{}
	q.Set(config.QueryYear, strconv.Itoa(m.Date.Year))
	q.Set(config.QueryMonth, strconv.Itoa(m.Date.Month))
	q.Set(config.QueryDay, strconv.Itoa(m.Date.Day))
	q.Set(config.QueryCalendar, string(m.Calendar))
	q.Set(config.QueryLeap, strconv.FormatBool(m.LeapMonth))
	if m.HourKnown {
		q.Set(config.QueryHour, m.Hour.String())
	}
	return q
}
