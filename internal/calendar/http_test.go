package calendar_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-saju/internal/calendar"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
)

// TestHTTPConverter_Success checks the request shape (path, query, headers)
// and the decoded resolution.
func TestHTTPConverter_Success(t *testing.T) {
	want := engine.Resolution{
		SolarDate: "1990-05-15",
		LunarDate: "1990-04-21",
		Year:      "庚午",
		Month:     "辛巳",
		Day:       "庚辰",
		Hour:      "壬午",
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/convert", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1990", q.Get(config.QueryYear))
		assert.Equal(t, "4", q.Get(config.QueryMonth))
		assert.Equal(t, "21", q.Get(config.QueryDay))
		assert.Equal(t, "lunar", q.Get(config.QueryCalendar))
		assert.Equal(t, "false", q.Get(config.QueryLeap))
		assert.Equal(t, "午", q.Get(config.QueryHour))

		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		assert.Equal(t, "Bearer secret", r.Header.Get(config.HeaderAuthorization))

		w.Header().Set(config.HeaderContentType, config.MimeJSON)
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer ts.Close()

	conv, err := calendar.NewHTTPConverter(ts.URL+"/v1", "secret")
	require.NoError(t, err)

	res, err := conv.Convert(context.Background(), engine.Moment{
		Date:      engine.Date{Year: 1990, Month: 4, Day: 21},
		Calendar:  engine.Lunar,
		Hour:      engine.BranchO,
		HourKnown: true,
	})
	require.NoError(t, err)
	assert.Equal(t, want, res)
}

func TestHTTPConverter_DropsHourWithoutBirthTime(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(config.HeaderAuthorization), "no token, no header")
		assert.False(t, r.URL.Query().Has(config.QueryHour))
		_, _ = w.Write([]byte(`{"solarDate":"2000-01-01","year":"己卯","month":"丙子","day":"戊午","hour":"壬子"}`))
	}))
	defer ts.Close()

	conv, err := calendar.NewHTTPConverter(ts.URL, "")
	require.NoError(t, err)

	res, err := conv.Convert(context.Background(), solarMoment(2000, 1, 1))
	require.NoError(t, err)
	assert.Empty(t, res.Hour)
}

func TestHTTPConverter_Errors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		target     error
	}{
		{"no such date", http.StatusNotFound, "", engine.ErrConversion},
		{"unprocessable date", http.StatusUnprocessableEntity, "", engine.ErrConversion},
		{"missing pillars", http.StatusOK, `{"solarDate":"2000-01-01"}`, engine.ErrInvariant},
		{"server failure", http.StatusInternalServerError, "", nil},
		{"invalid json", http.StatusOK, "{", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			conv, err := calendar.NewHTTPConverter(ts.URL, "")
			require.NoError(t, err)

			_, err = conv.Convert(context.Background(), solarMoment(2000, 1, 1))
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			} else {
				assert.NotErrorIs(t, err, engine.ErrConversion, "transport failures are not conversion failures")
			}
		})
	}
}

func TestNewHTTPConverter_Validation(t *testing.T) {
	_, err := calendar.NewHTTPConverter("", "")
	assert.EqualError(t, err, config.ErrConverterNotSet)

	_, err = calendar.NewHTTPConverter("ftp://example.com", "")
	assert.ErrorContains(t, err, config.ErrProtocol)

	_, err = calendar.NewHTTPConverter("http://[::1", "")
	assert.ErrorContains(t, err, config.ErrInvalidURL)
}

func TestHTTPConverter_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer ts.Close()

	conv, err := calendar.NewHTTPConverter(ts.URL, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = conv.Convert(ctx, solarMoment(2000, 1, 1))
	assert.ErrorIs(t, err, context.Canceled)
}
