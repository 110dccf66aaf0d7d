package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/session"
)

// fakeCalendar always answers with the same conversion.
type fakeCalendar struct {
	conv  calendar.Conversion
	err   error
	calls int
}

func (f *fakeCalendar) Convert(_ context.Context, _, _, _, _ int) (calendar.Conversion, error) {
	f.calls++
	return f.conv, f.err
}

func autumnWater() *fakeCalendar {
	return &fakeCalendar{conv: calendar.Conversion{
		Year: "甲午", Month: "癸酉", Day: "壬寅", Hour: "丙午",
		Zodiac: "馬", LunarDate: "一九五四年 八月 初一",
	}}
}

func intp(v int) *int { return &v }

func validInput() calendar.BirthInput {
	return calendar.BirthInput{Name: "小美", Year: intp(1954), Month: intp(9), Day: intp(27), HourSlot: intp(6)}
}

func newAnalyzer(t *testing.T, cal calendar.Adapter) *Analyzer {
	t.Helper()
	a, err := New(cal, bazi.DefaultThresholds(), 2026)
	require.NoError(t, err)
	return a
}

func TestNewRejectsBadThresholds(t *testing.T) {
	_, err := New(autumnWater(), bazi.Thresholds{Dominant: 40, Strong: 60, Balanced: 20, Weak: 10}, 2026)
	assert.ErrorIs(t, err, bazi.ErrInvalidThresholds)

	_, err = New(nil, bazi.DefaultThresholds(), 2026)
	assert.Error(t, err)
}

func TestNewDefaultsForecastYear(t *testing.T) {
	a, err := New(autumnWater(), bazi.DefaultThresholds(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultForecastYear, a.ForecastYear())
}

func TestAnalyzeIncompleteInputSkipsCalendar(t *testing.T) {
	cal := autumnWater()
	a := newAnalyzer(t, cal)

	in := validInput()
	in.HourSlot = nil
	_, err := a.Analyze(context.Background(), in)
	assert.ErrorIs(t, err, calendar.ErrIncompleteInput)
	assert.Zero(t, cal.calls)
}

func TestAnalyzeCalendarError(t *testing.T) {
	cal := &fakeCalendar{err: errors.New("boom")}
	a := newAnalyzer(t, cal)

	_, err := a.Analyze(context.Background(), validInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestAnalyzeUnknownSymbol(t *testing.T) {
	cal := autumnWater()
	cal.conv.Hour = "丙?"
	a := newAnalyzer(t, cal)

	_, err := a.Analyze(context.Background(), validInput())
	assert.ErrorIs(t, err, bazi.ErrUnknownSymbol)
}

func TestAnalyze(t *testing.T) {
	a := newAnalyzer(t, autumnWater())
	res, err := a.Analyze(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "甲午 癸酉 壬寅 丙午", res.Chart.String())
	assert.Equal(t, bazi.Ren, res.DayMaster)
	assert.Equal(t, 40, res.Score)
	assert.Equal(t, bazi.Balanced, res.Bucket)
	assert.Equal(t, "中和", res.BucketLabel)
	assert.True(t, res.Favor.Seasonal)
	assert.Equal(t, []bazi.Element{bazi.Fire, bazi.Wood}, res.Favor.Favorable)
	assert.Equal(t, "馬", res.Zodiac)
	assert.Equal(t, "小美", res.Birth.DisplayName())
	assert.Len(t, res.Contributions, len(bazi.Weights))
	assert.Nil(t, res.Matrix)

	// 2026 is a Fire year, which this chart wants.
	assert.Equal(t, bazi.Fire, res.Forecast.Element)
	assert.True(t, res.Forecast.Favorable)
}

func TestAnalyzePillarViews(t *testing.T) {
	a := newAnalyzer(t, autumnWater())
	res, err := a.Analyze(context.Background(), validInput())
	require.NoError(t, err)
	require.Len(t, res.Pillars, 4)

	year, month, day, hour := res.Pillars[0], res.Pillars[1], res.Pillars[2], res.Pillars[3]
	assert.Equal(t, "年柱", year.Title)
	assert.Equal(t, "食神", year.StemGod)
	assert.Equal(t, "劫財", month.StemGod)
	assert.Equal(t, DayMasterLabel, day.StemGod)
	assert.Equal(t, "偏財", hour.StemGod)
	assert.Equal(t, bazi.Metal, month.BranchElement)

	require.Len(t, day.Hidden, 3)
	assert.Equal(t, bazi.Jia, day.Hidden[0].Stem)
	assert.Equal(t, bazi.EatingGod, day.Hidden[0].God)
	assert.Equal(t, bazi.SevenKillings, day.Hidden[2].God)
}

func TestDivineDefaultsToFirstFavorable(t *testing.T) {
	a := newAnalyzer(t, autumnWater())
	res, err := a.Analyze(context.Background(), validInput())
	require.NoError(t, err)

	h, err := res.Divine(nil)
	require.NoError(t, err)
	assert.Equal(t, 13, h.Number)
	assert.Equal(t, "同人", h.Name)
	require.NotNil(t, res.Matrix)
	assert.Equal(t, h, *res.Matrix)
}

func TestDivineRejectsUnfavorableFuel(t *testing.T) {
	a := newAnalyzer(t, autumnWater())
	res, err := a.Analyze(context.Background(), validInput())
	require.NoError(t, err)

	metal := bazi.Metal
	_, err = res.Divine(&metal)
	assert.ErrorIs(t, err, ErrFuelNotFavorable)
	assert.Nil(t, res.Matrix)

	wood := bazi.Wood
	h, err := res.Divine(&wood)
	require.NoError(t, err)
	assert.Equal(t, "震", h.Lower.Name)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(calendar.ErrInvalidDate))
	assert.Equal(t, http.StatusBadRequest, StatusCode(calendar.ErrIncompleteInput))
	assert.Equal(t, http.StatusBadRequest, StatusCode(fmt.Errorf("wrapped: %w", calendar.ErrInvalidSlot)))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusCode(ErrFuelNotFavorable))
	assert.Equal(t, http.StatusForbidden, StatusCode(session.ErrLocked))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("x")))
}

func newRouter(t *testing.T) chi.Router {
	return newGatedRouter(t, session.Gate{})
}

func newGatedRouter(t *testing.T, gate session.Gate) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, newAnalyzer(t, autumnWater()), gate)
	return r
}

func TestChartRoute(t *testing.T) {
	r := newRouter(t)

	body := `{"name":"小美","year":1954,"month":9,"day":27,"hour_slot":6,"fuel":"木"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chart", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"bucket":"balanced"`)
	assert.Contains(t, w.Body.String(), `"matrix"`)
}

func TestChartRouteErrors(t *testing.T) {
	r := newRouter(t)

	cases := []struct {
		body string
		want int
	}{
		{`not json`, http.StatusBadRequest},
		{`{"year":1954,"month":9}`, http.StatusBadRequest},
		{`{"year":1954,"month":2,"day":30,"hour_slot":1}`, http.StatusBadRequest},
		{`{"year":1954,"month":9,"day":27,"hour_slot":6,"fuel":"金"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/chart", strings.NewReader(tc.body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, tc.body)
	}
}

func TestMatrixRoute(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/matrix?stem="+url.QueryEscape("戊")+"&element=fire", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"number":63`)

	req = httptest.NewRequest(http.MethodGet, "/api/matrix?stem=X&element=fire", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGatedRoutes(t *testing.T) {
	r := newGatedRouter(t, session.Gate{Code: "turbo"})
	chart := `{"year":1954,"month":9,"day":27,"hour_slot":6}`
	matrix := "/api/matrix?stem=" + url.QueryEscape("戊") + "&element=fire"

	send := func(method, path, body, code string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if code != "" {
			req.Header.Set(session.UnlockHeader, code)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// A plain chart needs no code and carries no matrix.
	w := send(http.MethodPost, "/api/chart", chart, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), `"matrix"`)

	divine := `{"year":1954,"month":9,"day":27,"hour_slot":6,"divine":true}`
	for _, code := range []string{"", "wrong"} {
		w = send(http.MethodPost, "/api/chart", divine, code)
		assert.Equal(t, http.StatusForbidden, w.Code, "chart with code %q", code)
		assert.NotContains(t, w.Body.String(), `"number"`)

		w = send(http.MethodGet, matrix, "", code)
		assert.Equal(t, http.StatusForbidden, w.Code, "matrix with code %q", code)
	}

	w = send(http.MethodPost, "/api/chart", divine, "turbo")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"matrix"`)

	w = send(http.MethodGet, matrix, "", "turbo")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"number":63`)
}
