package readings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/db"
	"github.com/ziadkadry99/aliverse/internal/report"
	"github.com/ziadkadry99/aliverse/internal/session"
)

// fixedCalendar answers every conversion with the same pillars.
type fixedCalendar struct{}

func (fixedCalendar) Convert(_ context.Context, _, _, _, _ int) (calendar.Conversion, error) {
	return calendar.Conversion{
		Year: "甲午", Month: "癸酉", Day: "壬寅", Hour: "丙午",
		Zodiac: "馬", LunarDate: "一九五四年 八月 初一",
	}, nil
}

func intp(v int) *int { return &v }

func birthInput(name string) calendar.BirthInput {
	return calendar.BirthInput{Name: name, Year: intp(1954), Month: intp(9), Day: intp(27), HourSlot: intp(6)}
}

func setupService(t *testing.T) *Service {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	a, err := analysis.New(fixedCalendar{}, bazi.DefaultThresholds(), 2026)
	if err != nil {
		t.Fatalf("analysis.New: %v", err)
	}
	return NewService(NewStore(database), a)
}

func TestSaveAndGetByID(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, birthInput("阿明"), nil, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Reading.ID == "" {
		t.Fatal("expected generated ID")
	}

	got, err := svc.Store().GetByID(ctx, d.Reading.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Birth.Name != "阿明" {
		t.Errorf("Name = %q, want %q", got.Birth.Name, "阿明")
	}
	if got.Chart.String() != "甲午 癸酉 壬寅 丙午" {
		t.Errorf("Chart = %s", got.Chart)
	}
	if got.Bucket != bazi.Balanced || got.Score != 40 {
		t.Errorf("Bucket/Score = %s/%d", got.Bucket, got.Score)
	}
	if got.Birth.Slot.Index != 6 {
		t.Errorf("Slot = %d, want 6", got.Birth.Slot.Index)
	}
	if len(got.Favorable) != 2 || got.Favorable[0] != bazi.Fire {
		t.Errorf("Favorable = %v", got.Favorable)
	}
	if got.Fuel != nil {
		t.Errorf("Fuel = %v, want nil", got.Fuel)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := setupService(t)
	_, err := svc.Store().GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc := setupService(t)
	in := birthInput("")
	in.Day = nil
	if _, err := svc.Create(context.Background(), in, nil, false); !errors.Is(err, calendar.ErrIncompleteInput) {
		t.Errorf("got %v, want ErrIncompleteInput", err)
	}

	metal := bazi.Metal
	if _, err := svc.Create(context.Background(), birthInput(""), &metal, false); !errors.Is(err, analysis.ErrFuelNotFavorable) {
		t.Errorf("got %v, want ErrFuelNotFavorable", err)
	}

	list, err := svc.Store().List(context.Background(), Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("failed creates should store nothing, got %d", len(list))
	}
}

func TestDivineStoresMatrix(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, birthInput(""), nil, false)
	if err != nil {
		t.Fatal(err)
	}
	wood := bazi.Wood
	h, err := svc.Divine(ctx, d.Reading.ID, &wood)
	if err != nil {
		t.Fatalf("Divine: %v", err)
	}

	got, err := svc.Get(ctx, d.Reading.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Reading.Fuel == nil || *got.Reading.Fuel != bazi.Wood {
		t.Errorf("Fuel = %v, want 木", got.Reading.Fuel)
	}
	if got.Reading.Hexagram != h.Number {
		t.Errorf("Hexagram = %d, want %d", got.Reading.Hexagram, h.Number)
	}
	if got.Result.Matrix == nil || got.Result.Matrix.Number != h.Number {
		t.Error("recomputed result should carry the stored matrix")
	}
}

func TestGetKeepsSavedThresholds(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	ctx := context.Background()

	before, err := analysis.New(fixedCalendar{}, bazi.DefaultThresholds(), 2026)
	if err != nil {
		t.Fatal(err)
	}
	fire := bazi.Fire
	d, err := NewService(NewStore(database), before).Create(ctx, birthInput("阿明"), &fire, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Score 40 is dominant under these cut points, which flips fire to unfavorable.
	after, err := analysis.New(fixedCalendar{}, bazi.Thresholds{Dominant: 40, Strong: 30, Balanced: 20, Weak: 10}, 2026)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(NewStore(database), after)

	got, err := svc.Get(ctx, d.Reading.ID)
	if err != nil {
		t.Fatalf("Get after threshold change: %v", err)
	}
	if got.Reading.Thresholds != bazi.DefaultThresholds() {
		t.Errorf("stored thresholds = %v", got.Reading.Thresholds)
	}
	if got.Result.Bucket != got.Reading.Bucket || got.Result.Bucket != bazi.Balanced {
		t.Errorf("result bucket %s, stored bucket %s", got.Result.Bucket, got.Reading.Bucket)
	}
	if got.Result.Matrix == nil || got.Result.Matrix.Number != d.Reading.Hexagram {
		t.Errorf("matrix = %+v, want hexagram %d", got.Result.Matrix, d.Reading.Hexagram)
	}

	fresh, err := svc.Create(ctx, birthInput("阿華"), nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Reading.Bucket != bazi.Dominant {
		t.Errorf("new readings use current thresholds: bucket = %s", fresh.Reading.Bucket)
	}
}

func TestListFilterAndStats(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if _, err := svc.Create(ctx, birthInput(name), nil, false); err != nil {
			t.Fatal(err)
		}
	}

	balanced, strong := bazi.Balanced, bazi.Strong
	list, err := svc.Store().List(ctx, Filter{Bucket: &balanced, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Errorf("len = %d, want 2", len(list))
	}
	if list[0].Birth.Name != "c" {
		t.Errorf("newest first: got %q", list[0].Birth.Name)
	}

	list, err = svc.Store().List(ctx, Filter{Bucket: &strong})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("strong readings = %d, want 0", len(list))
	}

	st, err := svc.Store().Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Total != 3 || st.ByBucket["balanced"] != 3 || st.ByBucket["dominant"] != 0 {
		t.Errorf("Stats = %+v", st)
	}
	if len(st.ByBucket) != len(bazi.Buckets()) {
		t.Errorf("ByBucket should list every bucket: %v", st.ByBucket)
	}
}

func TestDelete(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, birthInput(""), nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Store().Delete(ctx, d.Reading.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Store().Delete(ctx, d.Reading.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func newRouter(t *testing.T) (chi.Router, *Service) {
	return newGatedRouter(t, session.Gate{})
}

func newGatedRouter(t *testing.T, gate session.Gate) (chi.Router, *Service) {
	t.Helper()
	svc := setupService(t)
	r := chi.NewRouter()
	RegisterRoutes(r, svc, report.DefaultBrand(), gate, nil)
	return r, svc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	return doWithCode(r, method, path, body, "")
}

func doWithCode(r http.Handler, method, path, body, code string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if code != "" {
		req.Header.Set(session.UnlockHeader, code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodPost, "/api/readings/", `{"name":"阿明","year":1954,"month":9,"day":27,"hour_slot":6}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	var d Detail
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	id := d.Reading.ID

	w = do(r, http.MethodGet, "/api/readings/"+id, "")
	if w.Code != http.StatusOK {
		t.Errorf("get status = %d", w.Code)
	}

	w = do(r, http.MethodGet, "/api/readings/?bucket=balanced", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), id) {
		t.Errorf("list = %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/readings/?bucket=bogus", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad bucket status = %d", w.Code)
	}

	w = do(r, http.MethodPost, "/api/readings/"+id+"/matrix", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"number":13`) {
		t.Errorf("matrix = %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/api/readings/"+id+"/matrix", `{"fuel":"水"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("unfavorable fuel status = %d", w.Code)
	}

	w = do(r, http.MethodDelete, "/api/readings/"+id, "")
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}
	w = do(r, http.MethodGet, "/api/readings/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", w.Code)
	}
}

func TestReportRoutes(t *testing.T) {
	r, svc := newRouter(t)
	d, err := svc.Create(context.Background(), birthInput("阿明"), nil, true)
	if err != nil {
		t.Fatal(err)
	}
	base := "/api/readings/" + d.Reading.ID

	w := do(r, http.MethodGet, base+"/report", "")
	if w.Code != http.StatusOK {
		t.Fatalf("report status = %d", w.Code)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte(report.BOM)) {
		t.Error("text report should start with a BOM")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	chart, err := report.ParseChart(w.Body.String())
	if err != nil || chart != d.Reading.Chart {
		t.Errorf("report chart = %v (%v), want %v", chart, err, d.Reading.Chart)
	}

	w = do(r, http.MethodGet, base+"/report.md", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "## 改裝矩陣") {
		t.Errorf("markdown = %d", w.Code)
	}

	w = do(r, http.MethodGet, base+"/report.html", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `class="el-water"`) {
		t.Errorf("html = %d", w.Code)
	}

	w = do(r, http.MethodGet, base+"/share", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "駕駛代號：阿明") {
		t.Errorf("share = %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/readings/missing/report", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing report status = %d", w.Code)
	}
}

func TestGatedRoutesHideMatrix(t *testing.T) {
	r, svc := newGatedRouter(t, session.Gate{Code: "turbo"})
	ctx := context.Background()

	d, err := svc.Create(ctx, birthInput("阿明"), nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if d.Reading.Hexagram == 0 {
		t.Fatal("expected a stored hexagram")
	}
	base := "/api/readings/" + d.Reading.ID

	w := doWithCode(r, http.MethodPost, "/api/readings/", `{"year":1954,"month":9,"day":27,"hour_slot":6,"divine":true}`, "")
	if w.Code != http.StatusForbidden {
		t.Errorf("locked create with divine: status = %d", w.Code)
	}
	w = doWithCode(r, http.MethodPost, base+"/matrix", "", "wrong")
	if w.Code != http.StatusForbidden {
		t.Errorf("locked divine: status = %d", w.Code)
	}

	w = doWithCode(r, http.MethodGet, base, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("locked get: status = %d", w.Code)
	}
	var got Detail
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Result.Matrix != nil || got.Reading.Fuel != nil || got.Reading.Hexagram != 0 {
		t.Errorf("locked get leaked the matrix: %s", w.Body.String())
	}

	w = doWithCode(r, http.MethodGet, "/api/readings/", "", "")
	if strings.Contains(w.Body.String(), `"hexagram"`) {
		t.Errorf("locked list leaked the matrix: %s", w.Body.String())
	}
	w = doWithCode(r, http.MethodGet, base+"/report.md", "", "")
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), "## 改裝矩陣") {
		t.Errorf("locked markdown = %d, should omit the matrix section", w.Code)
	}

	w = doWithCode(r, http.MethodGet, base, "", "turbo")
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Result.Matrix == nil || got.Result.Matrix.Number != d.Reading.Hexagram {
		t.Errorf("unlocked get should carry the matrix: %s", w.Body.String())
	}
	w = doWithCode(r, http.MethodPost, base+"/matrix", "", "turbo")
	if w.Code != http.StatusOK {
		t.Errorf("unlocked divine: status = %d %s", w.Code, w.Body.String())
	}
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	header http.Header
}

func (b *brokenWriter) Header() http.Header       { return b.header }
func (b *brokenWriter) WriteHeader(int)           {}
func (b *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestReportWriteFailureIsLogged(t *testing.T) {
	svc := setupService(t)
	d, err := svc.Create(context.Background(), birthInput("阿明"), nil, false)
	if err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zap.WarnLevel)
	r := chi.NewRouter()
	RegisterRoutes(r, svc, report.DefaultBrand(), session.Gate{}, zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/api/readings/"+d.Reading.ID+"/report", nil)
	r.ServeHTTP(&brokenWriter{header: http.Header{}}, req)

	entries := logs.FilterMessage("writing text report").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["id"]; got != d.Reading.ID {
		t.Errorf("logged id = %v, want %s", got, d.Reading.ID)
	}
}
