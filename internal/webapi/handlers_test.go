package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spboyer/vitta/internal/models"
	"github.com/spboyer/vitta/internal/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore implements PlanStore for testing.
type mockStore struct {
	plans   map[string]*models.Transcript
	listErr error
	getErr  error
}

func newMockStore() *mockStore {
	return &mockStore{plans: make(map[string]*models.Transcript)}
}

func (m *mockStore) ListPlans() ([]PlanSummary, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	plans := make([]PlanSummary, 0, len(m.plans))
	for name, t := range m.plans {
		plans = append(plans, PlanSummary{Name: name, Timestamp: t.Timestamp, DateReadable: t.DateReadable, SizeKB: 1.5})
	}
	return plans, nil
}

func (m *mockStore) GetPlan(name string) (*models.Transcript, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	t, ok := m.plans[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	return t, nil
}

const planName = "finance_plan_20251130_103000.json"

func sampleRun() models.PipelineRun {
	return models.PipelineRun{
		RunID: "3f2a9c1e-7b1d-4c55-9e0a-1d2b3c4d5e6f",
		Input: models.GoalInput{
			MonthlyIncome:       50000,
			TargetAmount:        1000000,
			Years:               5,
			RiskProfile:         models.RiskMedium,
			AnnualReturnPercent: 12,
		},
		Sip: models.SipResult{
			MonthlyContribution: 12244.45,
			TotalContributed:    734666.86,
			ProjectedGain:       265333.14,
			TargetValue:         1000000,
		},
		AdvisorText: "लक्ष्य संभव है।",
		RiskText:    "मध्यम जोखिम।",
		PlanText:    "हर महीने SIP करें।",
	}
}

func sampleTranscript() *models.Transcript {
	ts := time.Date(2025, 11, 30, 10, 30, 0, 0, time.UTC)
	return transcript.NewStore("").Build(sampleRun(), ts)
}

func serve(t *testing.T, store PlanStore, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	RegisterRoutes(mux, store)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := serve(t, newMockStore(), "/api/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, Version, body.Version)
}

func TestHandlePlans(t *testing.T) {
	store := newMockStore()
	store.plans[planName] = sampleTranscript()

	rec := serve(t, store, "/api/plans")
	require.Equal(t, http.StatusOK, rec.Code)

	var plans []PlanSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, planName, plans[0].Name)
	assert.Equal(t, "30 November 2025, 10:30 AM", plans[0].DateReadable)
}

func TestHandlePlans_Empty(t *testing.T) {
	rec := serve(t, newMockStore(), "/api/plans")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestHandlePlans_StoreError(t *testing.T) {
	store := newMockStore()
	store.listErr = errors.New("list failed")

	rec := serve(t, store, "/api/plans")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, http.StatusInternalServerError, errResp.Code)
	assert.Contains(t, errResp.Error, "list failed")
}

func TestHandlePlanDetail(t *testing.T) {
	store := newMockStore()
	store.plans[planName] = sampleTranscript()

	rec := serve(t, store, "/api/plans/"+planName)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail PlanDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, planName, detail.Name)
	require.NotNil(t, detail.Transcript)
	assert.Equal(t, "लक्ष्य संभव है।", detail.Transcript.AgentOutputs.Advisor.Output)
	assert.Contains(t, detail.Summary, "- Required Monthly SIP: ₹12,244.45")
}

func TestHandlePlanDetail_NotFound(t *testing.T) {
	rec := serve(t, newMockStore(), "/api/plans/"+planName)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "plan not found", errResp.Error)
}

func TestHandlePlanDetail_StoreError(t *testing.T) {
	store := newMockStore()
	store.getErr = errors.New("disk on fire")

	rec := serve(t, store, "/api/plans/"+planName)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandlePlanPage(t *testing.T) {
	store := newMockStore()
	store.plans[planName] = sampleTranscript()

	rec := serve(t, store, "/plans/"+planName)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<h1>📋 आपकी पूर्ण वित्तीय योजना</h1>")
	assert.Contains(t, rec.Body.String(), "हर महीने SIP करें।")
}

func TestHandlePlanPage_NotFound(t *testing.T) {
	rec := serve(t, newMockStore(), "/plans/"+planName)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Not Found</h1>")
}

func TestHandleIndex(t *testing.T) {
	store := newMockStore()
	store.plans[planName] = sampleTranscript()

	rec := serve(t, store, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<a href="/plans/`+planName+`">`+planName+`</a>`)
	assert.Contains(t, body, "<td>1.50</td>")
}

func TestHandleIndex_Empty(t *testing.T) {
	rec := serve(t, newMockStore(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "अभी कोई योजना सहेजी नहीं गई है।")
}

func TestHandleIndex_UnknownPath(t *testing.T) {
	rec := serve(t, newMockStore(), "/favicon.ico")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORSMiddleware(next, "http://localhost:5173")

	req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/plans", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2025, 11, 30, 10, 30, 0, 0, time.UTC)
	s := transcript.NewStore(dir)
	s.Now = func() time.Time { return ts }
	_, err := s.Save(sampleRun())
	require.NoError(t, err)

	fs := NewFileStore(dir)

	plans, err := fs.ListPlans()
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, planName, plans[0].Name)
	assert.Greater(t, plans[0].SizeKB, 0.0)

	got, err := fs.GetPlan(planName)
	require.NoError(t, err)
	assert.Equal(t, sampleRun().RunID, got.Metadata.RunID)

	for _, name := range []string{"finance_plan_20200101_000000.json", "../etc/passwd", "notes.json"} {
		_, err := fs.GetPlan(name)
		assert.ErrorIs(t, err, ErrPlanNotFound, name)
	}
}

func TestFileStore_MissingDir(t *testing.T) {
	fs := NewFileStore(t.TempDir() + "/nope")
	plans, err := fs.ListPlans()
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestFileStore_CorruptPlan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeFile(dir+"/"+planName, "{not json"))

	_, err := NewFileStore(dir).GetPlan(planName)
	var parseErr *transcript.ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.False(t, errors.Is(err, ErrPlanNotFound))
	assert.True(t, strings.HasSuffix(parseErr.Path, planName))
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
