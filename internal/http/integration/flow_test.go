package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/porsenia/sportreg/internal/config"
	apphttp "github.com/porsenia/sportreg/internal/http"
	"github.com/porsenia/sportreg/internal/ledger"
	"github.com/porsenia/sportreg/internal/registration"
	"github.com/porsenia/sportreg/internal/store/memory"
)

func testConfig() config.Config {
	return config.Config{
		Env:     "test",
		Port:    0, // not used in tests
		Backend: "memory",
	}
}

type apiErrorResponse struct {
	Error struct {
		Code      string          `json:"code"`
		Message   string          `json:"message"`
		RequestID string          `json:"requestId"`
		Details   json.RawMessage `json:"details"`
	} `json:"error"`
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	led := ledger.New(memory.New(), logger, nil)

	return apphttp.NewRouter(logger, testConfig(), apphttp.Deps{Ledger: led})
}

func doJSON(t *testing.T, r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func createRegistration(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/registrations", `{}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal create response: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("create returned no id")
	}

	return resp.ID
}

// the whole flow end to end: cart -> step 1 -> entry -> step 2 -> summary ->
// step 3, against the real router, ledger and memory store.
func TestRegistrationFlow_HappyPath(t *testing.T) {
	r := setupTestRouter(t)
	id := createRegistration(t, r)
	base := "/registrations/" + id

	// step 1: one tapak suci single with a weight class
	w := doJSON(t, r, http.MethodPost, base+"/selections", `{
		"sportId": "tapak_suci",
		"categoryId": "ts_tanding_perorangan",
		"educationLevel": "sma",
		"technicalParams": {"kelas-tanding": "sedang"}
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add selection got %d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, base+"/step1", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("step1 got %d, body=%s", w.Code, w.Body.String())
	}

	// step 2: one entry in the cart's only category
	w = doJSON(t, r, http.MethodPost, base+"/categories/ts_tanding_perorangan/entries", `{
		"participants": [{
			"name": "Adi Pratama",
			"nationalId": "3201234567890001",
			"birthDate": "2007-02-03",
			"gender": "L",
			"phone": "081234567890",
			"email": "adi@sman1.sch.id",
			"school": "SMA Negeri 1"
		}]
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add entry got %d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, base+"/step2", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("step2 got %d, body=%s", w.Code, w.Body.String())
	}

	var afterStep2 registration.Progress
	if err := json.Unmarshal(w.Body.Bytes(), &afterStep2); err != nil {
		t.Fatalf("failed to unmarshal step2 response: %v", err)
	}
	if afterStep2.Step2Data.TotalEntries != 1 {
		t.Fatalf("totalEntries = %d, want 1", afterStep2.Step2Data.TotalEntries)
	}

	// summary recomputed from the stored buckets
	w = doJSON(t, r, http.MethodGet, base+"/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("summary got %d, body=%s", w.Code, w.Body.String())
	}

	var summary struct {
		TotalEntries        int    `json:"totalEntries"`
		GrandTotal          int64  `json:"grandTotal"`
		GrandTotalFormatted string `json:"grandTotalFormatted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to unmarshal summary: %v", err)
	}
	if summary.GrandTotal != 100_000 {
		t.Fatalf("grandTotal = %d, want 100000", summary.GrandTotal)
	}
	if summary.GrandTotalFormatted != "Rp 100.000" {
		t.Fatalf("formatted = %q", summary.GrandTotalFormatted)
	}

	// step 3: submit with the computed total
	w = doJSON(t, r, http.MethodPost, base+"/step3", `{
		"breakdown": {"participantFee": 100000, "officialFee": 0, "total": 100000, "isTeamSport": false},
		"grandTotal": 100000
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("step3 got %d, body=%s", w.Code, w.Body.String())
	}

	// final state survives a fresh read
	w = doJSON(t, r, http.MethodGet, base, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get got %d, body=%s", w.Code, w.Body.String())
	}

	var final registration.Progress
	if err := json.Unmarshal(w.Body.Bytes(), &final); err != nil {
		t.Fatalf("failed to unmarshal progress: %v", err)
	}
	if !final.Step1Complete || !final.Step2Complete || !final.Step3Complete {
		t.Fatalf("expected the whole flow complete, got %+v", final)
	}
	if final.Step3Data.GrandTotal != 100_000 {
		t.Fatalf("persisted grandTotal = %d", final.Step3Data.GrandTotal)
	}
}

func TestRegistrationFlow_StepGating(t *testing.T) {
	r := setupTestRouter(t)
	id := createRegistration(t, r)
	base := "/registrations/" + id

	// an entry before step 1 is blocked, with a pointer at the required step
	w := doJSON(t, r, http.MethodPost, base+"/categories/ts_tanding_perorangan/entries", `{"participants": []}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("entry before step1 got %d, want 403, body=%s", w.Code, w.Body.String())
	}

	var resp apiErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error: %v", err)
	}
	if resp.Error.Code != "step_locked" {
		t.Fatalf("error code = %q, want step_locked", resp.Error.Code)
	}

	var details struct {
		RequiredStep int `json:"requiredStep"`
	}
	if err := json.Unmarshal(resp.Error.Details, &details); err != nil {
		t.Fatalf("failed to unmarshal details: %v", err)
	}
	if details.RequiredStep != 1 {
		t.Fatalf("requiredStep = %d, want 1", details.RequiredStep)
	}

	// summary before step 2 is blocked the same way
	w = doJSON(t, r, http.MethodGet, base+"/summary", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("summary before step2 got %d, want 403, body=%s", w.Code, w.Body.String())
	}
}

func TestRegistrationFlow_DuplicateSelection(t *testing.T) {
	r := setupTestRouter(t)
	id := createRegistration(t, r)
	base := "/registrations/" + id

	body := `{"sportId": "badminton", "categoryId": "bt_tunggal_putra", "educationLevel": "sma"}`

	if w := doJSON(t, r, http.MethodPost, base+"/selections", body); w.Code != http.StatusCreated {
		t.Fatalf("first add got %d, body=%s", w.Code, w.Body.String())
	}

	w := doJSON(t, r, http.MethodPost, base+"/selections", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate got %d, want 409, body=%s", w.Code, w.Body.String())
	}

	// cart stayed at one line
	w = doJSON(t, r, http.MethodGet, base, "")

	var p registration.Progress
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to unmarshal progress: %v", err)
	}
	if got := len(p.Selections()); got != 1 {
		t.Fatalf("cart has %d selections, want 1", got)
	}
}

func TestRegistrationFlow_ResetStartsOver(t *testing.T) {
	r := setupTestRouter(t)
	id := createRegistration(t, r)
	base := "/registrations/" + id

	body := `{"sportId": "badminton", "categoryId": "bt_tunggal_putra", "educationLevel": "sma"}`
	if w := doJSON(t, r, http.MethodPost, base+"/selections", body); w.Code != http.StatusCreated {
		t.Fatalf("add got %d, body=%s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodPost, base+"/step1", `{}`); w.Code != http.StatusOK {
		t.Fatalf("step1 got %d, body=%s", w.Code, w.Body.String())
	}

	if w := doJSON(t, r, http.MethodDelete, base, ""); w.Code != http.StatusNoContent {
		t.Fatalf("reset got %d, body=%s", w.Code, w.Body.String())
	}

	w := doJSON(t, r, http.MethodGet, base, "")

	var p registration.Progress
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to unmarshal progress: %v", err)
	}
	if p.Step1Complete || p.Step1Data != nil {
		t.Fatalf("progress survived reset: %+v", p)
	}

	// and step 2 is locked again
	w = doJSON(t, r, http.MethodPost, base+"/step2", `{}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("step2 after reset got %d, want 403, body=%s", w.Code, w.Body.String())
	}
}

func TestRegistrationFlow_TeamSport(t *testing.T) {
	r := setupTestRouter(t)
	id := createRegistration(t, r)
	base := "/registrations/" + id

	if w := doJSON(t, r, http.MethodPost, base+"/selections",
		`{"sportId": "voli_indoor", "categoryId": "vi_putra", "educationLevel": "sma"}`); w.Code != http.StatusCreated {
		t.Fatalf("add selection got %d, body=%s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodPost, base+"/step1", `{}`); w.Code != http.StatusOK {
		t.Fatalf("step1 got %d, body=%s", w.Code, w.Body.String())
	}

	// a 7-member roster is under the category minimum of 8
	small := teamBody(7)
	w := doJSON(t, r, http.MethodPost, base+"/categories/vi_putra/entries", small)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("small roster got %d, want 422, body=%s", w.Code, w.Body.String())
	}

	full := teamBody(8)
	w = doJSON(t, r, http.MethodPost, base+"/categories/vi_putra/entries", full)
	if w.Code != http.StatusCreated {
		t.Fatalf("full roster got %d, body=%s", w.Code, w.Body.String())
	}

	if w := doJSON(t, r, http.MethodPost, base+"/step2", `{}`); w.Code != http.StatusOK {
		t.Fatalf("step2 got %d, body=%s", w.Code, w.Body.String())
	}

	// one team entry prices at the category's flat per-entry rate
	w = doJSON(t, r, http.MethodGet, base+"/summary", "")

	var summary struct {
		TotalEntries int   `json:"totalEntries"`
		GrandTotal   int64 `json:"grandTotal"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to unmarshal summary: %v", err)
	}
	if summary.TotalEntries != 1 || summary.GrandTotal != 1_200_000 {
		t.Fatalf("summary = %+v", summary)
	}
}

func teamBody(members int) string {
	team := map[string]interface{}{
		"name":         "Garuda Muda",
		"categoryTag":  "putra",
		"managerName":  "Pak Budi",
		"managerPhone": "081298765432",
		"school":       "SMA Negeri 1",
	}

	roster := make([]map[string]string, 0, members)
	for i := 0; i < members; i++ {
		roster = append(roster, map[string]string{
			"name":       "Anggota",
			"nationalId": "3201234567890002",
			"birthDate":  "2007-01-01",
		})
	}
	team["members"] = roster

	payload, _ := json.Marshal(map[string]interface{}{"team": team})

	return string(payload)
}
