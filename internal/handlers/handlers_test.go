package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cryosure/internal/client"
	"cryosure/internal/dashboard"
	"cryosure/internal/models"
	"cryosure/internal/service"
	"cryosure/internal/validator"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Buffer
	if body != "" {
		rdr = bytes.NewBufferString(body)
	} else {
		rdr = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, rdr)
	for k, vv := range jsonHeader() {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type stateResp struct {
	Status           string            `json:"status"`
	Error            string            `json:"error"`
	State            dashboard.State   `json:"state"`
	ValidationErrors map[string]string `json:"validationErrors"`
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) stateResp {
	t.Helper()
	var out stateResp
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v (body=%s)", err, w.Body.String())
	}
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := do(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("cryosure_http_requests_total")) {
		t.Fatalf("metrics status=%d", w.Code)
	}
}

func TestGetState(t *testing.T) {
	st := dashboard.InitialState()
	st.Draft.FacilityName = "Depot 7"
	r := newTestRouter(&service.Service{Monitoring: &mockMonitoring{state: st}})

	w := do(t, r, http.MethodGet, "/api/v1/state", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got dashboard.State
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Draft.FacilityName != "Depot 7" || got.Step != dashboard.StepBasicInfo || got.StepTitle != "Basic Info" {
		t.Fatalf("unexpected state %+v", got)
	}
}

func TestEditFields(t *testing.T) {
	wiz := &mockWizard{state: dashboard.InitialState()}
	r := newTestRouter(&service.Service{Wizard: wiz})

	w := do(t, r, http.MethodPatch, "/api/v1/draft/fields", `{"minTemp":"2","maxTemp":"8"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if wiz.lastFields[models.FieldMinTemp] != "2" || wiz.lastFields[models.FieldMaxTemp] != "8" {
		t.Fatalf("fields not passed: %v", wiz.lastFields)
	}

	if w := do(t, r, http.MethodPatch, "/api/v1/draft/fields", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("empty body: expected 400, got %d", w.Code)
	}
	if w := do(t, r, http.MethodPatch, "/api/v1/draft/fields", `not json`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json: expected 400, got %d", w.Code)
	}

	wiz.err = dashboard.ErrUnknownField
	if w := do(t, r, http.MethodPatch, "/api/v1/draft/fields", `{"bogus":"1"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: expected 400, got %d", w.Code)
	}
}

func TestSelectStorageTypeAndPreset(t *testing.T) {
	wiz := &mockWizard{state: dashboard.InitialState()}
	r := newTestRouter(&service.Service{Wizard: wiz})

	if w := do(t, r, http.MethodPost, "/api/v1/draft/storage-type", `{"name":"Wine"}`); w.Code != http.StatusOK || wiz.lastName != "Wine" {
		t.Fatalf("storage-type status=%d name=%q", w.Code, wiz.lastName)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/draft/preset", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing name: expected 400, got %d", w.Code)
	}
	wiz.err = dashboard.ErrUnknownPreset
	if w := do(t, r, http.MethodPost, "/api/v1/draft/preset", `{"name":"Lava"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown preset: expected 400, got %d", w.Code)
	}
}

func TestStepNavigation(t *testing.T) {
	wiz := &mockWizard{state: dashboard.InitialState(), err: dashboard.ErrStepIncomplete}
	r := newTestRouter(&service.Service{Wizard: wiz})

	w := do(t, r, http.MethodPost, "/api/v1/draft/next", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if resp := decodeState(t, w); resp.Error != dashboard.ErrStepIncomplete.Error() {
		t.Fatalf("unexpected error %q", resp.Error)
	}

	wiz.err = nil
	if w := do(t, r, http.MethodPost, "/api/v1/draft/prev", ""); w.Code != http.StatusOK || wiz.prevCalls != 1 {
		t.Fatalf("prev status=%d calls=%d", w.Code, wiz.prevCalls)
	}
}

func TestSubmit_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"success", nil, http.StatusOK, ""},
		{"validation", &validator.ValidationError{Fields: map[string]string{"alertEmail": "Please enter a valid email address"}}, http.StatusUnprocessableEntity, ""},
		{"not at review", dashboard.ErrNotAtReview, http.StatusConflict, dashboard.ErrNotAtReview.Error()},
		{"api error", &client.SubmissionError{Status: 500, Body: "boom"}, http.StatusBadGateway, "Error: API Error: 500 - boom"},
		{"not configured", &client.ConfigurationError{Key: "endpoints.write_url"}, http.StatusServiceUnavailable, "Configuration error: endpoints.write_url is not configured"},
		{"unexpected", errors.New("kaboom"), http.StatusInternalServerError, errInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wiz := &mockWizard{state: dashboard.InitialState(), err: tc.err}
			r := newTestRouter(&service.Service{Wizard: wiz})

			w := do(t, r, http.MethodPost, "/api/v1/draft/submit", "")
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			resp := decodeState(t, w)
			if tc.wantMsg != "" && resp.Error != tc.wantMsg {
				t.Fatalf("error=%q want %q", resp.Error, tc.wantMsg)
			}
			if tc.name == "validation" && resp.ValidationErrors["alertEmail"] == "" {
				t.Fatalf("validation errors missing: %s", w.Body.String())
			}
			if wiz.submitCalls != 1 {
				t.Fatalf("submit calls=%d", wiz.submitCalls)
			}
		})
	}
}

func TestSwitchViewAndMonitoring(t *testing.T) {
	temp, hum := 3.2, 81.0
	st := dashboard.InitialState()
	st.View = dashboard.ViewMonitoring
	st.Readings = []models.SensorReading{{Temperature: &temp, Humidity: &hum, Status: models.SeverityWarning}}
	st.Snapshot = &models.RealTimeSnapshot{CurrentTemp: temp, CurrentHumidity: hum, Status: models.SeverityWarning}
	mon := &mockMonitoring{state: st}
	r := newTestRouter(&service.Service{Monitoring: mon})

	w := do(t, r, http.MethodPost, "/api/v1/view", `{"view":"monitoring"}`)
	if w.Code != http.StatusOK || mon.lastView != dashboard.ViewMonitoring {
		t.Fatalf("view status=%d view=%q", w.Code, mon.lastView)
	}

	w = do(t, r, http.MethodGet, "/api/v1/monitoring", "")
	if w.Code != http.StatusOK {
		t.Fatalf("monitoring status=%d", w.Code)
	}
	var out struct {
		Count    int                      `json:"count"`
		Snapshot *models.RealTimeSnapshot `json:"snapshot"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 1 || out.Snapshot == nil || out.Snapshot.Status != models.SeverityWarning {
		t.Fatalf("unexpected monitoring body %s", w.Body.String())
	}

	mon.err = &client.ConfigurationError{Key: "endpoints.read_url"}
	w = do(t, r, http.MethodPost, "/api/v1/monitoring/refresh", "")
	if w.Code != http.StatusServiceUnavailable || mon.refreshes != 1 {
		t.Fatalf("refresh status=%d refreshes=%d", w.Code, mon.refreshes)
	}

	mon.err = dashboard.ErrUnknownView
	if w := do(t, r, http.MethodPost, "/api/v1/view", `{"view":"other"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown view: expected 400, got %d", w.Code)
	}
}

func TestNotificationsAndDismiss(t *testing.T) {
	st := dashboard.InitialState()
	now := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	st.Notifications = st.Notifications.Push("Configuration saved successfully", models.NotificationSuccess, now)
	st.Message = &dashboard.Message{Text: "Configuration saved successfully!", Kind: models.NotificationSuccess}

	wiz := &mockWizard{state: st}
	r := newTestRouter(&service.Service{Wizard: wiz, Monitoring: &mockMonitoring{state: st}})

	w := do(t, r, http.MethodGet, "/api/v1/notifications", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var out struct {
		Count         int                   `json:"count"`
		Notifications []models.Notification `json:"notifications"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 1 || out.Notifications[0].Kind != models.NotificationSuccess {
		t.Fatalf("unexpected notifications %s", w.Body.String())
	}

	w = do(t, r, http.MethodDelete, "/api/v1/message", "")
	if w.Code != http.StatusOK {
		t.Fatalf("dismiss status=%d", w.Code)
	}
	if resp := decodeState(t, w); resp.State.Message != nil || resp.Status != statusOK {
		t.Fatalf("message not dismissed: %s", w.Body.String())
	}
}
