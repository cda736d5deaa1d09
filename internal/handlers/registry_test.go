package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"alpr_gateway/internal/models"
	"alpr_gateway/internal/service"
)

func TestPeopleHandlers(t *testing.T) {
	people := &mockPeople{people: []models.Person{{ID: 1, Name: "Ivan", CarNumber: "А123ВС77"}}}
	r := newTestRouter(&service.Service{People: people})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/people?search=iv", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}
	var list struct {
		People []models.Person `json:"people"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list.People) != 1 {
		t.Fatalf("list body %s, err %v", w.Body.String(), err)
	}
	if people.lastSearch != "iv" {
		t.Fatalf("search not forwarded: %q", people.lastSearch)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/people", bytes.NewReader([]byte(`{"name":"Olga","car_number":"b777bb77"}`))))
	if w.Code != http.StatusOK {
		t.Fatalf("save status=%d body=%s", w.Code, w.Body.String())
	}

	people.saveErr = service.ErrCarNumberRequired
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/people", bytes.NewReader([]byte(`{"name":"Olga"}`))))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("validation: got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/people/5", nil))
	if w.Code != http.StatusOK || people.lastDelete != 5 {
		t.Fatalf("delete status=%d id=%d", w.Code, people.lastDelete)
	}

	people.deleteErr = service.ErrPersonNotFound
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/people/5", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing person: got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/people/abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: got %d", w.Code)
	}
}

func TestPointHandlers(t *testing.T) {
	points := &mockPoints{points: []models.AccessPoint{{ID: 1, Name: "Gate", BranchIn: "ALPR/Gate/IN"}}}
	r := newTestRouter(&service.Service{Points: points})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/points", nil))
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"mqtt_branch_in":"ALPR/Gate/IN"`)) {
		t.Fatalf("list status=%d body=%s", w.Code, w.Body.String())
	}

	points.saveErr = service.ErrPointNameRequired
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/points", bytes.NewReader([]byte(`{}`))))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("validation: got %d", w.Code)
	}

	points.deleteErr = service.ErrPointNotFound
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/points/3", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing point: got %d", w.Code)
	}
}
