package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTMX_RequestDetection(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	r.Header.Set("Hx-Request", "true")
	if !IsHTMX(r) || !WantsPartial(r) {
		t.Fatal("expected htmx request to want a partial")
	}

	r2 := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	if IsHTMX(r2) || IsHistoryRestore(r2) {
		t.Fatal("expected defaults to false")
	}

	r.Header.Set("Hx-History-Restore-Request", "true")
	if !IsHistoryRestore(r) || !WantsPartial(r) {
		t.Fatal("history restore should still want partial")
	}
}

func TestHTMX_ResponseHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	HTMX(rr).Trigger(EventJobRemoved, map[string]string{"id": "job-1"}).Reswap("none").Empty()

	res := rr.Result()
	t.Cleanup(func() { _ = res.Body.Close() })
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", res.StatusCode)
	}
	if got := res.Header.Get("Hx-Reswap"); got != "none" {
		t.Fatalf("HX-Reswap: %q", got)
	}
	var payload map[string]map[string]string
	if err := json.Unmarshal([]byte(res.Header.Get("Hx-Trigger")), &payload); err != nil {
		t.Fatalf("unmarshal trigger: %v", err)
	}
	if payload[EventJobRemoved]["id"] != "job-1" {
		t.Fatalf("unexpected HX-Trigger payload: %v", payload)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rr.Body.String())
	}
}

func TestHTMX_TriggerWithoutPayload(t *testing.T) {
	rr := httptest.NewRecorder()
	SetHXTrigger(rr, "refresh", nil)
	if got := rr.Header().Get("Hx-Trigger"); got != `{"refresh":true}` {
		t.Fatalf("HX-Trigger: %q", got)
	}
}

func TestHTMX_Redirect(t *testing.T) {
	rr := httptest.NewRecorder()
	HTMX(rr).Redirect("/jobs")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: %d", rr.Code)
	}
	if got := rr.Header().Get("Hx-Redirect"); got != "/jobs" {
		t.Fatalf("HX-Redirect: %q", got)
	}
}
