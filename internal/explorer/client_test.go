package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"volumeScope/internal/model"
)

const testAddress = "0x1234567890123456789012345678901234567890"

func testPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, PageDelay: 0}
}

func writePage(t *testing.T, w http.ResponseWriter, records []model.TransactionRecord) {
	t.Helper()
	result, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal records: %v", err)
	}
	writeEnvelope(t, w, envelope{Status: "1", Message: "OK", Result: result})
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, env envelope) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(env); err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
}

func fullPage() []model.TransactionRecord {
	records := make([]model.TransactionRecord, pageSize)
	for i := range records {
		records[i] = model.TransactionRecord{
			Hash:  fmt.Sprintf("0x%064x", i),
			To:    testAddress,
			Value: "1",
		}
	}
	return records
}

func TestFetchAllPaginatesUntilShortPage(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		switch r.URL.Query().Get("page") {
		case "1":
			writePage(t, w, fullPage())
		case "2":
			writePage(t, w, []model.TransactionRecord{{Hash: "0xlast", Value: "2"}})
		default:
			t.Errorf("unexpected page request: %s", r.URL.Query().Get("page"))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testPolicy(), nil)
	records, err := client.FetchAll(context.Background(), ActionTxList, testAddress, 8453)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != pageSize+1 {
		t.Fatalf("records = %d, want %d", len(records), pageSize+1)
	}
	if got := atomic.LoadInt32(&requests); got != 2 {
		t.Fatalf("requests = %d, want 2", got)
	}
	// Order is preserved: the short page's record comes last.
	if records[len(records)-1].Hash != "0xlast" {
		t.Fatalf("last record = %q, want 0xlast", records[len(records)-1].Hash)
	}
}

func TestFetchAllStopsOnEndOfData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, envelope{Status: "0", Message: "No transactions found", Result: json.RawMessage(`[]`)})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testPolicy(), nil)
	records, err := client.FetchAll(context.Background(), ActionTokenTx, testAddress, 137)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %d, want 0", len(records))
	}
}

func TestFetchAllSendsExpectedQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		expect := map[string]string{
			"module":     "account",
			"action":     "tokentx",
			"address":    testAddress,
			"startblock": "0",
			"endblock":   "99999999",
			"sort":       "asc",
			"chainId":    "42161",
			"page":       "1",
			"offset":     "10000",
			"apikey":     "test-key",
		}
		for key, want := range expect {
			if got := q.Get(key); got != want {
				t.Errorf("query %s = %q, want %q", key, got, want)
			}
		}
		writePage(t, w, nil)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testPolicy(), nil)
	if _, err := client.FetchAll(context.Background(), ActionTokenTx, testAddress, 42161); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchAllRetriesThenSucceeds(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writePage(t, w, []model.TransactionRecord{{Hash: "0xok", Value: "1"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testPolicy(), nil)
	records, err := client.FetchAll(context.Background(), ActionTxList, testAddress, 8453)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Hash != "0xok" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("attempts = %d, want 3", got)
	}
}

func TestFetchAllExhaustsRetries(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testPolicy(), nil)
	_, err := client.FetchAll(context.Background(), ActionTxList, testAddress, 8453)

	var netErr *model.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("want NetworkError, got %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("attempts = %d, want 3", got)
	}
}

func TestFetchAllBusySignalFailsFast(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		writeEnvelope(t, w, envelope{
			Status:  "0",
			Message: "NOTOK",
			Result:  json.RawMessage(`"Max rate limit reached"`),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testPolicy(), nil)
	_, err := client.FetchAll(context.Background(), ActionTxList, testAddress, 8453)

	var busy *model.ProviderBusyError
	if !errors.As(err, &busy) {
		t.Fatalf("want ProviderBusyError, got %v", err)
	}
	if busy.Message != "Max rate limit reached" {
		t.Fatalf("busy message = %q", busy.Message)
	}
	// The busy signal must not burn the remaining retry budget.
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("attempts = %d, want 1", got)
	}
}
