package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetcore/spreadsheet"
)

func TestWebhookDispatcher_SetAndGetWebhookURL(t *testing.T) {
	d := NewWebhookDispatcher()
	assert.Equal(t, "", d.GetWebhookURL("sheet1", "A1"))

	d.SetWebhookURL("sheet1", "A1", "https://example.com/hook")
	assert.Equal(t, "https://example.com/hook", d.GetWebhookURL("sheet1", "A1"))

	d.SetWebhookURL("sheet1", "A1", "")
	assert.Equal(t, "", d.GetWebhookURL("sheet1", "A1"))
}

func TestWebhookDispatcher_NotifyDeliversToSubscriber(t *testing.T) {
	var mu sync.Mutex
	var received cellPayload
	done := make(chan struct{}, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		_ = json.NewDecoder(r.Body).Decode(&received)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
		done <- struct{}{}
	}))
	defer server.Close()

	d := NewWebhookDispatcher()
	d.Start()
	defer d.Close()

	d.SetWebhookURL("sheet1", "A1", server.URL)
	d.Notify("sheet1", spreadsheet.FromString("A1"), spreadsheet.NumberValue(42))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.Fail(t, "webhook was never delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "sheet1", received.Sheet)
	assert.Equal(t, "A1", received.Cell)
	assert.Equal(t, "42", received.Value)
}

func TestWebhookDispatcher_NotifyWithoutSubscriberIsNoop(t *testing.T) {
	d := NewWebhookDispatcher()
	d.Start()
	defer d.Close()

	d.Notify("sheet1", spreadsheet.FromString("A1"), spreadsheet.NumberValue(1))
}
