// Package notify implements spreadsheet.Notifier as a pool of webhook
// senders, adapted from the teacher's WebhookDispatcher.go: cells with a
// registered webhook URL are posted to it on a bounded worker pool instead
// of synchronously inside the cell write that triggered them.
package notify

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	json "github.com/bytedance/sonic"

	"github.com/sheetcore/spreadsheet"
)

// WorkerCount mirrors the teacher's WebhookWorkersCount.
const WorkerCount = 5

const queueDepth = 20

type cellWebhooks map[string]string

type sendCommand struct {
	url     string
	sheetID string
	pos     spreadsheet.Position
	value   spreadsheet.Value
}

// cellPayload is what gets POSTed: the sheet id, the cell's A1 key, and the
// cell's computed value as display text. This is not the HTTP API's
// {"value","result"} cell shape; here "value" carries the computed value,
// and the cell's raw text is not included.
type cellPayload struct {
	Sheet string `json:"sheet"`
	Cell  string `json:"cell"`
	Value string `json:"value"`
}

// WebhookDispatcher fans changed cells out to subscriber URLs. It
// implements spreadsheet.Notifier.
type WebhookDispatcher struct {
	queue    chan sendCommand
	webhooks map[string]cellWebhooks
	client   *http.Client
}

func NewWebhookDispatcher() *WebhookDispatcher {
	return &WebhookDispatcher{
		queue:    make(chan sendCommand, queueDepth),
		webhooks: map[string]cellWebhooks{},
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// SetWebhookURL registers or clears (webhookURL == "") the subscriber for
// one cell of one sheet.
func (d *WebhookDispatcher) SetWebhookURL(sheetID, cellKey, webhookURL string) {
	if _, ok := d.webhooks[sheetID]; !ok {
		d.webhooks[sheetID] = cellWebhooks{}
	}
	if webhookURL == "" {
		delete(d.webhooks[sheetID], cellKey)
	} else {
		d.webhooks[sheetID][cellKey] = webhookURL
	}
}

// GetWebhookURL returns the registered subscriber for a cell, or "".
func (d *WebhookDispatcher) GetWebhookURL(sheetID, cellKey string) string {
	return d.webhooks[sheetID][cellKey]
}

// Notify implements spreadsheet.Notifier. It never blocks the caller: a
// matching subscription is handed to the queue from a new goroutine, the
// same indirection the teacher used to keep cell writes non-blocking.
func (d *WebhookDispatcher) Notify(sheetID string, pos spreadsheet.Position, value spreadsheet.Value) {
	url := d.GetWebhookURL(sheetID, pos.String())
	if url == "" {
		return
	}
	go func() {
		d.queue <- sendCommand{url: url, sheetID: sheetID, pos: pos, value: value}
	}()
}

// Start launches the fixed-size worker pool. Must be called once before
// any Notify call can be expected to deliver.
func (d *WebhookDispatcher) Start() {
	for i := 0; i < WorkerCount; i++ {
		go d.runWorker()
	}
}

// Close shuts the queue down; workers drain remaining commands then exit.
func (d *WebhookDispatcher) Close() {
	close(d.queue)
}

func (d *WebhookDispatcher) runWorker() {
	for cmd := range d.queue {
		payload, _ := json.Marshal(cellPayload{
			Sheet: cmd.sheetID,
			Cell:  cmd.pos.String(),
			Value: cmd.value.String(),
		})
		resp, err := d.client.Post(cmd.url, "application/json", bytes.NewReader(payload))
		if err != nil {
			fmt.Printf("webhook send error: %s\n", err)
			continue
		}
		if resp.StatusCode >= 300 {
			fmt.Printf("unexpected webhook response status: %s\n", resp.Status)
		}
		resp.Body.Close()
	}
}
