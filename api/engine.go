// Package api exposes a spreadsheet.Sheet collection over HTTP, adapted
// from the teacher's ApiController.go/router.go/ServiceContainer.go/App.go.
package api

import (
	"strings"
	"sync"

	"github.com/sheetcore/spreadsheet"
	"github.com/sheetcore/spreadsheet/formula"
	"github.com/sheetcore/spreadsheet/storage"
)

var (
	// ErrSheetNotFound mirrors the teacher's contracts.SheetNotFoundError.
	ErrSheetNotFound = sheetNotFoundError{}
	// ErrCellNotFound mirrors the teacher's contracts.CellNotFoundError.
	ErrCellNotFound = cellNotFoundError{}
)

type sheetNotFoundError struct{}

func (sheetNotFoundError) Error() string { return "sheet not found" }

type cellNotFoundError struct{}

func (cellNotFoundError) Error() string { return "cell not found" }

// guardedSheet pairs a Sheet with the mutex that serializes access to it:
// a spreadsheet.Sheet is not safe for concurrent mutation, so every HTTP
// handler that touches one must hold its sheet's lock for the duration.
type guardedSheet struct {
	mu    sync.Mutex
	sheet *spreadsheet.Sheet
}

// WebhookRegistrar is the subset of notify.WebhookDispatcher the engine
// needs, kept as an interface so Engine does not depend on notify's
// concrete dispatcher type.
type WebhookRegistrar interface {
	spreadsheet.Notifier
	SetWebhookURL(sheetID, cellKey, webhookURL string)
}

// Engine owns every open sheet plus the durable store and webhook
// dispatcher shared across them, the same collaborators the teacher's
// ServiceContainer wired into one SheetRepository.
type Engine struct {
	store      *storage.Store
	dispatcher WebhookRegistrar

	mu     sync.Mutex
	sheets map[string]*guardedSheet
}

func NewEngine(store *storage.Store, dispatcher WebhookRegistrar) *Engine {
	return &Engine{
		store:      store,
		dispatcher: dispatcher,
		sheets:     map[string]*guardedSheet{},
	}
}

func canonicalSheetID(sheetID string) string {
	return strings.ToLower(sheetID)
}

// sheetFor returns the guarded sheet for id, loading it from the store
// and rehydrating its cells on first access.
func (e *Engine) sheetFor(id string) (*guardedSheet, error) {
	id = canonicalSheetID(id)

	e.mu.Lock()
	defer e.mu.Unlock()

	if gs, ok := e.sheets[id]; ok {
		return gs, nil
	}

	sheet := spreadsheet.NewSheet(id, formula.Parse)
	if e.dispatcher != nil {
		sheet.SetNotifier(e.dispatcher)
	}

	stored, err := e.store.LoadSheet(id)
	if err != nil {
		return nil, err
	}
	for pos, text := range stored {
		// Rehydration replays raw text through the same validation path a
		// live write takes; a record that no longer parses (e.g. written
		// by a since-changed grammar) is skipped rather than aborting the
		// whole sheet.
		_ = sheet.SetCell(pos, text)
	}

	gs := &guardedSheet{sheet: sheet}
	e.sheets[id] = gs
	return gs, nil
}

// SetCell parses and stores cellID's new text on sheetID, persisting it
// and returning the resulting value's display text.
func (e *Engine) SetCell(sheetID, cellID, text string) (value string, err error) {
	pos := spreadsheet.FromString(cellID)
	if !pos.IsValid() {
		return "", spreadsheet.ErrInvalidPosition
	}

	gs, err := e.sheetFor(sheetID)
	if err != nil {
		return "", err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := gs.sheet.SetCell(pos, text); err != nil {
		return "", err
	}

	cell, _ := gs.sheet.GetCell(pos)
	var deps []spreadsheet.Position
	if cell != nil {
		deps = cell.GetReferencedCells()
	}
	if err := e.store.SaveCell(canonicalSheetID(sheetID), pos, text, deps); err != nil {
		return "", err
	}

	return cell.GetValue().String(), nil
}

// GetCell returns cellID's stored text and current value on sheetID.
func (e *Engine) GetCell(sheetID, cellID string) (text, value string, err error) {
	pos := spreadsheet.FromString(cellID)
	if !pos.IsValid() {
		return "", "", spreadsheet.ErrInvalidPosition
	}

	gs, err := e.sheetFor(sheetID)
	if err != nil {
		return "", "", err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	cell, _ := gs.sheet.GetCell(pos)
	if cell == nil {
		return "", "", ErrCellNotFound
	}
	return cell.GetText(), cell.GetValue().String(), nil
}

// CellSnapshot is one populated cell's text and value, returned by
// ListCells in row-major order.
type CellSnapshot struct {
	Position string
	Text     string
	Value    string
}

// ListCells returns every populated cell of sheetID in row-major order.
func (e *Engine) ListCells(sheetID string) ([]CellSnapshot, error) {
	gs, err := e.sheetFor(sheetID)
	if err != nil {
		return nil, err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	size := gs.sheet.GetPrintableSize()
	snapshots := make([]CellSnapshot, 0, size.Rows*size.Cols)
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			pos := spreadsheet.Position{Row: row, Col: col}
			cell, _ := gs.sheet.GetCell(pos)
			if cell == nil {
				continue
			}
			snapshots = append(snapshots, CellSnapshot{
				Position: pos.String(),
				Text:     cell.GetText(),
				Value:    cell.GetValue().String(),
			})
		}
	}
	return snapshots, nil
}

// Subscribe registers a webhook URL to be POSTed whenever cellID changes.
func (e *Engine) Subscribe(sheetID, cellID, webhookURL string) error {
	pos := spreadsheet.FromString(cellID)
	if !pos.IsValid() {
		return spreadsheet.ErrInvalidPosition
	}
	if e.dispatcher == nil {
		return nil
	}
	e.dispatcher.SetWebhookURL(canonicalSheetID(sheetID), pos.String(), webhookURL)
	return nil
}
