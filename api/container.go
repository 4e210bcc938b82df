package api

import (
	"github.com/gin-gonic/gin"

	"github.com/sheetcore/spreadsheet/notify"
	"github.com/sheetcore/spreadsheet/storage"
)

// Container is the wired set of collaborators a running server needs,
// adapted from the teacher's ServiceContainer.go.
type Container struct {
	Store      *storage.Store
	Dispatcher *notify.WebhookDispatcher
	Engine     *Engine
	Router     *gin.Engine
}

// BuildContainer opens the durable store at dbPath and wires the engine,
// webhook dispatcher, and router around it.
func BuildContainer(dbPath string) (*Container, error) {
	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, err
	}

	dispatcher := notify.NewWebhookDispatcher()
	engine := NewEngine(store, dispatcher)
	controller := NewController(engine)
	router := NewRouter(controller)

	return &Container{
		Store:      store,
		Dispatcher: dispatcher,
		Engine:     engine,
		Router:     router,
	}, nil
}
