// Command sheetserver runs the HTTP spreadsheet API, adapted from the
// teacher's App.go.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/sheetcore/spreadsheet/api"
)

const exitCodeMainError = 1

const defaultListenAddr = ":8080"
const defaultDBPath = "sheets.db"

func run() error {
	gin.SetMode(gin.ReleaseMode)

	dbPath := os.Getenv("SHEET_DATABASE_FILEPATH")
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	container, err := api.BuildContainer(dbPath)
	if err != nil {
		return err
	}
	defer container.Store.Close()

	container.Dispatcher.Start()
	defer container.Dispatcher.Close()

	addr := os.Getenv("SHEET_LISTEN_ADDR")
	if addr == "" {
		addr = defaultListenAddr
	}

	return http.ListenAndServe(addr, container.Router)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeMainError)
	}
}
