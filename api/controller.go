package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheetcore/spreadsheet"
)

// Controller is the HTTP surface over an Engine, adapted from the
// teacher's ApiController.go.
type Controller struct {
	engine *Engine
}

func NewController(engine *Engine) *Controller {
	return &Controller{engine: engine}
}

func (api *Controller) GetCellAction(c *gin.Context) {
	var params cellURIParams
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, value, err := api.engine.GetCell(params.SheetID, params.CellID)
	switch {
	case errors.Is(err, ErrCellNotFound), errors.Is(err, ErrSheetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, spreadsheet.ErrInvalidPosition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, &Cell{Value: text, Result: value})
	}
}

func (api *Controller) SetCellAction(c *gin.Context) {
	var params cellURIParams
	var request setCellRequest

	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	value, err := api.engine.SetCell(params.SheetID, params.CellID, request.Value)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, &Cell{Value: request.Value, Result: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, &Cell{Value: request.Value, Result: value})
}

func (api *Controller) GetSheetAction(c *gin.Context) {
	var params sheetURIParams
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cells, err := api.engine.ListCells(params.SheetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	list := CellList{}
	for _, snapshot := range cells {
		list[snapshot.Position] = &Cell{Value: snapshot.Text, Result: snapshot.Value}
	}
	c.JSON(http.StatusOK, list)
}

func (api *Controller) SubscribeAction(c *gin.Context) {
	var params cellURIParams
	var request subscribeRequest

	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.engine.Subscribe(params.SheetID, params.CellID, request.WebhookURL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
