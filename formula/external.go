package formula

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sheetcore/spreadsheet"
)

// externalRefClient is the bounded HTTP client external_ref() uses,
// following the teacher's ExternalRefFunction.go (a 4s timeout on the
// fetch so a hung upstream cannot wedge formula evaluation).
var externalRefClient = &http.Client{
	Timeout: 4 * time.Second,
}

// externalRefResponse mirrors the {"value":...,"result":...} shape the
// HTTP API (see the api package) returns for a cell, so one sheet's cell
// can be used as another's external_ref source.
type externalRefResponse struct {
	Result string `json:"result"`
}

// fetchExternalRef resolves external_ref("https://...") at evaluation
// time. Any failure — transport, non-200 status, or a non-numeric result —
// is reported as an Arithmetic error, since it is a runtime fault of the
// formula rather than a malformed reference or a non-numeric operand.
func fetchExternalRef(url string) (float64, *spreadsheet.FormulaError) {
	arithErr := spreadsheet.NewFormulaError(spreadsheet.ErrorArithmetic)

	resp, err := externalRefClient.Get(url)
	if err != nil {
		return 0, &arithErr
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &arithErr
	}

	var payload externalRefResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, &arithErr
	}

	n, err := strconv.ParseFloat(payload.Result, 64)
	if err != nil {
		return 0, &arithErr
	}
	return n, nil
}
