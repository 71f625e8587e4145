package table

import (
	"fmt"
	"net/http"

	"github.com/betrhq/betr/go-data-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type TableHandler struct {
	tableService *TableService
}

func NewTableHandler(tableService *TableService) *TableHandler {
	return &TableHandler{
		tableService: tableService,
	}
}

func (h *TableHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.tableService.List(c.Request.Context()))
}

func (h *TableHandler) Describe(c *gin.Context) {
	handle, err := h.tableService.Describe(c.Request.Context(), c.Param("name"))
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, handle)
}

// Rows dumps the table as JSON, or as CSV with ?format=csv
func (h *TableHandler) Rows(c *gin.Context) {
	var query DumpQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	name := c.Param("name")
	frame, err := h.tableService.Dump(c.Request.Context(), name)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if query.Format == "csv" {
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, name))
		c.Status(http.StatusOK)
		if err := frame.WriteCSV(c.Writer); err != nil {
			// headers are already sent
			c.Error(err)
		}
		return
	}

	c.JSON(http.StatusOK, DumpResponse{
		Table:   name,
		Columns: frame.Columns,
		Count:   frame.Len(),
		Rows:    frame.Records(),
	})
}
