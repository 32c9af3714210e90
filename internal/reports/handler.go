package reports

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{service: svc}
}

// GetRentSheet returns the month's rent sheet as JSON, or as a file
// download when the format query param is csv, xlsx or pdf.
func (h *Handler) GetRentSheet(c *gin.Context) {
	adminID := c.GetUint("admin_id")
	month := c.Query("month")
	format := c.Query("format")

	if format == "" {
		rows, err := h.service.RentSheet(c.Request.Context(), adminID, month)
		if err != nil {
			if errors.Is(err, ErrBadMonth) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build rent sheet"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"month": month, "rows": rows})
		return
	}

	data, filename, contentType, err := h.service.ExportRentSheet(c.Request.Context(), adminID, month, format, c.ClientIP())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}
