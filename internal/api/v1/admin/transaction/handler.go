package transaction

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cbots-backend/internal/models"
	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func buildFilter(c *gin.Context) services.TransactionFilter {
	filter := services.TransactionFilter{Page: 1, Limit: 50}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= 200 {
		filter.Limit = limit
	}
	if raw := c.Query("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			v := uint(id)
			filter.UserID = &v
		}
	}
	if raw := c.Query("type"); raw != "" {
		t := models.TransactionType(raw)
		filter.Type = &t
	}
	if raw := c.Query("status"); raw != "" {
		s := models.TransactionStatus(raw)
		filter.Status = &s
	}
	if raw := c.Query("start_time"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.StartTime = &ts
		}
	}
	if raw := c.Query("end_time"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.EndTime = &ts
		}
	}

	return filter
}

// List returns a filtered, paginated view of the ledger.
func List(c *gin.Context) {
	transactions, total, err := services.FindTransactions(buildFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load transactions"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transactions retrieved successfully", gin.H{
		"transactions": transactions,
		"total":        total,
	}))
}

// Export streams the filtered ledger as CSV.
func Export(c *gin.Context) {
	filter := buildFilter(c)
	filter.Page = 1
	filter.Limit = 10000

	transactions, _, err := services.FindTransactions(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load transactions"))
		return
	}

	csvData, err := services.GenerateTransactionCSV(transactions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to generate CSV"))
		return
	}

	filename := fmt.Sprintf("transactions-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", csvData)
}
