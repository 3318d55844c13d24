package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/goal-tracker/backend/internal/auth"
)

const timeLayout = time.RFC3339

// ExportCSV выгружает транзакции пользователя в CSV-файл.
func (h *TransactionHandler) ExportCSV(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	startDate, endDate, err := parseDateRange(c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	transactions, err := h.Transactions.ListByUser(c.Request().Context(), userID, startDate, endDate, maxListLimit)
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"id",
		"account_id",
		"amount",
		"type",
		"category",
		"description",
		"date",
		"is_manual",
	}
	if err := writer.Write(header); err != nil {
		return serverError(c)
	}

	for _, transaction := range transactions {
		accountID := ""
		if transaction.AccountID != nil {
			accountID = transaction.AccountID.String()
		}

		record := []string{
			transaction.ID.String(),
			accountID,
			formatFloat(transaction.Amount),
			string(transaction.Type),
			transaction.Category,
			transaction.Description,
			transaction.Date.Format(timeLayout),
			formatBool(transaction.IsManual),
		}
		if err := writer.Write(record); err != nil {
			return serverError(c)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "transactions-" + time.Now().Format(dateLayout) + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func formatBool(value bool) string {
	if value {
		return "true"
	}
	return "false"
}
