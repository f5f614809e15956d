package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"fnoltriage/internal/csvexport"
	"fnoltriage/internal/report"
	"fnoltriage/internal/service"
)

// ClaimHandler serves claim triage endpoints.
type ClaimHandler struct {
	claims service.ClaimService
}

// NewClaimHandler creates a ClaimHandler.
func NewClaimHandler(claims service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

// TriageRequest is the request body for single-document triage.
type TriageRequest struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source"`
}

// BatchRequest is the request body for batch triage and exports.
type BatchRequest struct {
	Documents []service.BatchDocument `json:"documents" binding:"required,min=1"`
}

// Triage processes one FNOL document.
// POST /api/v1/claims/triage
func (h *ClaimHandler) Triage(c *gin.Context) {
	var req TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}

	rec, err := h.claims.ProcessText(c.Request.Context(), req.Source, req.Text)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rec)
}

// TriageBatch processes a batch of documents, continuing past per-document
// failures.
// POST /api/v1/claims/triage/batch
func (h *ClaimHandler) TriageBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "documents is required and must be non-empty")
		return
	}

	result := h.claims.ProcessBatch(c.Request.Context(), req.Documents)
	RespondOK(c, result)
}

// ExportCSV triages a batch and returns the results as a CSV download.
// POST /api/v1/claims/export/csv
func (h *ClaimHandler) ExportCSV(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "documents is required and must be non-empty")
		return
	}

	result := h.claims.ProcessBatch(c.Request.Context(), req.Documents)

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteRecords(result.Records); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="claims_triage.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX triages a batch and returns an Excel workbook with a detail
// sheet and a per-route summary.
// POST /api/v1/claims/export/xlsx
func (h *ClaimHandler) ExportXLSX(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "documents is required and must be non-empty")
		return
	}

	result := h.claims.ProcessBatch(c.Request.Context(), req.Documents)

	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, result); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="claims_triage.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
