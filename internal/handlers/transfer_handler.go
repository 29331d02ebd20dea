package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/exam-portal/backend/internal/csvcodec"
	"github.com/exam-portal/backend/internal/obfuscate"
	"github.com/exam-portal/backend/internal/pdf"
	"github.com/exam-portal/backend/internal/store"
)

// TransferHandler moves result data in and out of the portal: CSV
// import/export and PDF export.
type TransferHandler struct {
	store *store.Store
	codec *csvcodec.Codec
}

func NewTransferHandler(st *store.Store) *TransferHandler {
	return &TransferHandler{store: st, codec: csvcodec.New()}
}

// ExportCSV streams the result set as CSV, obfuscated unless ?encrypted=false.
func (h *TransferHandler) ExportCSV(c *gin.Context) {
	rs, err := h.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	payload := h.codec.Encode(rs)
	contentType := "text/csv"
	if c.DefaultQuery("encrypted", "true") == "true" {
		payload = obfuscate.Encrypt(payload)
		contentType = "text/plain"
	}

	c.Header("Content-Disposition", `attachment; filename="exam-results.csv"`)
	c.Data(http.StatusOK, contentType, []byte(payload))
}

// ImportCSV accepts a raw CSV body, plain or obfuscated. A failed
// deobfuscation falls back to parsing the body as plaintext; individual bad
// rows are collected into the report without aborting the import.
func (h *TransferHandler) ImportCSV(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := obfuscate.Decrypt(string(raw))
	if err != nil {
		logrus.WithError(err).Warn("deobfuscation failed, treating upload as plain CSV")
		text = string(raw)
	}

	parsed, report := h.codec.Decode(text)
	if len(parsed) > 0 {
		if err := h.store.Append(parsed); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, report)
}

// ExportResultPDF renders one result's report card.
func (h *TransferHandler) ExportResultPDF(c *gin.Context) {
	r, err := h.store.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	doc, err := pdf.ResultCard(*r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="result-`+r.SeatNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

// ExportRosterPDF renders the tabular roster over all results.
func (h *TransferHandler) ExportRosterPDF(c *gin.Context) {
	rs, err := h.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	doc, err := pdf.Roster(rs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="exam-results-roster.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
