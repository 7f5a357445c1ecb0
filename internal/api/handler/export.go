// internal/api/handler/export.go
package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"starpoint/internal/export"
)

func (h *LedgerHandler) sendAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("Failed to write attachment", "file", filename, "error", err)
	}
}

// ExportSummary handles GET /export/summary.csv
func (h *LedgerHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	data, err := h.exporter.ExportSummary(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.sendAttachment(w, "text/csv; charset=utf-8", export.SummaryFileName(time.Now()), data)
}

// ExportSnapshot handles GET /export/snapshot.zip
func (h *LedgerHandler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := h.exporter.ExportFullSnapshot(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.sendAttachment(w, "application/zip", export.SnapshotFileName(time.Now()), data)
}
