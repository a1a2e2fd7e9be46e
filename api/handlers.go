package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zaparse/stmtledger/extractor"
	"github.com/zaparse/stmtledger/extractor/common"
	"github.com/zaparse/stmtledger/logger"
	"github.com/zaparse/stmtledger/pdftext"
	"github.com/zaparse/stmtledger/stats"
)

type formatInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// parseRequest is the JSON alternative to a PDF upload, for callers that
// already hold page text.
type parseRequest struct {
	Pages []string `json:"pages"`
	Bank  string   `json:"bank"`
}

type batchRequest struct {
	Documents []struct {
		Name  string   `json:"name"`
		Bank  string   `json:"bank"`
		Pages []string `json:"pages"`
	} `json:"documents"`
}

type parseResponse struct {
	DocumentID   string               `json:"document_id"`
	Filename     string               `json:"filename,omitempty"`
	AccountInfo  *common.AccountInfo  `json:"account_info,omitempty"`
	Summary      *stats.Summary       `json:"summary,omitempty"`
	Transactions []common.Transaction `json:"transactions,omitempty"`
	Error        string               `json:"error,omitempty"`
}

type batchResponse struct {
	Documents []parseResponse      `json:"documents"`
	Coverage  stats.Coverage       `json:"coverage"`
	Activity  stats.ActivityVolume `json:"activity"`
	Revenue   stats.Revenue        `json:"revenue"`
	Summary   stats.Summary        `json:"summary"`
}

var errNotPDF = errors.New("only PDF files are accepted")

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":         "stmtledger",
		"supported_banks": s.assembler.Registry().Names(),
		"endpoints": map[string]string{
			"/":            "GET - Service information",
			"/health":      "GET - Health check",
			"/banks":       "GET - Supported banks",
			"/parse/json":  "POST - Upload a PDF statement (multipart field 'file') or JSON pages",
			"/parse/batch": "POST - Upload several PDF statements for combined statistics",
			"/metrics":     "GET - Prometheus metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBanks(w http.ResponseWriter, r *http.Request) {
	reg := s.assembler.Registry()
	formats := make([]formatInfo, 0)
	for _, f := range reg.Formats() {
		formats = append(formats, formatInfo{ID: f.ID, Name: f.Name})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"supported_banks": reg.Names(),
		"formats":         formats,
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { parseDuration.WithLabelValues("json").Observe(time.Since(start).Seconds()) }()

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadMB<<20)
	docID := uuid.NewString()
	log := logger.FromContext(r.Context(), s.log).With().Str("document_id", docID).Logger()
	ctx := logger.WithContext(r.Context(), log)

	var (
		pages    []string
		bank     string
		filename string
	)

	if isJSON(r) {
		var req parseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
			return
		}
		pages, bank = req.Pages, req.Bank
	} else {
		if err := r.ParseMultipartForm(s.config.MaxUploadMB << 20); err != nil {
			writeError(w, http.StatusBadRequest, "Could not parse multipart form: "+err.Error())
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Could not get uploaded file: "+err.Error())
			return
		}
		defer file.Close()

		filename = header.Filename
		if !pdftext.IsPDF(filename) {
			writeError(w, http.StatusBadRequest, "Only PDF files are accepted")
			return
		}
		pages, err = pdftext.Pages(ctx, file)
		if err != nil {
			log.Warn().Err(err).Str("filename", filename).Msg("could not read PDF")
			writeError(w, http.StatusInternalServerError, "Failed to parse PDF: "+err.Error())
			return
		}
		bank = r.FormValue("bank")
	}
	bank = coalesce(bank, r.URL.Query().Get("bank"))

	ledger, err := s.assemble(ctx, bank, pages)
	s.observe(ledger, err)
	if err != nil {
		status, detail := s.describe(err)
		log.Info().Err(err).Int("status", status).Msg("parse failed")
		writeError(w, status, detail)
		return
	}

	writeJSON(w, http.StatusOK, newParseResponse(docID, filename, ledger))
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { parseDuration.WithLabelValues("batch").Observe(time.Since(start).Seconds()) }()

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadMB<<20)
	ctx := r.Context()

	var docs []extractor.Document
	// failed holds upload errors by position, for files that never reach the assembler
	failed := map[int]string{}

	if isJSON(r) {
		var req batchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
			return
		}
		for _, d := range req.Documents {
			docs = append(docs, extractor.Document{ID: uuid.NewString(), Name: d.Name, Bank: d.Bank, Pages: d.Pages})
		}
	} else {
		if err := r.ParseMultipartForm(s.config.MaxUploadMB << 20); err != nil {
			writeError(w, http.StatusBadRequest, "Could not parse multipart form: "+err.Error())
			return
		}
		bank := coalesce(r.FormValue("bank"), r.URL.Query().Get("bank"))
		for i, header := range r.MultipartForm.File["file"] {
			doc := extractor.Document{ID: uuid.NewString(), Name: header.Filename, Bank: bank}
			pages, err := readUpload(ctx, header)
			switch {
			case errors.Is(err, errNotPDF):
				failed[i] = "Only PDF files are accepted"
			case err != nil:
				failed[i] = "Failed to parse PDF: " + err.Error()
			}
			doc.Pages = pages
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		writeError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	// only readable uploads reach the assembler; index maps results back to
	// upload positions
	pending := make([]extractor.Document, 0, len(docs))
	index := make([]int, 0, len(docs))
	for i, d := range docs {
		if _, bad := failed[i]; !bad {
			pending = append(pending, d)
			index = append(index, i)
		}
	}
	results := s.assembler.AssembleBatch(ctx, pending)

	resp := batchResponse{Documents: make([]parseResponse, len(docs))}
	for i, d := range docs {
		if msg, bad := failed[i]; bad {
			resp.Documents[i] = parseResponse{DocumentID: d.ID, Filename: d.Name, Error: msg}
		}
	}

	var sources []stats.Source
	for j, res := range results {
		i := index[j]
		docID := docs[i].ID
		s.observe(res.Ledger, res.Err)
		if res.Err != nil {
			status, detail := s.describe(res.Err)
			log := logger.FromContext(ctx, s.log)
			log.Info().
				Err(res.Err).
				Str("document_id", docID).
				Str("filename", res.Name).
				Int("status", status).
				Msg("parse failed")
			resp.Documents[i] = parseResponse{DocumentID: docID, Filename: res.Name, Error: detail}
			continue
		}
		resp.Documents[i] = newParseResponse(docID, res.Name, res.Ledger)
		sources = append(sources, stats.Source{Label: docID, Ledger: res.Ledger})
	}

	combined := stats.Combine(sources...)
	resp.Coverage = combined.Coverage()
	resp.Activity = combined.Activity()
	resp.Revenue = combined.Revenue()
	resp.Summary = combined.Summary()
	writeJSON(w, http.StatusOK, resp)
}

func readUpload(ctx context.Context, header *multipart.FileHeader) ([]string, error) {
	if !pdftext.IsPDF(header.Filename) {
		return nil, errNotPDF
	}
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", header.Filename, err)
	}
	defer f.Close()
	return pdftext.Pages(ctx, f)
}

func (s *Server) assemble(ctx context.Context, bank string, pages []string) (common.Ledger, error) {
	if bank != "" {
		return s.assembler.AssembleAs(ctx, bank, pages)
	}
	return s.assembler.Assemble(ctx, pages)
}

// describe maps an assembler error to a status code and client message.
func (s *Server) describe(err error) (int, string) {
	supported := strings.Join(s.assembler.Registry().Names(), ", ")
	switch {
	case errors.Is(err, extractor.ErrFormatUndetected):
		return http.StatusBadRequest, "Could not detect bank type. Supported banks: " + supported
	case errors.Is(err, extractor.ErrUnknownFormat):
		return http.StatusBadRequest, "Unknown bank type. Supported banks: " + supported
	case errors.Is(err, extractor.ErrEmptyStatement):
		return http.StatusBadRequest, "No transactions detected in the PDF"
	}
	return http.StatusInternalServerError, "Failed to parse PDF: " + err.Error()
}

func (s *Server) observe(ledger common.Ledger, err error) {
	format := ledger.Account.BankID
	var extractionErr *extractor.ExtractionError
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, extractor.ErrFormatUndetected), errors.Is(err, extractor.ErrUnknownFormat):
		outcome = "undetected"
	case errors.Is(err, extractor.ErrEmptyStatement):
		outcome = "empty"
	case errors.As(err, &extractionErr):
		format = extractionErr.Format
		outcome = "failed"
	default:
		outcome = "failed"
	}
	if format == "" {
		format = "unknown"
	}
	parseTotal.WithLabelValues(format, outcome).Inc()
}

func newParseResponse(docID, filename string, ledger common.Ledger) parseResponse {
	summary := stats.Summarize(ledger.Transactions)
	account := ledger.Account
	return parseResponse{
		DocumentID:   docID,
		Filename:     filename,
		AccountInfo:  &account,
		Summary:      &summary,
		Transactions: ledger.Transactions,
	}
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// coalesce returns the first non-empty string
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
