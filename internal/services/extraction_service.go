package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/buena/portfolio-service/internal/constants"
	"github.com/buena/portfolio-service/internal/dtos"
	"github.com/buena/portfolio-service/internal/utils"
)

// TextExtractor turns a stored document into plain text.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

type pdfTextExtractor struct{}

func (pdfTextExtractor) ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

/*
ExtractionService runs the PDF → text → model → normalized-units pipeline.
The model call is bounded by an explicit timeout; a model-side failure or an
empty reply degrades to "zero units found", while a reply that cannot be
parsed as JSON is a hard failure the client sees as such.
*/
type ExtractionService struct {
	files     *FileStore
	openai    *OpenAIService
	extractor TextExtractor
	timeout   time.Duration
}

func NewExtractionService(files *FileStore, openaiSvc *OpenAIService, timeout time.Duration) *ExtractionService {
	if timeout <= 0 {
		timeout = constants.DefaultExtractionTimeout
	}
	return &ExtractionService{
		files:     files,
		openai:    openaiSvc,
		extractor: pdfTextExtractor{},
		timeout:   timeout,
	}
}

// truncateUTF8 cuts s to at most limit bytes without splitting a rune.
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func (s *ExtractionService) ExtractUnitsFromDocument(ctx context.Context, req dtos.ExtractRequest) (*dtos.ExtractResponse, error) {
	path, searched, err := s.files.Resolve(req.DocumentID)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeDocumentNotFound,
			Message:    fmt.Sprintf("File not found. Searched in: %s", strings.Join(searched, ", ")),
			Err:        utils.ErrDocumentNotFound,
		}
	}

	text, err := s.extractor.ExtractText(path)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Extraction failed: could not read document text",
			Err:        err,
		}
	}
	text = truncateUTF8(text, constants.ExtractionTextLimit)

	mctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.openai.ExtractUnits(mctx, text)
	if err != nil {
		if errors.Is(err, utils.ErrExtractionDisabled) {
			return nil, &utils.AppError{
				StatusCode: http.StatusBadRequest,
				Code:       utils.ErrCodeExtractionDisabled,
				Message:    "Document extraction is not enabled on this deployment",
				Err:        err,
			}
		}
		// Upstream model failure degrades to "no units found"; the user's
		// manually entered unit list stays untouched.
		utils.Logger.WithError(err).Warn("Model call failed during unit extraction")
		return &dtos.ExtractResponse{Units: []dtos.ExtractedUnit{}, Warnings: []dtos.Advisory{}}, nil
	}

	address, units, err := NormalizeExtraction(raw)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeMalformedExtraction,
			Message:    "Failed to parse AI response",
			Err:        err,
		}
	}
	if units == nil {
		units = []dtos.ExtractedUnit{}
	}

	warnings := Advise(units, address, req.CurrentAddress)
	if warnings == nil {
		warnings = []dtos.Advisory{}
	}

	utils.Logger.Infof("Extraction produced %d unit(s), %d warning(s)", len(units), len(warnings))
	return &dtos.ExtractResponse{Address: address, Units: units, Warnings: warnings}, nil
}
