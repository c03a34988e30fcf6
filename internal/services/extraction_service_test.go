package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/buena/portfolio-service/internal/dtos"
	"github.com/buena/portfolio-service/internal/utils"
)

func TestTruncateUTF8KeepsRuneBoundary(t *testing.T) {
	// "ä" spans bytes 9-10; the cut must back up instead of splitting it.
	s := strings.Repeat("a", 9) + "ä"
	if got := truncateUTF8(s, 10); got != strings.Repeat("a", 9) {
		t.Fatalf("Expected cut before the split rune, got %q", got)
	}

	if got := truncateUTF8("abc", 10); got != "abc" {
		t.Errorf("Expected short input to pass through, got %q", got)
	}

	if out := truncateUTF8(strings.Repeat("ß", 20), 15); !utf8.ValidString(out) {
		t.Errorf("Expected truncated output to stay valid UTF-8, got %q", out)
	}
}

type staticExtractor struct {
	text string
	err  error
}

func (e staticExtractor) ExtractText(string) (string, error) { return e.text, e.err }

func TestExtractReportsSearchedPathsOnMissingDocument(t *testing.T) {
	svc := NewExtractionService(NewFileStore(t.TempDir()), NewOpenAIService(""), time.Second)

	_, err := svc.ExtractUnitsFromDocument(context.Background(), dtos.ExtractRequest{
		DocumentID: "missing.pdf",
	})
	if err == nil {
		t.Fatal("Expected error for missing document, got nil")
	}

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.StatusCode != http.StatusBadRequest || appErr.Code != utils.ErrCodeDocumentNotFound {
		t.Errorf("Unexpected error shape: %d %s", appErr.StatusCode, appErr.Code)
	}
	if !strings.Contains(appErr.Message, "Searched in:") || !strings.Contains(appErr.Message, "missing.pdf") {
		t.Errorf("Expected message to list searched paths, got %q", appErr.Message)
	}
}

func TestExtractFailsWhenDisabled(t *testing.T) {
	store := NewFileStore(t.TempDir())
	key, err := store.Save("plan.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	svc := &ExtractionService{
		files:     store,
		openai:    NewOpenAIService(""),
		extractor: staticExtractor{text: "Teilungserklärung ..."},
		timeout:   time.Second,
	}

	_, err = svc.ExtractUnitsFromDocument(context.Background(), dtos.ExtractRequest{DocumentID: key})
	if err == nil {
		t.Fatal("Expected error with extraction disabled, got nil")
	}

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != utils.ErrCodeExtractionDisabled {
		t.Errorf("Expected code %q, got %q", utils.ErrCodeExtractionDisabled, appErr.Code)
	}
}

func TestExtractRejectsUnreadableDocument(t *testing.T) {
	store := NewFileStore(t.TempDir())
	key, err := store.Save("plan.pdf", strings.NewReader("not a pdf"))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	svc := &ExtractionService{
		files:     store,
		openai:    NewOpenAIService(""),
		extractor: staticExtractor{err: errors.New("damaged file")},
		timeout:   time.Second,
	}

	_, err = svc.ExtractUnitsFromDocument(context.Background(), dtos.ExtractRequest{DocumentID: key})
	if err == nil {
		t.Fatal("Expected error for unreadable document, got nil")
	}

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", appErr.StatusCode)
	}
}
