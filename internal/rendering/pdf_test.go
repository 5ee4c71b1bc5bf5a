package rendering

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChromePDF_RenderPDF(t *testing.T) {
	if os.Getenv("RUN_BROWSER_TESTS") == "" && os.Getenv("CHROME_PATH") == "" {
		t.Skip("Skipping browser test: set RUN_BROWSER_TESTS or CHROME_PATH to run")
	}

	html, err := HTML(Render(fullDocument(), Options{}))
	require.NoError(t, err)

	printer := NewChromePDF(os.Getenv("CHROME_PATH"), testing.Verbose())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pdf, err := printer.RenderPDF(ctx, html)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestChromePDF_CancelledContext(t *testing.T) {
	if os.Getenv("RUN_BROWSER_TESTS") == "" && os.Getenv("CHROME_PATH") == "" {
		t.Skip("Skipping browser test: set RUN_BROWSER_TESTS or CHROME_PATH to run")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewChromePDF(os.Getenv("CHROME_PATH"), false).RenderPDF(ctx, "<html><body></body></html>")
	require.Error(t, err)
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestRenderError_Format(t *testing.T) {
	err := &RenderError{Format: "pdf", Message: "boom"}
	assert.Equal(t, "render error: pdf: boom", err.Error())
	assert.Equal(t, "template error: bad", (&TemplateError{Message: "bad"}).Error())
}
