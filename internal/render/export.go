package render

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/gompdf/gompdf"

	"invoicely/client/internal/xid"
)

// WritePDF renders doc, converts it to a single A4 page and writes
// invoice-<id>.pdf (invoice.pdf for an unsaved draft) under the export
// directory. It returns the written path. Failures are reported to the
// caller; nothing here is fatal.
func (r *Renderer) WritePDF(doc Document) (string, error) {
	html, err := RenderHTML(doc)
	if err != nil {
		return "", err
	}

	tmp := filepath.Join(os.TempDir(), xid.New("invoice")+".html")
	if err := os.WriteFile(tmp, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write temp document: %w", err)
	}
	defer os.Remove(tmp)

	if err := os.MkdirAll(r.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	out := filepath.Join(r.exportDir, doc.fileName(".pdf"))

	opts := gompdf.DefaultOptions()
	opts.MarginTop, opts.MarginRight, opts.MarginBottom, opts.MarginLeft = 36, 36, 36, 36
	conv := gompdf.NewWithOptions(opts)
	if err := conv.ConvertFile(tmp, out); err != nil {
		return "", fmt.Errorf("convert to pdf: %w", err)
	}
	return out, nil
}

// WritePrintDocument writes the print-ready HTML document under the export
// directory and returns its path.
func (r *Renderer) WritePrintDocument(doc Document) (string, error) {
	html, err := RenderHTML(doc)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	out := filepath.Join(r.exportDir, doc.fileName(".html"))
	if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write print document: %w", err)
	}
	return out, nil
}

// OpenPrintDialog hands path to the platform opener so the operator can use
// the system print dialog. A blocked or missing opener is a reported,
// non-fatal error.
func OpenPrintDialog(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open print document: %w", err)
	}
	return nil
}
