// Package docrender turns evaluation results into printable PDF documents
// using headless Chromium.
package docrender

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sbogelman-afk/hart-backend-dual/internal/evaluation"
)

const renderTimeout = 30 * time.Second

const documentCSS = `
:root{--ink:#1c1917;--muted:#57534e;--accent:#9f1239;--rule:#d6d3d1;}
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
body{font-family:Georgia,'Times New Roman',serif;color:var(--ink);background:#fff;
  padding:0.6rem;font-size:11pt;line-height:1.5;}
.doc-wrap{max-width:880px;margin:0 auto;border-left:3px solid var(--accent);padding:0 0.75rem;}
h1{font-size:1.45rem;border-bottom:2px solid var(--ink);padding-bottom:0.3rem;}
h2{font-size:1.05rem;text-transform:uppercase;letter-spacing:0.04em;color:var(--accent);
  border-bottom:1px solid var(--rule);padding-bottom:0.15rem;margin-top:1.3rem;}
ul{padding-left:1.3rem;}
blockquote{border-left:4px solid var(--accent);background:#fff1f2;margin:0.6rem 0;
  padding:0.5rem 0.8rem;color:#881337;}
.doc-meta{color:var(--muted);font-size:0.85rem;margin-bottom:1rem;}
@media print{@page{size:auto;margin:12mm;}body{padding:0;}.doc-wrap{max-width:none;}}
`

// ChromiumRenderer implements evaluation.DocumentRenderer by converting the
// result's markdown form to HTML and printing it with a headless browser.
type ChromiumRenderer struct {
	chromePath string
}

func NewChromiumRenderer() *ChromiumRenderer {
	return &ChromiumRenderer{chromePath: detectChromePath()}
}

func (r *ChromiumRenderer) Render(ctx context.Context, result evaluation.EvaluationResult) ([]byte, error) {
	htmlDoc, err := buildHTML(result)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;padding-right:8px;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

func buildHTML(result evaluation.EvaluationResult) (string, error) {
	markdown := evaluation.RenderMarkdown(result)

	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	return "<!doctype html><html><head><meta charset='utf-8'><title>HART Evaluation</title>" +
		"<style>" + documentCSS + "</style></head><body>" +
		"<div class='doc-wrap'>" + content.String() + "</div>" +
		"</body></html>", nil
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
