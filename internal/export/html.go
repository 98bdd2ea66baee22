// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/morganforge/insurechat-tui/internal/model"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports transcripts to HTML with embedded CSS. All dynamic
// text goes through html.EscapeString so markup in product or assistant text
// shows up as text.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a document to HTML format.
func (e *HTMLExporter) Export(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	if len(doc.Messages) == 0 && len(doc.Products) == 0 {
		return nil, fmt.Errorf("document is empty")
	}

	exportedAt := doc.ExportedAt
	if exportedAt.IsZero() {
		exportedAt = time.Now()
	}

	title := doc.Title
	if title == "" {
		title = "Insurance Assistant Conversation"
	}

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(title)))
	sb.WriteString("    <meta name=\"generator\" content=\"insurechat\">\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=\"%s\">\n", exportedAt.Format(time.RFC3339)))
	sb.WriteString(e.getCSS())
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", e.options.Theme))
	sb.WriteString("    <div class=\"container\">\n")

	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", html.EscapeString(title)))
	if doc.UserName != "" {
		sb.WriteString(fmt.Sprintf("            <p class=\"meta\">User: %s</p>\n", html.EscapeString(doc.UserName)))
	}
	sb.WriteString("        </header>\n")

	if len(doc.Messages) > 0 {
		sb.WriteString("        <main class=\"conversation\">\n")
		for _, msg := range doc.Messages {
			sb.WriteString(e.renderMessage(msg))
		}
		sb.WriteString("        </main>\n")
	}

	if e.options.IncludeCatalog && len(doc.Products) > 0 {
		sb.WriteString(e.renderCatalog(doc.Products))
	}

	sb.WriteString("        <footer class=\"footer\">\n")
	sb.WriteString(fmt.Sprintf("            <p>Exported from <strong>insurechat</strong> on %s</p>\n",
		exportedAt.Format("January 2, 2006 at 3:04 PM")))
	sb.WriteString("        </footer>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderMessage(msg *model.Message) string {
	var sb strings.Builder

	roleClass := strings.ToLower(msg.Role.String())
	sb.WriteString(fmt.Sprintf("            <div class=\"message %s-message\">\n", roleClass))
	sb.WriteString("                <div class=\"message-header\">\n")
	sb.WriteString(fmt.Sprintf("                    <span class=\"role-label\">%s</span>\n",
		html.EscapeString(msg.Role.DisplayName())))
	if e.options.IncludeTimestamps && !msg.Timestamp.IsZero() {
		sb.WriteString(fmt.Sprintf("                    <span class=\"timestamp\">%s</span>\n",
			msg.Timestamp.Format("3:04 PM")))
	}
	sb.WriteString("                </div>\n")
	sb.WriteString("                <div class=\"message-content\">\n")
	sb.WriteString("                    <p>" + paragraphs(msg.Text) + "</p>\n")
	sb.WriteString("                </div>\n")
	sb.WriteString("            </div>\n")

	return sb.String()
}

// renderCatalog renders the product catalog section with premiums and addons.
func (e *HTMLExporter) renderCatalog(products []model.Product) string {
	fmtr := e.options.formatter()

	var sb strings.Builder
	sb.WriteString("        <section class=\"catalog\">\n")
	sb.WriteString("            <h2>Available Plans</h2>\n")

	for _, p := range products {
		sb.WriteString("            <div class=\"product\">\n")
		sb.WriteString(fmt.Sprintf("                <h3>%s</h3>\n", html.EscapeString(p.Name)))
		sb.WriteString(fmt.Sprintf("                <p class=\"product-type\">%s</p>\n",
			html.EscapeString(p.InsuranceType)))
		sb.WriteString(fmt.Sprintf("                <p>Coverage: %s &middot; Premium: %s</p>\n",
			html.EscapeString(fmtr.Currency(p.CoverageLimit)),
			html.EscapeString(fmtr.Currency(p.Premium))))
		if p.Description != "" {
			sb.WriteString(fmt.Sprintf("                <p>%s</p>\n", html.EscapeString(p.Description)))
		}

		if len(p.Addons) > 0 {
			sb.WriteString("                <ul class=\"addons\">\n")
			for _, a := range p.Addons {
				sb.WriteString(fmt.Sprintf("                    <li>%s (+%s)</li>\n",
					html.EscapeString(a.Name),
					html.EscapeString(fmtr.Currency(a.AddonPremium))))
			}
			sb.WriteString("                </ul>\n")
		}
		sb.WriteString("            </div>\n")
	}

	sb.WriteString("        </section>\n")
	return sb.String()
}

// paragraphs escapes text and converts newlines to <br> so multi-line
// replies keep their shape.
func paragraphs(text string) string {
	escaped := html.EscapeString(text)
	return strings.ReplaceAll(escaped, "\n", "<br>\n")
}

// getCSS returns the embedded stylesheet.
func (e *HTMLExporter) getCSS() string {
	return `    <style>
        :root { color-scheme: light dark; }
        body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; }
        body.dark-theme { background: #1a1b26; color: #c0caf5; }
        body.light-theme { background: #f7f7f7; color: #24283b; }
        .container { max-width: 760px; margin: 0 auto; padding: 24px; }
        .header h1 { margin-bottom: 4px; }
        .meta { opacity: 0.7; font-size: 0.9em; }
        .message { border-radius: 8px; padding: 12px 16px; margin: 12px 0; }
        .user-message { background: rgba(122, 162, 247, 0.15); }
        .bot-message { background: rgba(158, 206, 106, 0.1); }
        .error-message { background: rgba(247, 118, 142, 0.15); }
        .message-header { display: flex; justify-content: space-between; font-size: 0.85em; opacity: 0.8; }
        .role-label { font-weight: 600; }
        .catalog .product { border: 1px solid rgba(128,128,128,0.3); border-radius: 8px; padding: 12px 16px; margin: 12px 0; }
        .product-type { text-transform: uppercase; font-size: 0.75em; letter-spacing: 0.08em; opacity: 0.7; }
        .addons { font-size: 0.9em; }
        .footer { margin-top: 32px; font-size: 0.8em; opacity: 0.6; text-align: center; }
    </style>
`
}
