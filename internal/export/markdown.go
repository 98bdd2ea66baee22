// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/morganforge/insurechat-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a document to Markdown format.
func (e *MarkdownExporter) Export(doc *Document) ([]byte, error) {
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

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(title)))
	if doc.UserName != "" {
		sb.WriteString(fmt.Sprintf("user: %s\n", escapeYAML(doc.UserName)))
	}
	sb.WriteString(fmt.Sprintf("messages: %d\n", len(doc.Messages)))
	sb.WriteString(fmt.Sprintf("exported: %s\n", exportedAt.Format(time.RFC3339)))
	sb.WriteString("generator: insurechat\n")
	sb.WriteString("---\n\n")

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(title)))

	if len(doc.Messages) > 0 {
		sb.WriteString("## Conversation\n\n")
		for i, msg := range doc.Messages {
			sb.WriteString(e.formatMessage(msg))
			if i < len(doc.Messages)-1 {
				sb.WriteString("---\n\n")
			}
		}
	}

	if e.options.IncludeCatalog && len(doc.Products) > 0 {
		sb.WriteString(e.formatCatalog(doc.Products))
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *MarkdownExporter) formatMessage(msg *model.Message) string {
	var sb strings.Builder

	if e.options.IncludeTimestamps && !msg.Timestamp.IsZero() {
		sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n",
			msg.Role.DisplayName(), msg.Timestamp.Format("3:04 PM")))
	} else {
		sb.WriteString(fmt.Sprintf("### %s\n\n", msg.Role.DisplayName()))
	}

	// Assistant replies are markdown already; user and error text is
	// untrusted plain text and gets escaped.
	if msg.Role == model.RoleBot {
		sb.WriteString(msg.Text)
	} else {
		sb.WriteString(escapeMarkdown(msg.Text))
	}
	sb.WriteString("\n\n")

	return sb.String()
}

func (e *MarkdownExporter) formatCatalog(products []model.Product) string {
	fmtr := e.options.formatter()

	var sb strings.Builder
	sb.WriteString("## Available Plans\n\n")

	for _, p := range products {
		sb.WriteString(fmt.Sprintf("### %s\n\n", escapeMarkdown(p.Name)))
		sb.WriteString(fmt.Sprintf("- **Type**: %s\n", escapeMarkdown(p.InsuranceType)))
		sb.WriteString(fmt.Sprintf("- **Coverage**: %s\n", fmtr.Currency(p.CoverageLimit)))
		sb.WriteString(fmt.Sprintf("- **Premium**: %s\n", fmtr.Currency(p.Premium)))
		if p.Description != "" {
			sb.WriteString(fmt.Sprintf("- **About**: %s\n", escapeMarkdown(p.Description)))
		}
		for _, a := range p.Addons {
			sb.WriteString(fmt.Sprintf("- Addon: %s (+%s)\n",
				escapeMarkdown(a.Name), fmtr.Currency(a.AddonPremium)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// escapeYAML quotes a string for a YAML frontmatter value.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#'\"\n") {
		return fmt.Sprintf("%q", strings.ReplaceAll(s, "\n", " "))
	}
	return s
}
