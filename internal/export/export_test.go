// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/insurechat-tui/internal/model"
)

func sampleDocument() *Document {
	return &Document{
		Title:    "Insurance Assistant Conversation",
		UserName: "Ann Bell",
		Messages: []*model.Message{
			model.NewUserMessage("What plans do you have?"),
			model.NewBotMessage("We offer **health** and *motor* cover."),
		},
		Products: []model.Product{
			{
				ProductCode:   "HLT-01",
				Name:          "Health Shield <script>alert(1)</script>",
				InsuranceType: "health",
				CoverageLimit: 500000,
				Premium:       12500,
				Description:   "Cover with <b>bold claims</b>",
				Addons: []model.Addon{
					{AddonCode: "HLT-A1", Name: "Maternity <img src=x>", AddonPremium: 2000},
				},
			},
		},
		ExportedAt: time.Date(2025, 3, 14, 15, 4, 0, 0, time.UTC),
	}
}

func TestHTMLExportEscapesMarkup(t *testing.T) {
	out, err := NewHTMLExporter(nil).Export(sampleDocument())
	require.NoError(t, err)
	doc := string(out)

	assert.NotContains(t, doc, "<script>alert(1)</script>", "product markup must not survive")
	assert.Contains(t, doc, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, doc, "<img src=x>")
	assert.Contains(t, doc, "&lt;b&gt;bold claims&lt;/b&gt;")
}

func TestHTMLExportRendersTranscriptAndCatalog(t *testing.T) {
	out, err := NewHTMLExporter(nil).Export(sampleDocument())
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, "What plans do you have?")
	assert.Contains(t, doc, "You")
	assert.Contains(t, doc, "Assistant")
	assert.Contains(t, doc, "Available Plans")
	assert.Contains(t, doc, "₹12,500", "premium formatted for the default locale")
	assert.Contains(t, doc, "₹5,00,000", "coverage uses Indian digit grouping")
}

func TestHTMLExportEmptyDocument(t *testing.T) {
	_, err := NewHTMLExporter(nil).Export(&Document{})
	assert.Error(t, err)

	_, err = NewHTMLExporter(nil).Export(nil)
	assert.Error(t, err)
}

func TestMarkdownExportEscapesUntrustedText(t *testing.T) {
	doc := sampleDocument()
	doc.Messages = []*model.Message{
		model.NewUserMessage("# not a heading"),
	}

	out, err := NewMarkdownExporter(nil).Export(doc)
	require.NoError(t, err)
	md := string(out)

	assert.Contains(t, md, `\# not a heading`, "user text must not become markdown structure")
	assert.Contains(t, md, `Health Shield \<script\>`, "product names escaped")
}

func TestMarkdownExportKeepsBotMarkdown(t *testing.T) {
	out, err := NewMarkdownExporter(nil).Export(sampleDocument())
	require.NoError(t, err)

	assert.Contains(t, string(out), "We offer **health** and *motor* cover.",
		"assistant markdown passes through untouched")
}

func TestExportToFileWritesTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutputDir = dir

	path, err := ExportToFile(sampleDocument(), NewMarkdownExporter(opts), opts)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "insurechat_"))
	assert.True(t, strings.HasSuffix(path, ".md"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Available Plans")
}
