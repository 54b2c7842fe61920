// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package assistant

import (
	"fmt"
	"strings"

	"snowq/cli/internal/warehouse"
)

// maxPreviewRows bounds how much result data the headline prompt carries.
// The model sees a preview, never the full result set.
const maxPreviewRows = 10

// sqlPrompt generates the system prompt for SQL generation. The catalog is
// rendered in sorted order so identical schemas always produce identical
// prompts.
func sqlPrompt(catalog warehouse.Catalog) string {
	var b strings.Builder

	b.WriteString(`You translate analytics questions into Snowflake SQL.

RULES:
- Respond with exactly one SELECT statement.
- Use only the tables and columns listed below.
- Do not explain the query and do not wrap it in prose.

AVAILABLE TABLES:
`)

	for _, table := range catalog.Tables() {
		b.WriteString(table)
		b.WriteString(":\n")
		for _, col := range catalog.ColumnsOf(table) {
			fmt.Fprintf(&b, "  %s %s\n", col, catalog[table][col])
		}
	}

	return b.String()
}

// headlineSystemPrompt asks for the short sentence used as the answer text
// and the chart title.
const headlineSystemPrompt = `You summarize analytics results.
Respond with one short headline sentence describing the result.
No quotes, no markdown, no trailing period commentary.`

// headlinePrompt renders the question plus a bounded preview of the result.
func headlinePrompt(question string, table *warehouse.Table) string {
	var b strings.Builder

	b.WriteString("QUESTION: ")
	b.WriteString(question)
	b.WriteString("\n\nRESULT COLUMNS: ")
	b.WriteString(strings.Join(table.Columns, ", "))
	b.WriteString("\nRESULT ROWS:\n")

	rows := table.StringRows()
	shown := len(rows)
	if shown > maxPreviewRows {
		shown = maxPreviewRows
	}
	for _, row := range rows[:shown] {
		b.WriteString(strings.Join(row, " | "))
		b.WriteString("\n")
	}
	if len(rows) > shown {
		fmt.Fprintf(&b, "(%d more rows)\n", len(rows)-shown)
	}
	if len(rows) == 0 {
		b.WriteString("(no rows)\n")
	}

	return b.String()
}

// extractSQL strips markdown fencing from a model reply. Replies that fence
// the statement inside prose keep only the fenced part.
func extractSQL(response string) string {
	s := strings.TrimSpace(response)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		rest = strings.TrimPrefix(rest, "sql")
		rest = strings.TrimPrefix(rest, "SQL")
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		s = rest
	}
	return strings.TrimSpace(s)
}
