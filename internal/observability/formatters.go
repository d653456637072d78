// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Ragbaje/FrameMe/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecordSummary outputs a human-readable summary of a resume record.
func (p *Printer) PrintRecordSummary(record types.ResumeRecord) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", record.PersonalDetails.FullName))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", record.PersonalDetails.Email))
	sb.WriteString("\n")

	if len(record.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, entry := range record.Education {
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", entry.Degree, entry.Institution))
		}
		sb.WriteString("\n")
	}

	if len(record.Experience) > 0 {
		sb.WriteString("Experience:\n")
		for _, entry := range record.Experience {
			sb.WriteString(fmt.Sprintf("  • %s, %s (%d bullets)\n",
				entry.JobTitle, entry.Company, len(entry.Responsibilities)))
		}
		sb.WriteString("\n")
	}

	if len(record.Skills) > 0 {
		skills := strings.Join(record.Skills, ", ")
		sb.WriteString(fmt.Sprintf("Skills (%d): %s", len(record.Skills), skills))
	}

	p.printBox("RESUME RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRewrittenBullets outputs the bullet points produced by a rewrite.
func (p *Printer) PrintRewrittenBullets(bullets []string) {
	if len(bullets) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(bullets), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", bullets[i]))
	}
	if len(bullets) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(bullets)-maxItemsToShow))
	}

	p.printBox("REWRITTEN BULLETS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRewrittenProfile outputs a rewritten profile paragraph, wrapped to
// fit the box.
func (p *Printer) PrintRewrittenProfile(profile string) {
	if profile == "" {
		return
	}
	p.printBox("REWRITTEN PROFILE", wrapText(profile, boxWidth-4))
}

// PrintSuggestedSkills outputs the skills returned by a suggestion call,
// marking those that were already present.
func (p *Printer) PrintSuggestedSkills(suggested []string, record types.ResumeRecord) {
	if len(suggested) == 0 {
		return
	}

	var sb strings.Builder
	for _, skill := range suggested {
		marker := "+"
		if record.HasSkill(skill) {
			marker = "="
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", marker, skill))
	}
	sb.WriteString("\n+ new, = already listed")

	p.printBox("SUGGESTED SKILLS", sb.String())
}

// wrapText breaks a paragraph into lines no longer than width.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if lineLen > 0 && lineLen+1+len(word) > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
