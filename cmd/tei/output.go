package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/teiextract/internal/article"
	"github.com/matsen/teiextract/internal/storage"
)

// Constants for output formatting.
const (
	DefaultListLimit = 50 // Default limit for search/list commands

	ListTitleMaxLen   = 60 // Used in list and search output
	DetailTitleMaxLen = 70 // Used in detail views

	TextWrapWidth = 68
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputJSONCompact writes a value as compact JSON to stdout.
func outputJSONCompact(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	Count  int    `json:"count,omitempty"`
}

// printSummariesHuman prints one line per article.
func printSummariesHuman(recs []storage.Record) {
	if len(recs) == 0 {
		fmt.Println("No articles")
		return
	}
	for _, rec := range recs {
		s := rec.Summary()
		fmt.Printf("%s  %s\n", rec.ID, truncateString(s.Title, ListTitleMaxLen))
		if len(s.Authors) > 0 {
			fmt.Printf("    %s\n", formatAuthorsShort(rec.Article.Bibliography.Authors, 3))
		}
	}
}

// printArticleHuman prints an article for reading in a terminal.
func printArticleHuman(a *article.Article, plain bool) {
	fmt.Println(truncateString(a.Bibliography.Title, DetailTitleMaxLen))
	if len(a.Bibliography.Authors) > 0 {
		fmt.Printf("  %s\n", formatAuthorsShort(a.Bibliography.Authors, 5))
	}
	if a.Bibliography.Date != nil {
		fmt.Printf("  Year: %s\n", a.Bibliography.Date.Year)
	}
	if ids := a.Bibliography.IDs; ids != nil && ids.DOI != nil {
		fmt.Printf("  DOI: %s\n", *ids.DOI)
	}
	if len(a.Keywords) > 0 {
		fmt.Printf("  Keywords: %s\n", strings.Join(a.Keywords.Sorted(), ", "))
	}

	if a.Abstract != nil {
		fmt.Printf("\n%s\n", a.Abstract.Title)
		if plain {
			fmt.Printf("  %s\n", wrapText(a.Abstract.Text(), TextWrapWidth, "  "))
		}
	}
	fmt.Println()
	for _, s := range a.Sections {
		fmt.Printf("%s (%d paragraphs)\n", s.Title, len(s.Paragraphs))
		if plain {
			for _, p := range s.Paragraphs {
				fmt.Printf("  %s\n\n", wrapText(p.PlainText(), TextWrapWidth, "  "))
			}
		}
	}
	fmt.Printf("\nTables: %d  Citations: %d\n", len(a.Tables), len(a.Citations))
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}

// formatAuthorShort formats an author as "Surname F" (abbreviated first name).
func formatAuthorShort(a article.Author) string {
	if a.PersonName.FirstName != nil && *a.PersonName.FirstName != "" {
		first := []rune(*a.PersonName.FirstName)
		return a.PersonName.Surname + " " + string(first[0])
	}
	return a.PersonName.Surname
}

// formatAuthorsShort formats authors with abbreviation and "et al." for more than maxCount.
func formatAuthorsShort(authors []article.Author, maxCount int) string {
	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, formatAuthorShort(a))
	}
	return strings.Join(names, ", ")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
