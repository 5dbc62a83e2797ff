package export

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	// Match entry start: @type{key,
	entryStartRegex = regexp.MustCompile(`@\w+\{([^,]+),`)
	// Match DOI field: doi = {value} or doi = "value"
	doiFieldRegex = regexp.MustCompile(`(?i)^\s*doi\s*=\s*[\{"]([^\}"]+)[\}"]`)
)

// BibIndex indexes the entries of a .bib file for deduplication.
type BibIndex struct {
	keys map[string]bool
	dois map[string]string // normalized DOI -> key
}

// NewBibIndex creates an empty index.
func NewBibIndex() *BibIndex {
	return &BibIndex{
		keys: make(map[string]bool),
		dois: make(map[string]string),
	}
}

// Has returns true if the entry already exists. DOI is the primary match;
// the citation key is the fallback when the entry has no DOI.
func (idx *BibIndex) Has(e Entry) bool {
	if doi := normalizeDOI(e.Field("doi")); doi != "" {
		if _, exists := idx.dois[doi]; exists {
			return true
		}
	}
	return idx.keys[e.Key]
}

// Add records an entry.
func (idx *BibIndex) Add(e Entry) {
	idx.keys[e.Key] = true
	if doi := normalizeDOI(e.Field("doi")); doi != "" {
		idx.dois[doi] = e.Key
	}
}

// Len returns the number of indexed keys.
func (idx *BibIndex) Len() int {
	return len(idx.keys)
}

// ParseBibFile builds an index from an existing .bib file.
// Returns an empty index if the file doesn't exist.
func ParseBibFile(path string) (*BibIndex, error) {
	idx := NewBibIndex()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, fmt.Errorf("opening bib file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var currentKey string

	for scanner.Scan() {
		line := scanner.Text()

		if matches := entryStartRegex.FindStringSubmatch(line); len(matches) > 1 {
			currentKey = strings.TrimSpace(matches[1])
			idx.keys[currentKey] = true
		}

		if matches := doiFieldRegex.FindStringSubmatch(line); len(matches) > 1 {
			doi := normalizeDOI(matches[1])
			if doi != "" && currentKey != "" {
				idx.dois[doi] = currentKey
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bib file: %w", err)
	}
	return idx, nil
}

// normalizeDOI normalizes a DOI for comparison.
// Removes common prefixes like "https://doi.org/" and lowercases.
func normalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "doi.org/", "DOI:", "doi:"} {
		doi = strings.TrimPrefix(doi, prefix)
	}
	return strings.ToLower(doi)
}

// AppendNew appends the entries that path does not already contain and
// returns how many were written.
func AppendNew(path string, entries []Entry) (int, error) {
	idx, err := ParseBibFile(path)
	if err != nil {
		return 0, err
	}

	var fresh []Entry
	for _, e := range entries {
		if idx.Has(e) {
			continue
		}
		idx.Add(e)
		fresh = append(fresh, e)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return 0, fmt.Errorf("opening bib file for append: %w", err)
	}
	defer file.Close()

	// Ensure we start on a new line
	if _, err := file.WriteString("\n" + Format(fresh)); err != nil {
		return 0, fmt.Errorf("writing bib file: %w", err)
	}
	return len(fresh), nil
}
