package services

import "fmt"

// CitationStyle selects the reference layout.
type CitationStyle string

const (
	StyleAPA  CitationStyle = "APA"
	StyleMLA  CitationStyle = "MLA"
	StyleIEEE CitationStyle = "IEEE"
)

// Citation holds the raw reference fields entered by the student.
type Citation struct {
	Author  string `json:"author"`
	Title   string `json:"title"`
	Journal string `json:"journal"`
	Year    string `json:"year"`
	DOI     string `json:"doi,omitempty"`
}

// Format renders the citation in the requested style. Formatting is pure
// string assembly; no completion call is involved.
func Format(style CitationStyle, c Citation) (string, error) {
	switch style {
	case StyleAPA:
		citation := fmt.Sprintf("%s (%s). %s. %s.", c.Author, c.Year, c.Title, c.Journal)
		if c.DOI != "" {
			citation += fmt.Sprintf(" https://doi.org/%s", c.DOI)
		}
		return citation, nil
	case StyleMLA:
		return fmt.Sprintf("%s. \"%s.\" %s, %s.", c.Author, c.Title, c.Journal, c.Year), nil
	case StyleIEEE:
		return fmt.Sprintf("%s, \"%s,\" %s, %s.", c.Author, c.Title, c.Journal, c.Year), nil
	default:
		return "", fmt.Errorf("unknown citation style %q", style)
	}
}
