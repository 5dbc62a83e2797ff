package tei

import (
	"github.com/matsen/teiextract/internal/article"
)

// orgType is the closed vocabulary of <orgName type="..."> values.
type orgType string

const (
	orgInstitution orgType = "institution"
	orgDepartment  orgType = "department"
	orgLaboratory  orgType = "laboratory"
)

// Authors parses every <author> below n. Authors without a surname are
// skipped: GROBID emits them for names it could not segment.
func Authors(n Node) []article.Author {
	var authors []article.Author
	for _, tag := range n.FindAll("author") {
		if author, ok := Author(tag); ok {
			authors = append(authors, author)
		}
	}
	return authors
}

// Author parses a single <author>. It reports false when the element has
// no persName/surname.
func Author(n Node) (article.Author, bool) {
	persName := n.Find("persName")
	surname := persName.Find("surname")
	if !surname.Valid() {
		return article.Author{}, false
	}

	author := article.Author{
		PersonName: article.PersonName{Surname: surname.Text()},
	}
	if forename := persName.Find("forename", Attr{Key: "type", Value: "first"}); forename.Valid() {
		author.PersonName.FirstName = article.String(forename.Text())
	}
	if email := n.Find("email"); email.Valid() {
		author.Email = article.String(email.Text())
	}

	for _, tag := range n.FindAll("affiliation") {
		if aff := Affiliation(tag); !aff.IsEmpty() {
			author.Affiliations = append(author.Affiliations, aff)
		}
	}
	return author, true
}

// Affiliation maps the typed <orgName> children of an <affiliation>.
// Unknown types and empty names are ignored.
func Affiliation(n Node) article.Affiliation {
	var aff article.Affiliation
	for _, org := range n.FindAll("orgName") {
		name := nonEmpty(org.Text())
		if name == nil {
			continue
		}
		kind, _ := org.Attr("type")
		switch orgType(kind) {
		case orgInstitution:
			aff.Institution = name
		case orgDepartment:
			aff.Department = name
		case orgLaboratory:
			aff.Laboratory = name
		}
	}
	return aff
}
