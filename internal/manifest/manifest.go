// Package manifest reads the XML entitlement document that declares font
// identities by identifier.
package manifest

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/fulmenhq/fontvault/pkg/logger"
)

// DefaultVariation is substituted when a <font> element carries no
// variationName attribute.
const DefaultVariation = "Regular"

// Entry is the declared identity for one font identifier.
type Entry struct {
	FamilyName    string
	FullName      string
	VariationName string
	IsVariable    bool
}

// Map is the identifier -> Entry mapping built from one manifest document.
// It is constructed once per run and never mutated afterwards.
type Map map[string]Entry

// Load parses the manifest at path. A document that cannot be parsed yields
// an empty map and an error; callers are expected to continue the run with
// zero manifest coverage. Elements missing id, familyName or fullName are
// dropped and logged, never silently substituted.
func Load(path string) (Map, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return Map{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return fromDocument(doc), nil
}

// Parse parses manifest XML from a string. Same contract as Load.
func Parse(data string) (Map, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(data); err != nil {
		return Map{}, fmt.Errorf("parse manifest: %w", err)
	}
	return fromDocument(doc), nil
}

func fromDocument(doc *etree.Document) Map {
	m := Map{}
	for _, el := range doc.FindElements("//font") {
		id := el.SelectAttrValue("id", "")
		family := el.SelectAttrValue("familyName", "")
		full := el.SelectAttrValue("fullName", "")
		variation := el.SelectAttrValue("variationName", "")
		if variation == "" {
			variation = DefaultVariation
		}
		isVariable := strings.EqualFold(el.SelectAttrValue("isVariable", "false"), "true")

		if id == "" || family == "" || full == "" {
			logger.Error("Malformed font entry in manifest",
				logger.String("id", id),
				logger.String("familyName", family),
				logger.String("fullName", full))
			continue
		}
		m[id] = Entry{
			FamilyName:    family,
			FullName:      full,
			VariationName: variation,
			IsVariable:    isVariable,
		}
	}
	return m
}
