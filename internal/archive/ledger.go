package archive

import (
	"os"
	"strconv"
	"strings"

	"github.com/fulmenhq/fontvault/internal/resolve"
)

// ledgerColumns is the fixed header of the metadata ledger.
var ledgerColumns = []string{
	"current_name", "file_type", "font_name", "weight",
	"style", "is_variable", "base_family", "xml_id",
}

// WriteLedger persists one row per resolved file, in processing order,
// with every field double-quoted. The ledger is written once per run and
// rows are never retracted.
func WriteLedger(path string, identities []*resolve.FontIdentity) error {
	var b strings.Builder
	writeLedgerRow(&b, ledgerColumns)
	for _, ident := range identities {
		writeLedgerRow(&b, []string{
			ident.SourceRelativePath,
			ident.ContainerFormat,
			ident.FullName,
			ident.Weight,
			ident.Style,
			strconv.FormatBool(ident.IsVariable),
			ident.FamilyName,
			ident.ManifestID,
		})
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// writeLedgerRow emits one CSV record with unconditional quoting; embedded
// quotes are doubled per RFC 4180.
func writeLedgerRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
