// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog manages gettext PO catalogs for the mdpo pipeline:
// loading, merging a fresh extraction into a previously saved catalog,
// translation lookup, and serialization. Parsing and the entry data
// model come from chai2010/gettext-go; the serializer is local because
// the library writer cannot express obsolete entries or wrap width.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/chai2010/gettext-go/gettext/po"

	"github.com/pdiddy/mdpo/pkg/types"
)

// fuzzyFlag marks an entry whose translation needs review and must not
// be used for substitution.
const fuzzyFlag = "fuzzy"

// Catalog is an ordered PO translation catalog. Entries keep document
// order; obsolete entries are held separately and serialized last with
// the "#~" prefix.
type Catalog struct {
	Header   po.Header
	Entries  []po.Message
	Obsolete []po.Message
}

// New returns an empty catalog with a default header (UTF-8, 8bit)
// overlaid with the given metadata fields.
func New(metadata map[string]string) *Catalog {
	c := &Catalog{}
	c.Header.MimeVersion = "1.0"
	c.Header.ContentType = "text/plain; charset=utf-8"
	c.Header.ContentTransferEncoding = "8bit"
	c.SetMetadata(metadata)
	return c
}

// Load reads the catalog at path. A missing file yields an empty
// catalog, not an error, so first runs and incremental runs share one
// code path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes PO data. Obsolete ("#~") lines are split out,
// un-prefixed, and decoded as a second PO document.
func Parse(data []byte) (*Catalog, error) {
	active, obsolete := splitObsolete(data)

	f, err := po.LoadData(active)
	if err != nil {
		return nil, fmt.Errorf("decoding entries: %w", err)
	}
	c := &Catalog{Header: f.MimeHeader}
	for _, m := range f.Messages {
		if m.MsgId == "" && m.MsgContext == "" {
			continue
		}
		c.Entries = append(c.Entries, m)
	}

	if len(obsolete) > 0 {
		of, err := po.LoadData(obsolete)
		if err != nil {
			return nil, fmt.Errorf("decoding obsolete entries: %w", err)
		}
		for _, m := range of.Messages {
			if m.MsgId == "" && m.MsgContext == "" {
				continue
			}
			c.Obsolete = append(c.Obsolete, m)
		}
	}
	return c, nil
}

// splitObsolete separates "#~" obsolete lines from the rest of the
// data. The obsolete stream has its prefixes stripped so it parses as a
// plain PO document. "#~|" previous-msgid lines become "#|" lines.
func splitObsolete(data []byte) (active, obsolete []byte) {
	var a, o strings.Builder
	for _, line := range strings.SplitAfter(string(data), "\n") {
		switch {
		case strings.HasPrefix(line, "#~|"):
			o.WriteString("#|")
			o.WriteString(line[3:])
		case strings.HasPrefix(line, "#~"):
			rest := strings.TrimPrefix(line[2:], " ")
			o.WriteString(rest)
		default:
			a.WriteString(line)
		}
	}
	return []byte(a.String()), []byte(o.String())
}

// Add appends entry e in document order. When an entry with the same
// msgid and msgctxt already exists, their occurrences and extracted
// comments are merged instead.
func (c *Catalog) Add(e po.Message) {
	for i := range c.Entries {
		m := &c.Entries[i]
		if m.MsgId != e.MsgId || m.MsgContext != e.MsgContext {
			continue
		}
		m.ReferenceFile = append(m.ReferenceFile, e.ReferenceFile...)
		m.ReferenceLine = append(m.ReferenceLine, e.ReferenceLine...)
		if e.ExtractedComment != "" && !strings.Contains(m.ExtractedComment, e.ExtractedComment) {
			if m.ExtractedComment != "" {
				m.ExtractedComment += "\n"
			}
			m.ExtractedComment += e.ExtractedComment
		}
		return
	}
	c.Entries = append(c.Entries, e)
}

// SetMetadata overlays header fields by their PO header names. Unknown
// names land in the header's extension field set.
func (c *Catalog) SetMetadata(metadata map[string]string) {
	for key, value := range metadata {
		switch key {
		case "Project-Id-Version":
			c.Header.ProjectIdVersion = value
		case "Report-Msgid-Bugs-To":
			c.Header.ReportMsgidBugsTo = value
		case "POT-Creation-Date":
			c.Header.POTCreationDate = value
		case "PO-Revision-Date":
			c.Header.PORevisionDate = value
		case "Last-Translator":
			c.Header.LastTranslator = value
		case "Language-Team":
			c.Header.LanguageTeam = value
		case "Language":
			c.Header.Language = value
		case "MIME-Version":
			c.Header.MimeVersion = value
		case "Content-Type":
			c.Header.ContentType = value
		case "Content-Transfer-Encoding":
			c.Header.ContentTransferEncoding = value
		case "Plural-Forms":
			c.Header.PluralForms = value
		case "X-Generator":
			c.Header.XGenerator = value
		default:
			if c.Header.UnknowFields == nil {
				c.Header.UnknowFields = make(map[string]string)
			}
			c.Header.UnknowFields[key] = value
		}
	}
}

// Coverage computes translation coverage counters for the catalog.
func (c *Catalog) Coverage() types.Coverage {
	cov := types.Coverage{
		Total:    len(c.Entries),
		Obsolete: len(c.Obsolete),
	}
	for i := range c.Entries {
		m := &c.Entries[i]
		switch {
		case IsFuzzy(m):
			cov.Fuzzy++
		case m.MsgStr != "":
			cov.Translated++
		}
	}
	return cov
}

// IsFuzzy reports whether m carries the fuzzy flag.
func IsFuzzy(m *po.Message) bool {
	for _, f := range m.Flags {
		if f == fuzzyFlag {
			return true
		}
	}
	return false
}

// SetFuzzy adds or removes the fuzzy flag on m.
func SetFuzzy(m *po.Message, fuzzy bool) {
	if fuzzy == IsFuzzy(m) {
		return
	}
	if fuzzy {
		m.Flags = append(m.Flags, fuzzyFlag)
		return
	}
	flags := m.Flags[:0]
	for _, f := range m.Flags {
		if f != fuzzyFlag {
			flags = append(flags, f)
		}
	}
	m.Flags = flags
}

// Table maps msgctxt-qualified msgids to usable translations.
type Table map[string]string

// NewTable builds a lookup over the given catalogs; later catalogs win
// on conflicts. Fuzzy, obsolete, and untranslated entries are excluded.
func NewTable(catalogs ...*Catalog) Table {
	t := make(Table)
	for _, c := range catalogs {
		for i := range c.Entries {
			m := &c.Entries[i]
			if m.MsgStr == "" || IsFuzzy(m) {
				continue
			}
			t[tableKey(m.MsgContext, m.MsgId)] = m.MsgStr
		}
	}
	return t
}

// Get returns the translation for msgid under context ctx.
func (t Table) Get(ctx, msgid string) (string, bool) {
	s, ok := t[tableKey(ctx, msgid)]
	return s, ok
}

// tableKey joins context and msgid with the gettext EOT separator used
// for msgctxt lookups.
func tableKey(ctx, msgid string) string {
	if ctx == "" {
		return msgid
	}
	return ctx + "\x04" + msgid
}
