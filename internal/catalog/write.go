// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chai2010/gettext-go/gettext/po"
)

// obsoletePrefix marks serialized lines of entries that have left the
// source document.
const obsoletePrefix = "#~ "

// Save serializes the catalog to path, wrapping strings at wrapWidth
// columns (zero or negative disables wrapping).
func (c *Catalog) Save(path string, wrapWidth int) error {
	if err := os.WriteFile(path, c.Data(wrapWidth), 0o644); err != nil {
		return fmt.Errorf("writing catalog %s: %w", path, err)
	}
	return nil
}

// Data serializes the catalog: header first, active entries in document
// order, obsolete entries last with "#~" prefixes.
func (c *Catalog) Data(wrapWidth int) []byte {
	var b strings.Builder
	writeHeader(&b, &c.Header)
	for i := range c.Entries {
		b.WriteByte('\n')
		writeMessage(&b, &c.Entries[i], wrapWidth, "")
	}
	for i := range c.Obsolete {
		b.WriteByte('\n')
		writeMessage(&b, &c.Obsolete[i], wrapWidth, obsoletePrefix)
	}
	return []byte(b.String())
}

// writeHeader emits the "" entry. The three MIME fields always appear
// so gettext tools accept the output; other fields only when set.
func writeHeader(b *strings.Builder, h *po.Header) {
	for _, line := range commentLines(h.TranslatorComment) {
		fmt.Fprintf(b, "# %s\n", line)
	}
	b.WriteString("msgid \"\"\n")
	b.WriteString("msgstr \"\"\n")

	fields := []struct{ name, value string }{
		{"Project-Id-Version", h.ProjectIdVersion},
		{"Report-Msgid-Bugs-To", h.ReportMsgidBugsTo},
		{"POT-Creation-Date", h.POTCreationDate},
		{"PO-Revision-Date", h.PORevisionDate},
		{"Last-Translator", h.LastTranslator},
		{"Language-Team", h.LanguageTeam},
		{"Language", h.Language},
		{"MIME-Version", orDefault(h.MimeVersion, "1.0")},
		{"Content-Type", orDefault(h.ContentType, "text/plain; charset=utf-8")},
		{"Content-Transfer-Encoding", orDefault(h.ContentTransferEncoding, "8bit")},
		{"Plural-Forms", h.PluralForms},
		{"X-Generator", h.XGenerator},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(b, "\"%s: %s\\n\"\n", f.name, escape(f.value))
	}
	extras := make([]string, 0, len(h.UnknowFields))
	for name := range h.UnknowFields {
		extras = append(extras, name)
	}
	sort.Strings(extras)
	for _, name := range extras {
		fmt.Fprintf(b, "\"%s: %s\\n\"\n", name, escape(h.UnknowFields[name]))
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// writeMessage emits one entry. Comment lines never take the obsolete
// prefix; obsolete entries carry no comments at all (toObsolete strips
// them, and gettext tools discard them anyway).
func writeMessage(b *strings.Builder, m *po.Message, wrapWidth int, prefix string) {
	if prefix == "" {
		for _, line := range commentLines(m.TranslatorComment) {
			fmt.Fprintf(b, "# %s\n", line)
		}
		for _, line := range commentLines(m.ExtractedComment) {
			fmt.Fprintf(b, "#. %s\n", line)
		}
		if refs := referenceLine(m); refs != "" {
			fmt.Fprintf(b, "#: %s\n", refs)
		}
		if len(m.Flags) > 0 {
			fmt.Fprintf(b, "#, %s\n", strings.Join(m.Flags, ", "))
		}
	}

	if m.MsgContext != "" {
		writeString(b, prefix, "msgctxt", m.MsgContext, wrapWidth)
	}
	writeString(b, prefix, "msgid", m.MsgId, wrapWidth)
	if m.MsgIdPlural != "" {
		writeString(b, prefix, "msgid_plural", m.MsgIdPlural, wrapWidth)
		for i, s := range m.MsgStrPlural {
			writeString(b, prefix, fmt.Sprintf("msgstr[%d]", i), s, wrapWidth)
		}
		return
	}
	writeString(b, prefix, "msgstr", m.MsgStr, wrapWidth)
}

// referenceLine joins occurrence references as "file:line" pairs. A
// non-positive line means the file-only location mode.
func referenceLine(m *po.Message) string {
	var refs []string
	for i, file := range m.ReferenceFile {
		if file == "" {
			continue
		}
		if i < len(m.ReferenceLine) && m.ReferenceLine[i] > 0 {
			refs = append(refs, fmt.Sprintf("%s:%d", file, m.ReferenceLine[i]))
		} else {
			refs = append(refs, file)
		}
	}
	return strings.Join(refs, " ")
}

// writeString emits a keyword with its quoted value, splitting long or
// multi-line values into a continuation block the way polib does.
func writeString(b *strings.Builder, prefix, keyword, value string, wrapWidth int) {
	escaped := escape(value)
	if !strings.Contains(value, "\n") &&
		(wrapWidth <= 0 || len(prefix)+len(keyword)+len(escaped)+3 <= wrapWidth) {
		fmt.Fprintf(b, "%s%s \"%s\"\n", prefix, keyword, escaped)
		return
	}
	fmt.Fprintf(b, "%s%s \"\"\n", prefix, keyword)
	for _, chunk := range wrapValue(value, wrapWidth-len(prefix)-2) {
		fmt.Fprintf(b, "%s\"%s\"\n", prefix, chunk)
	}
}

// wrapValue splits value into escaped chunks of at most width columns.
// Newlines always end a chunk; longer runs break after a space so an
// escape sequence is never split. A non-positive width disables the
// column limit and chunks split on newlines only.
func wrapValue(value string, width int) []string {
	noWrap := width <= 0
	if !noWrap && width < 16 {
		width = 16
	}
	var chunks []string
	for _, seg := range strings.SplitAfter(value, "\n") {
		if seg == "" {
			continue
		}
		esc := escape(seg)
		for !noWrap && len(esc) > width {
			cut := strings.LastIndex(esc[:width+1], " ")
			if cut <= 0 {
				cut = strings.Index(esc[width:], " ")
				if cut < 0 {
					break
				}
				cut += width
			}
			chunks = append(chunks, esc[:cut+1])
			esc = esc[cut+1:]
		}
		if esc != "" {
			chunks = append(chunks, esc)
		}
	}
	return chunks
}

// commentLines splits a comment into lines, dropping a trailing empty
// line so comments never grow on round trips.
func commentLines(comment string) []string {
	if comment == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(comment, "\n"), "\n")
}

// escape encodes a string for PO quoted output: backslash, quote,
// newline, tab, carriage return.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
