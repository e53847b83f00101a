// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import "github.com/chai2010/gettext-go/gettext/po"

// MergeOptions controls how a fresh extraction is reconciled with a
// previously saved catalog.
type MergeOptions struct {
	// MarkNotFoundAsObsolete keeps previous entries whose msgid no
	// longer appears in the extraction, flagged obsolete. When false
	// they are dropped.
	MarkNotFoundAsObsolete bool
}

// Merge reconciles extracted entries (document order) with a previously
// saved catalog. Surviving entries keep the previous msgstr, plural
// strings, fuzzy flag, and translator comments. A previously obsolete
// entry whose msgid reappears is resurrected with its old translation.
// The previous header wins when present, so translator-maintained
// metadata survives re-extraction.
func Merge(extracted, previous *Catalog, opts MergeOptions) *Catalog {
	result := &Catalog{
		Header:  extracted.Header,
		Entries: append([]po.Message(nil), extracted.Entries...),
	}
	if previous == nil {
		return result
	}
	if previous.Header.ContentType != "" {
		result.Header = previous.Header
	}

	prevActive := indexByKey(previous.Entries)
	prevObsolete := indexByKey(previous.Obsolete)
	used := make(map[string]bool)

	for i := range result.Entries {
		m := &result.Entries[i]
		k := tableKey(m.MsgContext, m.MsgId)
		prev, ok := prevActive[k]
		if !ok {
			prev, ok = prevObsolete[k]
		}
		if !ok {
			continue
		}
		used[k] = true
		m.MsgStr = prev.MsgStr
		m.MsgIdPlural = prev.MsgIdPlural
		m.MsgStrPlural = append([]string(nil), prev.MsgStrPlural...)
		m.TranslatorComment = prev.TranslatorComment
		SetFuzzy(m, IsFuzzy(prev))
	}

	if !opts.MarkNotFoundAsObsolete {
		return result
	}
	for _, m := range previous.Entries {
		if used[tableKey(m.MsgContext, m.MsgId)] {
			continue
		}
		result.Obsolete = append(result.Obsolete, toObsolete(m))
	}
	for _, m := range previous.Obsolete {
		if used[tableKey(m.MsgContext, m.MsgId)] {
			continue
		}
		result.Obsolete = append(result.Obsolete, toObsolete(m))
	}
	return result
}

// toObsolete strips source-derived fields that no longer apply once the
// entry has left the document.
func toObsolete(m po.Message) po.Message {
	m.ReferenceFile = nil
	m.ReferenceLine = nil
	m.ExtractedComment = ""
	m.TranslatorComment = ""
	return m
}

func indexByKey(entries []po.Message) map[string]*po.Message {
	idx := make(map[string]*po.Message, len(entries))
	for i := range entries {
		m := &entries[i]
		k := tableKey(m.MsgContext, m.MsgId)
		if _, exists := idx[k]; !exists {
			idx[k] = m
		}
	}
	return idx
}
