package serializer

import (
	"encoding/json"
	"strings"
)

// sourceMapFile is the version-3 source map structure
// (https://sourcemaps.info/spec.html); sassgo never populates `names`
// since Sass has no renamed identifiers to track the way a JS minifier
// would.
type sourceMapFile struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// buildSourceMap turns the mappings collected during the write pass
// into a version-3 source map JSON document. No source-map *generation*
// library exists anywhere in the retrieval pack -- the one source-map
// library present (go-sourcemap/sourcemap, pulled in transitively by
// lukehoban-browser) is a consumer/parser, not an encoder -- so the VLQ
// encoding here is hand-built directly off the public format spec,
// the same way the prior implementation hand-built its own formatter rather than
// reaching for a templating library for a problem this small.
func (s *serializer) buildSourceMap() string {
	sources := make([]string, len(s.files))
	var sourcesContent []string
	if s.opts.EmbedSources {
		sourcesContent = make([]string, len(s.files))
	}
	for i, f := range s.files {
		if f != nil {
			sources[i] = f.URL
			if s.opts.EmbedSources {
				sourcesContent[i] = f.Text
			}
		}
	}

	doc := sourceMapFile{
		Version:        3,
		File:           s.opts.OutputURL,
		Sources:        sources,
		SourcesContent: sourcesContent,
		Names:          []string{},
		Mappings:       encodeMappings(s.mappings),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return string(data)
}

// encodeMappings renders the "mappings" field: one semicolon-separated
// group per generated line, each group a comma-separated list of VLQ
// segments, every field delta-encoded against the previous segment on
// the same line (generated column) or overall (source index/line/col),
// per the source-map spec's field-by-field delta rule.
func encodeMappings(mappings []mapping) string {
	if len(mappings) == 0 {
		return ""
	}

	var out strings.Builder
	prevGenLine := 0
	prevGenCol := 0
	prevSource := 0
	prevSrcLine := 0
	prevSrcCol := 0
	firstOnLine := true

	for _, m := range mappings {
		for prevGenLine < m.genLine {
			out.WriteByte(';')
			prevGenLine++
			prevGenCol = 0
			firstOnLine = true
		}
		if !firstOnLine {
			out.WriteByte(',')
		}
		firstOnLine = false

		out.WriteString(encodeVLQ(m.genCol - prevGenCol))
		out.WriteString(encodeVLQ(m.source - prevSource))
		out.WriteString(encodeVLQ(m.srcLine - prevSrcLine))
		out.WriteString(encodeVLQ(m.srcCol - prevSrcCol))

		prevGenCol = m.genCol
		prevSource = m.source
		prevSrcLine = m.srcLine
		prevSrcCol = m.srcCol
	}
	return out.String()
}

const vlqAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// encodeVLQ encodes one signed integer as base64-VLQ: the sign is
// folded into the low bit, then the magnitude is emitted five bits at a
// time, least significant first, with the high bit of each base64
// digit set on every digit but the last to signal continuation.
func encodeVLQ(n int) string {
	var out strings.Builder
	v := n << 1
	if n < 0 {
		v = (-n << 1) | 1
	}
	for {
		digit := v & 0x1f
		v >>= 5
		if v > 0 {
			digit |= 0x20
		}
		out.WriteByte(vlqAlphabet[digit])
		if v == 0 {
			break
		}
	}
	return out.String()
}
