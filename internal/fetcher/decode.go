package fetcher

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/resource-finder/internal/model"
)

// Format is a document encoding.
type Format int

// Document formats.
const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatOf picks the format from the location's extension. Anything other
// than .yaml or .yml is JSON.
func FormatOf(location string) Format {
	p := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// DecodeRecords reads a document that is either a list of records or a
// mapping wrapping one. For a mapping, the first list-valued field in
// document order is used. Any other shape yields no records. List elements
// that are not objects are dropped.
func DecodeRecords(r io.Reader, format Format) ([]model.RawRecord, error) {
	var (
		items []any
		err   error
	)
	switch format {
	case FormatYAML:
		items, err = yamlList(r)
	default:
		items, err = jsonList(r)
	}
	if err != nil {
		return nil, err
	}

	out := make([]model.RawRecord, 0, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			zap.L().Debug("fetcher: dropping non-object record", zap.Int("position", i))
			continue
		}
		out = append(out, model.RawRecord(m))
	}
	return out, nil
}

// jsonList walks the top level with the token stream so that envelope keys
// are seen in document order. The document must be complete: a missing
// closing delimiter or trailing data is an error.
func jsonList(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: read json document")
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, expectEOF(dec)
	}

	var items []any
	switch delim {
	case '[':
		for dec.More() {
			var it any
			if err := dec.Decode(&it); err != nil {
				return nil, eris.Wrap(err, "fetcher: decode json element")
			}
			items = append(items, it)
		}
		if err := expectDelim(dec, ']'); err != nil {
			return nil, err
		}
	case '{':
		found := false
		for dec.More() {
			if _, err := dec.Token(); err != nil {
				return nil, eris.Wrap(err, "fetcher: read json key")
			}
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, eris.Wrap(err, "fetcher: decode json field")
			}
			if found {
				continue
			}
			if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
				continue
			}
			inner := json.NewDecoder(bytes.NewReader(raw))
			inner.UseNumber()
			if err := inner.Decode(&items); err != nil {
				return nil, eris.Wrap(err, "fetcher: decode json envelope list")
			}
			found = true
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
	}

	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return items, nil
}

// expectDelim consumes the closing delimiter of the current value.
func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return eris.Errorf("fetcher: json document truncated, missing %q", want)
		}
		return eris.Wrapf(err, "fetcher: read json %q", want)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return eris.Errorf("fetcher: expected json %q, got %v", want, tok)
	}
	return nil
}

// expectEOF reports trailing data after the top-level value.
func expectEOF(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return eris.Wrap(err, "fetcher: read json trailing data")
	}
	return eris.Errorf("fetcher: unexpected trailing json data %v", tok)
}

// yamlList inspects the node tree so mapping keys keep their order.
func yamlList(r io.Reader) ([]any, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, eris.Wrap(err, "fetcher: read yaml document")
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var seq *yaml.Node
	switch root.Kind {
	case yaml.SequenceNode:
		seq = root
	case yaml.MappingNode:
		for i := 1; i < len(root.Content); i += 2 {
			if v := root.Content[i]; v.Kind == yaml.SequenceNode {
				seq = v
				break
			}
		}
	}
	if seq == nil {
		return nil, nil
	}

	var items []any
	if err := seq.Decode(&items); err != nil {
		return nil, eris.Wrap(err, "fetcher: decode yaml list")
	}
	return items, nil
}
