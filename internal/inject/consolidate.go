package inject

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/cssvariant/internal/hash"
	"github.com/yacobolo/cssvariant/internal/jsliteral"
	"github.com/yacobolo/cssvariant/internal/sourcemap"
)

// Delivery selects the shape of the merged injection call.
type Delivery int

const (
	// DeliveryConcat emits callee("<key>", "<all css>").
	DeliveryConcat Delivery = iota
	// DeliveryMap emits callee({"<id>": "<css>", ...}).
	DeliveryMap
)

// Anchor selects where the merged call is placed.
type Anchor int

const (
	// AnchorFirst places the call where the first marker was.
	AnchorFirst Anchor = iota
	// AnchorLast places the call where the last marker was.
	AnchorLast
)

// Options configures Consolidate.
type Options struct {
	Protocol Protocol
	Delivery Delivery
	Anchor   Anchor
	// SourceMap requests a map from the rewritten text to the input.
	SourceMap bool
	// Filename names the input in the source map.
	Filename string
	Logger   *zap.Logger
}

// Result is the outcome of one consolidation pass.
type Result struct {
	Code string
	// Map is set when Options.SourceMap was requested and the text changed.
	Map     *sourcemap.Map
	Changed bool
	Markers []Marker
	// Key is the grouping key of the merged call.
	Key string
	// CSS is the concatenated payload in marker order.
	CSS string
}

// Consolidate merges every marked injection call in code into a single call
// carrying all payloads in their original order. Text without a start
// delimiter is returned unchanged.
func Consolidate(code string, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	p := opts.Protocol.withDefaults()

	if !strings.Contains(code, p.Start) {
		return &Result{Code: code}, nil
	}

	markers, err := Scan(code, p)
	if err != nil {
		return nil, err
	}

	callee := markers[0].Callee
	payloads := newPayloads()
	var css strings.Builder
	for _, m := range markers {
		if m.Callee != callee {
			return nil, &MalformedMarkerError{
				Offset: m.StartIndex,
				Reason: "callee " + m.Callee + " differs from " + callee + " used by the first marker",
			}
		}
		decoded, err := Decode(m)
		if err != nil {
			return nil, err
		}
		css.WriteString(decoded)
		payloads.add(prefixID(m.ID), decoded)
	}

	res := &Result{Markers: markers, CSS: css.String(), Changed: true}

	var call string
	switch opts.Delivery {
	case DeliveryMap:
		call = callee + "(" + payloads.object() + ")"
	default:
		res.Key = groupKey(payloads.ids)
		call = callee + "(" + jsliteral.Quote(res.Key) + ", " + jsliteral.Quote(res.CSS) + ")"
	}

	anchor := markers[0]
	at := anchor.StartIndex
	if opts.Anchor == AnchorLast {
		anchor = markers[len(markers)-1]
		at = anchor.StatementEnd
	}
	if anchor.Terminator != 0 {
		call += string(anchor.Terminator)
	}

	edits := make([]edit, 0, len(markers)+1)
	edits = append(edits, edit{start: at, end: at, text: call})
	for _, m := range markers {
		e := edit{start: m.StartIndex, end: m.StatementEnd}
		if m.StartIndex != anchor.StartIndex {
			e.text = removedCall(code, m)
		}
		edits = append(edits, e)
	}

	var b *sourcemap.Builder
	if opts.SourceMap {
		b = sourcemap.NewBuilder(opts.Filename, opts.Filename, code)
	}
	res.Code = applyEdits(code, edits, b)
	if b != nil {
		res.Map = b.Map()
	}

	log.Debug("consolidated injection markers",
		zap.String("file", opts.Filename),
		zap.String("callee", callee),
		zap.Int("markers", len(markers)),
		zap.Int("units", len(payloads.ids)),
		zap.Int("bytes", css.Len()))

	return res, nil
}

// payloads collects decoded CSS per unit id in first-seen order. A repeated
// id appends to its entry instead of replacing it.
type payloads struct {
	ids []string
	css map[string]*strings.Builder
}

func newPayloads() *payloads {
	return &payloads{css: make(map[string]*strings.Builder)}
}

func (p *payloads) add(id, css string) {
	sb, ok := p.css[id]
	if !ok {
		sb = &strings.Builder{}
		p.css[id] = sb
		p.ids = append(p.ids, id)
	}
	sb.WriteString(css)
}

func (p *payloads) object() string {
	parts := make([]string, len(p.ids))
	for i, id := range p.ids {
		parts[i] = jsliteral.Quote(id) + ":" + jsliteral.Quote(p.css[id].String())
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// groupKey derives the key of a merged call from the unit ids it carries.
// A single id is used as is so unmerged output keeps its key.
func groupKey(ids []string) string {
	if len(ids) == 1 {
		return ids[0]
	}
	return prefixID(hash.String(strings.Join(ids, "\x00")))
}

// prefixID keeps ids usable as element id suffixes and object keys when
// they start with a digit.
func prefixID(id string) string {
	if id != "" && id[0] >= '0' && id[0] <= '9' {
		return "_" + id
	}
	return id
}

// removedCall returns the text left in place of a marker that is not the
// anchor. A call that starts a statement disappears with its terminator.
// Anywhere else the call is an operand, argument or arrow body and becomes
// `void 0`, keeping its terminator.
func removedCall(code string, m Marker) string {
	if statementStart(code, m.StartIndex) {
		return ""
	}
	text := "void 0"
	if m.Terminator != 0 {
		text += string(m.Terminator)
	}
	return text
}

// statementStart reports whether i begins a statement: the previous
// non-space byte ends a statement or opens a block.
func statementStart(code string, i int) bool {
	j := prevNonSpace(code, i)
	if j < 0 {
		return true
	}
	switch code[j] {
	case ';', '}':
		return true
	case '{':
		// `${` opens a template substitution, which needs an expression.
		return j == 0 || code[j-1] != '$'
	}
	return false
}
