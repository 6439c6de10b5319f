// Package inject implements the CSS injection marker protocol and the pass
// that merges marked injection calls in bundled output into one call.
//
// A producer wraps the CSS payload of an injection call between two comment
// delimiters placed directly inside the string argument:
//
//	inject("<id>/*__VE_RUNTIME_START__*/.a{color:red}/*__VE_RUNTIME_END__*/");
//
// The consolidator finds these calls with plain text scanning, so it never
// has to parse the bundle.
package inject

import "github.com/yacobolo/cssvariant/internal/jsliteral"

// Default delimiters.
const (
	StartMarker = "/*__VE_RUNTIME_START__*/"
	EndMarker   = "/*__VE_RUNTIME_END__*/"
)

// Protocol holds the delimiter pair shared by producer and consumer.
type Protocol struct {
	Start string
	End   string
}

// DefaultProtocol returns the protocol with the default delimiters.
func DefaultProtocol() Protocol {
	return Protocol{Start: StartMarker, End: EndMarker}
}

func (p Protocol) withDefaults() Protocol {
	if p.Start == "" {
		p.Start = StartMarker
	}
	if p.End == "" {
		p.End = EndMarker
	}
	return p
}

// Wrap returns a marked injection statement delivering css for id.
func (p Protocol) Wrap(callee, id, css string) string {
	p = p.withDefaults()
	return callee + "(" + jsliteral.Quote(id+p.Start+css+p.End) + ");"
}

// DevCall returns an unmarked development injection statement. Development
// calls replace the content for id on every evaluation and are never merged.
func DevCall(callee, id, css, sourceURL string) string {
	if sourceURL != "" {
		css += "\n/*# sourceURL=" + sourceURL + "?css */"
	}
	return callee + "(" + jsliteral.Quote(id) + ", " + jsliteral.Quote(css) + ");"
}
