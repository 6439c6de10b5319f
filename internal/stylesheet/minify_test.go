package stylesheet

import (
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
)

func TestMinify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "  \n\t ",
			want:  "",
		},
		{
			name: "rule",
			input: dedent.Dedent(`
				.button {
				  color: red;
				  padding: 4px 8px;
				}
			`),
			want: ".button{color: red;padding: 4px 8px}",
		},
		{
			name:  "comments",
			input: "/* header */ .a { color: red } /* trailing */",
			want:  ".a{color: red}",
		},
		{
			name:  "comment between tokens keeps a separator",
			input: ".a/**/.b{}",
			want:  ".a .b{}",
		},
		{
			name:  "selector lists and combinators",
			input: ".a , .b > .c ~ .d .e{}",
			want:  ".a,.b>.c~.d .e{}",
		},
		{
			name:  "calc keeps operator spacing",
			input: ".a{width:calc(100% - 2px + 1em)}",
			want:  ".a{width:calc(100% - 2px + 1em)}",
		},
		{
			name:  "strings untouched",
			input: `.a::before{content:"a  ;  b"}`,
			want:  `.a::before{content:"a  ;  b"}`,
		},
		{
			name:  "descendant pseudo kept",
			input: ".a :hover{}",
			want:  ".a :hover{}",
		},
		{
			name:  "at rule",
			input: "@media (min-width: 600px) {\n  .a { color: red; }\n}\n",
			want:  "@media (min-width: 600px){.a{color: red}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Minify(tt.input))
		})
	}
}
