package datefmt

import (
	"fmt"
	"strings"
)

// directives maps strftime conversion characters to Go layout fragments.
var directives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'e': "_2",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'Z': "MST",
	'z': "-0700",
}

// Layout converts an strftime-style template (e.g. "%Y-%m-%d") into a Go
// time layout. Unknown directives and a trailing bare '%' are errors.
func Layout(template string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(template) {
			return "", fmt.Errorf("date format %q ends with a bare %%", template)
		}
		d := template[i]
		if d == '%' {
			b.WriteByte('%')
			continue
		}
		fragment, ok := directives[d]
		if !ok {
			return "", fmt.Errorf("date format %q: unsupported directive %%%c", template, d)
		}
		b.WriteString(fragment)
	}
	return b.String(), nil
}
