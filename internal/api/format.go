package api

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// prettyOptions matches two-space indentation used for saved files
var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// FormatJSON indents raw when it is valid JSON and returns it unchanged otherwise
func FormatJSON(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return string(raw)
	}
	return string(pretty.PrettyOptions(raw, prettyOptions))
}
