package resp

import (
	"strconv"
	"strings"
)

// Format renders the value in a human-readable form for interactive use.
// Strings are quoted, arrays are numbered one element per line, nulls
// appear as (nil) and server errors as (error).
func (v Value) Format() string {
	var sb strings.Builder
	v.format(&sb, 0)
	return sb.String()
}

func (v Value) format(sb *strings.Builder, indent int) {
	switch v.Type {
	case TypeSimpleString:
		sb.Write(v.String)
	case TypeError:
		sb.WriteString("(error) ")
		sb.Write(v.String)
	case TypeInteger:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.FormatInt(v.Integer, 10))
	case TypeBulkString:
		if v.IsNull {
			sb.WriteString("(nil)")
			return
		}
		sb.WriteString(strconv.Quote(string(v.String)))
	case TypeArray:
		if v.IsNull {
			sb.WriteString("(nil)")
			return
		}
		if len(v.Array) == 0 {
			sb.WriteString("(empty array)")
			return
		}
		for i, el := range v.Array {
			if i > 0 {
				sb.WriteByte('\n')
				sb.WriteString(strings.Repeat("  ", indent))
			}
			sb.WriteString(strconv.Itoa(i + 1))
			sb.WriteString(") ")
			el.format(sb, indent+1)
		}
	default:
		sb.WriteString("(unknown)")
	}
}
