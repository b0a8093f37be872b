package svgpath

import "strings"

// Stringify writes the path data in its most compact form :
// consecutive commands of the same kind are merged, numbers are rounded
// to precision decimal digits (unless precision is NoPrecision), leading
// zeros are dropped and delimiters are only written when required.
//
// When noSpaceAfterFlags is true, the arc flags are never preceded by a space.
func Stringify(path Path, precision int, noSpaceAfterFlags bool) string {
	combined := make(Path, 0, len(path))
	for i, it := range path {
		if i == 0 {
			combined = append(combined, Item{Command: it.Command, Args: it.Args})
			continue
		}
		last := &combined[len(combined)-1]
		if i == 1 {
			// a leading move followed by a line is written as a single move
			if it.Command == 'L' {
				last.Command = 'M'
			} else if it.Command == 'l' {
				last.Command = 'm'
			}
		}
		if (last.Command == it.Command && last.Command != 'M' && last.Command != 'm') ||
			(last.Command == 'M' && it.Command == 'L') ||
			(last.Command == 'm' && it.Command == 'l') {
			last.Args = append(last.Args[:len(last.Args):len(last.Args)], it.Args...)
		} else {
			combined = append(combined, Item{Command: it.Command, Args: it.Args})
		}
	}

	var sb strings.Builder
	for _, it := range combined {
		sb.WriteByte(it.Command)
		writeArgs(&sb, it.Command, it.Args, precision, noSpaceAfterFlags)
	}
	return sb.String()
}

func writeArgs(sb *strings.Builder, command byte, args []float64, precision int, noSpaceAfterFlags bool) {
	isArc := command == 'A' || command == 'a'
	var previous string
	for i, arg := range args {
		s := RemoveLeadingZero(Round(arg, precision))
		switch {
		case noSpaceAfterFlags && isArc && (i%7 == 4 || i%7 == 5):
		case i == 0 || s[0] == '-':
		case strings.Contains(previous, ".") && s[0] == '.':
		default:
			sb.WriteByte(' ')
		}
		sb.WriteString(s)
		previous = s
	}
}
