// Package svgpath implements the parsing and the serialization of SVG
// path data, as well as a conservative intersection test between two
// paths.
package svgpath

// Item is one path command with its arguments. Command is one of
// "MmZzLlHhVvCcSsQqTtAa" : upper case is absolute, lower case is relative.
//
// An item may hold several groups of arguments for the same command,
// as produced when merging consecutive commands.
type Item struct {
	Command byte
	Args    []float64
}

// Path is a list of commands.
type Path []Item

// ArgsCount returns the number of arguments expected by the command,
// or -1 if c is not a path command.
func ArgsCount(c byte) int {
	switch c {
	case 'M', 'm', 'L', 'l', 'T', 't':
		return 2
	case 'Z', 'z':
		return 0
	case 'H', 'h', 'V', 'v':
		return 1
	case 'C', 'c':
		return 6
	case 'S', 's', 'Q', 'q':
		return 4
	case 'A', 'a':
		return 7
	default:
		return -1
	}
}

func isCommand(c byte) bool { return ArgsCount(c) != -1 }

// Clone returns a deep copy.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	for i, it := range p {
		out[i] = Item{Command: it.Command, Args: append([]float64(nil), it.Args...)}
	}
	return out
}

// String serializes the path without rounding.
func (p Path) String() string {
	return Stringify(p, NoPrecision, false)
}
