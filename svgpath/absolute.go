package svgpath

// ToAbsolute returns a copy of the path where every command uses absolute
// coordinates. Close commands are normalized to 'z'.
// Items holding several groups of arguments are split, one item per group.
func ToAbsolute(path Path) Path {
	out := make(Path, 0, len(path))
	var start, cursor [2]float64
	for _, it := range path {
		n := ArgsCount(it.Command)
		if n <= 0 {
			if it.Command == 'z' || it.Command == 'Z' {
				cursor = start
				out = append(out, Item{Command: 'z'})
			}
			continue
		}
		for g := 0; g+n <= len(it.Args); g += n {
			command := it.Command
			args := append([]float64(nil), it.Args[g:g+n]...)
			switch command {
			case 'm', 'l', 't':
				args[0] += cursor[0]
				args[1] += cursor[1]
			case 'h':
				args[0] += cursor[0]
			case 'v':
				args[0] += cursor[1]
			case 'c', 's', 'q':
				for i := range args {
					args[i] += cursor[i%2]
				}
			case 'a':
				args[5] += cursor[0]
				args[6] += cursor[1]
			}
			command = toUpper(command)
			switch command {
			case 'M':
				cursor = [2]float64{args[0], args[1]}
				start = cursor
			case 'H':
				cursor[0] = args[0]
			case 'V':
				cursor[1] = args[0]
			default:
				cursor = [2]float64{args[n-2], args[n-1]}
			}
			out = append(out, Item{Command: command, Args: args})
		}
	}
	return out
}

func toUpper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
