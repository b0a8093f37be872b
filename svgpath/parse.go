package svgpath

import (
	"errors"
	"strconv"
)

// number reader states
const (
	stNone uint8 = iota
	stSign
	stWhole
	stDecimalPoint
	stDecimal
	stE
	stExponentSign
	stExponent
)

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isWsp(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

// readNumber reads a number starting at cursor, returning the index of
// its last character. ok is false if no number could be read.
func readNumber(s string, cursor int) (last int, value float64, ok bool) {
	i := cursor
	state := stNone
	hasDigits := false
	expStart := -1
loop:
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '+' || c == '-':
			if state == stNone {
				state = stSign
				continue
			}
			if state == stE {
				state = stExponentSign
				continue
			}
			break loop
		case isDigit(c):
			switch state {
			case stNone, stSign, stWhole:
				state = stWhole
			case stDecimalPoint, stDecimal:
				state = stDecimal
			default: // stE, stExponentSign, stExponent
				state = stExponent
				continue
			}
			hasDigits = true
		case c == '.':
			if state != stNone && state != stSign && state != stWhole {
				break loop
			}
			state = stDecimalPoint
		case c == 'e' || c == 'E':
			if state != stWhole && state != stDecimalPoint && state != stDecimal {
				break loop
			}
			state = stE
			expStart = i
		default:
			break loop
		}
	}
	if !hasDigits {
		return cursor, 0, false
	}
	literal := s[cursor:i]
	if state == stE || state == stExponentSign {
		// dangling exponent marker : only the mantissa is used
		literal = s[cursor:expStart]
	}
	value, err := strconv.ParseFloat(literal, 64)
	if errors.Is(err, strconv.ErrSyntax) {
		return cursor, 0, false
	}
	return i - 1, value, true
}

// Parse reads path data. Parsing stops at the first error, and the
// commands read so far are returned : the result is always a valid
// (possibly empty) prefix of the input.
func Parse(s string) Path {
	var (
		out          Path
		command      byte
		args         []float64
		argsCount    int
		canHaveComma bool
		hadComma     bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isWsp(c) {
			continue
		}
		if canHaveComma && c == ',' {
			if hadComma {
				break
			}
			hadComma = true
			continue
		}
		if isCommand(c) {
			if hadComma {
				return out
			}
			if command == 0 {
				if c != 'M' && c != 'm' {
					return out
				}
			} else if len(args) != 0 {
				return out
			}
			command = c
			args = nil
			argsCount = ArgsCount(c)
			canHaveComma = false
			if argsCount == 0 {
				out = append(out, Item{Command: command})
			}
			continue
		}
		if command == 0 {
			return out
		}

		var (
			next   = i
			number float64
			ok     bool
		)
		if command == 'A' || command == 'a' {
			switch len(args) {
			case 0, 1: // radii are unsigned
				if c != '+' && c != '-' {
					next, number, ok = readNumber(s, i)
				}
			case 3, 4: // flags are single digits
				if c == '0' || c == '1' {
					number, ok = float64(c-'0'), true
				}
			default:
				next, number, ok = readNumber(s, i)
			}
		} else {
			next, number, ok = readNumber(s, i)
		}
		if !ok {
			return out
		}

		args = append(args, number)
		canHaveComma = true
		hadComma = false
		i = next
		if len(args) == argsCount {
			out = append(out, Item{Command: command, Args: args})
			// implicit line to
			if command == 'M' {
				command = 'L'
			} else if command == 'm' {
				command = 'l'
			}
			args = nil
		}
	}
	return out
}
