package jsonrepair

// scanState is the finite state threaded through one character-level repair
// pass: whether the scanner is inside a string literal, the stack of unmatched
// opening brackets, and whether the last token completed a value.
type scanState struct {
	out       []byte
	stack     []byte
	inString  bool
	escape    bool
	lastValue bool
}

// repairScan performs a single left-to-right pass over content, synthesizing
// commas between juxtaposed values and closing any brackets left open at end
// of input. Mismatched closers are passed through untouched.
func repairScan(content string) string {
	st := &scanState{out: make([]byte, 0, len(content)+8)}

	for i := 0; i < len(content); i++ {
		c := content[i]

		if st.escape {
			st.out = append(st.out, c)
			st.escape = false
			continue
		}
		if c == '\\' {
			st.escape = true
			st.out = append(st.out, c)
			continue
		}
		if c == '"' {
			st.inString = !st.inString
			st.out = append(st.out, c)
			if !st.inString {
				// A closing quote completes a value (or a key; the colon
				// that follows a key resets the flag before it matters).
				st.lastValue = true
			}
			continue
		}
		if st.inString {
			st.out = append(st.out, c)
			continue
		}

		switch c {
		case '{', '[':
			if st.lastValue && !st.lastIsSeparator() {
				st.out = append(st.out, ',')
			}
			st.stack = append(st.stack, c)
			st.out = append(st.out, c)
			st.lastValue = false
		case '}':
			st.popIf('{')
			st.out = append(st.out, c)
			st.lastValue = false
		case ']':
			st.popIf('[')
			st.out = append(st.out, c)
			st.lastValue = false
		case ',', ':':
			st.out = append(st.out, c)
			st.lastValue = false
		case ' ', '\t', '\n', '\r':
			st.out = append(st.out, c)
		default:
			// An alphanumeric token starting after a completed value with
			// only whitespace in between is a juxtaposed sibling value.
			if st.lastValue && st.lastIsSpace() && isTokenStart(c) {
				n := len(st.out)
				st.out = append(st.out[:n-trailingSpace(st.out)], ',')
				st.out = append(st.out, content[i-trailingSpaceIn(content, i):i]...)
			}
			st.out = append(st.out, c)
			if completesValue(content[i:]) {
				st.lastValue = true
			}
		}
	}

	// Close still-open containers in LIFO order.
	for len(st.stack) > 0 {
		top := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]
		if top == '{' {
			st.out = append(st.out, '}')
		} else {
			st.out = append(st.out, ']')
		}
	}

	return string(st.out)
}

// popIf pops the bracket stack only when the top matches; a stray closer
// leaves the stack alone so later balancing still works.
func (st *scanState) popIf(open byte) {
	if n := len(st.stack); n > 0 && st.stack[n-1] == open {
		st.stack = st.stack[:n-1]
	}
}

// lastIsSeparator reports whether the previous emitted byte already separates
// values, making a synthesized comma redundant.
func (st *scanState) lastIsSeparator() bool {
	for i := len(st.out) - 1; i >= 0; i-- {
		switch st.out[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case ',', ':', '[', '{':
			return true
		default:
			return false
		}
	}
	return true
}

func (st *scanState) lastIsSpace() bool {
	n := len(st.out)
	if n == 0 {
		return false
	}
	switch st.out[n-1] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isTokenStart(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// completesValue reports whether the text starting at the current character
// begins a complete scalar value (number or keyword).
func completesValue(rest string) bool {
	if rest == "" {
		return false
	}
	c := rest[0]
	if c >= '0' && c <= '9' {
		return true
	}
	return hasKeywordPrefix(rest, "true") || hasKeywordPrefix(rest, "false") || hasKeywordPrefix(rest, "null")
}

func hasKeywordPrefix(s, kw string) bool {
	if len(s) < len(kw) || s[:len(kw)] != kw {
		return false
	}
	if len(s) == len(kw) {
		return true
	}
	return !isTokenStart(s[len(kw)])
}

// trailingSpace counts whitespace bytes at the end of buf.
func trailingSpace(buf []byte) int {
	n := 0
	for i := len(buf) - 1; i >= 0; i-- {
		switch buf[i] {
		case ' ', '\t', '\n', '\r':
			n++
		default:
			return n
		}
	}
	return n
}

// trailingSpaceIn counts whitespace bytes immediately before index i.
func trailingSpaceIn(s string, i int) int {
	n := 0
	for j := i - 1; j >= 0; j-- {
		switch s[j] {
		case ' ', '\t', '\n', '\r':
			n++
		default:
			return n
		}
	}
	return n
}
