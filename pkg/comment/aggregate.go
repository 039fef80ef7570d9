package comment

// Aggregate turns scanned fragments into documentation comments.
//
// Adjacent /// fragments merge into one line-run comment when only
// horizontal whitespace and a single line break separate them. Each
// terminated /** */ fragment becomes one block comment. Ordinary comments
// and unterminated blocks are left out. Output is in source order.
func Aggregate(src []byte, frags []Fragment) []RawComment {
	var comments []RawComment

	for idx := 0; idx < len(frags); idx++ {
		frag := frags[idx]

		switch frag.Kind {
		case KindDocBlock:
			if frag.Unterminated {
				continue
			}
			comments = append(comments, NewRawComment(src, StyleBlock, frag.Start, frag.End))

		case KindDocLine:
			last := idx
			for last+1 < len(frags) &&
				frags[last+1].Kind == KindDocLine &&
				onNextLine(src, frags[last].End, frags[last+1].Start) {
				last++
			}
			comments = append(comments, NewRawComment(src, StyleLineRun, frag.Start, frags[last].End))
			idx = last

		case KindLine, KindBlock:
			// Not documentation.
		}
	}

	return comments
}

// onNextLine reports whether src[from:to] is exactly one line break
// surrounded by horizontal whitespace.
func onNextLine(src []byte, from, to int) bool {
	newlines := 0
	for _, char := range src[from:to] {
		switch char {
		case '\n':
			newlines++
		case ' ', '\t', '\f', '\r':
		default:
			return false
		}
	}
	return newlines == 1
}

// Extract scans src and aggregates its documentation comments. The returned
// errors are the scanner's malformed-comment reports.
func Extract(src []byte, dialect Dialect) ([]RawComment, []error) {
	frags, errs := Scan(src, dialect)
	return Aggregate(src, frags), errs
}
