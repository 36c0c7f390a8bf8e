package resp

import "strconv"

// maxDepth bounds array nesting so hostile input degrades to a typed
// error instead of exhausting the stack.
const maxDepth = 512

// Decode parses exactly one complete frame from buf starting at offset.
// It returns the decoded value and the number of bytes the frame occupied,
// so a caller holding a stream buffer can advance its own cursor.
//
// Framing is driven by the declared lengths and counts, never by scanning
// for line breaks inside payload regions, so bulk string payloads may
// contain any byte including CR and LF.
func Decode(buf []byte, offset int) (Value, int, error) {
	return decode(buf, offset, 0)
}

func decode(buf []byte, offset, depth int) (Value, int, error) {
	if depth > maxDepth {
		return Value{}, 0, &ProtocolError{Kind: KindNestingTooDeep, Offset: offset}
	}
	if offset >= len(buf) {
		return Value{}, 0, &ProtocolError{Kind: KindUnexpectedEndOfBuffer, Offset: offset}
	}

	tag := buf[offset]
	cur := offset + 1

	switch tag {
	case TypeSimpleString, TypeError:
		line, n, err := readLine(buf, cur)
		if err != nil {
			return Value{}, 0, err
		}

		payload := make([]byte, len(line))
		copy(payload, line)

		return Value{Type: tag, String: payload}, 1 + n, nil

	case TypeInteger:
		line, n, err := readLine(buf, cur)
		if err != nil {
			return Value{}, 0, err
		}

		num, perr := strconv.ParseInt(string(line), 10, 64)
		if perr != nil {
			return Value{}, 0, &ProtocolError{Kind: KindMalformedInteger, Offset: cur}
		}

		return Value{Type: tag, Integer: num}, 1 + n, nil

	case TypeBulkString:
		length, n, err := readLength(buf, cur)
		if err != nil {
			return Value{}, 0, err
		}
		cur += n

		if length == -1 {
			return Value{Type: tag, IsNull: true}, cur - offset, nil
		}

		// payload plus trailing CRLF must be fully present; subtraction
		// form so a huge declared length cannot overflow the bound check
		if length > len(buf)-cur-2 {
			return Value{}, 0, &ProtocolError{Kind: KindIncompleteFrame, Offset: cur}
		}
		if buf[cur+length] != '\r' || buf[cur+length+1] != '\n' {
			return Value{}, 0, &ProtocolError{Kind: KindMalformedLength, Offset: cur + length}
		}

		payload := make([]byte, length)
		copy(payload, buf[cur:cur+length])

		return Value{Type: tag, String: payload}, cur + length + 2 - offset, nil

	case TypeArray:
		count, n, err := readLength(buf, cur)
		if err != nil {
			return Value{}, 0, err
		}
		cur += n

		if count == -1 {
			return Value{Type: tag, IsNull: true}, cur - offset, nil
		}

		elems := make([]Value, 0, min(count, 1024))
		for i := 0; i < count; i++ {
			el, size, err := decode(buf, cur, depth+1)
			if err != nil {
				// an incomplete element makes the whole array incomplete
				return Value{}, 0, err
			}
			elems = append(elems, el)
			cur += size
		}

		return Value{Type: tag, Array: elems}, cur - offset, nil
	}

	return Value{}, 0, &ProtocolError{Kind: KindUnknownTypeTag, Offset: offset}
}

// readLine returns the bytes between offset and the next CRLF, and the
// number of bytes consumed including the terminator. Line frames never
// carry CR or LF in their payload, so scanning here is safe.
func readLine(buf []byte, offset int) ([]byte, int, error) {
	for i := offset; i+1 < len(buf); i++ {
		if buf[i] == '\r' && buf[i+1] == '\n' {
			return buf[offset:i], i + 2 - offset, nil
		}
	}
	return nil, 0, &ProtocolError{Kind: KindUnexpectedEndOfBuffer, Offset: len(buf)}
}

// readLength parses a bulk length or array count line. -1 denotes null;
// anything below that, or a non-integer, is a grammar violation.
func readLength(buf []byte, offset int) (int, int, error) {
	line, n, err := readLine(buf, offset)
	if err != nil {
		return 0, 0, err
	}

	v, perr := strconv.ParseInt(string(line), 10, 64)
	if perr != nil || v < -1 || v != int64(int(v)) {
		return 0, 0, &ProtocolError{Kind: KindMalformedLength, Offset: offset}
	}

	return int(v), n, nil
}
