// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// Decoder parses one buffer into a value tree. It holds a forward-only
// cursor over an input it never modifies. A Decoder is not safe for
// concurrent use.
type Decoder struct {
	data    []byte
	offset  int
	depth   int
	options resolved
}

// NewDecoder returns a Decoder over data. It fails only if options
// names an unknown charset.
func NewDecoder(data []byte, options Options) (*Decoder, error) {
	resolved, err := options.resolve()
	if err != nil {
		return nil, err
	}
	return &Decoder{data: data, options: resolved}, nil
}

// Decode parses data with UTF-8 text in strict mode.
func Decode(data []byte) (Value, error) {
	return Options{}.Decode(data)
}

// Decode parses data using these options.
func (o Options) Decode(data []byte) (Value, error) {
	decoder, err := NewDecoder(data, o)
	if err != nil {
		return Value{}, err
	}
	return decoder.Decode()
}

// Offset returns the cursor position: the number of bytes consumed so
// far.
func (d *Decoder) Offset() int {
	return d.offset
}

// Decode parses the whole buffer. A buffer starting with a list or
// mapping tag holds exactly one value. Any other buffer, including an
// empty one, is read as back-to-back values collected into a Tuple.
// Each call starts again from the beginning of the buffer.
func (d *Decoder) Decode() (Value, error) {
	d.offset = 0
	d.depth = 0
	if len(d.data) > 0 && (d.data[0] == tagList || d.data[0] == tagDict) {
		value, err := d.parse()
		if err != nil {
			return Value{}, err
		}
		if d.offset != len(d.data) {
			return Value{}, d.errorAt(d.offset, ErrTrailingData, 0, nil)
		}
		return value, nil
	}

	var items []Value
	for d.offset < len(d.data) {
		item, err := d.parse()
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	return Value{kind: KindTuple, items: items}, nil
}

// parse reads the value starting at the cursor, dispatching on the tag
// byte.
func (d *Decoder) parse() (Value, error) {
	if d.offset >= len(d.data) {
		return Value{}, d.errorAt(d.offset, ErrEndOfInput, 0, nil)
	}

	tag := d.data[d.offset]
	if isDigit(tag) {
		return d.parseString()
	}

	switch tag {
	case tagInteger:
		return d.parseInteger()
	case tagFloat:
		return d.parseFloat()
	case tagTrue, tagFalse:
		d.offset++
		return Bool(tag == tagTrue), nil
	case tagNull:
		d.offset++
		return Null(), nil
	case tagList:
		return d.parseSequence(KindList)
	case tagTuple:
		return d.parseSequence(KindTuple)
	case tagDict:
		return d.parseMapping(KindDict)
	case tagOrderedDict:
		return d.parseMapping(KindOrderedDict)
	default:
		return Value{}, d.errorAt(d.offset, ErrInvalidTag, tag, nil)
	}
}

// parseString reads <length>:<payload>.
func (d *Decoder) parseString() (Value, error) {
	start := d.offset
	digits, err := d.readTo(lengthSep)
	if err != nil {
		return Value{}, err
	}

	length, err := parseLength(digits)
	if errors.Is(err, strconv.ErrRange) {
		// A length that does not fit in an int is longer than any
		// buffer.
		return Value{}, d.errorAt(d.offset, ErrEndOfInput, 0, nil)
	}
	if err != nil {
		return Value{}, d.errorAt(start, ErrInvalidLength, 0, err)
	}

	if length > len(d.data)-d.offset {
		return Value{}, d.errorAt(d.offset, ErrEndOfInput, 0, nil)
	}
	payloadStart := d.offset
	payload := d.data[payloadStart : payloadStart+length]
	d.offset += length

	value, err := d.options.charset.decode(payload)
	if err != nil {
		return Value{}, d.errorAt(payloadStart, ErrInvalidText, 0, err)
	}
	return value, nil
}

// parseInteger reads i<digits>e. A payload that is not an integer but
// parses as a float yields a Float: older encoders wrote floats under
// the integer tag.
func (d *Decoder) parseInteger() (Value, error) {
	start := d.offset
	d.offset++
	payload, err := d.readTo(tagEnd)
	if err != nil {
		return Value{}, err
	}

	if integer, ok := new(big.Int).SetString(string(payload), 10); ok {
		return Value{kind: KindInteger, integer: integer}, nil
	}
	if float, err := parseDecimalFloat(string(payload)); err == nil {
		return Float(float), nil
	}
	return Value{}, d.errorAt(start, ErrInvalidInteger, 0, nil)
}

// parseFloat reads f<decimal>e.
func (d *Decoder) parseFloat() (Value, error) {
	start := d.offset
	d.offset++
	payload, err := d.readTo(tagEnd)
	if err != nil {
		return Value{}, err
	}

	float, err := parseDecimalFloat(string(payload))
	if err != nil {
		return Value{}, d.errorAt(start, ErrInvalidFloat, 0, err)
	}
	return Float(float), nil
}

// parseSequence reads a list or tuple body up to its end marker.
func (d *Decoder) parseSequence(kind Kind) (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	defer d.leave()

	items := []Value{}
	for {
		if d.offset >= len(d.data) {
			return Value{}, d.errorAt(d.offset, ErrEndOfInput, 0, nil)
		}
		if d.data[d.offset] == tagEnd {
			d.offset++
			return Value{kind: kind, items: items}, nil
		}
		item, err := d.parse()
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
}

// parseMapping reads key/value pairs up to the end marker. Sortedness
// of the keys is not checked. A repeated key keeps its first position
// and takes the last value.
func (d *Decoder) parseMapping(kind Kind) (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	defer d.leave()

	pairs := []Pair{}
	positions := make(map[string]int)
	for {
		if d.offset >= len(d.data) {
			return Value{}, d.errorAt(d.offset, ErrEndOfInput, 0, nil)
		}
		if d.data[d.offset] == tagEnd {
			d.offset++
			return Value{kind: kind, pairs: pairs}, nil
		}

		key, err := d.parse()
		if err != nil {
			return Value{}, err
		}
		if d.offset < len(d.data) && d.data[d.offset] == tagEnd {
			return Value{}, d.errorAt(d.offset, ErrDanglingKey, 0, nil)
		}
		value, err := d.parse()
		if err != nil {
			return Value{}, err
		}

		id := identity(key)
		if position, ok := positions[id]; ok {
			pairs[position].Value = value
			continue
		}
		positions[id] = len(pairs)
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
}

// enter consumes a composite's start tag and checks the nesting limit.
func (d *Decoder) enter() error {
	if d.options.maxDepth > 0 && d.depth >= d.options.maxDepth {
		return d.errorAt(d.offset, ErrTooDeep, 0, nil)
	}
	d.depth++
	d.offset++
	return nil
}

func (d *Decoder) leave() {
	d.depth--
}

// readTo returns the bytes from the cursor up to terminator and moves
// the cursor past the terminator.
func (d *Decoder) readTo(terminator byte) ([]byte, error) {
	index := bytes.IndexByte(d.data[d.offset:], terminator)
	if index < 0 {
		return nil, d.errorAt(d.offset, ErrMissingTerminator, terminator, nil)
	}
	payload := d.data[d.offset : d.offset+index]
	d.offset += index + 1
	return payload, nil
}

func (d *Decoder) errorAt(offset int, kind error, tag byte, cause error) error {
	return &DecodingError{Kind: kind, Offset: offset, Tag: tag, Err: cause}
}

// parseLength accepts only ASCII digits.
func parseLength(digits []byte) (int, error) {
	for _, b := range digits {
		if !isDigit(b) {
			return 0, errors.New("non-digit in length " + strconv.Quote(string(digits)))
		}
	}
	return strconv.Atoi(string(digits))
}

// parseDecimalFloat parses decimal float text, including inf and nan.
// Hexadecimal floats and digit separators are not part of the format.
// Magnitudes beyond float64 range saturate to ±Inf or 0.
func parseDecimalFloat(text string) (float64, error) {
	if strings.ContainsAny(text, "xX_") {
		return 0, errors.New("not a decimal number: " + strconv.Quote(text))
	}
	float, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return float, nil
}
