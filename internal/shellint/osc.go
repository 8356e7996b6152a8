// Package shellint interprets the OSC 633 shell integration channel and
// drives command tracking, quick fixes and cursor-anchored completion on
// top of a terminal grid.
package shellint

import (
	"strconv"
	"strings"
)

// OscIdentifier is the private OSC number carrying shell integration.
const OscIdentifier = 633

// Code is the first field of a 633 payload.
type Code byte

const (
	PromptStart       Code = 'A'
	PromptEnd         Code = 'B'
	OutputStart       Code = 'C'
	CommandComplete   Code = 'D'
	CommandLine       Code = 'E'
	ContinuationStart Code = 'F'
	ContinuationEnd   Code = 'G'
	RightPromptStart  Code = 'H'
	RightPromptEnd    Code = 'I'
	Property          Code = 'P'
)

var codeNames = map[Code]string{
	PromptStart:       "PromptStart",
	PromptEnd:         "PromptEnd",
	OutputStart:       "OutputStart",
	CommandComplete:   "CommandComplete",
	CommandLine:       "CommandLine",
	ContinuationStart: "ContinuationStart",
	ContinuationEnd:   "ContinuationEnd",
	RightPromptStart:  "RightPromptStart",
	RightPromptEnd:    "RightPromptEnd",
	Property:          "Property",
}

// Codes lists every known code in protocol order.
var Codes = []Code{
	PromptStart, PromptEnd, OutputStart, CommandComplete, CommandLine,
	ContinuationStart, ContinuationEnd, RightPromptStart, RightPromptEnd, Property,
}

func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return "Unknown(" + strconv.Quote(string(rune(c))) + ")"
}

// Valid reports whether c belongs to the protocol.
func (c Code) Valid() bool {
	_, ok := codeNames[c]
	return ok
}

// Sequence is one decoded 633 payload. Args are unescaped.
type Sequence struct {
	Code Code
	Args []string
}

// ParseSequence splits a payload such as "D;1" or "P;Cwd=/tmp". ok is false
// for codes outside the protocol.
func ParseSequence(payload string) (Sequence, bool) {
	fields := strings.Split(payload, ";")
	if len(fields[0]) != 1 {
		return Sequence{}, false
	}
	c := Code(fields[0][0])
	if !c.Valid() {
		return Sequence{}, false
	}
	seq := Sequence{Code: c}
	for _, f := range fields[1:] {
		seq.Args = append(seq.Args, Unescape(f))
	}
	return seq, true
}

// Arg returns the i-th argument or "".
func (s Sequence) Arg(i int) string {
	if i < 0 || i >= len(s.Args) {
		return ""
	}
	return s.Args[i]
}

// Properties parses key=value arguments of a Property sequence.
func (s Sequence) Properties() map[string]string {
	props := map[string]string{}
	for _, a := range s.Args {
		k, v, _ := strings.Cut(a, "=")
		if k != "" {
			props[k] = v
		}
	}
	return props
}

// Unescape decodes \xHH byte escapes and \\ as written by the integration
// scripts. Malformed escapes are kept literally.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b []byte
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b = append(b, s[i])
			continue
		}
		switch s[i+1] {
		case '\\':
			b = append(b, '\\')
			i++
		case 'x':
			if i+3 < len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
					b = append(b, byte(v))
					i += 3
					continue
				}
			}
			b = append(b, s[i])
		default:
			b = append(b, s[i])
		}
	}
	return string(b)
}

// Escape is the inverse of Unescape for values embedded in a payload.
func Escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == ';' || c < 0x20 || c == 0x7f:
			b.WriteString(`\x`)
			b.WriteString(strconv.FormatUint(uint64(c)|0x100, 16)[1:])
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
