package cmd

import (
	"strconv"
	"strings"

	"src.rsed.sh/pkg/diag"
	"src.rsed.sh/pkg/pos"
)

// ErrorType is the Type of all errors returned by Parse.
const ErrorType = "parse error"

// Parse parses a command line, which should not contain the trailing newline.
// An empty line parses to JumpNext. All errors returned are *diag.Error.
func Parse(src string) (Cmd, error) {
	if src == "" {
		return JumpNext{}, nil
	}
	p := &parser{src: src}
	pd, err := p.parse()
	if err != nil {
		return nil, err
	}
	return pd.toCmd(src)
}

// The command line broken into its parts, before the command code is
// interpreted.
type parsedData struct {
	rng     pos.Range
	hasRng  bool
	code    byte
	codeAt  int
	arg     string
	hasArg  bool
	argFrom int
}

// Argument policies for the command codes.
const (
	noArg = iota
	optionalArg
	requiredArg
)

var argPolicies = map[byte]int{
	'd': noArg, 'i': noArg, 'q': noArg, 'p': noArg, 'n': noArg, 'l': noArg,
	'=': noArg, '?': noArg, 'w': optionalArg, 'e': requiredArg,
	// Jump
	0: noArg,
}

func (pd *parsedData) toCmd(src string) (Cmd, error) {
	policy, ok := argPolicies[pd.code]
	if !ok {
		return nil, parseError(src, "unknown command", diag.Ranging{From: pd.codeAt, To: pd.codeAt + 1})
	}
	switch policy {
	case noArg:
		if pd.hasArg {
			return nil, parseError(src, "no argument expected", diag.Ranging{From: pd.argFrom - 1, To: len(src)})
		}
	case requiredArg:
		if strings.TrimSpace(pd.arg) == "" {
			return nil, parseError(src, "argument expected", diag.PointRanging(len(src)))
		}
	}

	r := pos.CurrentLine()
	if pd.hasRng {
		r = pd.rng
	}
	switch pd.code {
	case 'd':
		return Delete{r}, nil
	case 'i':
		return EnterInsert{r}, nil
	case 'q':
		return Quit{}, nil
	case 'p':
		return Print{r, Normal}, nil
	case 'n':
		return Print{r, Numbered}, nil
	case 'l':
		return Print{r, ShowLineEndings}, nil
	case '=':
		return PrintLineNumber{r}, nil
	case '?':
		return Debug{r}, nil
	case 'w':
		return Write{strings.TrimSpace(pd.arg)}, nil
	case 'e':
		return Edit{strings.TrimSpace(pd.arg)}, nil
	default:
		return Jump{r}, nil
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) parse() (*parsedData, error) {
	pd := &parsedData{}

	rangeFrom := p.pos
	for p.pos < len(p.src) && isRangeByte(p.src[p.pos]) {
		p.pos++
	}
	if p.pos > rangeFrom {
		r, err := p.parseRange(rangeFrom, p.pos)
		if err != nil {
			return nil, err
		}
		pd.rng, pd.hasRng = r, true
	}

	if p.pos < len(p.src) && isCodeByte(p.src[p.pos]) {
		pd.code, pd.codeAt = p.src[p.pos], p.pos
		p.pos++
	}

	if p.pos < len(p.src) {
		if p.src[p.pos] != ' ' {
			return nil, parseError(p.src, "unexpected character", diag.Ranging{From: p.pos, To: p.pos + 1})
		}
		pd.hasArg, pd.argFrom, pd.arg = true, p.pos+1, p.src[p.pos+1:]
		p.pos = len(p.src)
	}
	return pd, nil
}

// Parses src[from:to], which consists of range bytes only.
func (p *parser) parseRange(from, to int) (pos.Range, error) {
	s := p.src[from:to]
	if s == "%" || s == "," {
		return pos.WholeBuffer(), nil
	}
	if strings.Contains(s, "%") {
		i := from + strings.IndexByte(s, '%')
		return pos.Range{}, parseError(p.src, "bad address", diag.Ranging{From: i, To: i + 1})
	}

	comma := strings.IndexByte(s, ',')
	if comma == -1 {
		addr, err := p.parseAddr(from, to)
		if err != nil {
			return pos.Range{}, err
		}
		return pos.Single(addr), nil
	}
	if second := strings.IndexByte(s[comma+1:], ','); second != -1 {
		i := from + comma + 1 + second
		return pos.Range{}, parseError(p.src, "too many addresses", diag.Ranging{From: i, To: to})
	}

	start, end := pos.Line(1), pos.Pos{}
	var err error
	if comma > 0 {
		start, err = p.parseAddr(from, from+comma)
		if err != nil {
			return pos.Range{}, err
		}
	}
	if from+comma+1 < to {
		end, err = p.parseAddr(from+comma+1, to)
		if err != nil {
			return pos.Range{}, err
		}
	} else {
		// "a," is the same as "a".
		end = start
	}
	return pos.Range{Start: start, End: end}, nil
}

// Parses src[from:to] as a single address.
func (p *parser) parseAddr(from, to int) (pos.Pos, error) {
	s := p.src[from:to]
	switch s {
	case ".":
		return pos.Current, nil
	case "$":
		return pos.Last, nil
	}
	bad := diag.Ranging{From: from, To: to}
	if !isAllDigits(s) {
		return pos.Pos{}, parseError(p.src, "bad address", bad)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return pos.Pos{}, parseError(p.src, "bad address", bad)
	}
	if n == 0 {
		return pos.Pos{}, parseError(p.src, "line numbers start at 1", bad)
	}
	return pos.Line(n), nil
}

func parseError(src, msg string, r diag.Ranger) *diag.Error {
	return diag.NewError(ErrorType, msg, src, r)
}

func isRangeByte(b byte) bool {
	return b == '%' || b == '.' || b == ',' || b == '$' || isDigit(b)
}

func isCodeByte(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || b == '?' || b == '='
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}
