package relation

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/mlsys/pkg/errors"
	"github.com/YuminosukeSato/mlsys/pkg/log"
)

const missingToken = "?"

// LoadARFF は path の ARFF ファイルを読み込みます。
func LoadARFF(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "relation: open %s", path)
	}
	defer f.Close()

	m, err := ReadARFF(f)
	if err != nil {
		return nil, errors.Wrapf(err, "relation: load %s", path)
	}
	log.GetLoggerWithName("relation").Debug("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.DatasetKey, path,
		log.SamplesKey, m.Rows(),
		log.AttributesKey, m.Cols(),
	)
	return m, nil
}

// ReadARFF は r から ARFF 形式のテキストを読み込み、新しい行列を返します。
//
// 空行と '%' で始まる行は無視されます。最初の解析エラーで読み込みを中断し、
// 行番号と行の内容を持つ ParseError を返します。
func ReadARFF(r io.Reader) (*Matrix, error) {
	p := &arffParser{m: New()}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		p.line++
		text := sc.Text()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") {
			continue
		}
		var err error
		if p.inData {
			err = p.record(trimmed)
		} else {
			err = p.header(trimmed)
		}
		if err != nil {
			var pe *errors.ParseError
			if errors.As(err, &pe) {
				return nil, err
			}
			return nil, errors.NewParseError(p.line, text, "malformed line", err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "relation: read")
	}
	return p.m, nil
}

type arffParser struct {
	m      *Matrix
	line   int
	inData bool
}

func (p *arffParser) fail(text, reason string, cause error) error {
	return errors.NewParseError(p.line, text, reason, cause)
}

func (p *arffParser) header(text string) error {
	if !strings.HasPrefix(text, "@") {
		return p.fail(text, "expected a directive before @DATA", nil)
	}
	keyword, rest := splitWord(text)
	switch strings.ToUpper(keyword) {
	case "@RELATION":
		return nil
	case "@DATA":
		p.inData = true
		return nil
	case "@ATTRIBUTE":
		return p.attribute(text, rest)
	default:
		return p.fail(text, "unrecognized directive "+keyword, nil)
	}
}

func (p *arffParser) attribute(text, rest string) error {
	name, typ, err := splitAttribute(rest)
	if err != nil {
		return p.fail(text, "malformed attribute", err)
	}

	attr := Attribute{Name: name}
	switch {
	case strings.HasPrefix(typ, "{"):
		if !strings.HasSuffix(typ, "}") {
			return p.fail(text, "unterminated value list", nil)
		}
		var values []string
		for _, tok := range strings.Split(typ[1:len(typ)-1], ",") {
			values = append(values, strings.TrimSpace(tok))
		}
		dict, err := NewDictionary(values)
		if err != nil {
			return p.fail(text, "invalid value list", err)
		}
		attr.Values = dict
	default:
		switch strings.ToUpper(typ) {
		case "REAL", "CONTINUOUS", "INTEGER", "NUMERIC":
		default:
			return p.fail(text, "unsupported attribute type "+typ, nil)
		}
	}
	p.m.attrs = append(p.m.attrs, attr)
	return nil
}

func (p *arffParser) record(text string) error {
	if strings.HasPrefix(text, "@") {
		return p.fail(text, "directive inside @DATA", nil)
	}
	cols := p.m.Cols()
	row := make([]float64, 0, cols)
	for _, field := range strings.Split(text, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		col := len(row)
		if col >= cols {
			return p.fail(text, "too many fields, expected "+strconv.Itoa(cols), nil)
		}
		v, err := p.value(col, field)
		if err != nil {
			return p.fail(text, "bad value in column "+strconv.Itoa(col), err)
		}
		row = append(row, v)
	}
	if len(row) != cols {
		return p.fail(text, "expected "+strconv.Itoa(cols)+" fields, got "+strconv.Itoa(len(row)), nil)
	}
	p.m.data = append(p.m.data, row)
	return nil
}

func (p *arffParser) value(col int, field string) (float64, error) {
	if field == missingToken {
		return Missing, nil
	}
	attr := p.m.attrs[col]
	if attr.IsContinuous() {
		return strconv.ParseFloat(field, 64)
	}
	code, ok := attr.Values.Code(field)
	if !ok {
		return 0, errors.Newf("unknown value %q for attribute %s", field, attr.Name)
	}
	return float64(code), nil
}

// splitWord splits s at the first run of white space.
func splitWord(s string) (word, rest string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// splitAttribute separates the attribute name, which may be single-quoted
// and keeps its quotes, from the type that follows it.
func splitAttribute(s string) (name, typ string, err error) {
	if strings.HasPrefix(s, "'") {
		end := strings.Index(s[1:], "'")
		if end < 0 {
			return "", "", errors.New("unterminated quoted name")
		}
		name = s[:end+2]
		typ = strings.TrimSpace(s[end+2:])
	} else {
		name, typ = splitWord(s)
	}
	if name == "" || typ == "" {
		return "", "", errors.New("expected a name and a type")
	}
	return name, typ, nil
}
