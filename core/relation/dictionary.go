package relation

import (
	"strings"

	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// Dictionary はカテゴリ列の値集合です。値の順序がコード 0..k-1 を決めます。
// 作成後は変更されないため、複数の行列から安全に共有できます。
type Dictionary struct {
	names []string
	codes map[string]int
}

// NewDictionary は values の順にコードを割り当てた辞書を作成します。
// 空文字列や重複した値はエラーになります。
func NewDictionary(values []string) (*Dictionary, error) {
	d := &Dictionary{
		names: make([]string, len(values)),
		codes: make(map[string]int, len(values)),
	}
	for i, v := range values {
		if v == "" {
			return nil, errors.NewValidationError("dictionary", "empty category value", i)
		}
		if _, dup := d.codes[v]; dup {
			return nil, errors.NewValidationError("dictionary", "duplicate category value", v)
		}
		d.names[i] = v
		d.codes[v] = i
	}
	return d, nil
}

// Len returns the number of categories. A nil dictionary has none.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// Name returns the category for code, and false when code is out of range.
func (d *Dictionary) Name(code int) (string, bool) {
	if d == nil || code < 0 || code >= len(d.names) {
		return "", false
	}
	return d.names[code], true
}

// Code returns the code for name, and false when name is not a category.
func (d *Dictionary) Code(name string) (int, bool) {
	if d == nil {
		return 0, false
	}
	c, ok := d.codes[name]
	return c, ok
}

// Values returns a copy of the categories in code order.
func (d *Dictionary) Values() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

func (d *Dictionary) String() string {
	return "{" + strings.Join(d.Values(), ", ") + "}"
}

// Attribute は列のメタデータです。Values が nil なら連続値列です。
type Attribute struct {
	Name   string
	Values *Dictionary
}

// IsContinuous reports whether the column holds real values.
func (a Attribute) IsContinuous() bool {
	return a.Values.Len() == 0
}
