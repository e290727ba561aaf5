package relation

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// Missing は欠損セルを表す値です。統計量の計算からは除外されます。
const Missing = math.MaxFloat64

// Matrix は列メタデータ付きの2次元数値行列です。
// カテゴリ列のセルは辞書コードを保持します。
type Matrix struct {
	data  [][]float64
	attrs []Attribute
}

var _ mat.Matrix = (*Matrix)(nil)

// New returns an empty 0×0 matrix.
func New() *Matrix {
	return &Matrix{}
}

// NewMatrix は rows×cols の連続値列のみからなるゼロ行列を作成します。
func NewMatrix(rows, cols int) *Matrix {
	m := New()
	m.SetSize(rows, cols)
	return m
}

// SetSize discards the contents and reallocates m as a rows×cols
// all-continuous, all-zero matrix with unnamed columns.
func (m *Matrix) SetSize(rows, cols int) {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	m.data = make([][]float64, rows)
	for i := range m.data {
		m.data[i] = make([]float64, cols)
	}
	m.attrs = make([]Attribute, cols)
}

// Slice は src の矩形領域 [rowStart, rowStart+rowCount) × [colStart, colStart+colCount)
// をコピーした新しい行列を返します。
//
// セルの値は複製されます。列の辞書は不変なのでポインタを共有し、
// 列名は新しい行列が独自に持ちます。
//
// 範囲外の領域を指定すると panic します（呼び出し側の不変条件違反）。
func Slice(src *Matrix, rowStart, colStart, rowCount, colCount int) *Matrix {
	if err := src.checkRegion("relation.Slice", rowStart, colStart, rowCount, colCount); err != nil {
		panic(err)
	}
	m := &Matrix{
		data:  make([][]float64, rowCount),
		attrs: make([]Attribute, colCount),
	}
	copy(m.attrs, src.attrs[colStart:colStart+colCount])
	for i := 0; i < rowCount; i++ {
		row := make([]float64, colCount)
		copy(row, src.data[rowStart+i][colStart:colStart+colCount])
		m.data[i] = row
	}
	return m
}

// Append は src の行 [rowStart, rowStart+rowCount) の列 [colStart, colStart+m.Cols())
// をコピーして m の末尾に追加します。
//
// 各列のカテゴリ数が一致しない場合は IncompatibleRelationError、
// 領域が src の範囲外なら ValueError を返します。
func (m *Matrix) Append(src *Matrix, rowStart, colStart, rowCount int) error {
	const op = "relation.Append"
	if err := src.checkRegion(op, rowStart, colStart, rowCount, m.Cols()); err != nil {
		return err
	}
	for j := range m.attrs {
		if want, got := m.attrs[j].Values.Len(), src.attrs[colStart+j].Values.Len(); want != got {
			return errors.NewIncompatibleRelationError(op, j, want, got)
		}
	}
	for i := 0; i < rowCount; i++ {
		row := make([]float64, m.Cols())
		copy(row, src.data[rowStart+i][colStart:colStart+m.Cols()])
		m.data = append(m.data, row)
	}
	return nil
}

func (m *Matrix) checkRegion(op string, rowStart, colStart, rowCount, colCount int) error {
	if rowStart < 0 || colStart < 0 || rowCount < 0 || colCount < 0 ||
		rowStart+rowCount > m.Rows() || colStart+colCount > m.Cols() {
		return errors.NewValueError(op, "region out of range")
	}
	return nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return len(m.data) }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return len(m.attrs) }

// Row returns row i. The slice aliases the matrix storage.
func (m *Matrix) Row(i int) []float64 { return m.data[i] }

// At returns the cell at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i][j] }

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) { m.data[i][j] = v }

// Dims implements mat.Matrix.
func (m *Matrix) Dims() (r, c int) { return m.Rows(), m.Cols() }

// T implements mat.Matrix.
func (m *Matrix) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// Attribute returns the metadata of column col.
func (m *Matrix) Attribute(col int) Attribute { return m.attrs[col] }

// SetAttribute replaces the metadata of column col.
func (m *Matrix) SetAttribute(col int, a Attribute) { m.attrs[col] = a }

// AttributeName returns the name of column col.
func (m *Matrix) AttributeName(col int) string { return m.attrs[col].Name }

// SetAttributeName renames column col. Matrices sliced from m keep their own names.
func (m *Matrix) SetAttributeName(col int, name string) { m.attrs[col].Name = name }

// ValueCount returns the number of categories of column col; 0 means continuous.
func (m *Matrix) ValueCount(col int) int { return m.attrs[col].Values.Len() }

// IsContinuous reports whether column col is continuous.
func (m *Matrix) IsContinuous(col int) bool { return m.attrs[col].IsContinuous() }

// ValueName は列 col のコード code に対応するカテゴリ名を返します。
func (m *Matrix) ValueName(col, code int) (string, bool) {
	return m.attrs[col].Values.Name(code)
}

// ValueCode は列 col のカテゴリ名 name に対応するコードを返します。
func (m *Matrix) ValueCode(col int, name string) (int, bool) {
	return m.attrs[col].Values.Code(name)
}

// Compatible は other が同じ列数を持ち、各列のカテゴリ数が一致するかを判定します。
// 一致しない場合は最初の不一致を IncompatibleRelationError として返します。
func (m *Matrix) Compatible(other *Matrix) error {
	const op = "relation.Compatible"
	if m.Cols() != other.Cols() {
		return errors.NewDimensionError(op, m.Cols(), other.Cols(), 1)
	}
	for j := range m.attrs {
		if want, got := m.ValueCount(j), other.ValueCount(j); want != got {
			return errors.NewIncompatibleRelationError(op, j, want, got)
		}
	}
	return nil
}

func (m *Matrix) String() string {
	var sb strings.Builder
	_ = m.WriteARFF(&sb)
	return sb.String()
}
