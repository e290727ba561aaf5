package relation

import (
	"bufio"
	"io"
	"strconv"
)

// WriteARFF は行列を ARFF 形式で w に書き出します。
// カテゴリ列のセルはカテゴリ名に、欠損セルは '?' に戻されます。
func (m *Matrix) WriteARFF(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("@RELATION Untitled\n")
	for _, a := range m.attrs {
		bw.WriteString("@ATTRIBUTE ")
		bw.WriteString(a.Name)
		bw.WriteByte(' ')
		if a.IsContinuous() {
			bw.WriteString("CONTINUOUS")
		} else {
			bw.WriteString(a.Values.String())
		}
		bw.WriteByte('\n')
	}
	bw.WriteString("@DATA\n")
	for _, row := range m.data {
		for j, v := range row {
			if j > 0 {
				bw.WriteString(", ")
			}
			bw.WriteString(m.formatCell(j, v))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func (m *Matrix) formatCell(col int, v float64) string {
	if v == Missing {
		return missingToken
	}
	if !m.attrs[col].IsContinuous() {
		if name, ok := m.attrs[col].Values.Name(int(v)); ok {
			return name
		}
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
