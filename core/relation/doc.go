// Package relation は連続値列とカテゴリ列を区別する関係行列を提供します。
//
// Matrix は ARFF 形式のテキストから読み込まれ、各列に名前とカテゴリ辞書
// (Dictionary) を持ちます。カテゴリ列のセルは辞書のコード 0..k-1 を
// float64 として保持し、欠損値は Missing で表します。
//
// 使用例:
//
//	data, err := relation.LoadARFF("iris.arff")
//	if err != nil {
//	    return err
//	}
//	features := relation.Slice(data, 0, 0, data.Rows(), data.Cols()-1)
//	labels := relation.Slice(data, 0, data.Cols()-1, data.Rows(), 1)
//
// Matrix は gonum の mat.Matrix を実装するため、gonum ベースの学習器や
// 評価指標にそのまま渡すことができます。
package relation
