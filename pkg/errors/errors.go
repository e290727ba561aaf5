// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// 解析エラー、前提条件違反、未登録の学習器などを構造化されたエラー型として表現します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("mlsys-warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// UndefinedMetricWarning は統計量が計算できない場合に発生する警告です。
// 例えば、すべてのセルが欠損している列の平均を求めた場合など。
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // この条件で返される値
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning は新しいUndefinedMetricWarningを作成します。
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// DegenerateRangeWarning は正規化対象の列の最小値と最大値が一致した場合の警告です。
// この場合スケールは1として扱われ、値はすべて0に写像されます。
type DegenerateRangeWarning struct {
	Column string
	Value  float64
}

func (w *DegenerateRangeWarning) Error() string {
	return fmt.Sprintf("column '%s' has a degenerate range (min == max == %g); using a scale of 1", w.Column, w.Value)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DegenerateRangeWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Float64("value", w.Value).
		Str("type", "DegenerateRangeWarning")
}

// NewDegenerateRangeWarning は新しいDegenerateRangeWarningを作成します。
func NewDegenerateRangeWarning(column string, value float64) *DegenerateRangeWarning {
	return &DegenerateRangeWarning{Column: column, Value: value}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// ParseError はARFF形式のテキストの解析に失敗した場合のエラーです。
// 問題のある行番号と行のテキストを保持します。
type ParseError struct {
	Line   int    // 1始まりの行番号
	Text   string // 問題のある行のテキスト
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("mlsys: parse error on line %d: %s: %q", e.Line, e.Reason, e.Text)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ParseError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("line", e.Line).
		Str("text", e.Text).
		Str("reason", e.Reason).
		Str("type", "ParseError")
}

// NewParseError は新しいParseErrorを作成し、スタックトレースを付与します。
func NewParseError(line int, text, reason string, cause error) error {
	err := &ParseError{Line: line, Text: text, Reason: reason, Err: cause}
	return errors.WithStack(err)
}

// NotFittedError は学習器が未学習の状態で `Predict` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("mlsys: %s: this learner is not trained yet. Call Train() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("mlsys: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
// 例えば、分割数が0以下の場合や、訓練データの割合が[0,1]の範囲外の場合など。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mlsys: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、ラベルのコードがカテゴリ数以上の場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("mlsys: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// IncompatibleRelationError は2つの行列の列構造（カテゴリ数）が一致しない場合のエラーです。
type IncompatibleRelationError struct {
	Op       string
	Column   int
	Expected int // 期待されるカテゴリ数 (0 = 連続値)
	Got      int
}

func (e *IncompatibleRelationError) Error() string {
	return fmt.Sprintf("mlsys: %s: incompatible relations at column %d: expected %d values, got %d", e.Op, e.Column, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *IncompatibleRelationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("column", e.Column).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "IncompatibleRelationError")
}

// NewIncompatibleRelationError は新しいIncompatibleRelationErrorを作成し、スタックトレースを付与します。
func NewIncompatibleRelationError(op string, column, expected, got int) error {
	err := &IncompatibleRelationError{Op: op, Column: column, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// UnrecognizedLearnerError は指定された名前の学習器が登録されていない場合のエラーです。
type UnrecognizedLearnerError struct {
	Name string
	Err  error
}

func (e *UnrecognizedLearnerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mlsys: unrecognized learner %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("mlsys: unrecognized learner %q", e.Name)
}

func (e *UnrecognizedLearnerError) Unwrap() error {
	return e.Err
}

// NewUnrecognizedLearnerError は新しいUnrecognizedLearnerErrorを作成し、スタックトレースを付与します。
func NewUnrecognizedLearnerError(name string, cause error) error {
	err := &UnrecognizedLearnerError{Name: name, Err: cause}
	return errors.WithStack(err)
}

// ModelError は学習器に関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	switch {
	case e.Kind == "":
		return fmt.Sprintf("mlsys: %s: %v", e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("mlsys: %s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("mlsys: %s: %s", e.Op, e.Kind)
	}
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
// err がすでに原因を表す場合、kind は空文字列にします。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// IsPrecondition は err が前提条件違反（次元不一致、不正な値、
// パラメータ検証の失敗、列構造の不一致）かどうかを判定します。
func IsPrecondition(err error) bool {
	var (
		dimErr        *DimensionError
		valueErr      *ValueError
		validationErr *ValidationError
		relationErr   *IncompatibleRelationError
	)
	return errors.As(err, &dimErr) ||
		errors.As(err, &valueErr) ||
		errors.As(err, &validationErr) ||
		errors.As(err, &relationErr)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrNotImplemented は機能が未実装の場合のエラーです。
	ErrNotImplemented = New("not implemented")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")
)
