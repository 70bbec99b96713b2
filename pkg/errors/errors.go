// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// scikit-learnの警告・例外システムにインスパイアされており、構造化されたエラー情報を提供します。
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
		log.Printf("scibayes-warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// UndefinedMetricWarningなどのカスタム警告の処理方法を制御できます。
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
//	scikit-learn互換の警告型
//
// ===========================================================================

// UndefinedMetricWarning は評価指標が計算できない場合に発生する警告です。
// 例えば、再現率(recall)を計算する際に、テストセットに陽性のレコードが一つもなかった場合など。
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

// ===========================================================================
//
//	確率表・分布に関するエラー型
//
// ===========================================================================

// InvalidIndexError は確率表の変数位置が範囲外の場合のエラーです。
type InvalidIndexError struct {
	Op    string
	Index int
	Arity int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("scibayes: %s: index %d out of range for assignments of arity %d", e.Op, e.Index, e.Arity)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidIndexError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("index", e.Index).
		Int("arity", e.Arity).
		Str("type", "InvalidIndexError")
}

// NewInvalidIndexError は新しいInvalidIndexErrorを作成し、スタックトレースを付与します。
func NewInvalidIndexError(op string, index, arity int) error {
	return errors.WithStack(&InvalidIndexError{Op: op, Index: index, Arity: arity})
}

// ZeroTotalWeightError は重みの総和がちょうど0の表を正規化しようとした場合のエラーです。
// 観測されていない値での条件付けなど、起こり得ない証拠に対する正当な結果であり、
// NaNやInfで黙って置き換えてはいけません。ErrZeroTotalWeight と Is で比較できます。
type ZeroTotalWeightError struct {
	Op      string
	Entries int
}

func (e *ZeroTotalWeightError) Error() string {
	return fmt.Sprintf("scibayes: %s: total weight is zero over %d entries", e.Op, e.Entries)
}

// Is は ErrZeroTotalWeight との比較を可能にします。
func (e *ZeroTotalWeightError) Is(target error) bool {
	return target == ErrZeroTotalWeight
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ZeroTotalWeightError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("entries", e.Entries).
		Str("type", "ZeroTotalWeightError")
}

// NewZeroTotalWeightError は新しいZeroTotalWeightErrorを作成し、スタックトレースを付与します。
func NewZeroTotalWeightError(op string, entries int) error {
	return errors.WithStack(&ZeroTotalWeightError{Op: op, Entries: entries})
}

// MissingFeatureError はレコードに必要な特徴量キーが存在しない場合のエラーです。
type MissingFeatureError struct {
	Op      string
	Feature string
	Row     int // -1 の場合は単一インスタンス
}

func (e *MissingFeatureError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("scibayes: %s: record %d has no feature %q", e.Op, e.Row, e.Feature)
	}
	return fmt.Sprintf("scibayes: %s: instance has no feature %q", e.Op, e.Feature)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *MissingFeatureError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("feature", e.Feature).
		Int("row", e.Row).
		Str("type", "MissingFeatureError")
}

// NewMissingFeatureError は新しいMissingFeatureErrorを作成し、スタックトレースを付与します。
func NewMissingFeatureError(op, feature string, row int) error {
	return errors.WithStack(&MissingFeatureError{Op: op, Feature: feature, Row: row})
}

// MissingDomainValueError は値が明示的に与えられたドメインに含まれない場合のエラーです。
type MissingDomainValueError struct {
	Op       string
	Variable string
	Value    string
}

func (e *MissingDomainValueError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("scibayes: %s: value %s is not in the domain of %q", e.Op, e.Value, e.Variable)
	}
	return fmt.Sprintf("scibayes: %s: value %s is not in the domain", e.Op, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *MissingDomainValueError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("variable", e.Variable).
		Str("value", e.Value).
		Str("type", "MissingDomainValueError")
}

// NewMissingDomainValueError は新しいMissingDomainValueErrorを作成し、スタックトレースを付与します。
func NewMissingDomainValueError(op, variable string, value fmt.Stringer) error {
	return errors.WithStack(&MissingDomainValueError{Op: op, Variable: variable, Value: value.String()})
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("scibayes: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
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

// DimensionError は代入（assignment）の長さが表の次元と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("scibayes: %s: arity mismatch. Expected %d, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
// `ValueError`よりも具体的なバリデーションロジックの失敗を示します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scibayes: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
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
// 例えば、空のテストセットで評価しようとした場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("scibayes: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError は機械学習モデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scibayes: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("scibayes: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
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
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrZeroTotalWeight は重みの総和が0の表を正規化しようとした場合のエラーです。
	ErrZeroTotalWeight = New("zero total weight")
)
