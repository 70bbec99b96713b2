package model

import (
	"sync"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

// BaseEstimator は全てのモデルの基底となる構造体
//
// 学習状態と学習時のデータ形状をスレッドセーフに保持する。
// 学習済みモデルは複数のゴルーチンから同時に予測に使われるため RWMutex で保護する。
type BaseEstimator struct {
	mu        sync.RWMutex
	state     EstimatorState
	id        string
	nSamples  int
	nFeatures int
}

// ID は推定器インスタンスの識別子（UUID）を返す。初回呼び出し時に採番される。
func (e *BaseEstimator) ID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.id == "" {
		e.id = uuid.NewString()
	}
	return e.id
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state == Fitted
}

// SetFitted はモデルを学習済み状態に設定し、学習時のサンプル数と特徴量数を記録する
func (e *BaseEstimator) SetFitted(nSamples, nFeatures int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Fitted
	e.nSamples = nSamples
	e.nFeatures = nFeatures
}

// Dimensions は学習時のサンプル数と特徴量数を返す
func (e *BaseEstimator) Dimensions() (nSamples, nFeatures int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.nSamples, e.nFeatures
}

// RequireFitted は未学習の場合に NotFittedError を返す
func (e *BaseEstimator) RequireFitted(modelName, method string) error {
	if !e.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// Reset はモデルを初期状態にリセットする。IDは保持する。
func (e *BaseEstimator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = NotFitted
	e.nSamples = 0
	e.nFeatures = 0
}
