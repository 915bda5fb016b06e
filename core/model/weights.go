package model

import (
	"encoding/json"
	"io"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
)

// WeightsVersion は現在のシリアライズ形式のバージョン
const WeightsVersion = "1"

// ModelWeights はモデルの重みを表す構造体（シリアライゼーション用）
type ModelWeights struct {
	// ModelType はモデルの種類（GDRegressor等）
	ModelType string `json:"model_type"`

	// Version はシリアライズ形式のバージョン（互換性チェック用）
	Version string `json:"version"`

	// Coefficients は正規化後の空間での重み係数
	Coefficients []float64 `json:"coefficients"`

	// Intercept は切片
	Intercept float64 `json:"intercept"`

	// Mean と Scale は学習時の z-score 統計量（正規化なしの場合は空）
	Mean  []float64 `json:"mean,omitempty"`
	Scale []float64 `json:"scale,omitempty"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata は追加のメタデータ（学習時の統計等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON は妥当性を検証してからModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	if err := mw.Validate(); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(mw, "", "  ")
	if err != nil {
		return nil, gdregErrors.Wrap(err, "marshal model weights")
	}
	return data, nil
}

// FromJSON はJSON形式からModelWeightsをデシリアライズし、妥当性を検証する
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return gdregErrors.Wrap(err, "unmarshal model weights")
	}
	return mw.Validate()
}

// WriteJSON はインデント付きJSONを w に書き出す
func (mw *ModelWeights) WriteJSON(w io.Writer) error {
	data, err := mw.ToJSON()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return gdregErrors.Wrap(err, "write model weights")
	}
	return nil
}

// ReadWeights は r からModelWeightsを読み込む
func ReadWeights(r io.Reader) (*ModelWeights, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, gdregErrors.Wrap(err, "read model weights")
	}
	mw := &ModelWeights{}
	if err := mw.FromJSON(data); err != nil {
		return nil, err
	}
	return mw, nil
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return gdregErrors.NewValidationError("model_type", "is required", mw.ModelType)
	}

	if mw.Version == "" {
		return gdregErrors.NewValidationError("version", "is required", mw.Version)
	}

	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return gdregErrors.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	}

	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return gdregErrors.NewValidationError("coefficients", "fitted model must have coefficients", 0)
	}

	if len(mw.Mean) != len(mw.Scale) {
		return gdregErrors.NewDimensionError("ModelWeights.Validate", len(mw.Mean), len(mw.Scale), 0)
	}

	if len(mw.Mean) > 0 && len(mw.Mean) != len(mw.Coefficients) {
		return gdregErrors.NewDimensionError("ModelWeights.Validate", len(mw.Coefficients), len(mw.Mean), 0)
	}

	for j, s := range mw.Scale {
		if s == 0 {
			return gdregErrors.NewZeroVarianceError("ModelWeights.Validate", j, 0)
		}
	}

	// 発散したモデルの重みは JSON で表現できない
	params := append(append([]float64(nil), mw.Coefficients...), mw.Intercept)
	if err := gdregErrors.CheckNumericalStability("model weights", params, -1); err != nil {
		return err
	}

	return nil
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		Intercept:       mw.Intercept,
		IsFitted:        mw.IsFitted,
		Coefficients:    append([]float64(nil), mw.Coefficients...),
		Mean:            append([]float64(nil), mw.Mean...),
		Scale:           append([]float64(nil), mw.Scale...),
		Hyperparameters: make(map[string]interface{}, len(mw.Hyperparameters)),
		Metadata:        make(map[string]interface{}, len(mw.Metadata)),
	}

	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}

	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}

	return clone
}
