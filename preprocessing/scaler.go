package preprocessing

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gdreg/core/model"
	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
	"github.com/YuminosukeSato/gdreg/pkg/log"
)

// ZeroVariancePolicy は定数列（標準偏差0）の扱いを決める
type ZeroVariancePolicy int

const (
	// ZeroVarianceReject は定数列で ZeroVarianceError を返す（デフォルト）
	ZeroVarianceReject ZeroVariancePolicy = iota
	// ZeroVarianceUnscaled は定数列を中心化のみ行い、スケールを1とする
	ZeroVarianceUnscaled
)

func (p ZeroVariancePolicy) String() string {
	switch p {
	case ZeroVarianceReject:
		return "error"
	case ZeroVarianceUnscaled:
		return "unscaled"
	default:
		return fmt.Sprintf("ZeroVariancePolicy(%d)", int(p))
	}
}

// ParseZeroVariancePolicy は "error" または "unscaled" を解釈する
func ParseZeroVariancePolicy(s string) (ZeroVariancePolicy, error) {
	switch strings.ToLower(s) {
	case "error", "reject":
		return ZeroVarianceReject, nil
	case "unscaled":
		return ZeroVarianceUnscaled, nil
	default:
		return 0, gdregErrors.NewValidationError("zero_variance", "must be one of error, unscaled", s)
	}
}

// ScalerOption はStandardScalerの設定オプション
type ScalerOption func(*StandardScaler)

// WithZeroVariancePolicy は定数列の扱いを設定する
func WithZeroVariancePolicy(p ZeroVariancePolicy) ScalerOption {
	return func(s *StandardScaler) {
		s.policy = p
	}
}

// StandardScaler は ZScoreNormalize の状態を持つ版
// 学習時の平均と母標準偏差を保持し、予測時の入力にも同じ変換を適用する
type StandardScaler struct {
	state *model.StateManager

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の母標準偏差（定数列を Unscaled で扱った場合は1）
	Scale []float64

	policy ZeroVariancePolicy
	logger log.Logger
}

var _ model.Transformer = (*StandardScaler)(nil)

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler()
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler(opts ...ScalerOption) *StandardScaler {
	s := &StandardScaler{
		state:  model.NewStateManager(),
		policy: ZeroVarianceReject,
		logger: log.GetLoggerWithName("preprocessing.scaler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStandardScalerFromStats は保存済みの統計量から学習済みのスケーラーを復元する
func NewStandardScalerFromStats(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, gdregErrors.NewModelError("NewStandardScalerFromStats", "empty data", gdregErrors.ErrEmptyData)
	}
	if len(mean) != len(scale) {
		return nil, gdregErrors.NewDimensionError("NewStandardScalerFromStats", len(mean), len(scale), 0)
	}
	for j, v := range scale {
		if v == 0 {
			return nil, gdregErrors.NewZeroVarianceError("NewStandardScalerFromStats", j, mean[j])
		}
	}

	s := NewStandardScaler()
	s.Mean = append([]float64(nil), mean...)
	s.Scale = append([]float64(nil), scale...)
	s.state.SetFitted(len(mean), 0)
	return s, nil
}

// Fit は訓練データから平均と母標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	mu, sigma, maxAbs, err := columnStats("StandardScaler.Fit", X)
	if err != nil {
		return err
	}

	for j := range sigma {
		if !isZeroVariance(sigma[j], maxAbs[j]) {
			continue
		}
		if s.policy == ZeroVarianceReject {
			return gdregErrors.NewZeroVarianceError("StandardScaler.Fit", j, mu[j])
		}
		s.logger.Warn("constant feature left unscaled",
			"feature", j,
			"value", mu[j],
			log.ErrorCodeKey, log.ErrorZeroVariance,
		)
		sigma[j] = 1
	}

	r, c := X.Dims()
	s.Mean = mu
	s.Scale = sigma
	s.state.SetFitted(c, r)
	return nil
}

// Transform は学習済みの統計量でデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}
	_, c := X.Dims()
	if err := s.state.RequireFeatures("StandardScaler.Transform", c); err != nil {
		return nil, err
	}
	return standardize(X, s.Mean, s.Scale), nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("StandardScaler", "InverseTransform"); err != nil {
		return nil, err
	}
	_, c := X.Dims()
	if err := s.state.RequireFeatures("StandardScaler.InverseTransform", c); err != nil {
		return nil, err
	}

	var out mat.Dense
	out.Apply(func(_, j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}, X)
	return &out, nil
}

// IsFitted はスケーラーが学習済みかどうかを返す
func (s *StandardScaler) IsFitted() bool {
	return s.state.IsFitted()
}

// Policy は定数列の扱いを返す
func (s *StandardScaler) Policy() ZeroVariancePolicy {
	return s.policy
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.state.IsFitted() {
		return fmt.Sprintf("StandardScaler(zero_variance=%s)", s.policy)
	}
	nFeatures, _ := s.state.Dimensions()
	return fmt.Sprintf("StandardScaler(zero_variance=%s, n_features=%d)", s.policy, nFeatures)
}
