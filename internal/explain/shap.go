package explain

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/match-insight/internal/types"
)

// defaultBaselineValue is the neutral reference each feature takes when it
// is "absent" from a coalition.
const defaultBaselineValue = 0.5

// SHAPValue is the Shapley attribution for a single feature.
type SHAPValue struct {
	FeatureName           string  `json:"feature_name"`
	ShapValue             float64 `json:"shap_value"`
	BaseValueContribution float64 `json:"base_value_contribution"`
	FeatureValue          float64 `json:"feature_value"`
	Direction             string  `json:"direction"` // "positive" or "negative"
}

// Contributor pairs a feature name with its Shapley value.
type Contributor struct {
	Name  string  `json:"name"`
	Value float64 `json:"contribution"`
}

// SHAPExplanation is the game-theoretic attribution of one prediction.
// For an additive predictor, SumShapValues reconstructs
// PredictedValue - ExpectedValue exactly.
type SHAPExplanation struct {
	ExpectedValue  float64     `json:"expected_value"`
	PredictedValue float64     `json:"predicted_value"`
	ShapValues     []SHAPValue `json:"shap_values"`
	SumShapValues  float64     `json:"sum_shap_values"`
}

// PositiveContributors returns features with positive Shapley values,
// largest first.
func (e *SHAPExplanation) PositiveContributors() []Contributor {
	var out []Contributor
	for _, sv := range e.ShapValues {
		if sv.ShapValue > 0 {
			out = append(out, Contributor{Name: sv.FeatureName, Value: sv.ShapValue})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// NegativeContributors returns features with negative Shapley values, most
// negative first.
func (e *SHAPExplanation) NegativeContributors() []Contributor {
	var out []Contributor
	for _, sv := range e.ShapValues {
		if sv.ShapValue < 0 {
			out = append(out, Contributor{Name: sv.FeatureName, Value: sv.ShapValue})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// ExplainDifference narrates why the prediction sits above or below a
// threshold, naming the strongest contributors on the deciding side.
func (e *SHAPExplanation) ExplainDifference(threshold float64) string {
	if e.PredictedValue >= threshold {
		if positive := e.PositiveContributors(); len(positive) > 0 {
			reasons := make([]string, 0, 3)
			for i, c := range positive {
				if i == 3 {
					break
				}
				reasons = append(reasons, fmt.Sprintf("%s (+%.2f)", c.Name, c.Value))
			}
			return fmt.Sprintf("Score (%.2f) exceeds threshold (%g) mainly due to: %s",
				e.PredictedValue, threshold, strings.Join(reasons, ", "))
		}
	} else {
		if negative := e.NegativeContributors(); len(negative) > 0 {
			reasons := make([]string, 0, 3)
			for i, c := range negative {
				if i == 3 {
					break
				}
				reasons = append(reasons, fmt.Sprintf("%s (%.2f)", c.Name, c.Value))
			}
			return fmt.Sprintf("Score (%.2f) is below threshold (%g) mainly due to: %s",
				e.PredictedValue, threshold, strings.Join(reasons, ", "))
		}
	}
	return fmt.Sprintf("Score: %.2f, Threshold: %g", e.PredictedValue, threshold)
}

// ForcePlotFeature is one bar of a force-plot rendering.
type ForcePlotFeature struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	FeatureValue float64 `json:"feature_value"`
}

// ForcePlotData partitions an explanation into positive and negative
// contributors for visualization, each sorted by magnitude.
type ForcePlotData struct {
	BaseValue        float64            `json:"base_value"`
	OutputValue      float64            `json:"output_value"`
	PositiveFeatures []ForcePlotFeature `json:"positive_features"`
	NegativeFeatures []ForcePlotFeature `json:"negative_features"`
}

// SHAPExplainer computes exact Shapley values by enumerating every
// coalition of the other features. Cost is n*2^(n-1) predict calls per
// explanation -- fine for the five-factor model, but growth beyond single
// digits (practical ceiling around n=8) calls for sampling-based estimation
// or sharding the per-feature loop.
type SHAPExplainer struct {
	weights   types.ScoringWeights
	baselines map[string]float64
}

// SHAPOption configures a SHAPExplainer.
type SHAPOption func(*SHAPExplainer)

// WithSHAPWeights replaces the weights behind the default predictor.
func WithSHAPWeights(w types.ScoringWeights) SHAPOption {
	return func(s *SHAPExplainer) { s.weights = w.Clone() }
}

// WithBaselineValues replaces the per-feature baseline ("absent") values.
func WithBaselineValues(baselines map[string]float64) SHAPOption {
	return func(s *SHAPExplainer) {
		clone := make(map[string]float64, len(baselines))
		for k, v := range baselines {
			clone[k] = v
		}
		s.baselines = clone
	}
}

// NewSHAPExplainer creates a SHAP explainer with default weights and 0.5
// baselines for the five factors unless overridden.
func NewSHAPExplainer(opts ...SHAPOption) *SHAPExplainer {
	s := &SHAPExplainer{
		weights:   types.DefaultScoringWeights(),
		baselines: make(map[string]float64),
	}
	for _, name := range types.FactorNames() {
		s.baselines[name] = defaultBaselineValue
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Explain computes the exact Shapley value of every feature. A nil predict
// falls back to the configured weighted sum.
func (s *SHAPExplainer) Explain(values FeatureValues, predict PredictFn) (*SHAPExplanation, error) {
	if len(values) == 0 {
		return nil, ErrNoFeatures
	}
	if predict == nil {
		predict = s.defaultPredict
	}

	names := orderedKeys(values)

	baseline := make(FeatureValues, len(names))
	for _, name := range names {
		baseline[name] = s.baselineValue(name)
	}
	expectedValue := predict(baseline)
	predictedValue := predict(values)

	shapValues := s.computeShapleyValues(names, values, predict)

	sum := 0.0
	objects := make([]SHAPValue, 0, len(names))
	for _, name := range names {
		sv := shapValues[name]
		sum += sv
		direction := "negative"
		if sv > 0 {
			direction = "positive"
		}
		objects = append(objects, SHAPValue{
			FeatureName:           FormatFeatureName(name),
			ShapValue:             round4(sv),
			BaseValueContribution: round4(s.baselineValue(name) * s.weights[name]),
			FeatureValue:          values[name],
			Direction:             direction,
		})
	}

	sort.SliceStable(objects, func(i, j int) bool {
		return math.Abs(objects[i].ShapValue) > math.Abs(objects[j].ShapValue)
	})

	return &SHAPExplanation{
		ExpectedValue:  round4(expectedValue),
		PredictedValue: round4(predictedValue),
		ShapValues:     objects,
		SumShapValues:  round4(sum),
	}, nil
}

// computeShapleyValues enumerates the subsets of the other features as
// bitmasks over their index positions, accumulating combinatorially
// weighted marginal contributions for each feature.
func (s *SHAPExplainer) computeShapleyValues(names []string, values FeatureValues, predict PredictFn) map[string]float64 {
	n := len(names)
	factorials := factorialTable(n)
	result := make(map[string]float64, n)

	coalition := make(FeatureValues, n)
	for i, feature := range names {
		others := make([]string, 0, n-1)
		for j, name := range names {
			if j != i {
				others = append(others, name)
			}
		}

		total := 0.0
		for mask := 0; mask < 1<<len(others); mask++ {
			subsetSize := 0
			for name := range coalition {
				delete(coalition, name)
			}
			for _, name := range names {
				coalition[name] = s.baselineValue(name)
			}
			for b, name := range others {
				if mask&(1<<b) != 0 {
					coalition[name] = values[name]
					subsetSize++
				}
			}

			without := predict(coalition)
			coalition[feature] = values[feature]
			with := predict(coalition)

			weight := factorials[subsetSize] * factorials[n-subsetSize-1] / factorials[n]
			total += weight * (with - without)
		}
		result[feature] = total
	}
	return result
}

// InteractionValue returns the second-order effect between two features:
// v(both) - v(f1 only) - v(f2 only) + v(neither), all relative to baseline.
// Exactly zero for additive predictors.
func (s *SHAPExplainer) InteractionValue(values FeatureValues, feature1, feature2 string, predict PredictFn) float64 {
	if predict == nil {
		predict = s.defaultPredict
	}

	withVariants := func(f1, f2 float64) float64 {
		fv := make(FeatureValues, len(values))
		for k, v := range values {
			fv[k] = v
		}
		fv[feature1] = f1
		fv[feature2] = f2
		return predict(fv)
	}

	b1 := s.baselineValue(feature1)
	b2 := s.baselineValue(feature2)

	both := withVariants(values[feature1], values[feature2])
	neither := withVariants(b1, b2)
	onlyF1 := withVariants(values[feature1], b2)
	onlyF2 := withVariants(b1, values[feature2])

	return round4(both - onlyF1 - onlyF2 + neither)
}

// ForcePlot projects an explanation into force-plot form.
func (s *SHAPExplainer) ForcePlot(explanation *SHAPExplanation) *ForcePlotData {
	data := &ForcePlotData{
		BaseValue:   explanation.ExpectedValue,
		OutputValue: explanation.PredictedValue,
	}

	for _, sv := range explanation.ShapValues {
		feature := ForcePlotFeature{
			Name:         sv.FeatureName,
			Value:        sv.ShapValue,
			FeatureValue: sv.FeatureValue,
		}
		if sv.ShapValue > 0 {
			data.PositiveFeatures = append(data.PositiveFeatures, feature)
		} else {
			data.NegativeFeatures = append(data.NegativeFeatures, feature)
		}
	}

	sort.SliceStable(data.PositiveFeatures, func(i, j int) bool {
		return data.PositiveFeatures[i].Value > data.PositiveFeatures[j].Value
	})
	sort.SliceStable(data.NegativeFeatures, func(i, j int) bool {
		return data.NegativeFeatures[i].Value < data.NegativeFeatures[j].Value
	})

	return data
}

func (s *SHAPExplainer) baselineValue(name string) float64 {
	if v, ok := s.baselines[name]; ok {
		return v
	}
	return defaultBaselineValue
}

func (s *SHAPExplainer) defaultPredict(values FeatureValues) float64 {
	total := 0.0
	for key, value := range values {
		total += value * s.weights[key]
	}
	return total
}

func factorialTable(n int) []float64 {
	table := make([]float64, n+1)
	table[0] = 1
	for i := 1; i <= n; i++ {
		table[i] = table[i-1] * float64(i)
	}
	return table
}
