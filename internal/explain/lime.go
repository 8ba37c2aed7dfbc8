package explain

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/jonathan/match-insight/internal/types"
)

// LIME defaults. The kernel width and noise sigma were tuned for factor
// scores living in [0,1].
const (
	defaultNumSamples  = 100
	defaultKernelWidth = 0.25
	defaultNoiseSigma  = 0.2

	// ridgeEpsilon is the Tikhonov term added to the normal-equation matrix
	// for numerical stability.
	ridgeEpsilon = 1e-6
)

// ErrNoFeatures is returned when an explainer is given an empty feature map.
var ErrNoFeatures = errors.New("explain: no feature values provided")

// LIMEFeatureWeight is the surrogate model's weight for one feature.
type LIMEFeatureWeight struct {
	FeatureName      string  `json:"feature_name"`
	Weight           float64 `json:"weight"`
	NormalizedWeight float64 `json:"normalized"`
	Direction        string  `json:"direction"` // "positive" or "negative"
	ImportanceRank   int     `json:"rank"`
}

// LIMEExplanation is the local linear approximation of one prediction.
type LIMEExplanation struct {
	PredictedScore  float64             `json:"predicted_score"`
	LocalPrediction float64             `json:"local_prediction"`
	Intercept       float64             `json:"intercept"`
	FeatureWeights  []LIMEFeatureWeight `json:"feature_weights"`
	RSquared        float64             `json:"r_squared"`
	NumSamples      int                 `json:"num_samples"`
}

// TopFeatures returns the top n feature names by absolute raw weight.
func (e *LIMEExplanation) TopFeatures(n int, positiveOnly bool) []string {
	weights := make([]LIMEFeatureWeight, 0, len(e.FeatureWeights))
	for _, fw := range e.FeatureWeights {
		if positiveOnly && fw.Direction != "positive" {
			continue
		}
		weights = append(weights, fw)
	}
	sort.SliceStable(weights, func(i, j int) bool {
		return math.Abs(weights[i].Weight) > math.Abs(weights[j].Weight)
	})

	var names []string
	for i := 0; i < len(weights) && i < n; i++ {
		names = append(names, weights[i].FeatureName)
	}
	return names
}

// LIMEExplainer fits a local weighted linear surrogate around one feature
// vector by sampling Gaussian perturbations, weighting them by proximity,
// and solving the weighted least-squares normal equations in closed form.
type LIMEExplainer struct {
	weights     types.ScoringWeights
	numSamples  int
	kernelWidth float64
	noiseSigma  float64
	newRNG      func() *rand.Rand
}

// LIMEOption configures a LIMEExplainer.
type LIMEOption func(*LIMEExplainer)

// WithLIMEWeights replaces the weights behind the default predictor.
func WithLIMEWeights(w types.ScoringWeights) LIMEOption {
	return func(l *LIMEExplainer) { l.weights = w.Clone() }
}

// WithNumSamples sets the number of perturbed samples per explanation.
func WithNumSamples(n int) LIMEOption {
	return func(l *LIMEExplainer) { l.numSamples = n }
}

// WithKernelWidth sets the width of the exponential proximity kernel.
func WithKernelWidth(width float64) LIMEOption {
	return func(l *LIMEExplainer) { l.kernelWidth = width }
}

// WithNoiseSigma sets the standard deviation of the Gaussian perturbations.
func WithNoiseSigma(sigma float64) LIMEOption {
	return func(l *LIMEExplainer) { l.noiseSigma = sigma }
}

// WithSeed makes sampling deterministic. Each Explain call draws from a
// fresh generator with this seed, so repeated calls give identical output.
func WithSeed(seed int64) LIMEOption {
	return func(l *LIMEExplainer) {
		l.newRNG = func() *rand.Rand { return rand.New(rand.NewSource(seed)) }
	}
}

// NewLIMEExplainer creates a LIME explainer with default sampling parameters
// and a time-seeded generator unless overridden.
func NewLIMEExplainer(opts ...LIMEOption) *LIMEExplainer {
	l := &LIMEExplainer{
		weights:     types.DefaultScoringWeights(),
		numSamples:  defaultNumSamples,
		kernelWidth: defaultKernelWidth,
		noiseSigma:  defaultNoiseSigma,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.newRNG == nil {
		seed := rand.Int63()
		l.newRNG = func() *rand.Rand { return rand.New(rand.NewSource(seed)) }
	}
	return l
}

// Explain fits the local surrogate around the given feature values. A nil
// predict falls back to the configured weighted sum. A singular
// normal-equation matrix does not error: it degrades to zero coefficients
// with intercept equal to the mean sampled prediction and R-squared zero,
// which downstream text generation relies on as a low-confidence signal.
func (l *LIMEExplainer) Explain(values FeatureValues, predict PredictFn) (*LIMEExplanation, error) {
	if len(values) == 0 {
		return nil, ErrNoFeatures
	}
	if predict == nil {
		predict = l.defaultPredict
	}

	names := orderedKeys(values)
	original := make([]float64, len(names))
	for i, name := range names {
		original[i] = values[name]
	}

	originalPrediction := predict(values)

	samples, sampleWeights := l.generateSamples(original)

	predictions := make([]float64, len(samples))
	for i, sample := range samples {
		fv := make(FeatureValues, len(names))
		for j, name := range names {
			fv[name] = sample[j]
		}
		predictions[i] = predict(fv)
	}

	coefficients, intercept, rSquared := fitWeightedLinear(samples, predictions, sampleWeights)

	totalAbsWeight := 0.0
	for _, c := range coefficients {
		totalAbsWeight += math.Abs(c)
	}
	if totalAbsWeight == 0 {
		totalAbsWeight = 1
	}

	featureWeights := make([]LIMEFeatureWeight, len(names))
	for i, name := range names {
		coef := coefficients[i]
		direction := "negative"
		if coef > 0 {
			direction = "positive"
		}
		featureWeights[i] = LIMEFeatureWeight{
			FeatureName:      FormatFeatureName(name),
			Weight:           round4(coef),
			NormalizedWeight: round4(coef / totalAbsWeight),
			Direction:        direction,
		}
	}

	// Rank by absolute raw weight, 1 = most important.
	order := make([]int, len(featureWeights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return math.Abs(featureWeights[order[a]].Weight) > math.Abs(featureWeights[order[b]].Weight)
	})
	for rank, idx := range order {
		featureWeights[idx].ImportanceRank = rank + 1
	}

	localPrediction := intercept
	for i, coef := range coefficients {
		localPrediction += coef * original[i]
	}

	return &LIMEExplanation{
		PredictedScore:  round4(originalPrediction),
		LocalPrediction: round4(localPrediction),
		Intercept:       round4(intercept),
		FeatureWeights:  featureWeights,
		RSquared:        round4(rSquared),
		NumSamples:      l.numSamples,
	}, nil
}

// ExplainTextFeatures assigns keyword-level importances: matched job-posting
// keywords contribute a small positive amount, the first ten missing ones a
// small negative amount. A lightweight complement to the factor-level
// surrogate, used for term-level display.
func (l *LIMEExplainer) ExplainTextFeatures(resumeText, jobText string) map[string]float64 {
	jobWords := textKeywordSet(jobText)
	resumeWords := textKeywordSet(resumeText)

	var matched, missing []string
	for _, w := range sortedSetKeys(jobWords) {
		if resumeWords[w] {
			matched = append(matched, w)
		} else {
			missing = append(missing, w)
		}
	}

	importance := make(map[string]float64)
	for _, w := range matched {
		importance["+"+w] = round4(0.1 / math.Max(float64(len(matched)), 1))
	}
	for i, w := range missing {
		if i >= 10 {
			break
		}
		importance["-"+w] = round4(-0.05 / math.Max(float64(len(missing)), 1))
	}
	return importance
}

// generateSamples draws perturbed copies of the original vector. The first
// sample is always the unperturbed point. Each sample is weighted by an
// exponential kernel of its Euclidean distance to the original.
func (l *LIMEExplainer) generateSamples(original []float64) ([][]float64, []float64) {
	rng := l.newRNG()
	n := len(original)

	samples := make([][]float64, l.numSamples)
	samples[0] = append([]float64(nil), original...)
	for i := 1; i < l.numSamples; i++ {
		sample := make([]float64, n)
		for j, v := range original {
			perturbed := v + rng.NormFloat64()*l.noiseSigma
			sample[j] = clamp01(perturbed)
		}
		samples[i] = sample
	}

	weights := make([]float64, l.numSamples)
	for i, sample := range samples {
		distSq := 0.0
		for j := range sample {
			d := sample[j] - original[j]
			distSq += d * d
		}
		weights[i] = math.Exp(-distSq / (l.kernelWidth * l.kernelWidth))
	}

	return samples, weights
}

// fitWeightedLinear solves the weighted least-squares normal equations
// (X'WX + eps*I) params = X'Wy for coefficients plus a bias column, and
// computes the weighted R-squared of the fit. A singular system falls back
// to zero coefficients with intercept = mean prediction and R-squared 0.
func fitWeightedLinear(samples [][]float64, predictions, sampleWeights []float64) (coefficients []float64, intercept, rSquared float64) {
	nSamples := len(samples)
	nFeatures := len(samples[0])
	dim := nFeatures + 1 // bias column appended

	// Gram matrix X'WX and moment vector X'Wy, with the bias folded in.
	gram := make([][]float64, dim)
	for i := range gram {
		gram[i] = make([]float64, dim)
	}
	moment := make([]float64, dim)

	row := make([]float64, dim)
	for s := 0; s < nSamples; s++ {
		copy(row, samples[s])
		row[nFeatures] = 1.0
		w := sampleWeights[s]
		for i := 0; i < dim; i++ {
			wi := w * row[i]
			for j := 0; j < dim; j++ {
				gram[i][j] += wi * row[j]
			}
			moment[i] += wi * predictions[s]
		}
	}
	for i := 0; i < dim; i++ {
		gram[i][i] += ridgeEpsilon
	}

	params, ok := solveLinearSystem(gram, moment)
	if !ok {
		coefficients = make([]float64, nFeatures)
		intercept = mean(predictions)
		return coefficients, intercept, 0
	}

	coefficients = params[:nFeatures]
	intercept = params[nFeatures]

	// Weighted R-squared of the surrogate against the sampled predictions.
	weightedMean := 0.0
	totalWeight := 0.0
	for s, y := range predictions {
		weightedMean += sampleWeights[s] * y
		totalWeight += sampleWeights[s]
	}
	if totalWeight > 0 {
		weightedMean /= totalWeight
	}

	ssRes, ssTot := 0.0, 0.0
	for s, y := range predictions {
		fitted := intercept
		for j, c := range coefficients {
			fitted += c * samples[s][j]
		}
		ssRes += sampleWeights[s] * (y - fitted) * (y - fitted)
		ssTot += sampleWeights[s] * (y - weightedMean) * (y - weightedMean)
	}
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}
	return coefficients, intercept, math.Max(0, rSquared)
}

// solveLinearSystem solves Ax = b by Gaussian elimination with partial
// pivoting. The second return is false when the matrix is singular.
func solveLinearSystem(a [][]float64, b []float64) ([]float64, bool) {
	n := len(a)
	// Work on copies so callers keep their matrices.
	m := make([][]float64, n)
	for i := range a {
		m[i] = append([]float64(nil), a[i]...)
	}
	rhs := append([]float64(nil), b...)

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return nil, false
		}
		m[col], m[pivot] = m[pivot], m[col]
		rhs[col], rhs[pivot] = rhs[pivot], rhs[col]

		for r := col + 1; r < n; r++ {
			factor := m[r][col] / m[col][col]
			for c := col; c < n; c++ {
				m[r][c] -= factor * m[col][c]
			}
			rhs[r] -= factor * rhs[col]
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := rhs[i]
		for j := i + 1; j < n; j++ {
			sum -= m[i][j] * x[j]
		}
		x[i] = sum / m[i][i]
	}
	return x, true
}

func (l *LIMEExplainer) defaultPredict(values FeatureValues) float64 {
	total := 0.0
	for key, value := range values {
		total += value * l.weights[key]
	}
	return total
}

func textKeywordSet(text string) map[string]bool {
	stop := map[string]bool{
		"with": true, "have": true, "will": true, "that": true, "this": true,
		"from": true, "your": true, "they": true, "their": true, "what": true,
		"when": true, "where": true, "which": true, "would": true, "could": true,
		"should": true, "must": true, "able": true, "about": true, "been": true,
		"being": true, "than": true, "then": true, "into": true, "over": true,
		"such": true, "only": true, "other": true, "some": true,
	}

	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?()[]\"'")
		if len(word) >= 4 && !stop[word] && isAlpha(word) {
			set[word] = true
		}
	}
	return set
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func sortedSetKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
