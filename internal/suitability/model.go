// Package suitability decides whether a candidate is suitable for a role from
// years of experience and a résumé/job match score.
package suitability

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

const modelVersion = 1

// Features are the model inputs, in column order.
var Features = []string{"experience_years", "match_score"}

// Sample is one labelled training row.
type Sample struct {
	ExperienceYears float64
	MatchScore      float64
	Suitable        bool
}

// DefaultSamples is the fixed training table.
var DefaultSamples = []Sample{
	{ExperienceYears: 5, MatchScore: 90, Suitable: true},
	{ExperienceYears: 2, MatchScore: 60, Suitable: false},
	{ExperienceYears: 7, MatchScore: 95, Suitable: true},
	{ExperienceYears: 1, MatchScore: 30, Suitable: false},
	{ExperienceYears: 3, MatchScore: 75, Suitable: true},
	{ExperienceYears: 8, MatchScore: 98, Suitable: true},
}

// Params controls boosting.
type Params struct {
	Rounds       int     `json:"rounds"`
	LearningRate float64 `json:"learning_rate"`
	Lambda       float64 `json:"lambda"`
}

// DefaultParams are the parameters used for the persisted model.
var DefaultParams = Params{Rounds: 50, LearningRate: 0.3, Lambda: 1}

// Stump is a depth-one regression tree on a single feature.
type Stump struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      float64 `json:"left"`
	Right     float64 `json:"right"`
}

// Model is a gradient-boosted ensemble of stumps trained with logistic loss.
type Model struct {
	Version    int      `json:"version"`
	Features   []string `json:"features"`
	Params     Params   `json:"params"`
	BaseMargin float64  `json:"base_margin"`
	Stumps     []Stump  `json:"stumps"`
}

// Train fits the default model to DefaultSamples with DefaultParams.
func Train() *Model {
	m, err := Fit(DefaultSamples, DefaultParams)
	if err != nil {
		panic("suitability: default training set rejected: " + err.Error())
	}
	return m
}

// Fit trains a model on samples. Identical samples and params always
// produce an identical model.
func Fit(samples []Sample, params Params) (*Model, error) {
	if len(samples) < 2 {
		return nil, errors.New("at least two samples are required")
	}
	if params.Rounds <= 0 || params.LearningRate <= 0 || params.Lambda < 0 {
		return nil, fmt.Errorf("invalid params: %+v", params)
	}

	xs := make([][]float64, len(samples))
	ys := make([]float64, len(samples))
	var positives float64
	for i, s := range samples {
		xs[i] = []float64{s.ExperienceYears, s.MatchScore}
		if s.Suitable {
			ys[i] = 1
			positives++
		}
	}
	if positives == 0 || positives == float64(len(samples)) {
		return nil, errors.New("training set needs both classes")
	}

	base := positives / float64(len(samples))
	m := &Model{
		Version:    modelVersion,
		Features:   append([]string(nil), Features...),
		Params:     params,
		BaseMargin: math.Log(base / (1 - base)),
	}

	margins := make([]float64, len(samples))
	for i := range margins {
		margins[i] = m.BaseMargin
	}
	grad := make([]float64, len(samples))
	hess := make([]float64, len(samples))

	for round := 0; round < params.Rounds; round++ {
		for i := range samples {
			p := sigmoid(margins[i])
			grad[i] = p - ys[i]
			hess[i] = p * (1 - p)
		}
		stump, ok := bestStump(xs, grad, hess, params)
		if !ok {
			break
		}
		m.Stumps = append(m.Stumps, stump)
		for i := range samples {
			margins[i] += stump.value(xs[i])
		}
	}
	return m, nil
}

// bestStump picks the split with the highest second-order gain. Ties keep
// the earlier feature and the lower threshold.
func bestStump(xs [][]float64, grad, hess []float64, params Params) (Stump, bool) {
	var gTotal, hTotal float64
	for i := range grad {
		gTotal += grad[i]
		hTotal += hess[i]
	}
	parent := gTotal * gTotal / (hTotal + params.Lambda)

	var (
		best     Stump
		bestGain float64
		found    bool
	)
	for f := range Features {
		for _, t := range thresholds(xs, f) {
			var gl, hl float64
			for i, x := range xs {
				if x[f] <= t {
					gl += grad[i]
					hl += hess[i]
				}
			}
			gr, hr := gTotal-gl, hTotal-hl
			gain := gl*gl/(hl+params.Lambda) + gr*gr/(hr+params.Lambda) - parent
			if gain > bestGain+1e-12 {
				bestGain = gain
				found = true
				best = Stump{
					Feature:   f,
					Threshold: t,
					Left:      -gl / (hl + params.Lambda) * params.LearningRate,
					Right:     -gr / (hr + params.Lambda) * params.LearningRate,
				}
			}
		}
	}
	return best, found
}

// thresholds returns midpoints between consecutive distinct values of feature f.
func thresholds(xs [][]float64, f int) []float64 {
	vals := make([]float64, 0, len(xs))
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		if _, ok := seen[x[f]]; ok {
			continue
		}
		seen[x[f]] = struct{}{}
		vals = append(vals, x[f])
	}
	sort.Float64s(vals)
	out := make([]float64, 0, len(vals))
	for i := 1; i < len(vals); i++ {
		out = append(out, (vals[i-1]+vals[i])/2)
	}
	return out
}

func (s Stump) value(x []float64) float64 {
	if x[s.Feature] <= s.Threshold {
		return s.Left
	}
	return s.Right
}

// Probability returns P(suitable) for the given inputs.
func (m *Model) Probability(experienceYears, matchScore float64) float64 {
	x := []float64{experienceYears, matchScore}
	margin := m.BaseMargin
	for _, s := range m.Stumps {
		margin += s.value(x)
	}
	return sigmoid(margin)
}

// Predict reports whether the model classifies the inputs as suitable.
func (m *Model) Predict(experienceYears, matchScore float64) bool {
	return m.Probability(experienceYears, matchScore) >= 0.5
}

// Validate checks that a decoded model is usable.
func (m *Model) Validate() error {
	if m.Version != modelVersion {
		return fmt.Errorf("unsupported model version %d", m.Version)
	}
	if len(m.Features) != len(Features) {
		return fmt.Errorf("model has %d features, want %d", len(m.Features), len(Features))
	}
	for _, s := range m.Stumps {
		if s.Feature < 0 || s.Feature >= len(Features) {
			return fmt.Errorf("stump feature %d out of range", s.Feature)
		}
	}
	return nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
