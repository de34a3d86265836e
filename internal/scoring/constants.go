package scoring

// ScoreScale turns the weighted average into a 0-100 style score.
const ScoreScale = 100.0

func DefaultWeights() Weights {
	return Weights{0.25, 0.20, 0.15, 0.10, 0.20, 0.10}
}
