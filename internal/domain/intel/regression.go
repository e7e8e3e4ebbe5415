package intel

import "sort"

const (
	DefaultCandidateCount = 15
	regressionThreshold   = 0.020
)

// Direction selects which side of the xwOBA/wOBA gap to surface.
type Direction int

const (
	// Breakout: xwOBA well above wOBA, results should improve.
	Breakout Direction = iota
	// Bust: wOBA well above xwOBA, results should regress.
	Bust
)

type Candidate struct {
	Name  string  `json:"name"`
	WOBA  float64 `json:"woba"`
	XWOBA float64 `json:"xwoba"`
	Diff  float64 `json:"diff"`
	PA    int     `json:"pa"`
}

type Candidates struct {
	PosType    string      `json:"pos_type"`
	Candidates []Candidate `json:"candidates"`
}

// RegressionCandidates lists players whose wOBA/xwOBA gap exceeds .020 in
// the requested direction, largest gap first.
func RegressionCandidates(board *ExpectedBoard, direction Direction, count int) []Candidate {
	if count <= 0 {
		count = DefaultCandidateCount
	}

	out := make([]Candidate, 0)
	for _, entry := range board.Entries() {
		row := entry.Record
		if row.XWOBA == nil || row.WOBA == nil {
			continue
		}
		diff := *row.XWOBA - *row.WOBA
		if direction == Bust {
			diff = -diff
		}
		if diff <= regressionThreshold {
			continue
		}

		name := row.Name
		if name == "" {
			name = entry.Key
		}
		pa := 0
		if row.PA != nil {
			pa = int(*row.PA)
		}
		out = append(out, Candidate{
			Name:  name,
			WOBA:  round(*row.WOBA, 3),
			XWOBA: round(*row.XWOBA, 3),
			Diff:  round(diff, 3),
			PA:    pa,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Diff > out[j].Diff })
	return out[:min(len(out), count)]
}
