package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Sequence is one candidate solution: alphabet indices, lower energy is better.
type Sequence []byte

// Clone returns an independent copy.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Equal reports whether two sequences hold identical symbols.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

type MoveKind uint8

const (
	MoveSubstitute MoveKind = iota
	MoveSwap
	MoveInsert
	MoveDelete
)

func (k MoveKind) String() string {
	switch k {
	case MoveSubstitute:
		return "substitute"
	case MoveSwap:
		return "swap"
	case MoveInsert:
		return "insert"
	case MoveDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Move records one elementary transformation between two sequences. Unused
// fields stay zero so Move is comparable and tabu membership is plain struct
// equality.
//
//	substitute: Pos = position, Old/New = symbols
//	swap:       Pos/Pos2 = the two positions
//	insert:     Pos = insertion point, New = symbol
//	delete:     Pos = position, Old = removed symbol
type Move struct {
	Kind MoveKind `json:"kind"`
	Pos  int      `json:"pos"`
	Pos2 int      `json:"pos2,omitempty"`
	Old  byte     `json:"old,omitempty"`
	New  byte     `json:"new,omitempty"`
}

// GenerationStats summarizes one generation of a population engine.
type GenerationStats struct {
	Generation int     `json:"generation"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Mean       float64 `json:"mean"`
}

// TracePoint is one step of a trajectory engine's best-so-far trace.
type TracePoint struct {
	Iteration   int     `json:"iteration"`
	BestFitness float64 `json:"best_fitness"`
}

// RunRecord is the persisted outcome of a single engine run.
type RunRecord struct {
	VersionedRecord
	RunID        string  `json:"run_id"`
	Engine       string  `json:"engine"`
	Problem      string  `json:"problem"`
	MotifIndex   int     `json:"motif_index"`
	Motif        string  `json:"motif"`
	ScoreMode    string  `json:"score_mode"`
	Seed         int64   `json:"seed"`
	Population   int     `json:"population,omitempty"`
	Generations  int     `json:"generations,omitempty"`
	Iterations   int     `json:"iterations,omitempty"`
	BestSequence string  `json:"best_sequence"`
	BestFitness  float64 `json:"best_fitness"`
	Evaluations  int     `json:"evaluations"`
	CreatedAtUTC string  `json:"created_at_utc"`
}
