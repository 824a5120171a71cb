package neural

// Input and output widths per species.
const (
	SelfInputs         = 5
	HerbivoreInputs    = SelfInputs + 5
	SoloPredatorInputs = SelfInputs + 4
	PackPredatorInputs = SelfInputs + 10

	MotorOutputs = 2 // turn, speed
	PackOutputs  = 3 // turn, speed, signal
)

// SelfState holds the inputs every species senses about itself.
type SelfState struct {
	X, Y       float64 // position / world extent [0,1]
	Energy     float64 // energy / energy norm
	CosHeading float64
	SinHeading float64
}

func (s *SelfState) appendTo(inputs []float64) []float64 {
	return append(inputs, s.X, s.Y, s.Energy, s.CosHeading, s.SinHeading)
}

// HerbivoreSenses is the sensory vector of a herbivore.
// Distances are normalized by vision range; an absent target reads as 0.
type HerbivoreSenses struct {
	Self         SelfState
	FoodDist     float64 // nearest food, capped at 1
	FoodCos      float64 // cos of bearing relative to heading
	PredatorDist float64
	PredatorCos  float64
	MateDist     float64
}

// ToInputs converts the senses to controller inputs.
//
//	[0-4]  self state
//	[5]    food distance
//	[6]    food bearing cosine
//	[7]    predator distance
//	[8]    predator bearing cosine
//	[9]    mate distance
func (s *HerbivoreSenses) ToInputs() []float64 {
	inputs := s.Self.appendTo(make([]float64, 0, HerbivoreInputs))
	return append(inputs, s.FoodDist, s.FoodCos, s.PredatorDist, s.PredatorCos, s.MateDist)
}

// SoloPredatorSenses is the sensory vector of a solo predator.
type SoloPredatorSenses struct {
	Self     SelfState
	PreyDist float64
	PreyCos  float64
	MateDist float64
	MateCos  float64
}

// ToInputs converts the senses to controller inputs.
//
//	[0-4]  self state
//	[5]    prey distance
//	[6]    prey bearing cosine
//	[7]    mate distance
//	[8]    mate bearing cosine
func (s *SoloPredatorSenses) ToInputs() []float64 {
	inputs := s.Self.appendTo(make([]float64, 0, SoloPredatorInputs))
	return append(inputs, s.PreyDist, s.PreyCos, s.MateDist, s.MateCos)
}

// PackPredatorSenses is the sensory vector of a pack predator.
type PackPredatorSenses struct {
	Self           SelfState
	PreyDist       float64
	PreyCos        float64
	PreyDensity    float64 // prey within vision / density cap, capped at 1
	CompetitorDist float64 // nearest pack predator outside own pack
	CentroidDist   float64
	CentroidCos    float64
	PackSize       float64 // living members / max pack size
	Alpha          float64 // 1 if alpha of its pack
	MateDist       float64
	MateCos        float64
}

// ToInputs converts the senses to controller inputs.
//
//	[0-4]  self state
//	[5]    prey distance
//	[6]    prey bearing cosine
//	[7]    prey density
//	[8]    competitor distance
//	[9]    pack centroid distance
//	[10]   pack centroid bearing cosine
//	[11]   pack size
//	[12]   alpha flag
//	[13]   mate distance
//	[14]   mate bearing cosine
func (s *PackPredatorSenses) ToInputs() []float64 {
	inputs := s.Self.appendTo(make([]float64, 0, PackPredatorInputs))
	return append(inputs,
		s.PreyDist, s.PreyCos, s.PreyDensity,
		s.CompetitorDist,
		s.CentroidDist, s.CentroidCos,
		s.PackSize, s.Alpha,
		s.MateDist, s.MateCos,
	)
}

// BehaviorOutputs holds the decoded controller outputs.
type BehaviorOutputs struct {
	Turn   float64 // [-0.5, 0.5], scaled by the turn rate
	Speed  float64 // [0, 1], scaled by max speed
	Signal float64 // [0, 1], pack predators only
}

// DecodeOutputs converts raw sigmoid outputs to behaviour intents.
func DecodeOutputs(raw []float64) BehaviorOutputs {
	if len(raw) < MotorOutputs {
		return BehaviorOutputs{}
	}
	out := BehaviorOutputs{
		Turn:  raw[0] - 0.5,
		Speed: raw[1],
	}
	if len(raw) > 2 {
		out.Signal = raw[2]
	}
	return out
}
