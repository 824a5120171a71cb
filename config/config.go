// Package config provides configuration loading for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Organism   OrganismConfig   `yaml:"organism"`
	Species    SpeciesSet       `yaml:"species"`
	Resource   ResourceConfig   `yaml:"resource"`
	Hunt       HuntConfig       `yaml:"hunt"`
	Pack       PackConfig       `yaml:"pack"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world dimensions and spawn margins.
type WorldConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	SpawnMargin    float64 `yaml:"spawn_margin"`    // organisms spawn this far from the edges
	ResourceMargin float64 `yaml:"resource_margin"` // food spawns this far from the edges
}

// OrganismConfig holds life-cycle constants shared by every species.
type OrganismConfig struct {
	InitialEnergy         float64 `yaml:"initial_energy"`
	MaxEnergy             float64 `yaml:"max_energy"`
	EnergyNorm            float64 `yaml:"energy_norm"`  // divisor for the energy sensor
	ReproEnergy           float64 `yaml:"repro_energy"` // energy must exceed this to mate
	MaturityAge           int     `yaml:"maturity_age"` // age must exceed this to mate
	MateRadius            float64 `yaml:"mate_radius"`
	MatingCooldown        int     `yaml:"mating_cooldown"`
	Gestation             int     `yaml:"gestation"`
	ConceptionCost        float64 `yaml:"conception_cost"` // paid by the female at mating
	BirthCost             float64 `yaml:"birth_cost"`      // paid by the mother at birth
	MatingFitness         float64 `yaml:"mating_fitness"`
	SurvivalFitness       float64 `yaml:"survival_fitness"`   // per tick while energy > 0
	StarvationFitness     float64 `yaml:"starvation_fitness"` // per tick once energy is depleted
	TurnScale             float64 `yaml:"turn_scale"`
	MaxSpeed              float64 `yaml:"max_speed"`
	BirthMutationRate     float64 `yaml:"birth_mutation_rate"`
	BirthMutationStrength float64 `yaml:"birth_mutation_strength"`
	TraitNoise            float64 `yaml:"trait_noise"` // sigma for inherited dominance/loyalty
}

// SpeciesSet holds per-species settings.
type SpeciesSet struct {
	Herbivore    SpeciesConfig `yaml:"herbivore"`
	SoloPredator SpeciesConfig `yaml:"solo_predator"`
	PackPredator SpeciesConfig `yaml:"pack_predator"`
}

// SpeciesConfig holds the constants of one species descriptor.
type SpeciesConfig struct {
	Target        int     `yaml:"target"` // target population for seeding and evolution
	MaxAge        int     `yaml:"max_age"`
	VisionRange   float64 `yaml:"vision_range"`
	HuntRange     float64 `yaml:"hunt_range"`
	MetabolicCost float64 `yaml:"metabolic_cost"`
	HiddenLayers  []int   `yaml:"hidden_layers"`
	BirthScatter  float64 `yaml:"birth_scatter"`
}

// ResourceConfig holds food spawning and feeding parameters.
type ResourceConfig struct {
	Initial       int     `yaml:"initial"`
	Energy        float64 `yaml:"energy"`
	FeedRadius    float64 `yaml:"feed_radius"`
	FeedFitness   float64 `yaml:"feed_fitness"`
	Interval      int     `yaml:"interval"` // ticks between batch spawns (0 = never)
	IntervalCount int     `yaml:"interval_count"`
	Cap           int     `yaml:"cap"`            // batch spawns only happen below this count
	RandomChance  float64 `yaml:"random_chance"`  // per-tick probability of one extra item
	PostEvolution int     `yaml:"post_evolution"` // items added after each generation
}

// HuntConfig holds solo predator hunting parameters.
type HuntConfig struct {
	KillEnergy  float64 `yaml:"kill_energy"`
	KillFitness float64 `yaml:"kill_fitness"`
}

// PackConfig holds pack predator social and hunting parameters.
type PackConfig struct {
	MaxSize           int     `yaml:"max_size"`
	InitialSize       int     `yaml:"initial_size"`
	DenScatter        float64 `yaml:"den_scatter"`
	BaseSuccess       float64 `yaml:"base_success"`
	PackmateBonus     float64 `yaml:"packmate_bonus"`
	MaxBonusPackmates int     `yaml:"max_bonus_packmates"`
	SupportRadius     float64 `yaml:"support_radius"`
	ShareRadius       float64 `yaml:"share_radius"`
	KillEnergy        float64 `yaml:"kill_energy"`
	LoneEfficiency    float64 `yaml:"lone_efficiency"`
	ShareFitness      float64 `yaml:"share_fitness"`
	HuntCooldown      int     `yaml:"hunt_cooldown"`
	CoordinationGain  float64 `yaml:"coordination_gain"`
	CoordinationDecay float64 `yaml:"coordination_decay"`
	DensityCap        int     `yaml:"density_cap"`
	SignalThreshold   float64 `yaml:"signal_threshold"`
	SignalCooldown    int     `yaml:"signal_cooldown"`
	SignalDisplay     int     `yaml:"signal_display"`
	SignalRadius      float64 `yaml:"signal_radius"`
	SignalFitness     float64 `yaml:"signal_fitness"`
	RallyDistance     float64 `yaml:"rally_distance"`
	LoyaltyThreshold  float64 `yaml:"loyalty_threshold"`
	CohesionDistance  float64 `yaml:"cohesion_distance"`
	CohesionJitter    float64 `yaml:"cohesion_jitter"`
	JoinRadius        float64 `yaml:"join_radius"`
	JoinChance        float64 `yaml:"join_chance"`
	FoundChance       float64 `yaml:"found_chance"`
	FoundRadius       float64 `yaml:"found_radius"`
}

// EvolutionConfig holds generational replacement parameters.
type EvolutionConfig struct {
	GenerationTicks   int     `yaml:"generation_ticks"`
	DepletionFraction float64 `yaml:"depletion_fraction"`
	EliteFraction     float64 `yaml:"elite_fraction"`
	MinElite          int     `yaml:"min_elite"`
	SurvivorDivisor   int     `yaml:"survivor_divisor"` // elite carry-over = target / divisor
	CrossoverChance   float64 `yaml:"crossover_chance"`
	MutationRate      float64 `yaml:"mutation_rate"`
	MutationStrength  float64 `yaml:"mutation_strength"`
	MinParentWeight   float64 `yaml:"min_parent_weight"`
}

// PopulationConfig holds extinction respawn settings.
type PopulationConfig struct {
	RespawnHerbivores    int  `yaml:"respawn_herbivores"`
	RespawnSoloPredators int  `yaml:"respawn_solo_predators"`
	RespawnPackPredators int  `yaml:"respawn_pack_predators"`
	ReseedFromHall       bool `yaml:"reseed_from_hall"` // mutated hall of fame controllers instead of random ones
}

// TelemetryConfig holds reporting parameters.
type TelemetryConfig struct {
	ReportInterval  int `yaml:"report_interval"` // ticks between stats rows
	BookmarkHistory int `yaml:"bookmark_history"`
	HallOfFameSize  int `yaml:"hall_of_fame_size"` // best organisms kept per species
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SpawnMinX, SpawnMaxX float64
	SpawnMinY, SpawnMaxY float64
	FoodMinX, FoodMaxX   float64
	FoodMinY, FoodMaxY   float64
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects settings the simulation cannot run with.
func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %gx%g", c.World.Width, c.World.Height)
	}
	if 2*c.World.SpawnMargin >= c.World.Width || 2*c.World.SpawnMargin >= c.World.Height {
		return fmt.Errorf("spawn margin %g too large for world", c.World.SpawnMargin)
	}
	if c.Pack.MaxSize < 2 {
		return fmt.Errorf("pack max size must be at least 2, got %d", c.Pack.MaxSize)
	}
	if c.Evolution.SurvivorDivisor <= 0 {
		return fmt.Errorf("survivor divisor must be positive, got %d", c.Evolution.SurvivorDivisor)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	m := c.World.SpawnMargin
	c.Derived.SpawnMinX, c.Derived.SpawnMaxX = m, c.World.Width-m
	c.Derived.SpawnMinY, c.Derived.SpawnMaxY = m, c.World.Height-m

	r := c.World.ResourceMargin
	c.Derived.FoodMinX, c.Derived.FoodMaxX = r, c.World.Width-r
	c.Derived.FoodMinY, c.Derived.FoodMaxY = r, c.World.Height-r
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
