package systems

import "github.com/noskyvisible/neural-evolution-simulation/config"

// HuntOdds returns the probability that a pack predator kills its target.
// The base chance grows with the number of supporting packmates, capped,
// and is scaled by the pack's coordination.
func HuntOdds(cfg *config.PackConfig, supporters int, coordination float64) float64 {
	helpers := min(supporters, cfg.MaxBonusPackmates)
	p := cfg.BaseSuccess + cfg.PackmateBonus*float64(helpers)*(0.5+coordination)
	return clamp01(p)
}

// SharePayout returns the energy each sharer receives from a kill. With more
// than one sharer the payout is split evenly. A single hunter keeps all of it
// unless it hunts without a pack, in which case the lone efficiency applies.
func SharePayout(cfg *config.PackConfig, sharers int, affiliated bool) float64 {
	if sharers > 1 {
		return cfg.KillEnergy / float64(sharers)
	}
	if !affiliated {
		return cfg.KillEnergy * cfg.LoneEfficiency
	}
	return cfg.KillEnergy
}

// AdjustCoordination raises a pack's coordination after a successful hunt
// and decays it after a failure, keeping it within [0, 1].
func AdjustCoordination(coordination float64, success bool, cfg *config.PackConfig) float64 {
	if success {
		return clamp01(coordination + cfg.CoordinationGain)
	}
	return clamp01(coordination - cfg.CoordinationDecay)
}
