package scoring

import (
	"fmt"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/logger"
)

// FundamentalScorer scores fundamental ratios on a 0-1 scale, starting
// from a neutral 0.5. Absent fields skip their rule; they are never an
// error.
type FundamentalScorer struct {
	logger *logger.Logger
}

// NewFundamentalScorer creates a new fundamental scorer.
func NewFundamentalScorer(log *logger.Logger) *FundamentalScorer {
	return &FundamentalScorer{logger: log}
}

// Score evaluates the four ratio rules and returns the clamped sum.
func (s *FundamentalScorer) Score(snap *contracts.FundamentalSnapshot) float64 {
	score := 0.5
	log := s.logger.WithField("symbol", snap.Symbol)

	if snap.PERatio != nil {
		pe := *snap.PERatio
		switch {
		case pe >= 10 && pe <= 25:
			score += 0.1
			log.Debug(fmt.Sprintf("PE ratio %.2f is in healthy range (+0.1)", pe))
		case pe > 25:
			score -= 0.1
			log.Debug(fmt.Sprintf("PE ratio %.2f is high (-0.1)", pe))
		default:
			log.Debug(fmt.Sprintf("PE ratio %.2f is low (+0)", pe))
		}
	} else {
		log.Debug("PE ratio not available")
	}

	if snap.DebtToEquity != nil {
		de := *snap.DebtToEquity
		switch {
		case de < 1:
			score += 0.1
			log.Debug(fmt.Sprintf("Debt/Equity %.2f is low (+0.1)", de))
		case de > 2:
			score -= 0.1
			log.Debug(fmt.Sprintf("Debt/Equity %.2f is high (-0.1)", de))
		default:
			log.Debug(fmt.Sprintf("Debt/Equity %.2f is moderate (+0)", de))
		}
	} else {
		log.Debug("Debt/Equity ratio not available")
	}

	if snap.ROE != nil {
		roe := *snap.ROE
		switch {
		case roe > 0.15:
			score += 0.1
			log.Debug(fmt.Sprintf("ROE %.1f%% is strong (+0.1)", roe*100))
		case roe < 0:
			score -= 0.1
			log.Debug(fmt.Sprintf("ROE %.1f%% is negative (-0.1)", roe*100))
		default:
			log.Debug(fmt.Sprintf("ROE %.1f%% is moderate (+0)", roe*100))
		}
	} else {
		log.Debug("ROE not available")
	}

	if snap.InstitutionalHolding != nil {
		inst := *snap.InstitutionalHolding
		if inst > 0.7 {
			score += 0.1
			log.Debug(fmt.Sprintf("Strong institutional holding at %.1f%% (+0.1)", inst*100))
		} else {
			log.Debug(fmt.Sprintf("Moderate institutional holding at %.1f%% (+0)", inst*100))
		}
	} else {
		log.Debug("Institutional holding data not available")
	}

	final := Clamp01(score)

	log.WithField("score", final).Debug("Fundamental score calculated")

	return final
}
