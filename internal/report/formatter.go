package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"RiskRadar/internal/model"
)

// FormatRiskReport renders a risk report as a Telegram HTML message.
func FormatRiskReport(r *model.RiskReport, totalValue float64) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Portfolio Risk Report</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Portfolio value: $%.2f\n", totalValue))
	b.WriteString(fmt.Sprintf("Risk level: <b>%s</b>\n\n", r.OverallRiskLevel))

	b.WriteString("📈 <b>Risk metrics:</b>\n")
	b.WriteString(fmt.Sprintf("  Volatility (ann.): %.1f%%\n", r.Volatility*100))
	b.WriteString(fmt.Sprintf("  Expected return (ann.): %.1f%%\n", r.ExpectedReturn*100))
	if !math.IsNaN(r.SharpeRatio) {
		b.WriteString(fmt.Sprintf("  Sharpe ratio: %.2f\n", r.SharpeRatio))
	}
	b.WriteString(fmt.Sprintf("  VaR 95%%: $%.2f | VaR 99%%: $%.2f\n", r.VaR95, r.VaR99))
	b.WriteString(fmt.Sprintf("  CVaR 95%%: $%.2f\n", r.CVaR95))
	b.WriteString(fmt.Sprintf("  Diversification benefit: %.1f%%\n", r.DiversificationBenefit*100))
	b.WriteString(fmt.Sprintf("  Concentration: %.1f%%\n\n", r.ConcentrationRisk*100))

	b.WriteString("🧮 <b>Risk contributions:</b>\n")
	for _, a := range r.Assets {
		b.WriteString(fmt.Sprintf("  %s: weight %.1f%%, vol %.1f%%, contributes %.1f%%\n",
			a.Ticker, a.Weight*100, a.Volatility*100, a.RiskContribution*100))
	}

	for _, w := range r.Warnings {
		b.WriteString(fmt.Sprintf("\n⚠️ %s", w))
	}

	return b.String()
}

// FormatStressReport renders stress test outcomes, worst case first.
func FormatStressReport(r *model.StressReport) string {
	var b strings.Builder
	b.WriteString("🌪 <b>Stress Test</b>\n\n")

	ids := make([]string, 0, len(r.Outcomes))
	for id := range r.Outcomes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return r.Outcomes[ids[i]].PnL < r.Outcomes[ids[j]].PnL })

	for _, id := range ids {
		out := r.Outcomes[id]
		b.WriteString(fmt.Sprintf("  %s: $%.2f (%+.1f%%)\n", id, out.NewValue, out.PnLPercent*100))
	}
	b.WriteString(fmt.Sprintf("\nWorst case: %s | Best case: %s\n", r.WorstCase, r.BestCase))
	return b.String()
}

// FormatRiskAlert renders the high-risk escalation message.
func FormatRiskAlert(r *model.RiskReport) string {
	return fmt.Sprintf("🚨 <b>Risk Alert</b>\n\nPortfolio risk level is %s\nVolatility: %.1f%% | Concentration: %.1f%%\nVaR 95%%: $%.2f",
		r.OverallRiskLevel, r.Volatility*100, r.ConcentrationRisk*100, r.VaR95)
}

// FormatPortfolio renders the current holdings.
func FormatPortfolio(holdings []model.Holding) string {
	if len(holdings) == 0 {
		return "Portfolio is empty. Add holdings via the API."
	}
	var b strings.Builder
	b.WriteString("💼 <b>Portfolio</b>\n\n")
	for _, h := range holdings {
		b.WriteString(fmt.Sprintf("  %s ×%s (%s) cost %s\n", h.Ticker, h.Quantity, h.Sector, h.CostBasis))
	}
	return b.String()
}
