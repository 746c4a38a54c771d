package headline

import (
	"fmt"
	"strings"
)

// policyLevel maps a 0..100 lever to the adjective the prompt uses, so
// the model reacts to intent rather than raw numbers.
func policyLevel(pct float64) string {
	switch {
	case pct <= 0:
		return "none"
	case pct < 25:
		return "modest"
	case pct < 50:
		return "moderate"
	case pct < 75:
		return "aggressive"
	default:
		return "sweeping"
	}
}

// BuildPrompt renders the press-secretary prompt for a request.
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("You are a senior government press secretary announcing a national climate policy package.\n")
	b.WriteString("Write ONE short, punchy news headline (no more than 15 words) about the package below.\n")
	b.WriteString("Do not use quotation marks. Do not explain. Respond with the headline only.\n\n")

	fmt.Fprintf(&b, "Electric vehicle push: %s (%.0f%% adoption target)\n",
		policyLevel(req.Policy.EVAdoptionPct), req.Policy.EVAdoptionPct)
	fmt.Fprintf(&b, "Renewable energy expansion: %s (%.0f%% of grid)\n",
		policyLevel(req.Policy.RenewableEnergyPct), req.Policy.RenewableEnergyPct)
	fmt.Fprintf(&b, "Tree planting programme: %.0f trees per year\n",
		req.Policy.TreePlantationRate)
	fmt.Fprintf(&b, "Industrial emission controls: %s (%.0f%% stringency)\n",
		policyLevel(req.Policy.IndustrialControlPct), req.Policy.IndustrialControlPct)

	fmt.Fprintf(&b, "\nProjected outcome: emissions down %.1f%% after %d years, %.0f tons of CO2 avoided in total.\n",
		req.EmissionReductionPct, req.HorizonYears, req.AvoidedTons)

	return b.String()
}

// CleanHeadline strips the wrapping quotes and whitespace models tend to
// add despite instructions, and collapses the reply to its first line.
func CleanHeadline(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, `"'`)
	s = strings.TrimPrefix(s, "“")
	s = strings.TrimSuffix(s, "”")
	return strings.TrimSpace(s)
}
