package balance

// units maps a netuid to its display ticker. Index 0 is the network's
// native root unit; dynamic subnets cycle through the Greek alphabet.
var units = []string{
	"τ", // netuid 0, root
	"α", "β", "γ", "δ", "ε", "ζ", "η", "θ", "ι", "κ", "λ", "μ",
	"ν", "ξ", "ο", "π", "ρ", "σ", "t", "υ", "φ", "χ", "ψ", "ω",
}

// GetUnit returns the display symbol for a subnet. Netuids beyond the
// table wrap around; negative netuids fall back to the root unit.
func GetUnit(netuid int) string {
	if netuid < 0 {
		return units[0]
	}
	return units[netuid%len(units)]
}
