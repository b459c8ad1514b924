package commands

import (
	"fmt"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// Every command prints through these so terminal output stays
// uniform across subcommands.
// ═══════════════════════════════════════════════════════════

// PrintHeader prints a section header.
func PrintHeader(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", title)
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintFooter closes a section.
func PrintFooter() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// fmtFloat renders a nullable float, "-" when absent.
func fmtFloat(v *float64, decimals int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

// fmtInt renders a nullable integer, "-" when absent.
func fmtInt(v *int64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

// fmtString renders a nullable string, "-" when absent.
func fmtString(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

// fmtBool renders a nullable bool, "-" when absent.
func fmtBool(v *bool) string {
	if v == nil {
		return "-"
	}
	if *v {
		return "yes"
	}
	return "no"
}
