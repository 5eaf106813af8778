package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderCreditMeter renders how much of a credit target is covered, like
// [████░░░░] 8/15. Green when covered, yellow from half, red below.
func RenderCreditMeter(credits, target, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 1.0
	if target > 0 {
		pct = float64(max(credits, 0)) / float64(target)
	}
	pct = min(pct, 1)

	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.5:
		style = StyleRed
	case pct < 1:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), credits, target)
}
