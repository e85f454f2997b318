package telegram

import (
	"fmt"
	"strings"
	"time"
)

// FormatSignalAlertMessage builds a Markdown alert for a high-conviction
// AI recommendation coming out of a bulk analysis run.
func FormatSignalAlertMessage(t time.Time, symbol, recommendation string, confidence int, targetPrice float64) string {
	var icon string
	switch recommendation {
	case "STRONG_BUY":
		icon = "🚀"
	case "STRONG_SELL":
		icon = "🔻"
	default:
		icon = "📊"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s *AI Signal Alert* %s\n\n", icon, icon))
	b.WriteString(fmt.Sprintf("📈 *Symbol:* %s\n", symbol))
	b.WriteString(fmt.Sprintf("💡 *Recommendation:* %s\n", recommendation))
	b.WriteString(fmt.Sprintf("🎯 *Confidence:* %d%%\n", confidence))
	if targetPrice > 0 {
		b.WriteString(fmt.Sprintf("🏁 *Target Price:* ₹%.2f\n", targetPrice))
	}
	b.WriteString(fmt.Sprintf("\n🕒 %s", t.Format("2006-01-02 15:04:05")))
	return b.String()
}

// FormatErrorAlertMessage builds a Markdown alert for an operational failure.
func FormatErrorAlertMessage(t time.Time, message string) string {
	var b strings.Builder
	b.WriteString("⚠️ *Error Alert* ⚠️\n\n")
	b.WriteString(fmt.Sprintf("💬 %s\n", message))
	b.WriteString(fmt.Sprintf("\n🕒 %s", t.Format("2006-01-02 15:04:05")))
	return b.String()
}
