// Package format renders signal-engine outputs into the bilingual
// (Arabic/English) text blocks sent back over the messaging channel.
package format

import (
	"fmt"
	"strings"
	"time"

	"tahlil-bot/internal/models"
	"tahlil-bot/pkg/utils"
)

// Lang selects the reply language.
type Lang string

const (
	LangArabic  Lang = "ar"
	LangEnglish Lang = "en"
	LangBoth    Lang = "both"
)

// Formatter renders result blocks in the configured language.
type Formatter struct {
	lang Lang
}

// New creates a formatter. Unknown languages fall back to bilingual output.
func New(lang string) *Formatter {
	switch Lang(lang) {
	case LangArabic, LangEnglish, LangBoth:
		return &Formatter{lang: Lang(lang)}
	default:
		return &Formatter{lang: LangBoth}
	}
}

// label renders a field label in the configured language.
func (f *Formatter) label(ar, en string) string {
	switch f.lang {
	case LangArabic:
		return ar
	case LangEnglish:
		return en
	default:
		return ar + " / " + en
	}
}

func (f *Formatter) decision(d models.Decision) string {
	switch d {
	case models.DecisionBuy:
		return f.label("شراء", "BUY")
	case models.DecisionSell:
		return f.label("بيع", "SELL")
	default:
		return f.label("محايد", "NEUTRAL")
	}
}

// Signal renders a full signal block: decision, levels, indicator readout and
// freshness line, with a delayed-data warning when the series is stale.
func (f *Formatter) Signal(res *models.SignalResult, snap *models.IndicatorSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 %s — %s\n", res.Symbol, res.Timeframe)
	fmt.Fprintf(&b, "%s: %s\n", f.label("الإشارة", "Signal"), f.decision(res.Decision))

	if res.Levels != nil {
		fmt.Fprintf(&b, "%s: %s\n", f.label("الدخول", "Entry"), utils.FormatPrice(res.Levels.Entry))
		fmt.Fprintf(&b, "%s: %s\n", f.label("وقف الخسارة", "Stop Loss"), utils.FormatPrice(res.Levels.StopLoss))
		fmt.Fprintf(&b, "%s: %s\n", f.label("الهدف الأول", "Target 1"), utils.FormatPrice(res.Levels.TakeProfit1))
		fmt.Fprintf(&b, "%s: %s\n", f.label("الهدف الثاني", "Target 2"), utils.FormatPrice(res.Levels.TakeProfit2))
	}

	if snap != nil {
		fmt.Fprintf(&b, "RSI(14): %.2f | EMA20: %s | EMA50: %s\n",
			snap.RSI14, utils.FormatPrice(snap.EMA20), utils.FormatPrice(snap.EMA50))
		fmt.Fprintf(&b, "MACD: %.4f / %.4f (hist %.4f) | ATR(14): %s\n",
			snap.MACDLine, snap.MACDSignal, snap.MACDHist, utils.FormatPrice(snap.ATR14))
	}

	fmt.Fprintf(&b, "%s: %s (%s: %s)\n",
		f.label("آخر شمعة", "Last candle"), res.LastCandleTimeUTC,
		f.label("العمر", "age"), utils.FormatAge(res.AgeSeconds))

	if res.IsStale {
		fmt.Fprintf(&b, "⚠️ %s\n", f.label("تنبيه: البيانات متأخرة عن السوق", "Warning: market data is delayed"))
	}

	return b.String()
}

// Unusable renders the block for data beyond the hard freshness ceiling. No
// decision is shown; the data is declared unusable.
func (f *Formatter) Unusable(symbol, timeframe string, lastCandle time.Time, ageSeconds int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚫 %s — %s\n", symbol, timeframe)
	fmt.Fprintf(&b, "%s\n", f.label("البيانات قديمة جداً ولا يمكن الاعتماد عليها", "Data is too old to be usable"))
	fmt.Fprintf(&b, "%s: %s (%s: %s)\n",
		f.label("آخر شمعة", "Last candle"), lastCandle.UTC().Format(time.RFC3339),
		f.label("العمر", "age"), utils.FormatAge(ageSeconds))
	return b.String()
}

// InsufficientData renders the could-not-compute block, kept distinct from a
// NEUTRAL signal.
func (f *Formatter) InsufficientData(symbol, timeframe string, have, need int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ %s — %s\n", symbol, timeframe)
	fmt.Fprintf(&b, "%s (%d/%d)\n",
		f.label("لا تتوفر بيانات كافية لحساب المؤشرات", "Not enough data to compute indicators"), have, need)
	return b.String()
}

// NoData renders the block for an empty or unparseable candle response.
func (f *Formatter) NoData(symbol, timeframe string) string {
	return fmt.Sprintf("❌ %s — %s\n%s\n", symbol, timeframe,
		f.label("لا توجد بيانات لهذا الرمز", "No data available for this symbol"))
}

// Price renders a one-line latest-price reply.
func (f *Formatter) Price(symbol string, price float64, at time.Time) string {
	return fmt.Sprintf("💰 %s: %s (%s %s UTC)", symbol, utils.FormatPrice(price),
		f.label("عند", "as of"), at.UTC().Format("15:04:05"))
}
