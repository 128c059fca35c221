package format

import (
	"strings"
	"testing"
	"time"

	"tahlil-bot/internal/models"
)

func sampleResult() (*models.SignalResult, *models.IndicatorSnapshot) {
	res := &models.SignalResult{
		Symbol:    "BTCUSDT",
		Timeframe: models.Timeframe1h,
		Decision:  models.DecisionBuy,
		Levels: &models.Levels{
			Entry: 50000, StopLoss: 49500, TakeProfit1: 50500, TakeProfit2: 51000,
		},
		LastCandleTimeUTC: "2026-03-01T11:00:00Z",
		AgeSeconds:        1800,
	}
	snap := &models.IndicatorSnapshot{
		Close: 50000, EMA20: 49800, EMA50: 49200,
		RSI14: 62.5, MACDLine: 120.5, MACDSignal: 98.2, MACDHist: 22.3, ATR14: 500,
	}
	return res, snap
}

func TestSignal_BilingualBlock(t *testing.T) {
	f := New("both")
	res, snap := sampleResult()
	got := f.Signal(res, snap)

	for _, want := range []string{
		"BTCUSDT", "1h",
		"شراء / BUY",
		"الدخول / Entry", "50000.00",
		"وقف الخسارة / Stop Loss", "49500.00",
		"الهدف الأول / Target 1", "50500.00",
		"الهدف الثاني / Target 2", "51000.00",
		"RSI(14): 62.50",
		"آخر شمعة / Last candle", "2026-03-01T11:00:00Z",
		"30m",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("block missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "⚠️") {
		t.Errorf("fresh result carries a stale warning:\n%s", got)
	}
}

func TestSignal_EnglishOnly(t *testing.T) {
	f := New("en")
	res, snap := sampleResult()
	got := f.Signal(res, snap)

	if !strings.Contains(got, "Signal: BUY") {
		t.Errorf("missing english decision line:\n%s", got)
	}
	if strings.Contains(got, "شراء") {
		t.Errorf("english block contains arabic:\n%s", got)
	}
}

func TestSignal_ArabicOnly(t *testing.T) {
	f := New("ar")
	res, snap := sampleResult()
	got := f.Signal(res, snap)

	if !strings.Contains(got, "الإشارة: شراء") {
		t.Errorf("missing arabic decision line:\n%s", got)
	}
	if strings.Contains(got, "Entry") {
		t.Errorf("arabic block contains english labels:\n%s", got)
	}
}

func TestSignal_NeutralOmitsLevels(t *testing.T) {
	f := New("en")
	res, snap := sampleResult()
	res.Decision = models.DecisionNeutral
	res.Levels = nil
	got := f.Signal(res, snap)

	if !strings.Contains(got, "NEUTRAL") {
		t.Errorf("missing NEUTRAL:\n%s", got)
	}
	for _, absent := range []string{"Entry", "Stop Loss", "Target"} {
		if strings.Contains(got, absent) {
			t.Errorf("NEUTRAL block contains %q:\n%s", absent, got)
		}
	}
}

func TestSignal_StaleWarning(t *testing.T) {
	f := New("both")
	res, snap := sampleResult()
	res.IsStale = true
	got := f.Signal(res, snap)

	if !strings.Contains(got, "⚠️") || !strings.Contains(got, "delayed") {
		t.Errorf("stale result missing warning:\n%s", got)
	}
	if !strings.Contains(got, "متأخرة") {
		t.Errorf("stale warning missing arabic half:\n%s", got)
	}
	// The warning must not suppress the decision itself
	if !strings.Contains(got, "BUY") {
		t.Errorf("stale block lost the decision:\n%s", got)
	}
}

func TestUnusable(t *testing.T) {
	f := New("both")
	last := time.Date(2026, 2, 27, 6, 0, 0, 0, time.UTC)
	got := f.Unusable("BTCUSDT", "1h", last, 60*3600)

	for _, want := range []string{
		"🚫", "BTCUSDT",
		"قديمة جداً", "too old",
		"2026-02-27T06:00:00Z",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("unusable block missing %q:\n%s", want, got)
		}
	}
	for _, absent := range []string{"BUY", "SELL", "NEUTRAL", "شراء", "بيع"} {
		if strings.Contains(got, absent) {
			t.Errorf("unusable block contains decision %q:\n%s", absent, got)
		}
	}
}

func TestInsufficientData(t *testing.T) {
	f := New("en")
	got := f.InsufficientData("DOGEUSDT", "5m", 30, 50)
	if !strings.Contains(got, "(30/50)") {
		t.Errorf("missing have/need counts:\n%s", got)
	}
	if !strings.Contains(got, "Not enough data") {
		t.Errorf("missing message:\n%s", got)
	}
}

func TestNoData(t *testing.T) {
	f := New("both")
	got := f.NoData("XYZUSDT", "1h")
	if !strings.Contains(got, "❌") || !strings.Contains(got, "No data") || !strings.Contains(got, "لا توجد بيانات") {
		t.Errorf("no-data block wrong:\n%s", got)
	}
}

func TestPrice(t *testing.T) {
	f := New("en")
	at := time.Date(2026, 3, 1, 11, 30, 0, 0, time.UTC)
	got := f.Price("BTCUSDT", 50123.45, at)
	for _, want := range []string{"💰", "BTCUSDT", "50123.45", "11:30:00"} {
		if !strings.Contains(got, want) {
			t.Errorf("price line missing %q: %s", want, got)
		}
	}
}

func TestNew_UnknownLanguageFallsBackToBoth(t *testing.T) {
	f := New("fr")
	res, snap := sampleResult()
	got := f.Signal(res, snap)
	if !strings.Contains(got, "شراء / BUY") {
		t.Errorf("fallback formatter not bilingual:\n%s", got)
	}
}
