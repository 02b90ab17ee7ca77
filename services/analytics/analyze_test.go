// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the analytics reducer.

package analytics

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/Statecraft/pkg/decisionlog"
)

func decision(ts float64, title string, method decisionlog.Method) decisionlog.Decision {
	return decisionlog.Decision{
		Timestamp:        ts,
		Title:            title,
		Method:           method,
		ChosenOptionText: "an option",
	}
}

func TestAnalyze_Empty(t *testing.T) {
	report := Analyze(nil)
	assert.Zero(t, report.Total)
	assert.Empty(t, report.Methods)
	assert.Empty(t, report.Categories)
}

func TestAnalyze_FixedSequence(t *testing.T) {
	// Three AI decisions at 100, 200, 300 — the range rounds to 0
	// days, so the per-day average must be guarded, not NaN.
	decisions := []decisionlog.Decision{
		decision(100, "The Bread Crisis", decisionlog.MethodAI),
		decision(200, "The Bread Crisis", decisionlog.MethodAI),
		decision(300, "The Pigeon Debate", decisionlog.MethodAI),
	}

	report := Analyze(decisions)

	assert.Equal(t, 3, report.Total)
	require.Len(t, report.Methods, 1)
	assert.Equal(t, decisionlog.MethodAI, report.Methods[0].Method)
	assert.Equal(t, 3, report.Methods[0].Count)
	assert.InDelta(t, 100.0, report.Methods[0].Percent, 0.001)

	assert.Equal(t, int64(100), report.Start.Unix())
	assert.Equal(t, int64(300), report.End.Unix())
	assert.Equal(t, 0, report.DurationDays)
	assert.Zero(t, report.AvgPerDay, "0-day range must not divide")

	assert.Equal(t, 3, report.AICount)
	assert.Zero(t, report.RandomCount)
	assert.InDelta(t, 100.0, report.AIShare, 0.001)
}

func TestAnalyze_MethodBreakdownOrdering(t *testing.T) {
	decisions := []decisionlog.Decision{
		decision(1, "A b", decisionlog.MethodRandom),
		decision(2, "A b", decisionlog.MethodAI),
		decision(3, "A b", decisionlog.MethodAI),
		decision(4, "A b", decisionlog.MethodAI),
	}

	report := Analyze(decisions)

	require.Len(t, report.Methods, 2)
	assert.Equal(t, decisionlog.MethodAI, report.Methods[0].Method)
	assert.Equal(t, 3, report.Methods[0].Count)
	assert.InDelta(t, 75.0, report.Methods[0].Percent, 0.001)
	assert.Equal(t, decisionlog.MethodRandom, report.Methods[1].Method)
	assert.InDelta(t, 25.0, report.Methods[1].Percent, 0.001)
}

func TestAnalyze_AvgPerDayOverRealRange(t *testing.T) {
	const day = 86400.0
	decisions := []decisionlog.Decision{
		decision(0, "A b", decisionlog.MethodAI),
		decision(1 * day, "A b", decisionlog.MethodAI),
		decision(2 * day, "A b", decisionlog.MethodAI),
		decision(4 * day, "A b", decisionlog.MethodAI),
	}

	report := Analyze(decisions)

	assert.Equal(t, 4, report.DurationDays)
	assert.InDelta(t, 1.0, report.AvgPerDay, 0.001)
}

func TestAnalyze_CategoryHistogram(t *testing.T) {
	decisions := []decisionlog.Decision{
		decision(1, "The Mounting Cost of Bread", decisionlog.MethodAI),
		decision(2, "The Mounting Tax Revolt", decisionlog.MethodAI),
		decision(3, "Pigeons Everywhere", decisionlog.MethodAI),
		decision(4, "The Mounting Cost of Cheese", decisionlog.MethodAI),
		decision(5, "Pigeons", decisionlog.MethodRandom),
		decision(6, "", decisionlog.MethodRandom), // empty title ignored
	}

	report := Analyze(decisions)

	require.NotEmpty(t, report.Categories)
	assert.Equal(t, "The Mounting", report.Categories[0].Category)
	assert.Equal(t, 3, report.Categories[0].Count)

	// Single-word titles count as their own category.
	var found bool
	for _, c := range report.Categories {
		if c.Category == "Pigeons" {
			found = true
			assert.Equal(t, 1, c.Count)
		}
	}
	assert.True(t, found)
}

func TestAnalyze_CategoryTiesKeepFirstSeenOrder(t *testing.T) {
	decisions := []decisionlog.Decision{
		decision(1, "Zeta Issue", decisionlog.MethodAI),
		decision(2, "Alpha Issue", decisionlog.MethodAI),
		decision(3, "Zeta Issue", decisionlog.MethodAI),
		decision(4, "Alpha Issue", decisionlog.MethodAI),
	}

	report := Analyze(decisions)

	require.Len(t, report.Categories, 2)
	assert.Equal(t, "Zeta Issue", report.Categories[0].Category, "first seen wins the tie")
	assert.Equal(t, "Alpha Issue", report.Categories[1].Category)
}

func TestAnalyze_CategoryTopTen(t *testing.T) {
	var decisions []decisionlog.Decision
	titles := []string{"A a", "B b", "C c", "D d", "E e", "F f", "G g", "H h", "I i", "J j", "K k", "L l"}
	for i, title := range titles {
		decisions = append(decisions, decision(float64(i), title, decisionlog.MethodAI))
	}

	report := Analyze(decisions)
	assert.Len(t, report.Categories, 10)
}

func TestRecent_OrderAndTies(t *testing.T) {
	decisions := []decisionlog.Decision{
		decision(100, "first", decisionlog.MethodAI),
		decision(300, "second", decisionlog.MethodAI),
		decision(200, "third", decisionlog.MethodAI),
	}

	recent := Recent(decisions, 2)

	require.Len(t, recent, 2)
	assert.Equal(t, "second", recent[0].Title)
	assert.Equal(t, "third", recent[1].Title)
}

func TestRecent_StableOnEqualTimestamps(t *testing.T) {
	decisions := []decisionlog.Decision{
		decision(100, "first", decisionlog.MethodAI),
		decision(100, "second", decisionlog.MethodAI),
		decision(100, "third", decisionlog.MethodAI),
	}

	recent := Recent(decisions, 3)

	assert.Equal(t, "first", recent[0].Title)
	assert.Equal(t, "second", recent[1].Title)
	assert.Equal(t, "third", recent[2].Title)
}

func TestRecent_TruncatesChoicePreview(t *testing.T) {
	long := strings.Repeat("x", 80)
	d := decision(100, "t", decisionlog.MethodAI)
	d.ChosenOptionText = long

	recent := Recent([]decisionlog.Decision{d}, 5)

	require.Len(t, recent, 1)
	assert.Len(t, recent[0].Choice, 63) // 60 chars + "..."
	assert.True(t, strings.HasSuffix(recent[0].Choice, "..."))
}

func TestRecent_ShortChoiceUntouched(t *testing.T) {
	d := decision(100, "t", decisionlog.MethodAI)
	d.ChosenOptionText = "short"

	recent := Recent([]decisionlog.Decision{d}, 5)
	assert.Equal(t, "short", recent[0].Choice)
}

func TestRecent_CountLargerThanInput(t *testing.T) {
	decisions := []decisionlog.Decision{
		decision(100, "only", decisionlog.MethodAI),
	}
	recent := Recent(decisions, 5)
	assert.Len(t, recent, 1)
}

func TestRecent_NonPositiveCount(t *testing.T) {
	decisions := []decisionlog.Decision{
		decision(100, "first", decisionlog.MethodAI),
		decision(200, "second", decisionlog.MethodAI),
	}
	assert.Empty(t, Recent(decisions, 0))
	assert.Empty(t, Recent(decisions, -1), "negative counts clamp to an empty listing")
}

func TestRecent_TruncationKeepsValidUTF8(t *testing.T) {
	// A multi-byte rune straddling the cutoff must not be split.
	d := decision(100, "t", decisionlog.MethodAI)
	d.ChosenOptionText = strings.Repeat("x", previewLen-1) + "…—“quoted”"

	recent := Recent([]decisionlog.Decision{d}, 1)

	require.Len(t, recent, 1)
	assert.True(t, utf8.ValidString(recent[0].Choice))
	assert.Equal(t, previewLen+3, utf8.RuneCountInString(recent[0].Choice))
	assert.True(t, strings.HasSuffix(recent[0].Choice, "…..."))
}

func TestRecent_DoesNotMutateInput(t *testing.T) {
	decisions := []decisionlog.Decision{
		decision(100, "first", decisionlog.MethodAI),
		decision(300, "second", decisionlog.MethodAI),
	}
	Recent(decisions, 2)
	assert.Equal(t, "first", decisions[0].Title, "input order preserved")
	assert.InDelta(t, 100, decisions[0].Timestamp, 0.001)
}

func TestCompareSnapshots(t *testing.T) {
	oldPop, newPop := int64(100), int64(130)
	oldTax, newTax := 40.0, 42.5
	old := &decisionlog.StatsSnapshot{
		Population:  &oldPop,
		Tax:         &oldTax,
		CivilRights: "Good",
		Economy:     "Strong",
	}
	cur := &decisionlog.StatsSnapshot{
		Population:  &newPop,
		Tax:         &newTax,
		CivilRights: "Very Good",
		Economy:     "Strong",
	}

	lines := CompareSnapshots(old, cur)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "Population: 100 → 130 (+30)")
	assert.Contains(t, joined, "Civil Rights: Good → Very Good")
	assert.Contains(t, joined, "Tax Rate: 40.0% → 42.5% (+2.5%)")
	assert.NotContains(t, joined, "Economy", "unchanged fields are skipped")
}

func TestCompareSnapshots_TaxNoiseSuppressed(t *testing.T) {
	oldTax, newTax := 40.0, 40.05
	lines := CompareSnapshots(
		&decisionlog.StatsSnapshot{Tax: &oldTax},
		&decisionlog.StatsSnapshot{Tax: &newTax},
	)
	assert.Empty(t, lines)
}

func TestCompareSnapshots_NilInputs(t *testing.T) {
	assert.Nil(t, CompareSnapshots(nil, &decisionlog.StatsSnapshot{}))
	assert.Nil(t, CompareSnapshots(&decisionlog.StatsSnapshot{}, nil))
}
