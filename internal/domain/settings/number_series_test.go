package settings

import (
	"errors"
	"testing"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRule_Format(t *testing.T) {
	jan2024 := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		rule     FormatRule
		seq      int64
		expected string
	}{
		{
			name:     "prefix year padding",
			rule:     FormatRule{Prefix: "INV", Separator: "-", IncludeYear: true, YearFormat: YearFormatFull, Padding: 4},
			seq:      1,
			expected: "INV-2024-0001",
		},
		{
			name:     "prefix year month",
			rule:     FormatRule{Prefix: "INV", Separator: "-", IncludeYear: true, YearFormat: YearFormatFull, IncludeMonth: true, Padding: 4},
			seq:      1,
			expected: "INV-2024-01-0001",
		},
		{
			name:     "empty separator short year",
			rule:     FormatRule{Prefix: "PO", Separator: "", IncludeYear: true, YearFormat: YearFormatShort, IncludeMonth: true, Padding: 3},
			seq:      1,
			expected: "PO2401001",
		},
		{
			name:     "no prefix",
			rule:     FormatRule{Separator: "-", Padding: 6},
			seq:      42,
			expected: "000042",
		},
		{
			name:     "sequence wider than padding is not truncated",
			rule:     FormatRule{Prefix: "EMP", Separator: "-", Padding: 2},
			seq:      12345,
			expected: "EMP-12345",
		},
		{
			name:     "suffix",
			rule:     FormatRule{Prefix: "DN", Suffix: "X", Separator: "/", Padding: 3},
			seq:      7,
			expected: "DN/007/X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rule.Format(tt.seq, jan2024))
		})
	}
}

func TestFormatRule_Validate(t *testing.T) {
	assert.NoError(t, FormatRule{Padding: 4}.Validate())
	assert.Error(t, FormatRule{Padding: 0}.Validate())
	assert.Error(t, FormatRule{Padding: 13}.Validate())
	assert.Error(t, FormatRule{Padding: 4, Separator: "----"}.Validate())
	assert.Error(t, FormatRule{Padding: 4, IncludeYear: true, YearFormat: "YYY"}.Validate())
}

func newInvoiceSeries(t *testing.T, policy ResetPolicy) *NumberSeries {
	t.Helper()
	s, err := NewNumberSeries("invoice", "Sales invoices", "finance",
		FormatRule{Prefix: "INV", Separator: "-", IncludeYear: true, Padding: 4}, policy)
	require.NoError(t, err)
	return s
}

func TestNewNumberSeries(t *testing.T) {
	t.Run("normalises code and defaults", func(t *testing.T) {
		s := newInvoiceSeries(t, "")
		assert.Equal(t, "INVOICE", s.Code)
		assert.Equal(t, ResetNever, s.ResetPolicy)
		assert.Equal(t, YearFormatFull, s.YearFormat)
		assert.Equal(t, int64(1), s.NextNumber)
		assert.True(t, s.IsActive)
	})

	t.Run("rejects bad code", func(t *testing.T) {
		_, err := NewNumberSeries("1X", "x", "", FormatRule{Padding: 4}, ResetNever)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("rejects unknown policy", func(t *testing.T) {
		_, err := NewNumberSeries("ABC", "x", "", FormatRule{Padding: 4}, "weekly")
		assert.Error(t, err)
	})
}

func TestNumberSeries_Consume(t *testing.T) {
	now := time.Now()

	t.Run("consumes sequential values", func(t *testing.T) {
		s := newInvoiceSeries(t, ResetNever)
		preview := s.Preview(now)

		first, err := s.Consume(now)
		require.NoError(t, err)
		second, err := s.Consume(now)
		require.NoError(t, err)

		assert.Equal(t, preview, first)
		assert.Equal(t, s.FormatRule.Format(1, now), first)
		assert.Equal(t, s.FormatRule.Format(2, now), second)
		assert.Equal(t, int64(3), s.NextNumber)
	})

	t.Run("honours increment", func(t *testing.T) {
		s := newInvoiceSeries(t, ResetNever)
		s.Increment = 10
		_, _ = s.Consume(now)
		assert.Equal(t, int64(11), s.NextNumber)
	})

	t.Run("yearly reset restarts at one", func(t *testing.T) {
		s := newInvoiceSeries(t, ResetYearly)
		s.NextNumber = 57
		nextYear := now.AddDate(1, 0, 0)

		v, err := s.Consume(nextYear)
		require.NoError(t, err)
		assert.Equal(t, s.FormatRule.Format(1, nextYear), v)
		assert.Equal(t, nextYear.Format("2006"), s.CurrentPeriod)
		assert.Equal(t, int64(2), s.NextNumber)
	})

	t.Run("monthly reset keeps counter within month", func(t *testing.T) {
		s := newInvoiceSeries(t, ResetMonthly)
		s.NextNumber = 9
		v, err := s.Consume(now)
		require.NoError(t, err)
		assert.Equal(t, s.FormatRule.Format(9, now), v)
	})

	t.Run("inactive series fails", func(t *testing.T) {
		s := newInvoiceSeries(t, ResetNever)
		s.Deactivate()
		_, err := s.Consume(now)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		assert.Equal(t, int64(1), s.NextNumber)
	})
}

func TestNumberSeries_Reset(t *testing.T) {
	s := newInvoiceSeries(t, ResetNever)
	s.NextNumber = 99

	require.NoError(t, s.Reset(5))
	assert.Equal(t, int64(5), s.NextNumber)
	require.Len(t, s.GetDomainEvents(), 1)
	assert.Equal(t, "number_series.reset", s.GetDomainEvents()[0].EventType())

	assert.Error(t, s.Reset(0))
}

func TestNumberSeries_Update(t *testing.T) {
	s := newInvoiceSeries(t, ResetNever)
	err := s.Update("Invoices", "finance", FormatRule{Prefix: "SI", Separator: "", Padding: 5}, ResetYearly, 1)
	require.NoError(t, err)
	assert.Equal(t, "SI", s.Prefix)
	assert.Equal(t, ResetYearly, s.ResetPolicy)
	assert.Equal(t, time.Now().Format("2006"), s.CurrentPeriod)

	assert.Error(t, s.Update("", "finance", FormatRule{Padding: 4}, ResetNever, 1))
	assert.Error(t, s.Update("x", "finance", FormatRule{Padding: 4}, ResetNever, 0))
}
