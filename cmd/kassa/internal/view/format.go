package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const apiTimeout = 15 * time.Second

// FormatMoney formats an amount stored as cents into a human-readable string.
func FormatMoney(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDateTime formats a time.Time into YYYY-MM-DD HH:MM.
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// ParseMoney parses a human-entered amount ("12", "12.50", "12,50")
// into cents.
func ParseMoney(s string) (int64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")

	val, err := strconv.ParseFloat(normalized, 64)
	if err != nil || val < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	return int64(val*100 + 0.5), nil
}

// APICtx returns a context with a standard timeout for backend calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}

func errStyle(s string) string {
	return errTextStyle.Render(s)
}

func okStyle(s string) string {
	return okTextStyle.Render(s)
}
