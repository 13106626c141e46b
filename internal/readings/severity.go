package readings

// Severity is the three-level alert classification for a reading. It is an
// ordinal (none < warn < danger), not a flag: "none" also covers readings we
// have no signal for at all.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityWarn
	SeverityDanger
)

func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "warn"
	case SeverityDanger:
		return "danger"
	}
	return "none"
}

// ParseSeverity maps a stored string back to the ordinal; unrecognized input
// reads as none.
func ParseSeverity(s string) Severity {
	switch s {
	case "warn":
		return SeverityWarn
	case "danger":
		return SeverityDanger
	}
	return SeverityNone
}

// EvaluateSeverity classifies a reading. When an AQI exists it alone decides:
// below 101 none, 101-200 warn, 201 and up danger. Without an AQI the
// explicit threshold record is the fallback. Without either, the answer is
// none — absence of signal is not "safe", but it is not an alert either.
func EvaluateSeverity(aqiVal *int, value float64, threshold *PollutantThreshold) Severity {
	if aqiVal != nil {
		switch {
		case *aqiVal >= 201:
			return SeverityDanger
		case *aqiVal >= 101:
			return SeverityWarn
		}
		return SeverityNone
	}

	if threshold != nil {
		switch {
		case value >= threshold.Danger:
			return SeverityDanger
		case value >= threshold.Warn:
			return SeverityWarn
		}
	}

	return SeverityNone
}
