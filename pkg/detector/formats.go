package detector

import "github.com/ccollicutt/sdep/pkg/timefmt"

// TimestampFormat is a known line prefix that sdep can parse.
type TimestampFormat struct {
	Name      string          // Human-readable name
	Format    string          // strftime-style input format
	Layout    *timefmt.Layout // Compiled Format (set by DefaultFormats)
	Examples  []string        // Example timestamps
	Ambiguous bool            // True if format has date ordering ambiguity (MM/DD vs DD/MM)
}

// DefaultFormats returns the built-in timestamp formats to detect.
// Formats are ordered roughly by specificity (more specific formats first).
func DefaultFormats() []*TimestampFormat {
	formats := []*TimestampFormat{
		{
			Name:     "ISO 8601",
			Format:   "%Y-%m-%dT%H:%M:%S",
			Examples: []string{"2024-01-15T10:30:00", "2024-01-15T10:30:00Z"},
		},
		{
			Name:     "ISO 8601 (minutes)",
			Format:   "%Y-%m-%dT%H:%M",
			Examples: []string{"2024-01-15T10:30"},
		},
		{
			Name:     "Bracketed datetime",
			Format:   "[%Y-%m-%d %H:%M:%S]",
			Examples: []string{"[2024-01-15 10:30:00]"},
		},
		{
			Name:     "Datetime with seconds",
			Format:   "%Y-%m-%d %H:%M:%S",
			Examples: []string{"2024-01-15 10:30:00", "2024-01-15 10:30:00,123"},
		},
		{
			Name:     "Datetime",
			Format:   timefmt.DefaultFormat,
			Examples: []string{"2024-01-15 10:30"},
		},
		{
			Name:     "Syslog with year",
			Format:   "%b %e %Y %H:%M:%S",
			Examples: []string{"Jun 14 2024 15:16:01"},
		},
		{
			Name:     "Syslog (BSD)",
			Format:   "%b %e %H:%M:%S",
			Examples: []string{"Jun 14 15:16:01", "Jan  5 09:30:00"},
		},
		{
			Name:     "Apache error log",
			Format:   "[%a %b %d %H:%M:%S %Y]",
			Examples: []string{"[Sun Dec 04 04:47:44 2005]"},
		},
		{
			Name:     "ctime",
			Format:   "%a %b %e %H:%M:%S %Y",
			Examples: []string{"Sun Dec  4 04:47:44 2005"},
		},
		{
			Name:     "Short date (Spark/Hadoop)",
			Format:   "%y/%m/%d %H:%M:%S",
			Examples: []string{"17/06/09 20:10:40"},
		},
		{
			Name:      "US date",
			Format:    "%m/%d/%Y %H:%M:%S",
			Examples:  []string{"01/15/2024 10:30:00"},
			Ambiguous: true,
		},
		{
			Name:      "European date",
			Format:    "%d/%m/%Y %H:%M:%S",
			Examples:  []string{"15/01/2024 10:30:00"},
			Ambiguous: true,
		},
		{
			Name:     "European dotted date",
			Format:   "%d.%m.%Y %H:%M",
			Examples: []string{"15.01.2024 10:30"},
		},
		{
			Name:     "Compact",
			Format:   "%Y%m%d %H%M",
			Examples: []string{"20240115 1030"},
		},
		{
			Name:     "Date only",
			Format:   "%Y-%m-%d",
			Examples: []string{"2024-01-15"},
		},
	}

	for _, f := range formats {
		f.Layout = timefmt.MustLayout(f.Format)
	}

	return formats
}
