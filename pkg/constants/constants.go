// Package constants provides shared constants for the mortgage-calc application.
package constants

// DateLayout is the format expected in config files and request bodies and is
// also the output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of decimals kept for currency output
	DecimalPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// RateEpsilon is the periodic rate below which a loan is treated as
	// interest free. Smaller rates make (1 - (1+r)^-n) / r lose all precision.
	RateEpsilon = 1e-12

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Affordability policy constants
const (
	// FixedCostBuffer is the share of stated fixed costs reserved on top of
	// debts when suggesting a payment.
	FixedCostBuffer = 0.25

	// DefaultStressDeltaPct is the annual rate shock, in percentage points,
	// used for the stress test when none is configured.
	DefaultStressDeltaPct = 2.0

	// MaxTermYears is the longest loan term accepted from untrusted input.
	MaxTermYears = 50

	// MinEffortRatioPct and MaxEffortRatioPct bound the usual effort ratio.
	// Values outside the range are computed but produce a warning.
	MinEffortRatioPct = 20.0
	MaxEffortRatioPct = 45.0

	// SensitivityBelowPct and SensitivityAbovePct define the annual rate
	// window around the base rate for the payment sensitivity curve.
	SensitivityBelowPct = 2.0
	SensitivityAbovePct = 3.0

	// SensitivityFloorPct is the lowest rate plotted on the sensitivity curve.
	SensitivityFloorPct = 0.1

	// SensitivitySteps is the default number of points on the sensitivity curve.
	SensitivitySteps = 25
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultCacheTTL is the default lifetime of cached responses
	DefaultCacheTTL = "10m"

	// DefaultCacheMaxEntries is the default size limit of the in-memory cache
	DefaultCacheMaxEntries = 10000

	// DefaultShutdownTimeout is the default graceful shutdown window
	DefaultShutdownTimeout = "10s"
)
