package schema

// Custom string types for type safety.
type (
	// AnalyzerMode represents one of the four reporting modes of the analyzer.
	AnalyzerMode string

	// OutputMode represents the format of the console output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All analyzer modes, in collection order.
const (
	RawMode             AnalyzerMode = "raw"
	ComplexityMode      AnalyzerMode = "cc"
	HalsteadMode        AnalyzerMode = "hal"
	MaintainabilityMode AnalyzerMode = "mi"
)

// AllAnalyzerModes lists the analyzer modes in the fixed order they are invoked.
var AllAnalyzerModes = []AnalyzerMode{RawMode, ComplexityMode, HalsteadMode, MaintainabilityMode}

// Artifact file names written inside a run directory.
const (
	RawArtifact             = "raw.txt"
	ComplexityArtifact      = "cc.txt"
	HalsteadArtifact        = "hal.json"
	MaintainabilityArtifact = "mi.json"
	SummaryArtifact         = "summary.json"
)

// ArtifactFor returns the artifact file name that stores the output of a mode.
func ArtifactFor(mode AnalyzerMode) string {
	switch mode {
	case RawMode:
		return RawArtifact
	case ComplexityMode:
		return ComplexityArtifact
	case HalsteadMode:
		return HalsteadArtifact
	case MaintainabilityMode:
		return MaintainabilityArtifact
	default:
		return string(mode) + ".out"
	}
}

// Run directory naming.
const (
	RunDirPrefix    = "run_"
	RunDirSeparator = "_"
)

// Defaults shared by config and allocator.
const (
	DefaultOutputRoot   = "radon_runs"
	DefaultAnalyzerName = "radon"
)

// All output modes supported.
const (
	TextOut  OutputMode = "text" // default
	JSONOut  OutputMode = "json"
	TableOut OutputMode = "table"
	CSVOut   OutputMode = "csv"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:  {},
	JSONOut:  {},
	TableOut: {},
	CSVOut:   {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
