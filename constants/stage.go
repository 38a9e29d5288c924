package constants

// Stage is the orchestrator's position in one extraction run.
type Stage string

// Stable values (these exact strings appear in logs).
const (
	StageClassifying Stage = "CLASSIFYING" // routing the document
	StageExtracting  Stage = "EXTRACTING"  // strategy is running
	StageNormalizing Stage = "NORMALIZING" // candidates being normalized
	StageDone        Stage = "DONE"        // terminal, success or failure
)

// ExtractionMethod records which kind of extraction produced the candidates.
type ExtractionMethod string

const (
	MethodStructured ExtractionMethod = "structured" // real grid (spreadsheet or aligned text)
	MethodText       ExtractionMethod = "text"       // freeform pattern matching
	MethodAI         ExtractionMethod = "ai"         // external vision service
)
