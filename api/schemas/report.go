package schemas

// -- Diagnostic Schemas --

// AnomalyKind classifies a recoverable irregularity seen during compilation.
type AnomalyKind string

const (
	AnomalyOrphanedNode     AnomalyKind = "ORPHANED_NODE"
	AnomalyParentCycle      AnomalyKind = "PARENT_CYCLE"
	AnomalyUnattachedPseudo AnomalyKind = "UNATTACHED_PSEUDO"
	AnomalyMalformedValue   AnomalyKind = "MALFORMED_VALUE"
)

// Anomaly records one recoverable irregularity. Nothing in the compiler is
// fatal; every anomaly leaves the node in the output in a degraded form.
type Anomaly struct {
	ID     string      `json:"id"`
	Kind   AnomalyKind `json:"kind"`
	NodeID string      `json:"nodeId,omitempty"`
	Detail string      `json:"detail,omitempty"`
}

// NormalizationReport summarizes shorthand expansion across a run. It is
// reproducible for a given input but not required for correctness.
type NormalizationReport struct {
	ShorthandsFound int      `json:"shorthandsFound"`
	Expansions      int      `json:"expansions"`
	ConversionRate  float64  `json:"conversionRate"`
	PotentialIssues []string `json:"potentialIssues,omitempty"`
}

// CascadeSummary is a simplified per-node cascade digest: the properties
// declared !important and a basic specificity score derived from id/class/
// element counts in the capture-time selector hint. Diagnostic only.
type CascadeSummary struct {
	Important   []string `json:"important,omitempty"`
	Specificity int      `json:"specificity"`
}

// Report is the addressable diagnostic output of a compilation run.
type Report struct {
	Normalization NormalizationReport       `json:"normalization"`
	Cascade       map[string]CascadeSummary `json:"cascade,omitempty"`
	Anomalies     []Anomaly                 `json:"anomalies,omitempty"`
}
