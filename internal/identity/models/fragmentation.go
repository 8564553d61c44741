package models

// FragmentationLevel grades how split a customer's identity is across systems.
type FragmentationLevel string

const (
	FragmentationNone   FragmentationLevel = "NONE"
	FragmentationLow    FragmentationLevel = "LOW"
	FragmentationMedium FragmentationLevel = "MEDIUM"
	FragmentationHigh   FragmentationLevel = "HIGH"
)

// Severity orders levels from NONE (0) to HIGH (3).
func (l FragmentationLevel) Severity() int {
	switch l {
	case FragmentationHigh:
		return 3
	case FragmentationMedium:
		return 2
	case FragmentationLow:
		return 1
	}
	return 0
}

// FragmentationStatus describes how a canonical view was stitched together and whether it
// could be merged safely.
type FragmentationStatus struct {
	IsFragmented      bool               `json:"is_fragmented"`
	Level             FragmentationLevel `json:"level"`
	Reasons           []string           `json:"reasons"`
	LinkedSystems     []SourceSystem     `json:"linked_systems"`
	UnlinkableSystems []SourceSystem     `json:"unlinkable_systems"`
	CanMerge          bool               `json:"can_merge"`
	MergeBlockers     []string           `json:"merge_blockers"`
}

// ConsentStatus is the strongest consent basis known for a customer.
type ConsentStatus string

const (
	ConsentUnknown  ConsentStatus = "UNKNOWN"
	ConsentImplicit ConsentStatus = "IMPLICIT"
	ConsentExplicit ConsentStatus = "EXPLICIT"
)

// Strength orders consent statuses; unrecognized values rank with UNKNOWN.
func (c ConsentStatus) Strength() int {
	switch c {
	case ConsentExplicit:
		return 2
	case ConsentImplicit:
		return 1
	default:
		return 0
	}
}

// PortabilityFormat is a concrete export format for data-portability requests.
type PortabilityFormat string

const (
	PortabilityJSON PortabilityFormat = "JSON"
	PortabilityCSV  PortabilityFormat = "CSV"
)

// PrivacyLimitations records what can and cannot be done for privacy requests on a view.
type PrivacyLimitations struct {
	CanFullyErase       bool               `json:"can_fully_erase"`
	ErasureBlockers     []string           `json:"erasure_blockers"`
	RetentionDays       *int               `json:"retention_days,omitempty"`
	CrossSystemLinkable bool               `json:"cross_system_linkable"`
	ConsentStatus       ConsentStatus      `json:"consent_status"`
	RightToPortability  bool               `json:"right_to_portability"`
	PortabilityFormat   *PortabilityFormat `json:"portability_format,omitempty"`
}
