package enums

type DraftState string

const (
	DraftStateCollapsed     DraftState = "collapsed"
	DraftStateExpanded      DraftState = "expanded"
	DraftStateSubmitting    DraftState = "submitting"
	DraftStateSuccessBanner DraftState = "success_banner"
)
