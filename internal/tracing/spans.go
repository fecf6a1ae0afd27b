package tracing

// Span attribute keys for build session tracing.
const (
	// Session attributes
	AttrSessionID   = "session.id"
	AttrTemplateRaw = "template.raw"

	// Group attributes
	AttrGroupName = "group.name"
	AttrDecision  = "decision"

	// Flag attributes
	AttrFlagTemplate = "flag.template"

	// Outcome attributes
	AttrCommandFinal = "command.final"

	// Definition loading attributes
	AttrDefsSource   = "defs.source"
	AttrDefsLoaded   = "defs.loaded"
	AttrDefsProblems = "defs.problems"
)

// Span names.
const (
	SpanSessionBuild = "session.build"
	SpanDefsLoad     = "defs.load"
)

// Event names for span events.
const (
	EventGroupDecided     = "group.decided"
	EventFlagPicked       = "flag.picked"
	EventFlagArgument     = "flag.argument"
	EventSessionCompleted = "session.completed"
	EventSessionCancelled = "session.cancelled"
)
