package trex

// Reserved location names - engine-defined behavior, never ordinary entries
const (
	// LocationDebug exposes the read-mostly debug view
	LocationDebug = "debug"
	// LocationIterate renders a target location once per sequence element
	LocationIterate = "iterate"
	// LocationParent re-resolves the calling entry from an ancestor provider
	LocationParent = "parent"
	// LocationNotFound is the user-overridable miss handler
	LocationNotFound = "404"
	// LocationError is the user-overridable error handler
	LocationError = "500"
)

// DefaultEntrypoint is rendered when no entrypoint option is given.
const DefaultEntrypoint = "main"

// EntryKeyParent is the provider key reserved for the parent link; it is
// stripped per layer and never resolvable.
const EntryKeyParent = "parent"

// Chain kind labels used in validation error messages
const (
	ChainKindTemplate = "template"
	ChainKindContext  = "context"
)

// ChainRootLabel names the chain head in validation messages when no
// already-validated child exists to name the offender by.
const ChainRootLabel = "Root"

// Debug view field names
const (
	DebugFieldTemplateChain = "templateChain"
	DebugFieldContextChain  = "contextChain"
	DebugFieldEntrypoint    = "entrypoint"
	DebugFieldDebugMarks    = "debugMarks"
	DebugFieldPrintStack    = "printStack"
	DebugFieldRenderID      = "renderID"
)

// Debug mark delimiters - matched comment pair around string output
const (
	DebugMarkOpenFmt  = "<!--%s@%s-->"
	DebugMarkCloseFmt = `<!--\%s@%s-->`
)

// Stack trace formatting
const (
	StackFrameFmt    = "%s@%s"
	StackFrameSep    = ", "
	StackTracePrefix = "tRex stack: ["
	StackTraceSuffix = "]"
)

// AmendedMessageSep joins an original error message with the terminal
// message appended at the top level.
const AmendedMessageSep = " --> "

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Chain construction errors
	ErrFmtMissingID   = "%s chain provider above '%s' has no string id"
	ErrFmtDuplicateID = "duplicate provider id '%s' in merged chain"
	ErrMsgDuplicateID = "duplicate provider id"
	ErrMsgNilTemplate = "template chain is required"

	// Render errors
	ErrFmtNotFound       = "'%s' not found. " + StackTracePrefix + "%s" + StackTraceSuffix
	ErrFmtTerminalStack  = StackTracePrefix + "%s" + StackTraceSuffix
	ErrMsgParentNoFrame  = "parent cannot be the entrypoint - no calling frame"
	ErrMsgIterateArgs    = "iterate requires a target location and a sequence"
	ErrMsgIterateTarget  = "iterate target location must be a string"
	ErrMsgNotIterable    = "value does not support iteration"
	ErrMsgDebugReadOnly  = "debug field is read-only"
	ErrMsgDebugUnknown   = "unknown debug field"
	ErrMsgDebugMarksBool = "debugMarks requires a boolean value"
)

// Error code constants for categorization
const (
	ErrCodeChain  = "TREX_CHAIN"
	ErrCodeRender = "TREX_RENDER"
	ErrCodeYAML   = "TREX_YAML"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyChainKind  = "chain"
	MetaKeyChildID    = "child_id"
	MetaKeyProviderID = "provider_id"
	MetaKeyLocation   = "location"
	MetaKeyValue      = "value"
)

// Log message constants
const (
	LogMsgChainBuilt      = "chain provider built"
	LogMsgLayerFolded     = "layer folded"
	LogMsgRenderStart     = "starting render"
	LogMsgRenderEnd       = "render complete"
	LogMsgLocationMiss    = "location not found"
	LogMsgCallableInvoked = "callable invoked"
	LogMsgCallableDone    = "callable complete"
	LogMsgValueResolved   = "plain value resolved"
	LogMsgRedirectMiss    = "redirecting miss to 404"
	LogMsgRedirectError   = "redirecting error to 500"
	LogMsgIterateStart    = "starting iterate"
	LogMsgIterateEnd      = "iterate complete"
	LogMsgParentWalk      = "parent traversal"
)

// Log field name constants
const (
	LogFieldRenderID   = "render_id"
	LogFieldLocation   = "location"
	LogFieldProviderID = "provider_id"
	LogFieldEntrypoint = "entrypoint"
	LogFieldLayers     = "layer_count"
	LogFieldDepth      = "stack_depth"
	LogFieldElements   = "element_count"
	LogFieldStartID    = "start_id"
	LogFieldTargetID   = "target_id"
	LogFieldErrorMsg   = "error_message"
)
