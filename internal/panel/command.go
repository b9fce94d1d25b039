package panel

// Command is spec.md 4.H's cross-cutting panel command set: operations the
// dispatcher or another panel can ask any panel to perform, distinct from
// a direct key/mouse event. Exactly one field group is meaningful per Kind.
type Command struct {
	Kind CommandKind

	RepoPaths    []string // OnGitUpdate
	ChangedPath  string   // OnFsUpdate
	Rows, Cols   int      // Resize
	WatchRoot    string   // SetFsWatchRoot
	SkipDirs     map[string]bool
}

type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandGetRepoRoot
	CommandOnGitUpdate
	CommandCheckPendingGitDiff
	CommandCheckGitDiffReceiver
	CommandCheckExternalModification
	CommandGetFsWatchInfo
	CommandSetFsWatchRoot
	CommandOnFsUpdate
	CommandResize
	CommandRefreshDirectory
	CommandReload
	CommandGetModificationStatus
	CommandSave
	CommandCloseWithoutSaving
)

// CommandResult is the tagged-union reply spec.md 4.H defines; only the
// field matching the issuing Command's Kind is populated.
type CommandResult struct {
	Kind CommandResultKind

	NeedsRedraw bool

	FsWatchPath    string
	FsWatchActive  bool

	Modified        bool
	ExternallyChanged bool

	SaveSucceeded bool
	SaveError     string

	RepoRoot string
}

type CommandResultKind int

const (
	ResultNone CommandResultKind = iota
	ResultNeedsRedraw
	ResultFsWatchInfo
	ResultModificationStatus
	ResultSaveResult
	ResultRepoRoot
)
