package workout

// NoticeKind classifies a status message for the UI.
type NoticeKind string

const (
	NoticeStarted               NoticeKind = "started"
	NoticeRecovered             NoticeKind = "recovered"
	NoticeSetComplete           NoticeKind = "set_complete"
	NoticeExerciseComplete      NoticeKind = "exercise_complete"
	NoticeRestOver              NoticeKind = "rest_over"
	NoticePaused                NoticeKind = "paused"
	NoticeResumed               NoticeKind = "resumed"
	NoticeSelected              NoticeKind = "selected"
	NoticeFinished              NoticeKind = "finished"
	NoticeAbandoned             NoticeKind = "abandoned"
	NoticeAlreadyCompletedToday NoticeKind = "already_completed_today"
	// NoticeViolation reports a rejected user action.
	NoticeViolation NoticeKind = "violation"
	// NoticeWarning reports a non-fatal failure, such as a session log write.
	NoticeWarning NoticeKind = "warning"
)

// Notice is a human-readable status event.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// IsProblem reports whether the notice should be rendered as an error or warning.
func (n Notice) IsProblem() bool {
	return n.Kind == NoticeViolation || n.Kind == NoticeWarning || n.Kind == NoticeAlreadyCompletedToday
}

type discardNotices struct{}

func (discardNotices) Publish(Notice) {}
