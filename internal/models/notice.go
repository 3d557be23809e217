package models

// Notice levels.
const (
	NoticeError   = "error"
	NoticeWarning = "warning"
	NoticeSuccess = "success"
)

// Notice is a recoverable, user-visible message produced during a run.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// IsError reports whether the notice describes a failed lookup.
func (n Notice) IsError() bool {
	return n.Level == NoticeError
}
