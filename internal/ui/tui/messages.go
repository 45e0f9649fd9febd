package tui

// fileChangedMsg is sent once per debounced change of the watched file.
type fileChangedMsg struct {
	op string
}

type watchErrMsg struct {
	err error
}
