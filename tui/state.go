package tui

type state int

const (
	errorState state = iota
	coursesState
	searchState
	playerState
)
