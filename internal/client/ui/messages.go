package ui

// frameMsg carries a new frame from the loop into the bubbletea program
type frameMsg Frame
