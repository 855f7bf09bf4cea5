// Package menu implements the interactive console. A line-oriented loop
// reads numbered options from stdin, dispatches to the domain repositories
// and renders results with lipgloss styling.
//
// The loop never dies on a handler error: the error is printed and the
// menu redisplays. Every successful mutation records an entry in the
// operation log.
package menu
