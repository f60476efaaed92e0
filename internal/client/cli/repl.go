package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Set(ctx context.Context, args []string) error
	ShowForm(ctx context.Context) error
	Submit(ctx context.Context, args []string) error

	Play(ctx context.Context) error
	StopAudio(ctx context.Context) error
	Download(ctx context.Context) error
	Bookmark(ctx context.Context) error
	Bookmarks(ctx context.Context) error
	Unbookmark(ctx context.Context, args []string) error
	RemoteHistory(ctx context.Context) error
	Voices(ctx context.Context) error

	History(ctx context.Context) error
	Replay(ctx context.Context, args []string) error
	ClearHistory(ctx context.Context) error

	Settings(ctx context.Context) error
	Dark(ctx context.Context, args []string) error
	SaveSettings(ctx context.Context) error

	Voice(ctx context.Context) error
	StopVoice(ctx context.Context) error
	Status(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, set, form, history, voices, voice, status, exit"
	helpLoggedIn  = "Available commands: set, form, (s)ubmit, play, stop, download, bookmark, bookmarks, " +
		"unbookmark, rhistory, history, replay, clearhistory, settings, dark, save, voices, voice, esc, " +
		"status, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the Wiki Reader CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Unknown commands are reported back to the user. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
//
// A line holding only the Escape character behaves like "esc" and stops
// voice capture.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("twr %s> ", statusFn()))
		line, err := readLine(in)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)

		case "set":
			_ = a.Set(ctx, args)
		case "form":
			_ = a.ShowForm(ctx)
		case "s", "submit":
			_ = a.Submit(ctx, args)

		case "play", "pause", "toggle":
			_ = a.Play(ctx)
		case "stop":
			_ = a.StopAudio(ctx)
		case "download":
			_ = a.Download(ctx)
		case "bookmark":
			_ = a.Bookmark(ctx)
		case "bookmarks":
			_ = a.Bookmarks(ctx)
		case "unbookmark":
			_ = a.Unbookmark(ctx, args)
		case "rhistory":
			_ = a.RemoteHistory(ctx)
		case "voices":
			_ = a.Voices(ctx)

		case "history":
			_ = a.History(ctx)
		case "replay":
			_ = a.Replay(ctx, args)
		case "clearhistory":
			_ = a.ClearHistory(ctx)

		case "settings":
			_ = a.Settings(ctx)
		case "dark":
			_ = a.Dark(ctx, args)
		case "save":
			_ = a.SaveSettings(ctx)

		case "voice":
			_ = a.Voice(ctx)
		case "esc", "\x1b":
			_ = a.StopVoice(ctx)
		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
