// Package system wraps the collaborators that live outside the process: the
// ffmpeg transcoder, the native folder picker dialog and the terminal.
//
// Each is behind a small interface so the front ends can be tested with
// fakes.
package system
