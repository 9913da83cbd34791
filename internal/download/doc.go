package download

// Package download implements the run pipeline built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp). A Service runs the engine on a
// background goroutine, translates engine callbacks into workflow events sent
// over a channel, and copies the produced file to the user's destination.
