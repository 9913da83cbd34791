package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, clipboard access, playlist probing via ytdlp, produced
// file sniffing, and OS reveal.
