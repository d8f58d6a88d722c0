package platform

// Package platform contains OS/platform integration and external tooling glue:
// video and playlist id parsing, playlist fetching via yt-dlp, data and export
// directories, and OS reveal.
