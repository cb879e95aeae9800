// Package config provides configuration management for youtube-downloader.
//
// Settings live in a JSON file next to the executable (config.json). The
// only key the program writes is download_directory; everything else is
// optional and falls back to DefaultSettings:
//
//	{
//	  "download_directory": "/home/me/Videos",
//	  "audio_quality": "192",
//	  "create_playlist": true,
//	  "playlist_format": "m3u"
//	}
//
// # Store
//
// A Store wraps the file for the interactive front ends:
//
//	store := config.NewStore("", logger)
//	dir, ok := store.ExistingDownloadDirectory()
//	if !ok {
//	    dir = store.FallbackDirectory() // <executable dir>/playlist
//	}
//
// Read problems never stop the program. They are logged and the defaults
// are used instead.
package config
