// Package model defines the core data structures used throughout
// the youtube-downloader application.
//
// # Formats
//
// Format is the read-only descriptor of one downloadable stream variant as
// reported by the extraction backend (video-only, audio-only or muxed):
//
//	for _, f := range info.Formats {
//	    if f.HasVideo() && f.Height >= 144 {
//	        fmt.Println(f.FormatID, f.VCodec, f.Height)
//	    }
//	}
//
// # Media information
//
// MediaInfo is what an extraction returns for a URL. A playlist carries
// Entries; a single video carries Formats:
//
//	kind := model.KindVideo
//	if info.HasEntries {
//	    kind = model.KindPlaylist
//	}
//
// # Playlists
//
// Playlist and PlaylistItem describe the files produced by a playlist
// download, used to write .m3u/.pls/.wpl/.zpl files next to them:
//
//	pl := model.NewPlaylist("My Mix", "/music", model.PlaylistFormatM3U)
//	fmt.Println(pl.Path) // "/music/My Mix.m3u"
package model
