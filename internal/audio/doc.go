// Package audio post-processes audio downloads: ID3 tag writing and playlist
// file generation.
//
// # ID3 Tagging
//
// yt-dlp leaves MP3 files with whatever tags ffmpeg copied over. The Tagger
// rewrites title, artist and album from the video metadata and can embed the
// video thumbnail as cover art:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(path, audio.Metadata{Title: title, Artist: uploader}, jpegBytes)
//
// # Playlist Generation
//
// Playlist downloads can be described by a playlist file next to the files:
//
//	pl := model.NewPlaylist(title, dir, model.PlaylistFormatM3U)
//	content := audio.NewPlaylistCreator(true).CreatePlaylist(pl)
//	os.WriteFile(pl.Path, []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
