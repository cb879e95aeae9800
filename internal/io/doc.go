// Package ioutils provides file system and image processing utilities.
//
// # File Operations
//
//	err := ioutils.EnsureDir("/path/to/downloads")
//	err = ioutils.WriteFile(ctx, "/path/to/playlist.m3u", content)
//
// yt-dlp decides the output file names itself. To find out what a download
// produced, snapshot the directory before and after:
//
//	before, _ := ioutils.Snapshot(dir)
//	// run the download
//	after, _ := ioutils.Snapshot(dir)
//	created := ioutils.NewFiles(before, after, ".part", ".ytdl")
//
// # Image Processing
//
// The ImageService turns thumbnails (JPEG, PNG or WebP) into JPEG cover art:
//
//	svc := ioutils.NewImageService()
//	cover, _ := svc.ResizeImage(ctx, thumbnail, 1000, 1000)
package ioutils
