// Package download runs YouTube downloads through yt-dlp.
//
// # Requests
//
// BuildRequest turns the user's choice (audio codec or video container plus
// an optional format id) into the yt-dlp options for it:
//
//	req, warnings := download.BuildRequest(download.Options{
//	    URL:        url,
//	    Media:      model.MediaAudio,
//	    AudioCodec: "mp3",
//	    Directory:  dir,
//	}, ffmpegAvailable)
//
// # Manager
//
// The Manager coordinates one download:
//
//  1. Create the destination directory
//  2. Probe for ffmpeg
//  3. Build the request and run it with an Executor
//  4. Tag new MP3 files with ID3 metadata (optional)
//  5. Write a playlist file for playlist downloads (optional)
//
// # Basic Usage
//
//	manager := download.NewManager(settings, &download.YTDLPExecutor{}, system.FFmpeg{}, logger,
//	    func(event download.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    })
//
//	if err := manager.Download(ctx, opts); err != nil {
//	    // already reported through the callback
//	}
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message  string
//	    Level    ProgressLevel // Info, Verbose, Warning, Error, Success, Progress
//	    Progress Progress      // set for LevelProgress
//	}
//
// The callback may be invoked from the goroutine reading yt-dlp output.
package download
