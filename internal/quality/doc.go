// Package quality turns the raw format list of a video into the
// deduplicated, display-ready quality menu shown to the user.
//
// Select keeps at most one Entry per vertical resolution. When two formats
// share a height the one with the higher frame rate wins, and equal frame
// rates are decided by the larger estimated size:
//
//	entries := quality.Select(info.Formats, model.CodecAVC, info.Duration)
//	for i, e := range quality.Sorted(entries) {
//	    fmt.Printf("%d. %-20s - %s\n", i+1, e.Name, quality.FormatSize(float64(e.Size)))
//	}
//
// An empty result is not an error: callers fall back to automatic format
// selection.
package quality
