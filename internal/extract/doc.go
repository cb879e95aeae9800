// Package extract obtains metadata for YouTube URLs.
//
// Two Extractor backends are provided. YTDLP runs the external yt-dlp binary
// and decodes its JSON dump, which is the most complete source of format
// information. Native talks to YouTube directly through kkdai/youtube and
// needs no external binary, at the cost of less precise codec data.
//
// Service sits on top of an Extractor and implements the two questions the
// front ends ask: what a URL points to (Classify) and which video qualities
// it offers (Qualities).
//
//	svc := extract.NewService(extract.NewYTDLP(""), logger)
//	c, err := svc.Classify(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(c.Kind, c.Title, c.Count)
package extract
