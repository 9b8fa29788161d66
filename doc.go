// Package taggit provides a content-addressed file tagging archive.
//
// An archive tracks files by the SHA-1 of their content. Each Entry records
// the hash, every name the content was added under and the user's tags.
// Entries live in a line-delimited JSON file inside the archive's hidden
// folder and are rewritten in full, atomically, after each mutation.
//
// Basic usage:
//
//	taggit.Init("photos")
//
//	a, _ := taggit.Open("photos")
//
//	// Hash, merge or insert, then persist once
//	res, _ := a.Add(ctx, []string{"photo.jpg"}, taggit.AddOptions{Tags: []string{"vacation"}})
//	fmt.Println(res.Inserted, res.Merged, len(res.Skipped))
//
//	// Lower level: upsert a candidate and write
//	hash, _ := taggit.HashFile("photo_copy.jpg")
//	a.Upsert(taggit.NewEntry(hash, "photo_copy.jpg", "beach"))
//	a.Write()
//
//	// Look up and query
//	e := a.Find(hash)
//	beach, _ := a.List(taggit.Query{Tags: []string{"beach"}})
//
// Storage layout:
//
//	photos/.taggit/
//	  files/        copied content (see AddOptions.Blobs)
//	  hashes.json   {"hash":"…","names":[…],"tags":[…]} per line
package taggit
