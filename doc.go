// Package scenedb builds, persists and reloads feature databases for recorded
// scenes containing recognized objects.
//
// A database holds the frames of a scene recording (which objects were seen,
// where and when) and one growing matrix per feature type whose rows are the
// feature vectors of every object view, in frame order.
//
// # Quick Start
//
// Build a database from a manifest and its feature files:
//
//	ctx := context.Background()
//	db, report, _ := scenedb.Build(ctx, "./recordings/stats.txt",
//	    scenedb.WithVerbosity(scenedb.VerbosityVerbose),
//	    scenedb.WithObjectNames([]string{"cup", "plate"}),
//	)
//	fmt.Println(report.Skipped, "frames skipped")
//
// Save it next to the recordings and load it back:
//
//	_ = scenedb.SaveDir(ctx, "./recordings", "kitchen", db)
//	db, _ = scenedb.LoadFile(ctx, "./recordings/kitchen.json")
//
// Cloud storage:
//
//	store, _ := scenedb.OpenStore(ctx, config.StorageConfig{Kind: "s3", Bucket: "scenes"})
//	_ = scenedb.Save(ctx, store, "kitchen", db, scenedb.WithCompression(scenedb.CompressionZSTD))
//
// # Manifest
//
// Every non-blank manifest line describes one frame:
//
//	<name>_o<label>_<seconds>.<fraction>: <view> | <view> | ...
//
// where each view is "view object x y" or "label view object x y". The
// feature file of the frame is histograms/<name>_o<label>_<time> next to
// the manifest and holds one line per view and feature type, view-major.
//
// Frames whose feature file is missing, unreadable or has the wrong number of
// lines are skipped and counted; a malformed manifest line aborts the build.
package scenedb
