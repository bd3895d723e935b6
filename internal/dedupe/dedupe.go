package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent emulator round-trips. The emulator serves one request at a
// time, so collapsing identical in-flight reads keeps polling cheap when
// several clients ask for the same thing at once.

import "golang.org/x/sync/singleflight"

// ScreenshotGroup deduplicates screenshot captures. All concurrent callers
// share one capture keyed by "screenshot".
var ScreenshotGroup singleflight.Group

// SnapshotGroup deduplicates battle snapshot reads keyed by view name
// (e.g. "status", "player", "enemy", "party").
var SnapshotGroup singleflight.Group
