package Notify

import "time"

// nowFunc is swappable in tests.
var nowFunc = time.Now
