package client

import "github.com/famomatic/bvget/internal/playinfo"

// VideoInfo is the package-level metadata result.
type VideoInfo struct {
	ID        string
	Title     string
	Qualities []Quality

	catalog *playinfo.Catalog
}

// Quality is one advertised resolution tier, in page order.
type Quality struct {
	ID    int
	Label string
}
