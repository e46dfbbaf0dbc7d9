package services

import "github.com/inklink/backend/internal/models"

// pageBounds carries the configured default and maximum page size. The
// models constants are only the fallback; the effective bounds come from
// configuration through the service constructors.
type pageBounds struct {
	def int
	max int
}

func newPageBounds(def, max int) pageBounds {
	if def <= 0 {
		def = models.DefaultPageSize
	}
	if max <= 0 {
		max = models.MaxPageSize
	}
	if def > max {
		def = max
	}
	return pageBounds{def: def, max: max}
}

func (b pageBounds) normalize(page models.PageSpec) models.PageSpec {
	return page.Normalized(b.def, b.max)
}
