package render

// Game palette
var (
	RgbBackground = Gray(30)
	RgbAsteroid   = Gray(150)

	RgbHeadFill   = RGBA(255, 255, 0, 180)
	RgbHeadStroke = Opaque(0, 0, 0)

	RgbBeamCore = Opaque(255, 0, 0)
	RgbBeamGlow = RGBA(255, 80, 80, 150)

	RgbHitFlash = RGBA(255, 0, 0, 120)

	RgbScoreText = Opaque(255, 255, 255)
)

// Stroke widths in field units
const (
	BeamCoreWeight  = 6.0
	BeamGlowWeight  = 12.0
	HeadStrokeWidth = 1.0
)
