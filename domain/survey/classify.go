package survey

// MBI burnout bands
const (
	BurnoutBajo     = "bajo"
	BurnoutModerado = "moderado"
	BurnoutAlto     = "alto"
)

// COPSOQ-ISTAS21 bands
const (
	CopsoqVerde      = "verde"
	CopsoqAmarillo   = "amarillo"
	CopsoqRojo       = "rojo"
	CopsoqFueraRango = "fuera_rango"
)

// ClassifyBurnout maps an MBI total to its band. Total over the whole integer line.
func ClassifyBurnout(score int) string {
	switch {
	case score <= 17:
		return BurnoutBajo
	case score <= 29:
		return BurnoutModerado
	default:
		return BurnoutAlto
	}
}

// ClassifyCopsoq maps a COPSOQ total to its band. Scores between the official
// bands (17-23, 33-39) and outside 0-64 are fuera_rango.
func ClassifyCopsoq(score int) string {
	switch {
	case score >= 0 && score <= 16:
		return CopsoqVerde
	case score >= 24 && score <= 32:
		return CopsoqAmarillo
	case score >= 40 && score <= 64:
		return CopsoqRojo
	default:
		return CopsoqFueraRango
	}
}

// BurnoutLevel classifies a nullable score; a missing score gives a missing level.
func BurnoutLevel(score NullInt) Level {
	if !score.Valid {
		return Level{}
	}
	return Level{Label: ClassifyBurnout(score.Value), Valid: true}
}

// CopsoqLevel classifies a nullable score; a missing score gives a missing level.
func CopsoqLevel(score NullInt) Level {
	if !score.Valid {
		return Level{}
	}
	return Level{Label: ClassifyCopsoq(score.Value), Valid: true}
}
